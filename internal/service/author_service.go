package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// AuthorService provides author operations, including management of the
// author's books.
type AuthorService struct {
	db      *sql.DB
	authors store.AuthorStore
	logger  *slog.Logger
}

// NewAuthorService creates an AuthorService.
func NewAuthorService(db *sql.DB, authors store.AuthorStore, logger *slog.Logger) *AuthorService {
	if db == nil || authors == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("author service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorService{
		db:      db,
		authors: authors,
		logger:  logger.With(slog.String("component", "author_service")),
	}
}

// List returns a page of authors.
func (s *AuthorService) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error) {
	return s.authors.List(ctx, params)
}

// Get returns one author.
func (s *AuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	return s.authors.GetByID(ctx, id)
}

// Create validates and stores a new author.
func (s *AuthorService) Create(ctx context.Context, name string) (*domain.Author, error) {
	author, err := domain.NewAuthor(name)
	if err != nil {
		return nil, err
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("author created", slog.Int64("author_id", author.ID))
	return author, nil
}

// Update applies changes to an author.
func (s *AuthorService) Update(ctx context.Context, id int64, changes domain.AuthorChanges) (*domain.Author, error) {
	var updated *domain.Author
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		authors := s.authors.WithTx(tx)

		author, err := authors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := author.Apply(changes); err != nil {
			return err
		}
		if err := authors.Update(ctx, author); err != nil {
			return err
		}
		updated = author
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an author and their book links.
func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("author deleted", slog.Int64("author_id", id))
	return nil
}

// BookIDs returns the IDs of the author's books.
func (s *AuthorService) BookIDs(ctx context.Context, id int64) ([]int64, error) {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.authors.BookIDs(ctx, id)
}

// Books returns the author's books.
func (s *AuthorService) Books(ctx context.Context, id int64) ([]domain.Book, error) {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.authors.Books(ctx, id)
}

// ReplaceBooks makes bookIDs the complete set of the author's books.
func (s *AuthorService) ReplaceBooks(ctx context.Context, id int64, bookIDs []int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		authors := s.authors.WithTx(tx)
		if _, err := authors.GetByID(ctx, id); err != nil {
			return err
		}
		if err := authors.SyncBooks(ctx, id, bookIDs); err != nil {
			return wrap("sync author books", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("author books replaced",
		slog.Int64("author_id", id),
		slog.Int("book_count", len(bookIDs)))
	return nil
}
