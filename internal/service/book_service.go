package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// BookService provides book operations, including management of the
// book's authors.
type BookService struct {
	db     *sql.DB
	books  store.BookStore
	logger *slog.Logger
}

// NewBookService creates a BookService. db is used to open transactions.
func NewBookService(db *sql.DB, books store.BookStore, logger *slog.Logger) *BookService {
	if db == nil || books == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("book service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookService{
		db:     db,
		books:  books,
		logger: logger.With(slog.String("component", "book_service")),
	}
}

// List returns a page of books.
func (s *BookService) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error) {
	return s.books.List(ctx, params)
}

// Get returns one book.
func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// Create validates and stores a new book.
func (s *BookService) Create(ctx context.Context, title, description, publicationYear string) (*domain.Book, error) {
	book, err := domain.NewBook(title, description, publicationYear)
	if err != nil {
		return nil, err
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("book created", slog.Int64("book_id", book.ID))
	return book, nil
}

// Update applies changes to a book inside a transaction so the read and the
// write see the same row.
func (s *BookService) Update(ctx context.Context, id int64, changes domain.BookChanges) (*domain.Book, error) {
	var updated *domain.Book
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		books := s.books.WithTx(tx)

		book, err := books.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := book.Apply(changes); err != nil {
			return err
		}
		if err := books.Update(ctx, book); err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book and its author links.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("book deleted", slog.Int64("book_id", id))
	return nil
}

// AuthorIDs returns the IDs of the book's authors. It returns
// store.ErrBookNotFound for an unknown book rather than an empty list.
func (s *BookService) AuthorIDs(ctx context.Context, id int64) ([]int64, error) {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.books.AuthorIDs(ctx, id)
}

// Authors returns the book's authors.
func (s *BookService) Authors(ctx context.Context, id int64) ([]domain.Author, error) {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.books.Authors(ctx, id)
}

// ReplaceAuthors makes authorIDs the complete set of the book's authors.
// Either every link is written or none is.
func (s *BookService) ReplaceAuthors(ctx context.Context, id int64, authorIDs []int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		books := s.books.WithTx(tx)
		if _, err := books.GetByID(ctx, id); err != nil {
			return err
		}
		if err := books.SyncAuthors(ctx, id, authorIDs); err != nil {
			return wrap("sync book authors", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("book authors replaced",
		slog.Int64("book_id", id),
		slog.Int("author_count", len(authorIDs)))
	return nil
}
