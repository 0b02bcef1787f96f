package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/store"
)

var authorSortColumns = map[string]string{
	"name":       "authors.name",
	"created_at": "authors.created_at",
}

const authorColumns = "authors.id, authors.name, authors.created_at, authors.updated_at"

// PostgresAuthorStore implements store.AuthorStore on PostgreSQL.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates an author store on db.
// If logger is nil, the default logger is used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx.
func (s *PostgresAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &PostgresAuthorStore{db: tx, logger: s.logger}
}

// List implements store.AuthorStore.List.
func (s *PostgresAuthorStore) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	params = params.Normalize()

	order, err := orderBy(params.Sort, authorSortColumns, "authors")
	if err != nil {
		return nil, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&total); err != nil {
		log.Error("failed to count authors", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	query := fmt.Sprintf("SELECT %s FROM authors %s LIMIT $1 OFFSET $2", authorColumns, order)
	rows, err := s.db.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	authors, err := scanAuthors(rows)
	if err != nil {
		return nil, MapError(err)
	}
	return &store.Page[domain.Author]{Items: authors, Total: total}, nil
}

// GetByID implements store.AuthorStore.GetByID.
func (s *PostgresAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	var a domain.Author
	err := s.db.QueryRowContext(ctx, "SELECT "+authorColumns+" FROM authors WHERE id = $1", id).
		Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapEntityError(err, store.ErrAuthorNotFound)
	}
	return &a, nil
}

// Create implements store.AuthorStore.Create.
func (s *PostgresAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		"INSERT INTO authors (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id",
		author.Name, author.CreatedAt, author.UpdatedAt,
	).Scan(&author.ID)
	if err != nil {
		log.Error("failed to insert author", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("author created", slog.Int64("author_id", author.ID))
	return nil
}

// Update implements store.AuthorStore.Update.
func (s *PostgresAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE authors SET name = $1, updated_at = $2 WHERE id = $3",
		author.Name, author.UpdatedAt, author.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrAuthorNotFound)
}

// Delete implements store.AuthorStore.Delete.
func (s *PostgresAuthorStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrAuthorNotFound)
}

// BookIDs implements store.AuthorStore.BookIDs.
func (s *PostgresAuthorStore) BookIDs(ctx context.Context, authorID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT book_id FROM author_book WHERE author_id = $1 ORDER BY book_id", authorID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids, err := scanIDs(rows)
	if err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

// Books implements store.AuthorStore.Books.
func (s *PostgresAuthorStore) Books(ctx context.Context, authorID int64) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		JOIN author_book ON author_book.book_id = books.id
		WHERE author_book.author_id = $1
		ORDER BY books.id`, authorID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, MapError(err)
	}
	return books, nil
}

// SyncBooks implements store.AuthorStore.SyncBooks.
func (s *PostgresAuthorStore) SyncBooks(ctx context.Context, authorID int64, bookIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, "DELETE FROM author_book WHERE author_id = $1", authorID); err != nil {
		return MapError(err)
	}

	ids := dedupe(bookIDs)
	if len(ids) == 0 {
		return nil
	}

	if err := insertLinks(ctx, s.db, authorID, ids, true); err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrBookNotFound, err)
		}
		return MapError(err)
	}

	log.Debug("synced author books",
		slog.Int64("author_id", authorID),
		slog.Int("book_count", len(ids)))
	return nil
}

func scanAuthors(rows *sql.Rows) ([]domain.Author, error) {
	authors := []domain.Author{}
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
