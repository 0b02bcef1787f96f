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

var bookSortColumns = map[string]string{
	"title":            "books.title",
	"publication_year": "books.publication_year",
	"created_at":       "books.created_at",
}

const bookColumns = "books.id, books.title, books.description, books.publication_year, books.created_at, books.updated_at"

// PostgresBookStore implements store.BookStore on PostgreSQL.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a book store on db, which may be a *sql.DB
// or a *sql.Tx. If logger is nil, the default logger is used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

var _ store.BookStore = (*PostgresBookStore)(nil)

// WithTx implements store.BookStore.WithTx.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{db: tx, logger: s.logger}
}

// List implements store.BookStore.List.
func (s *PostgresBookStore) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	params = params.Normalize()

	order, err := orderBy(params.Sort, bookSortColumns, "books")
	if err != nil {
		return nil, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Error("failed to count books", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	query := fmt.Sprintf("SELECT %s FROM books %s LIMIT $1 OFFSET $2", bookColumns, order)
	rows, err := s.db.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed books",
		slog.Int("count", len(books)),
		slog.Int("total", total),
		slog.Int("page", params.PageNumber))
	return &store.Page[domain.Book]{Items: books, Total: total}, nil
}

// GetByID implements store.BookStore.GetByID.
func (s *PostgresBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE id = $1"

	var b domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.PublicationYear, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, mapEntityError(err, store.ErrBookNotFound)
	}
	return &b, nil
}

// Create implements store.BookStore.Create.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (title, description, publication_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		book.Title, book.Description, book.PublicationYear, book.CreatedAt, book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		log.Error("failed to insert book", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("book created", slog.Int64("book_id", book.ID))
	return nil
}

// Update implements store.BookStore.Update.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, description = $2, publication_year = $3, updated_at = $4
		WHERE id = $5`,
		book.Title, book.Description, book.PublicationYear, book.UpdatedAt, book.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// Delete implements store.BookStore.Delete.
func (s *PostgresBookStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// AuthorIDs implements store.BookStore.AuthorIDs.
func (s *PostgresBookStore) AuthorIDs(ctx context.Context, bookID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT author_id FROM author_book WHERE book_id = $1 ORDER BY author_id", bookID)
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

// Authors implements store.BookStore.Authors.
func (s *PostgresBookStore) Authors(ctx context.Context, bookID int64) ([]domain.Author, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+authorColumns+`
		FROM authors
		JOIN author_book ON author_book.author_id = authors.id
		WHERE author_book.book_id = $1
		ORDER BY authors.id`, bookID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	authors, err := scanAuthors(rows)
	if err != nil {
		return nil, MapError(err)
	}
	return authors, nil
}

// SyncAuthors implements store.BookStore.SyncAuthors.
// A foreign key violation is reported as store.ErrAuthorNotFound; callers
// are expected to have loaded the book first.
func (s *PostgresBookStore) SyncAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, "DELETE FROM author_book WHERE book_id = $1", bookID); err != nil {
		return MapError(err)
	}

	ids := dedupe(authorIDs)
	if len(ids) == 0 {
		log.Debug("cleared book authors", slog.Int64("book_id", bookID))
		return nil
	}

	if err := insertLinks(ctx, s.db, bookID, ids, false); err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrAuthorNotFound, err)
		}
		return MapError(err)
	}

	log.Debug("synced book authors",
		slog.Int64("book_id", bookID),
		slog.Int("author_count", len(ids)))
	return nil
}

func scanBooks(rows *sql.Rows) ([]domain.Book, error) {
	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.PublicationYear, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
