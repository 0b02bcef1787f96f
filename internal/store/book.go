package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookstore-api/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// List returns one page of books ordered by params.Sort.
	List(ctx context.Context, params ListParams) (*Page[domain.Book], error)

	// GetByID retrieves a book by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// Create inserts a book and sets its ID.
	// Returns domain validation errors if the book is invalid.
	Create(ctx context.Context, book *domain.Book) error

	// Update persists title, description, publication year and updated_at.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book. Rows in author_book are removed by the
	// ON DELETE CASCADE constraint.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// AuthorIDs returns the IDs of the book's authors in ascending order.
	AuthorIDs(ctx context.Context, bookID int64) ([]int64, error)

	// Authors returns the book's authors ordered by ID.
	Authors(ctx context.Context, bookID int64) ([]domain.Author, error)

	// SyncAuthors replaces the book's authors with authorIDs.
	// It MUST run inside a transaction (see RunInTransaction) to be atomic.
	// Returns ErrAuthorNotFound if any ID does not reference an author.
	SyncAuthors(ctx context.Context, bookID int64, authorIDs []int64) error

	// WithTx returns a BookStore bound to tx.
	WithTx(tx *sql.Tx) BookStore
}
