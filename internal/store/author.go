package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookstore-api/internal/domain"
)

// AuthorStore defines the interface for author data persistence.
// It mirrors BookStore from the other side of the author_book relation.
type AuthorStore interface {
	List(ctx context.Context, params ListParams) (*Page[domain.Author], error)

	// GetByID returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	Create(ctx context.Context, author *domain.Author) error

	// Update returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id int64) error

	BookIDs(ctx context.Context, authorID int64) ([]int64, error)

	Books(ctx context.Context, authorID int64) ([]domain.Book, error)

	// SyncBooks replaces the author's books with bookIDs.
	// Returns ErrBookNotFound if any ID does not reference a book.
	SyncBooks(ctx context.Context, authorID int64, bookIDs []int64) error

	WithTx(tx *sql.Tx) AuthorStore
}
