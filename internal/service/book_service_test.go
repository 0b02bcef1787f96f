package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/mocks"
	"github.com/phrazzld/bookstore-api/internal/service"
	"github.com/phrazzld/bookstore-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T, books *mocks.MockBookStore) (*service.BookService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return service.NewBookService(db, books, nil), mock
}

func sampleBook() *domain.Book {
	now := time.Date(2020, 6, 3, 0, 0, 0, 0, time.UTC)
	return &domain.Book{
		ID:              1,
		Title:           "Build an API with Laravel",
		Description:     "A book about API development",
		PublicationYear: "2019",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestBookService_Create(t *testing.T) {
	t.Run("stores a valid book", func(t *testing.T) {
		books := &mocks.MockBookStore{
			CreateFn: func(ctx context.Context, book *domain.Book) error {
				book.ID = 9
				return nil
			},
		}
		svc, _ := newBookService(t, books)

		book, err := svc.Create(context.Background(), "  Title  ", "Description", "2020")
		require.NoError(t, err)
		assert.Equal(t, int64(9), book.ID)
		assert.Equal(t, "Title", book.Title)
	})

	t.Run("rejects invalid year before storing", func(t *testing.T) {
		called := false
		books := &mocks.MockBookStore{
			CreateFn: func(ctx context.Context, book *domain.Book) error {
				called = true
				return nil
			},
		}
		svc, _ := newBookService(t, books)

		_, err := svc.Create(context.Background(), "Title", "Description", "20")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "publication_year", verr.Field)
		assert.False(t, called)
	})
}

func TestBookService_Update(t *testing.T) {
	t.Run("applies changes in a transaction", func(t *testing.T) {
		var saved *domain.Book
		books := &mocks.MockBookStore{
			Book: sampleBook(),
			UpdateFn: func(ctx context.Context, book *domain.Book) error {
				saved = book
				return nil
			},
		}
		svc, mock := newBookService(t, books)
		mock.ExpectBegin()
		mock.ExpectCommit()

		title := "Building an API with Go"
		book, err := svc.Update(context.Background(), 1, domain.BookChanges{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, book.Title)
		assert.Equal(t, "2019", book.PublicationYear)
		assert.Same(t, saved, book)
		assert.Equal(t, 1, books.WithTxCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing book rolls back", func(t *testing.T) {
		books := &mocks.MockBookStore{}
		svc, mock := newBookService(t, books)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Update(context.Background(), 5, domain.BookChanges{})
		assert.ErrorIs(t, err, store.ErrBookNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid change rolls back", func(t *testing.T) {
		books := &mocks.MockBookStore{Book: sampleBook()}
		svc, mock := newBookService(t, books)
		mock.ExpectBegin()
		mock.ExpectRollback()

		empty := ""
		_, err := svc.Update(context.Background(), 1, domain.BookChanges{Title: &empty})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookService_AuthorIDs(t *testing.T) {
	t.Run("unknown book", func(t *testing.T) {
		svc, _ := newBookService(t, &mocks.MockBookStore{})
		_, err := svc.AuthorIDs(context.Background(), 3)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})

	t.Run("known book", func(t *testing.T) {
		books := &mocks.MockBookStore{
			Book: sampleBook(),
			AuthorIDsFn: func(ctx context.Context, bookID int64) ([]int64, error) {
				return []int64{1, 2}, nil
			},
		}
		svc, _ := newBookService(t, books)
		ids, err := svc.AuthorIDs(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, ids)
	})
}

func TestBookService_ReplaceAuthors(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		var synced []int64
		books := &mocks.MockBookStore{
			Book: sampleBook(),
			SyncAuthorsFn: func(ctx context.Context, bookID int64, authorIDs []int64) error {
				synced = authorIDs
				return nil
			},
		}
		svc, mock := newBookService(t, books)
		mock.ExpectBegin()
		mock.ExpectCommit()

		require.NoError(t, svc.ReplaceAuthors(context.Background(), 1, []int64{4, 5}))
		assert.Equal(t, []int64{4, 5}, synced)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown author rolls back", func(t *testing.T) {
		books := &mocks.MockBookStore{
			Book: sampleBook(),
			SyncAuthorsFn: func(ctx context.Context, bookID int64, authorIDs []int64) error {
				return store.ErrAuthorNotFound
			},
		}
		svc, mock := newBookService(t, books)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := svc.ReplaceAuthors(context.Background(), 1, []int64{99})
		assert.ErrorIs(t, err, store.ErrAuthorNotFound)

		var serr *service.ServiceError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "sync book authors", serr.Operation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewBookService_NilDependencies(t *testing.T) {
	assert.Panics(t, func() { service.NewBookService(nil, &mocks.MockBookStore{}, nil) })
}
