package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MockBookStore implements store.BookStore.
type MockBookStore struct {
	ListFn        func(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error)
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Book, error)
	CreateFn      func(ctx context.Context, book *domain.Book) error
	UpdateFn      func(ctx context.Context, book *domain.Book) error
	DeleteFn      func(ctx context.Context, id int64) error
	AuthorIDsFn   func(ctx context.Context, bookID int64) ([]int64, error)
	AuthorsFn     func(ctx context.Context, bookID int64) ([]domain.Author, error)
	SyncAuthorsFn func(ctx context.Context, bookID int64, authorIDs []int64) error

	// Book is returned by GetByID when GetByIDFn is nil.
	Book *domain.Book
	Err  error

	// WithTxCalls counts transaction-bound copies handed out.
	WithTxCalls int
}

var _ store.BookStore = (*MockBookStore)(nil)

func (m *MockBookStore) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	return &store.Page[domain.Book]{}, m.Err
}

func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Book == nil {
		return nil, store.ErrBookNotFound
	}
	b := *m.Book
	return &b, nil
}

func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}
	return m.Err
}

func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}
	return m.Err
}

func (m *MockBookStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockBookStore) AuthorIDs(ctx context.Context, bookID int64) ([]int64, error) {
	if m.AuthorIDsFn != nil {
		return m.AuthorIDsFn(ctx, bookID)
	}
	return []int64{}, m.Err
}

func (m *MockBookStore) Authors(ctx context.Context, bookID int64) ([]domain.Author, error) {
	if m.AuthorsFn != nil {
		return m.AuthorsFn(ctx, bookID)
	}
	return []domain.Author{}, m.Err
}

func (m *MockBookStore) SyncAuthors(ctx context.Context, bookID int64, authorIDs []int64) error {
	if m.SyncAuthorsFn != nil {
		return m.SyncAuthorsFn(ctx, bookID, authorIDs)
	}
	return m.Err
}

// WithTx returns the mock itself so expectations carry into transactions.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	m.WithTxCalls++
	return m
}
