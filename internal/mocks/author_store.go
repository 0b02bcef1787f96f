package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MockAuthorStore implements store.AuthorStore.
type MockAuthorStore struct {
	ListFn      func(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error)
	GetByIDFn   func(ctx context.Context, id int64) (*domain.Author, error)
	CreateFn    func(ctx context.Context, author *domain.Author) error
	UpdateFn    func(ctx context.Context, author *domain.Author) error
	DeleteFn    func(ctx context.Context, id int64) error
	BookIDsFn   func(ctx context.Context, authorID int64) ([]int64, error)
	BooksFn     func(ctx context.Context, authorID int64) ([]domain.Book, error)
	SyncBooksFn func(ctx context.Context, authorID int64, bookIDs []int64) error

	Author *domain.Author
	Err    error

	WithTxCalls int
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

func (m *MockAuthorStore) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	return &store.Page[domain.Author]{}, m.Err
}

func (m *MockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Author == nil {
		return nil, store.ErrAuthorNotFound
	}
	a := *m.Author
	return &a, nil
}

func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, author)
	}
	return m.Err
}

func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, author)
	}
	return m.Err
}

func (m *MockAuthorStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockAuthorStore) BookIDs(ctx context.Context, authorID int64) ([]int64, error) {
	if m.BookIDsFn != nil {
		return m.BookIDsFn(ctx, authorID)
	}
	return []int64{}, m.Err
}

func (m *MockAuthorStore) Books(ctx context.Context, authorID int64) ([]domain.Book, error) {
	if m.BooksFn != nil {
		return m.BooksFn(ctx, authorID)
	}
	return []domain.Book{}, m.Err
}

func (m *MockAuthorStore) SyncBooks(ctx context.Context, authorID int64, bookIDs []int64) error {
	if m.SyncBooksFn != nil {
		return m.SyncBooksFn(ctx, authorID, bookIDs)
	}
	return m.Err
}

// WithTx returns the mock itself so expectations carry into transactions.
func (m *MockAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	m.WithTxCalls++
	return m
}
