package mocks

import (
	"context"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MockAuthorService is a function-field mock of the handlers' author
// service.
type MockAuthorService struct {
	ListFn         func(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error)
	GetFn          func(ctx context.Context, id int64) (*domain.Author, error)
	CreateFn       func(ctx context.Context, name string) (*domain.Author, error)
	UpdateFn       func(ctx context.Context, id int64, changes domain.AuthorChanges) (*domain.Author, error)
	DeleteFn       func(ctx context.Context, id int64) error
	BookIDsFn      func(ctx context.Context, id int64) ([]int64, error)
	BooksFn        func(ctx context.Context, id int64) ([]domain.Book, error)
	ReplaceBooksFn func(ctx context.Context, id int64, bookIDs []int64) error

	Author     *domain.Author
	BookIDList []int64
	BookList   []domain.Book
	Err        error
}

func (m *MockAuthorService) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.Page[domain.Author]{}, nil
}

func (m *MockAuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
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

func (m *MockAuthorService) Create(ctx context.Context, name string) (*domain.Author, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return domain.NewAuthor(name)
}

func (m *MockAuthorService) Update(ctx context.Context, id int64, changes domain.AuthorChanges) (*domain.Author, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, changes)
	}
	author, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := author.Apply(changes); err != nil {
		return nil, err
	}
	return author, nil
}

func (m *MockAuthorService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockAuthorService) BookIDs(ctx context.Context, id int64) ([]int64, error) {
	if m.BookIDsFn != nil {
		return m.BookIDsFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.BookIDList == nil {
		return []int64{}, nil
	}
	return m.BookIDList, nil
}

func (m *MockAuthorService) Books(ctx context.Context, id int64) ([]domain.Book, error) {
	if m.BooksFn != nil {
		return m.BooksFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BookList, nil
}

func (m *MockAuthorService) ReplaceBooks(ctx context.Context, id int64, bookIDs []int64) error {
	if m.ReplaceBooksFn != nil {
		return m.ReplaceBooksFn(ctx, id, bookIDs)
	}
	return m.Err
}
