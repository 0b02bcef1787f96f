package mocks

import (
	"context"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// MockBookService is a function-field mock of the handlers' book service.
// Nil functions fall back to Book, AuthorIDList, AuthorList and Err.
type MockBookService struct {
	ListFn           func(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error)
	GetFn            func(ctx context.Context, id int64) (*domain.Book, error)
	CreateFn         func(ctx context.Context, title, description, publicationYear string) (*domain.Book, error)
	UpdateFn         func(ctx context.Context, id int64, changes domain.BookChanges) (*domain.Book, error)
	DeleteFn         func(ctx context.Context, id int64) error
	AuthorIDsFn      func(ctx context.Context, id int64) ([]int64, error)
	AuthorsFn        func(ctx context.Context, id int64) ([]domain.Author, error)
	ReplaceAuthorsFn func(ctx context.Context, id int64, authorIDs []int64) error

	Book         *domain.Book
	AuthorIDList []int64
	AuthorList   []domain.Author
	Err          error
}

func (m *MockBookService) List(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.Page[domain.Book]{}, nil
}

func (m *MockBookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
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

func (m *MockBookService) Create(ctx context.Context, title, description, publicationYear string) (*domain.Book, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, description, publicationYear)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return domain.NewBook(title, description, publicationYear)
}

func (m *MockBookService) Update(ctx context.Context, id int64, changes domain.BookChanges) (*domain.Book, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, changes)
	}
	book, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := book.Apply(changes); err != nil {
		return nil, err
	}
	return book, nil
}

func (m *MockBookService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

func (m *MockBookService) AuthorIDs(ctx context.Context, id int64) ([]int64, error) {
	if m.AuthorIDsFn != nil {
		return m.AuthorIDsFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.AuthorIDList == nil {
		return []int64{}, nil
	}
	return m.AuthorIDList, nil
}

func (m *MockBookService) Authors(ctx context.Context, id int64) ([]domain.Author, error) {
	if m.AuthorsFn != nil {
		return m.AuthorsFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.AuthorList, nil
}

func (m *MockBookService) ReplaceAuthors(ctx context.Context, id int64, authorIDs []int64) error {
	if m.ReplaceAuthorsFn != nil {
		return m.ReplaceAuthorsFn(ctx, id, authorIDs)
	}
	return m.Err
}
