package api

import (
	"context"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/service"
	"github.com/phrazzld/bookstore-api/internal/store"
	"golang.org/x/oauth2"
)

// BookService is the book functionality the handlers depend on.
type BookService interface {
	List(ctx context.Context, params store.ListParams) (*store.Page[domain.Book], error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, title, description, publicationYear string) (*domain.Book, error)
	Update(ctx context.Context, id int64, changes domain.BookChanges) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
	AuthorIDs(ctx context.Context, id int64) ([]int64, error)
	Authors(ctx context.Context, id int64) ([]domain.Author, error)
	ReplaceAuthors(ctx context.Context, id int64, authorIDs []int64) error
}

// AuthorService is the author functionality the handlers depend on.
type AuthorService interface {
	List(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error)
	Get(ctx context.Context, id int64) (*domain.Author, error)
	Create(ctx context.Context, name string) (*domain.Author, error)
	Update(ctx context.Context, id int64, changes domain.AuthorChanges) (*domain.Author, error)
	Delete(ctx context.Context, id int64) error
	BookIDs(ctx context.Context, id int64) ([]int64, error)
	Books(ctx context.Context, id int64) ([]domain.Book, error)
	ReplaceBooks(ctx context.Context, id int64, bookIDs []int64) error
}

// OAuthClient drives the authorization code flow against the
// authorization server.
type OAuthClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUser(ctx context.Context, tok *oauth2.Token) (map[string]any, error)
}

var (
	_ BookService   = (*service.BookService)(nil)
	_ AuthorService = (*service.AuthorService)(nil)
)
