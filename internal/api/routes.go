package api

import "github.com/go-chi/chi/v5"

// RegisterResourceRoutes mounts the books and authors resources, and their
// relationships, on r.
func RegisterResourceRoutes(r chi.Router, books *BookHandler, authors *AuthorHandler) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/", books.List)
		r.Post("/", books.Create)
		r.Route("/{book}", func(r chi.Router) {
			r.Get("/", books.Get)
			r.Patch("/", books.Update)
			r.Delete("/", books.Delete)
			r.Get("/relationships/authors", books.AuthorsRelationship)
			r.Patch("/relationships/authors", books.UpdateAuthorsRelationship)
			r.Get("/authors", books.Authors)
		})
	})

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", authors.List)
		r.Post("/", authors.Create)
		r.Route("/{author}", func(r chi.Router) {
			r.Get("/", authors.Get)
			r.Patch("/", authors.Update)
			r.Delete("/", authors.Delete)
			r.Get("/relationships/books", authors.BooksRelationship)
			r.Patch("/relationships/books", authors.UpdateBooksRelationship)
			r.Get("/books", authors.Books)
		})
	})

	r.Get("/user", GetUser)
}

// RegisterOAuthRoutes mounts the authorization code flow routes on r.
func RegisterOAuthRoutes(r chi.Router, h *OAuthHandler) {
	r.Get("/redirect", h.Redirect)
	r.Get("/callback", h.Callback)
}
