package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
)

var authorSorts = []string{"name", "created_at"}

// AuthorHandler handles the authors collection, its members and their
// books relationship.
type AuthorHandler struct {
	authors AuthorService
	links   links
	logger  *slog.Logger
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(authors AuthorService, appURL string, logger *slog.Logger) *AuthorHandler {
	if authors == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("author service cannot be nil for AuthorHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthorHandler")
	}
	return &AuthorHandler{
		authors: authors,
		links:   newLinks(appURL),
		logger:  logger.With(slog.String("component", "author_handler")),
	}
}

// List handles GET /authors.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, authorSorts...)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	page, err := h.authors.List(r.Context(), params)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	data := make([]shared.Resource, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, h.links.authorResource(&page.Items[i], nil))
	}

	last := page.LastPage(params.PageSize)
	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  data,
		Links: paginationLinks(h.links.collection(typeAuthors), params, last),
		Meta:  paginationMeta(params, page.Total, last),
	})
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	author, err := h.authors.Create(r.Context(), req.Data.Attributes.Name)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", h.links.resource(typeAuthors, author.ID))
	shared.RespondWithDocument(w, r, http.StatusCreated, shared.Document{
		Data: h.links.authorResource(author, []int64{}),
	})
}

// Get handles GET /authors/{author}.
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	author, err := h.authors.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	bookIDs, err := h.authors.BookIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data: h.links.authorResource(author, bookIDs),
	})
}

// Update handles PATCH /authors/{author}.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	var req updateAuthorRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	if err := checkResourceID(req.Data.ID, id); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	author, err := h.authors.Update(r.Context(), id, domain.AuthorChanges{Name: req.Data.Attributes.Name})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	bookIDs, err := h.authors.BookIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data: h.links.authorResource(author, bookIDs),
	})
}

// Delete handles DELETE /authors/{author}.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if err := h.authors.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// BooksRelationship handles GET /authors/{author}/relationships/books.
func (h *AuthorHandler) BooksRelationship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	bookIDs, err := h.authors.BookIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  identifiers(typeBooks, bookIDs),
		Links: h.links.relationship(typeAuthors, id, typeBooks),
	})
}

// UpdateBooksRelationship handles PATCH /authors/{author}/relationships/books.
func (h *AuthorHandler) UpdateBooksRelationship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	var req relationshipRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	bookIDs, err := parseIdentifiers(req.Data, typeBooks)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if err := h.authors.ReplaceBooks(r.Context(), id, bookIDs); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// Books handles GET /authors/{author}/books.
func (h *AuthorHandler) Books(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "author", msgAuthorNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	books, err := h.authors.Books(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	data := make([]shared.Resource, 0, len(books))
	for i := range books {
		data = append(data, h.links.bookResource(&books[i], nil))
	}
	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  data,
		Links: &shared.Links{Self: h.links.relationship(typeAuthors, id, typeBooks).Related},
	})
}
