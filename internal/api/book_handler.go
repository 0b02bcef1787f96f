package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
)

// bookSorts are the sort fields accepted by the books collection.
var bookSorts = []string{"title", "publication_year", "created_at"}

// BookHandler handles the books collection, its members and their
// authors relationship.
type BookHandler struct {
	books  BookService
	links  links
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler. appURL is the externally
// visible base URL used in links and Location headers.
func NewBookHandler(books BookService, appURL string, logger *slog.Logger) *BookHandler {
	if books == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("book service cannot be nil for BookHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BookHandler")
	}
	return &BookHandler{
		books:  books,
		links:  newLinks(appURL),
		logger: logger.With(slog.String("component", "book_handler")),
	}
}

// List handles GET /books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, bookSorts...)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	page, err := h.books.List(r.Context(), params)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	data := make([]shared.Resource, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, h.links.bookResource(&page.Items[i], nil))
	}

	last := page.LastPage(params.PageSize)
	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  data,
		Links: paginationLinks(h.links.collection(typeBooks), params, last),
		Meta:  paginationMeta(params, page.Total, last),
	})
}

// Create handles POST /books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	attrs := req.Data.Attributes
	book, err := h.books.Create(r.Context(), attrs.Title, attrs.Description, attrs.PublicationYear)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("book created via API",
		slog.Int64("book_id", book.ID))

	w.Header().Set("Location", h.links.resource(typeBooks, book.ID))
	shared.RespondWithDocument(w, r, http.StatusCreated, shared.Document{
		Data: h.links.bookResource(book, []int64{}),
	})
}

// Get handles GET /books/{book}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	book, err := h.books.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	authorIDs, err := h.books.AuthorIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data: h.links.bookResource(book, authorIDs),
	})
}

// Update handles PATCH /books/{book}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	var req updateBookRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	if err := checkResourceID(req.Data.ID, id); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	attrs := req.Data.Attributes
	book, err := h.books.Update(r.Context(), id, domain.BookChanges{
		Title:           attrs.Title,
		Description:     attrs.Description,
		PublicationYear: attrs.PublicationYear,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	authorIDs, err := h.books.AuthorIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data: h.links.bookResource(book, authorIDs),
	})
}

// Delete handles DELETE /books/{book}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("book deleted via API",
		slog.Int64("book_id", id))
	shared.RespondNoContent(w)
}

// AuthorsRelationship handles GET /books/{book}/relationships/authors.
func (h *BookHandler) AuthorsRelationship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	authorIDs, err := h.books.AuthorIDs(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  identifiers(typeAuthors, authorIDs),
		Links: h.links.relationship(typeBooks, id, typeAuthors),
	})
}

// UpdateAuthorsRelationship handles PATCH /books/{book}/relationships/authors.
// The book's authors are replaced by the given set.
func (h *BookHandler) UpdateAuthorsRelationship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	var req relationshipRequest
	if err := decodeAndValidate(r, &req); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	authorIDs, err := parseIdentifiers(req.Data, typeAuthors)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if err := h.books.ReplaceAuthors(r.Context(), id, authorIDs); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("book authors replaced",
		slog.Int64("book_id", id),
		slog.Int("author_count", len(authorIDs)))
	shared.RespondNoContent(w)
}

// Authors handles GET /books/{book}/authors.
func (h *BookHandler) Authors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book", msgBookNotFound)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	authors, err := h.books.Authors(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	data := make([]shared.Resource, 0, len(authors))
	for i := range authors {
		data = append(data, h.links.authorResource(&authors[i], nil))
	}
	shared.RespondWithDocument(w, r, http.StatusOK, shared.Document{
		Data:  data,
		Links: &shared.Links{Self: h.links.relationship(typeBooks, id, typeAuthors).Related},
	})
}
