package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bookstore-api/internal/api"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

const testAppURL = "http://bookstore.test"

var (
	_ api.BookService   = (*mocks.MockBookService)(nil)
	_ api.AuthorService = (*mocks.MockAuthorService)(nil)
	_ api.OAuthClient   = (*mocks.MockOAuthClient)(nil)
)

var fixedTime = time.Date(2020, 6, 3, 18, 10, 30, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleBook(id int64) *domain.Book {
	return &domain.Book{
		ID:              id,
		Title:           "Building an API with Laravel",
		Description:     "A book about API development",
		PublicationYear: "2019",
		CreatedAt:       fixedTime,
		UpdatedAt:       fixedTime,
	}
}

func sampleAuthor(id int64) *domain.Author {
	return &domain.Author{ID: id, Name: "Ada Lovelace", CreatedAt: fixedTime, UpdatedAt: fixedTime}
}

func newRouter(books api.BookService, authors api.AuthorService) http.Handler {
	if books == nil {
		books = &mocks.MockBookService{}
	}
	if authors == nil {
		authors = &mocks.MockAuthorService{}
	}
	r := chi.NewRouter()
	api.RegisterResourceRoutes(r,
		api.NewBookHandler(books, testAppURL, testLogger()),
		api.NewAuthorHandler(authors, testAppURL, testLogger()))
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Accept", shared.MediaType)
	if body != "" {
		req.Header.Set("Content-Type", shared.MediaType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorDetails(t *testing.T, rec *httptest.ResponseRecorder) []shared.ErrorObject {
	t.Helper()
	var doc shared.ErrorDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	return doc.Errors
}
