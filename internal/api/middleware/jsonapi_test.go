package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestEnsureJSONAPIHeaders(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		accept      string
		contentType string
		wantStatus  int
		wantCalled  bool
	}{
		{
			name:       "missing accept",
			method:     http.MethodGet,
			wantStatus: http.StatusNotAcceptable,
		},
		{
			name:       "plain json accept",
			method:     http.MethodGet,
			accept:     "application/json",
			wantStatus: http.StatusNotAcceptable,
		},
		{
			name:        "accept with parameters is not an exact match",
			method:      http.MethodGet,
			accept:      shared.MediaType + "; ext=bulk",
			wantStatus:  http.StatusNotAcceptable,
			contentType: shared.MediaType,
		},
		{
			name:        "accept checked before content type",
			method:      http.MethodPost,
			accept:      "text/html",
			contentType: "text/plain",
			wantStatus:  http.StatusNotAcceptable,
		},
		{
			name:        "post with json content type",
			method:      http.MethodPost,
			accept:      shared.MediaType,
			contentType: "application/json",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:       "patch without content type",
			method:     http.MethodPatch,
			accept:     shared.MediaType,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "get ignores content type",
			method:     http.MethodGet,
			accept:     shared.MediaType,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "delete ignores content type",
			method:      http.MethodDelete,
			accept:      shared.MediaType,
			contentType: "text/plain",
			wantStatus:  http.StatusOK,
			wantCalled:  true,
		},
		{
			name:        "post with json:api content type",
			method:      http.MethodPost,
			accept:      shared.MediaType,
			contentType: shared.MediaType,
			wantStatus:  http.StatusOK,
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`{"data":[]}`))
			})

			req := httptest.NewRequest(tt.method, "/api/v1/books", strings.NewReader(`{}`))
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			EnsureJSONAPIHeaders(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, shared.MediaType, rec.Header().Get("Content-Type"))
			if !tt.wantCalled {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestEnsureJSONAPIHeaders_OverridesExplicitWriteHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("Accept", shared.MediaType)
	rec := httptest.NewRecorder()

	EnsureJSONAPIHeaders(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, shared.MediaType, rec.Header().Get("Content-Type"))
}

func TestEnsureJSONAPIHeaders_HandlerWritesNothing(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/1", nil)
	req.Header.Set("Accept", shared.MediaType)
	rec := httptest.NewRecorder()

	EnsureJSONAPIHeaders(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shared.MediaType, rec.Header().Get("Content-Type"))
}

func TestEnsureJSONAPIHeaders_ErrorsFromDownstream(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusNotFound, "Not found"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/99", nil)
	req.Header.Set("Accept", shared.MediaType)
	rec := httptest.NewRecorder()

	EnsureJSONAPIHeaders(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, shared.MediaType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"errors":[{"title":"Http Exception","details":"Not found"}]}`, rec.Body.String())
}
