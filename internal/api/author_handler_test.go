package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/mocks"
	"github.com/phrazzld/bookstore-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorHandler_Get(t *testing.T) {
	authors := &mocks.MockAuthorService{Author: sampleAuthor(2), BookIDList: []int64{1}}
	rec := do(t, newRouter(nil, authors), http.MethodGet, "/authors/2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": {
			"id": "2",
			"type": "authors",
			"attributes": {
				"name": "Ada Lovelace",
				"created_at": "2020-06-03T18:10:30Z",
				"updated_at": "2020-06-03T18:10:30Z"
			},
			"relationships": {
				"books": {
					"links": {
						"self": "http://bookstore.test/api/v1/authors/2/relationships/books",
						"related": "http://bookstore.test/api/v1/authors/2/books"
					},
					"data": [{"id": "1", "type": "books"}]
				}
			},
			"links": {"self": "http://bookstore.test/api/v1/authors/2"}
		}
	}`, rec.Body.String())
}

func TestAuthorHandler_Get_NotFound(t *testing.T) {
	rec := do(t, newRouter(nil, &mocks.MockAuthorService{}), http.MethodGet, "/authors/x", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Author not found", errorDetails(t, rec)[0].Details)
}

func TestAuthorHandler_List_Sort(t *testing.T) {
	var got store.ListParams
	authors := &mocks.MockAuthorService{
		ListFn: func(ctx context.Context, params store.ListParams) (*store.Page[domain.Author], error) {
			got = params
			return &store.Page[domain.Author]{Items: []domain.Author{*sampleAuthor(1)}, Total: 1}, nil
		},
	}
	router := newRouter(nil, authors)

	rec := do(t, router, http.MethodGet, "/authors?sort=name,-created_at", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []store.SortField{{Field: "name"}, {Field: "created_at", Desc: true}}, got.Sort)
	assert.Equal(t, store.DefaultPageSize, got.PageSize)
	assert.Equal(t, 1, got.PageNumber)

	rec = do(t, router, http.MethodGet, "/authors?sort=title", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorHandler_Create(t *testing.T) {
	authors := &mocks.MockAuthorService{
		CreateFn: func(ctx context.Context, name string) (*domain.Author, error) {
			a := sampleAuthor(7)
			a.Name = name
			return a, nil
		},
	}

	rec := do(t, newRouter(nil, authors), http.MethodPost, "/authors",
		`{"data":{"type":"authors","attributes":{"name":"Grace Hopper"}}}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "http://bookstore.test/api/v1/authors/7", rec.Header().Get("Location"))
	attrs := decodeBody(t, rec)["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, "Grace Hopper", attrs["name"])
}

func TestAuthorHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		pointer string
		details string
	}{
		{
			name:    "books type",
			body:    `{"data":{"type":"books","attributes":{"name":"X"}}}`,
			pointer: "/data/type",
			details: "The selected data.type is invalid.",
		},
		{
			name:    "name not a string",
			body:    `{"data":{"type":"authors","attributes":{"name":["X"]}}}`,
			pointer: "/data/attributes/name",
			details: "The data.attributes.name must be a string.",
		},
		{
			name:    "missing name",
			body:    `{"data":{"type":"authors","attributes":{}}}`,
			pointer: "/data/attributes/name",
			details: "The data.attributes.name field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(nil, &mocks.MockAuthorService{}), http.MethodPost, "/authors", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			errs := errorDetails(t, rec)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.details, errs[0].Details)
			require.NotNil(t, errs[0].Source)
			assert.Equal(t, tt.pointer, errs[0].Source.Pointer)
		})
	}
}

func TestAuthorHandler_Update(t *testing.T) {
	authors := &mocks.MockAuthorService{Author: sampleAuthor(2)}
	router := newRouter(nil, authors)

	rec := do(t, router, http.MethodPatch, "/authors/2",
		`{"data":{"id":"2","type":"authors","attributes":{"name":"Augusta Ada King"}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	attrs := decodeBody(t, rec)["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, "Augusta Ada King", attrs["name"])

	rec = do(t, router, http.MethodPatch, "/authors/2",
		`{"data":{"id":"3","type":"authors","attributes":{"name":"X"}}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthorHandler_Delete(t *testing.T) {
	rec := do(t, newRouter(nil, &mocks.MockAuthorService{}), http.MethodDelete, "/authors/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, newRouter(nil, &mocks.MockAuthorService{Err: store.ErrAuthorNotFound}), http.MethodDelete, "/authors/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthorHandler_BooksRelationship(t *testing.T) {
	authors := &mocks.MockAuthorService{BookIDList: []int64{}}
	rec := do(t, newRouter(nil, authors), http.MethodGet, "/authors/2/relationships/books", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": [],
		"links": {
			"self": "http://bookstore.test/api/v1/authors/2/relationships/books",
			"related": "http://bookstore.test/api/v1/authors/2/books"
		}
	}`, rec.Body.String())
}

func TestAuthorHandler_UpdateBooksRelationship(t *testing.T) {
	var gotIDs []int64
	authors := &mocks.MockAuthorService{
		ReplaceBooksFn: func(ctx context.Context, id int64, bookIDs []int64) error {
			gotIDs = bookIDs
			if len(bookIDs) > 0 && bookIDs[0] == 404 {
				return store.ErrBookNotFound
			}
			return nil
		},
	}
	router := newRouter(nil, authors)

	rec := do(t, router, http.MethodPatch, "/authors/2/relationships/books", `{"data":[{"id":"1","type":"books"}]}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{1}, gotIDs)

	rec = do(t, router, http.MethodPatch, "/authors/2/relationships/books", `{"data":[{"id":"404","type":"books"}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", errorDetails(t, rec)[0].Details)
}

func TestAuthorHandler_Books(t *testing.T) {
	authors := &mocks.MockAuthorService{BookList: []domain.Book{*sampleBook(1), *sampleBook(2)}}
	rec := do(t, newRouter(nil, authors), http.MethodGet, "/authors/2/books", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "books", data[1].(map[string]any)["type"])
	assert.Equal(t, "2", data[1].(map[string]any)["id"])
}
