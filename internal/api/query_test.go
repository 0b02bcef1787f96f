package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams_PageBounds(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantErr    bool
		wantNumber int
		wantSize   int
	}{
		{name: "defaults", query: "", wantNumber: 1, wantSize: store.DefaultPageSize},
		{name: "largest page", query: "page[number]=" + strconv.Itoa(store.MaxPageNumber), wantNumber: store.MaxPageNumber, wantSize: store.DefaultPageSize},
		{name: "page above limit", query: "page[number]=" + strconv.Itoa(store.MaxPageNumber+1), wantErr: true},
		{name: "max int page", query: "page[number]=9223372036854775807", wantErr: true},
		{name: "page beyond int", query: "page[number]=99999999999999999999", wantErr: true},
		{name: "huge size is clamped", query: "page[size]=9223372036854775807", wantNumber: 1, wantSize: store.MaxPageSize},
		{name: "zero page", query: "page[number]=0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/books?"+tt.query, nil)

			params, err := parseListParams(r, "title")

			if tt.wantErr {
				var httpErr *shared.HTTPError
				require.True(t, errors.As(err, &httpErr), "got %v", err)
				assert.Equal(t, http.StatusBadRequest, httpErr.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, params.PageNumber)
			assert.Equal(t, tt.wantSize, params.PageSize)
			assert.GreaterOrEqual(t, params.Offset(), 0)
		})
	}
}

func TestPaginationLinks_LargestPage(t *testing.T) {
	params := store.ListParams{PageNumber: store.MaxPageNumber, PageSize: store.MaxPageSize}

	links := paginationLinks("http://bookstore.test/api/v1/books", params, store.MaxPageNumber+1)

	require.NotNil(t, links)
	assert.Contains(t, links.Next, "page%5Bnumber%5D="+strconv.Itoa(store.MaxPageNumber+1))
}
