package api

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// Collection query parameters.
const (
	querySort       = "sort"
	queryPageNumber = "page[number]"
	queryPageSize   = "page[size]"
)

// parseListParams reads sort and page parameters. Sort fields must be in
// allowed; a leading "-" sorts descending.
func parseListParams(r *http.Request, allowed ...string) (store.ListParams, error) {
	q := r.URL.Query()
	var params store.ListParams

	if raw := q.Get(querySort); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			sf := store.SortField{Field: strings.TrimSpace(field)}
			if strings.HasPrefix(sf.Field, "-") {
				sf.Desc = true
				sf.Field = sf.Field[1:]
			}
			if !contains(allowed, sf.Field) {
				return store.ListParams{}, shared.NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Requested sort(s) `%s` is not allowed. Allowed sort(s) are `%s`.",
						sf.Field, strings.Join(allowed, ", ")))
			}
			params.Sort = append(params.Sort, sf)
		}
	}

	var err error
	if params.PageNumber, err = positiveQueryInt(q, queryPageNumber, store.MaxPageNumber); err != nil {
		return store.ListParams{}, err
	}
	if params.PageSize, err = positiveQueryInt(q, queryPageSize, math.MaxInt); err != nil {
		return store.ListParams{}, err
	}

	return params.Normalize(), nil
}

// positiveQueryInt reads an optional integer parameter in [1, limit].
func positiveQueryInt(q url.Values, key string, limit int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, shared.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("The %s query parameter must be a positive integer.", key))
	}
	if n > limit {
		return 0, shared.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("The %s query parameter may not be greater than %d.", key, limit))
	}
	return n, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// encodeSort renders sort fields back into query form.
func encodeSort(fields []store.SortField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Desc {
			parts = append(parts, "-"+f.Field)
		} else {
			parts = append(parts, f.Field)
		}
	}
	return strings.Join(parts, ",")
}

// paginationLinks builds first/prev/next/last links for a collection at
// base. The sort order is carried into every link.
func paginationLinks(base string, params store.ListParams, last int) *shared.Links {
	link := func(page int) string {
		q := url.Values{}
		if len(params.Sort) > 0 {
			q.Set(querySort, encodeSort(params.Sort))
		}
		q.Set(queryPageNumber, strconv.Itoa(page))
		q.Set(queryPageSize, strconv.Itoa(params.PageSize))
		return base + "?" + q.Encode()
	}

	links := &shared.Links{First: link(1), Last: link(last)}
	if params.PageNumber > 1 {
		links.Prev = link(min(params.PageNumber-1, last))
	}
	if params.PageNumber < last {
		links.Next = link(params.PageNumber + 1)
	}
	return links
}

// paginationMeta describes the page that was returned.
func paginationMeta(params store.ListParams, total, last int) map[string]any {
	return map[string]any{
		"current_page": params.PageNumber,
		"per_page":     params.PageSize,
		"last_page":    last,
		"total":        total,
	}
}
