package store

import "math"

// Default and maximum page sizes for collection queries.
const (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// MaxPageNumber is the largest page number whose offset, and whose next
// page number, still fit in an int.
const MaxPageNumber = math.MaxInt/MaxPageSize - 1

// SortField orders a listing by one column.
type SortField struct {
	Field string
	Desc  bool
}

// ListParams selects a page of a collection.
// PageNumber is 1-based.
type ListParams struct {
	Sort       []SortField
	PageNumber int
	PageSize   int
}

// Normalize clamps the page parameters into their valid ranges.
func (p ListParams) Normalize() ListParams {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageNumber > MaxPageNumber {
		p.PageNumber = MaxPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows preceding the page.
func (p ListParams) Offset() int {
	n := p.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}

// Page is one slice of a collection together with the collection size.
type Page[T any] struct {
	Items []T
	Total int
}

// LastPage returns the number of the last page for the given page size,
// never less than 1.
func (p *Page[T]) LastPage(pageSize int) int {
	if pageSize < 1 || p.Total == 0 {
		return 1
	}
	return (p.Total + pageSize - 1) / pageSize
}
