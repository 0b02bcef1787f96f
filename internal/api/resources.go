package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
)

// Resource types.
const (
	typeBooks   = "books"
	typeAuthors = "authors"
)

// BookAttributes is the attributes member of a books resource.
type BookAttributes struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublicationYear string    `json:"publication_year"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AuthorAttributes is the attributes member of an authors resource.
type AuthorAttributes struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// links builds absolute URLs below {app_url}/api/v1.
type links struct {
	base string
}

func newLinks(appURL string) links {
	return links{base: strings.TrimRight(appURL, "/") + "/api/v1"}
}

func (l links) collection(typ string) string {
	return l.base + "/" + typ
}

func (l links) resource(typ string, id int64) string {
	return l.collection(typ) + "/" + formatID(id)
}

func (l links) relationship(typ string, id int64, rel string) *shared.Links {
	self := l.resource(typ, id)
	return &shared.Links{
		Self:    self + "/relationships/" + rel,
		Related: self + "/" + rel,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func identifiers(typ string, ids []int64) []shared.Identifier {
	out := make([]shared.Identifier, 0, len(ids))
	for _, id := range ids {
		out = append(out, shared.Identifier{ID: formatID(id), Type: typ})
	}
	return out
}

// bookResource renders a book. When authorIDs is nil the relationship
// carries links only.
func (l links) bookResource(b *domain.Book, authorIDs []int64) shared.Resource {
	rel := shared.Relationship{Links: l.relationship(typeBooks, b.ID, typeAuthors)}
	if authorIDs != nil {
		rel.Data = identifiers(typeAuthors, authorIDs)
	}
	return shared.Resource{
		ID:   formatID(b.ID),
		Type: typeBooks,
		Attributes: BookAttributes{
			Title:           b.Title,
			Description:     b.Description,
			PublicationYear: b.PublicationYear,
			CreatedAt:       b.CreatedAt.UTC(),
			UpdatedAt:       b.UpdatedAt.UTC(),
		},
		Relationships: map[string]shared.Relationship{typeAuthors: rel},
		Links:         &shared.Links{Self: l.resource(typeBooks, b.ID)},
	}
}

// authorResource renders an author. When bookIDs is nil the relationship
// carries links only.
func (l links) authorResource(a *domain.Author, bookIDs []int64) shared.Resource {
	rel := shared.Relationship{Links: l.relationship(typeAuthors, a.ID, typeBooks)}
	if bookIDs != nil {
		rel.Data = identifiers(typeBooks, bookIDs)
	}
	return shared.Resource{
		ID:   formatID(a.ID),
		Type: typeAuthors,
		Attributes: AuthorAttributes{
			Name:      a.Name,
			CreatedAt: a.CreatedAt.UTC(),
			UpdatedAt: a.UpdatedAt.UTC(),
		},
		Relationships: map[string]shared.Relationship{typeBooks: rel},
		Links:         &shared.Links{Self: l.resource(typeAuthors, a.ID)},
	}
}
