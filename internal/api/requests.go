package api

import "github.com/phrazzld/bookstore-api/internal/api/shared"

// Request documents. Attribute members are type-checked while decoding
// and constrained by their validate tags.

type createBookRequest struct {
	Data *createBookData `json:"data" validate:"required"`
}

type createBookData struct {
	Type       string                `json:"type"       validate:"required,eq=books"`
	Attributes *createBookAttributes `json:"attributes" validate:"required"`
}

type createBookAttributes struct {
	Title           string `json:"title"            validate:"required,max=255"`
	Description     string `json:"description"      validate:"required"`
	PublicationYear string `json:"publication_year" validate:"required,len=4,numeric"`
}

type updateBookRequest struct {
	Data *updateBookData `json:"data" validate:"required"`
}

type updateBookData struct {
	ID         string                `json:"id"         validate:"required"`
	Type       string                `json:"type"       validate:"required,eq=books"`
	Attributes *updateBookAttributes `json:"attributes" validate:"required"`
}

type updateBookAttributes struct {
	Title           *string `json:"title"            validate:"omitempty,notblank,max=255"`
	Description     *string `json:"description"      validate:"omitempty,notblank"`
	PublicationYear *string `json:"publication_year" validate:"omitempty,len=4,numeric"`
}

type createAuthorRequest struct {
	Data *createAuthorData `json:"data" validate:"required"`
}

type createAuthorData struct {
	Type       string                  `json:"type"       validate:"required,eq=authors"`
	Attributes *createAuthorAttributes `json:"attributes" validate:"required"`
}

type createAuthorAttributes struct {
	Name string `json:"name" validate:"required,max=255"`
}

type updateAuthorRequest struct {
	Data *updateAuthorData `json:"data" validate:"required"`
}

type updateAuthorData struct {
	ID         string                  `json:"id"         validate:"required"`
	Type       string                  `json:"type"       validate:"required,eq=authors"`
	Attributes *updateAuthorAttributes `json:"attributes" validate:"required"`
}

type updateAuthorAttributes struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=255"`
}

// relationshipRequest replaces a to-many relationship. An empty array
// clears it.
type relationshipRequest struct {
	Data []shared.Identifier `json:"data" validate:"required,dive"`
}
