package shared

// MediaType is the JSON:API media type. It is matched by exact string
// comparison; media type parameters are not accepted.
const MediaType = "application/vnd.api+json"

// Document is a top-level JSON:API document carrying primary data.
type Document struct {
	Data  any            `json:"data"`
	Links *Links         `json:"links,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Links holds resource and pagination links. Empty members are omitted.
type Links struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
	First   string `json:"first,omitempty"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
	Last    string `json:"last,omitempty"`
}

// Resource is a JSON:API resource object.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    any                     `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         *Links                  `json:"links,omitempty"`
}

// Identifier is a resource identifier object.
type Identifier struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// Relationship is a relationship object. A nil Data omits linkage; an
// empty slice renders as [].
type Relationship struct {
	Links *Links       `json:"links,omitempty"`
	Data  []Identifier `json:"data,omitzero"`
}

// ErrorDocument is the body of every error response.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// ErrorObject is one entry of an ErrorDocument.
type ErrorObject struct {
	Title   string       `json:"title"`
	Details string       `json:"details"`
	Source  *ErrorSource `json:"source,omitempty"`
}

// ErrorSource locates the offending member of the request document.
type ErrorSource struct {
	Pointer string `json:"pointer"`
}
