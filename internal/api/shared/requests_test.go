package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetAttributes struct {
	Title *string `json:"title" validate:"required,max=10"`
}

type widgetData struct {
	Type       string            `json:"type" validate:"required,eq=widgets"`
	Attributes *widgetAttributes `json:"attributes" validate:"required"`
}

type widgetRequest struct {
	Data *widgetData `json:"data" validate:"required"`
}

type identifierRequest struct {
	Data []Identifier `json:"data" validate:"dive"`
}

func requestWithBody(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/widgets", strings.NewReader(body))
}

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPath   string
		wantDetail string
	}{
		{
			name:       "malformed json",
			body:       `{"data": {`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Malformed JSON in request body",
		},
		{
			name:       "syntax error",
			body:       `{"data": nope}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Malformed JSON in request body",
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Request body is empty",
		},
		{
			name:       "attribute of wrong type",
			body:       `{"data":{"type":"widgets","attributes":{"title":42}}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantPath:   "/data/attributes/title",
			wantDetail: "The data.attributes.title must be a string.",
		},
		{
			name:       "attributes not an object",
			body:       `{"data":{"type":"widgets","attributes":"x"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantPath:   "/data/attributes",
			wantDetail: "The data.attributes must be an array.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req widgetRequest
			err := DecodeDocument(requestWithBody(tt.body), &req)
			require.Error(t, err)

			status, doc := Normalize(err)
			assert.Equal(t, tt.wantStatus, status)
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, tt.wantDetail, doc.Errors[0].Details)
			if tt.wantPath == "" {
				assert.Nil(t, doc.Errors[0].Source)
			} else {
				require.NotNil(t, doc.Errors[0].Source)
				assert.Equal(t, tt.wantPath, doc.Errors[0].Source.Pointer)
			}
		})
	}
}

func TestDecodeDocument_TooLarge(t *testing.T) {
	body := `{"data":{"type":"` + strings.Repeat("x", maxBodyBytes) + `"}}`

	var req widgetRequest
	err := DecodeDocument(requestWithBody(body), &req)

	status, _ := Normalize(err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestDecodeDocument_Success(t *testing.T) {
	var req widgetRequest
	err := DecodeDocument(requestWithBody(`{"data":{"type":"widgets","attributes":{"title":"Dune"}}}`), &req)

	require.NoError(t, err)
	require.NotNil(t, req.Data)
	assert.Equal(t, "widgets", req.Data.Type)
	require.NotNil(t, req.Data.Attributes.Title)
	assert.Equal(t, "Dune", *req.Data.Attributes.Title)
}

func TestValidateRequest(t *testing.T) {
	title := "Dune"
	long := "A very long title indeed"

	tests := []struct {
		name   string
		req    any
		fields []FieldError
	}{
		{
			name: "valid",
			req:  &widgetRequest{Data: &widgetData{Type: "widgets", Attributes: &widgetAttributes{Title: &title}}},
		},
		{
			name:   "missing data",
			req:    &widgetRequest{},
			fields: []FieldError{{Path: "data", Message: "The data field is required."}},
		},
		{
			name: "missing type",
			req:  &widgetRequest{Data: &widgetData{Attributes: &widgetAttributes{Title: &title}}},
			fields: []FieldError{
				{Path: "data.type", Message: "The data.type field is required."},
			},
		},
		{
			name: "wrong type",
			req:  &widgetRequest{Data: &widgetData{Type: "gadgets", Attributes: &widgetAttributes{Title: &title}}},
			fields: []FieldError{
				{Path: "data.type", Message: "The selected data.type is invalid."},
			},
		},
		{
			name: "missing attributes",
			req:  &widgetRequest{Data: &widgetData{Type: "widgets"}},
			fields: []FieldError{
				{Path: "data.attributes", Message: "The data.attributes field is required."},
			},
		},
		{
			name: "title too long",
			req:  &widgetRequest{Data: &widgetData{Type: "widgets", Attributes: &widgetAttributes{Title: &long}}},
			fields: []FieldError{
				{Path: "data.attributes.title", Message: "The data.attributes.title may not be greater than 10 characters."},
			},
		},
		{
			name: "identifier in collection",
			req:  &identifierRequest{Data: []Identifier{{ID: "1", Type: "authors"}, {Type: "authors"}}},
			fields: []FieldError{
				{Path: "data.1.id", Message: "The data.1.id field is required."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "data.type", fieldPath("createBookRequest.data.type"))
	assert.Equal(t, "data.0.id", fieldPath("relationshipRequest.data[0].id"))
	assert.Equal(t, "data", fieldPath("data"))
}
