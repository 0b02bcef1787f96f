package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
)

// pathID extracts a positive numeric ID from the URL path parameter. A
// malformed ID names no resource, so it yields a 404 fault.
func pathID(r *http.Request, param, notFound string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.WrapHTTPError(http.StatusNotFound, notFound,
			fmt.Errorf("%w: %s=%q", domain.ErrInvalidID, param, raw))
	}
	return id, nil
}

// decodeAndValidate decodes the request document into v and validates it.
func decodeAndValidate(r *http.Request, v any) error {
	if err := shared.DecodeDocument(r, v); err != nil {
		return err
	}
	return shared.ValidateRequest(v)
}

// checkResourceID verifies that the document's data.id names the resource
// in the URL.
func checkResourceID(docID string, pathID int64) error {
	if docID != strconv.FormatInt(pathID, 10) {
		return shared.NewHTTPError(http.StatusConflict,
			"The resource identifier in the document does not match the URL.")
	}
	return nil
}

// parseIdentifiers converts relationship linkage into IDs, checking that
// every member has the expected type.
func parseIdentifiers(ids []shared.Identifier, wantType string) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	var fields []shared.FieldError
	for i, ident := range ids {
		if ident.Type != wantType {
			path := fmt.Sprintf("data.%d.type", i)
			fields = append(fields, shared.FieldError{Path: path, Message: fmt.Sprintf("The selected %s is invalid.", path)})
			continue
		}
		id, err := strconv.ParseInt(ident.ID, 10, 64)
		if err != nil || id <= 0 {
			path := fmt.Sprintf("data.%d.id", i)
			fields = append(fields, shared.FieldError{Path: path, Message: fmt.Sprintf("The %s must be a number.", path)})
			continue
		}
		out = append(out, id)
	}
	if len(fields) > 0 {
		return nil, &shared.ValidationError{Fields: fields}
	}
	return out, nil
}
