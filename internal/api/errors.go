package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/domain"
	"github.com/phrazzld/bookstore-api/internal/store"
)

// Client-facing messages for store conditions.
const (
	msgBookNotFound   = "Book not found"
	msgAuthorNotFound = "Author not found"
	msgNotFound       = "Resource not found"
	msgDuplicate      = "Resource already exists"
	msgInvalidEntity  = "Invalid entity data"
)

// toFault translates service and store errors into faults so that
// nothing from the database layer reaches clients. Faults pass through
// unchanged; anything unrecognized becomes an InternalError.
func toFault(err error) error {
	var (
		fault shared.Fault
		verr  *domain.ValidationError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &fault):
		return err
	case errors.As(err, &verr):
		path := "data.attributes." + verr.Field
		return shared.NewValidationError(path, fmt.Sprintf("The %s %s.", path, verr.Message))
	case errors.Is(err, store.ErrBookNotFound):
		return shared.WrapHTTPError(http.StatusNotFound, msgBookNotFound, err)
	case errors.Is(err, store.ErrAuthorNotFound):
		return shared.WrapHTTPError(http.StatusNotFound, msgAuthorNotFound, err)
	case store.IsNotFoundError(err):
		return shared.WrapHTTPError(http.StatusNotFound, msgNotFound, err)
	case errors.Is(err, store.ErrDuplicate):
		return shared.WrapHTTPError(http.StatusConflict, msgDuplicate, err)
	case errors.Is(err, store.ErrInvalidEntity):
		return shared.WrapHTTPError(http.StatusBadRequest, msgInvalidEntity, err)
	default:
		return shared.NewInternalError(err)
	}
}

// respondWithServiceError writes err after translating it with toFault.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, toFault(err))
}
