package shared

import (
	"errors"
	"net/http"
	"strings"
)

// Fault titles rendered into ErrorObject.Title.
const (
	TitleGeneric         = "Exception"
	TitleHTTP            = "Http Exception"
	TitleUnauthenticated = "Unauthenticated"
	TitleValidation      = "Validation Error"

	unauthenticatedDetails = "You are not authenticated"
	internalErrorMessage   = "An unexpected error occurred"
)

// StatusCoder is implemented by errors that carry their own HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// Fault is the closed set of classified request failures. Any error that
// is not a Fault is rendered as a generic fault.
type Fault interface {
	error
	fault()
}

// HTTPError is a failure with an explicit HTTP status, such as a missing
// resource or an unsupported method.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

// NewHTTPError creates an HTTPError. An empty message defaults to the
// status text.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// WrapHTTPError creates an HTTPError that keeps err for logging.
func WrapHTTPError(status int, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// StatusCode implements StatusCoder.
func (e *HTTPError) StatusCode() int { return e.Status }

// Unwrap returns the underlying cause, if any.
func (e *HTTPError) Unwrap() error { return e.Err }

func (*HTTPError) fault() {}

// UnauthenticatedError reports a request without valid credentials.
type UnauthenticatedError struct {
	Err error
}

func (e *UnauthenticatedError) Error() string {
	if e.Err != nil {
		return "unauthenticated: " + e.Err.Error()
	}
	return "unauthenticated"
}

// Unwrap returns the reason authentication failed.
func (e *UnauthenticatedError) Unwrap() error { return e.Err }

func (*UnauthenticatedError) fault() {}

// FieldError is one invalid member of a request document. Path is the
// dotted path of the member, e.g. "data.attributes.title".
type FieldError struct {
	Path    string
	Message string
}

// ValidationError carries one or more invalid members.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single member.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Path: path, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (*ValidationError) fault() {}

// InternalError hides an unexpected failure from clients. It renders as a
// generic fault with a fixed message; the cause is only logged.
type InternalError struct {
	Err error
}

// NewInternalError wraps err as an InternalError.
func NewInternalError(err error) *InternalError {
	return &InternalError{Err: err}
}

func (e *InternalError) Error() string { return internalErrorMessage }

// Unwrap returns the hidden cause.
func (e *InternalError) Unwrap() error { return e.Err }

// Normalize classifies err and renders it as an error document along with
// the response status. Wrapped faults are classified by the first Fault
// found in the chain; anything else is a generic fault.
func Normalize(err error) (int, ErrorDocument) {
	var (
		verr  *ValidationError
		uerr  *UnauthenticatedError
		herr  *HTTPError
		coder StatusCoder
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError, errorDocument(TitleGeneric, http.StatusText(http.StatusInternalServerError))

	case errors.As(err, &verr):
		doc := ErrorDocument{Errors: make([]ErrorObject, 0, len(verr.Fields))}
		for _, f := range verr.Fields {
			obj := ErrorObject{Title: TitleValidation, Details: f.Message}
			if p := JSONPointer(f.Path); p != "" {
				obj.Source = &ErrorSource{Pointer: p}
			}
			doc.Errors = append(doc.Errors, obj)
		}
		return http.StatusUnprocessableEntity, doc

	case errors.As(err, &uerr):
		return http.StatusUnauthorized, errorDocument(TitleUnauthenticated, unauthenticatedDetails)

	case errors.As(err, &herr):
		return validStatus(herr.Status), errorDocument(TitleHTTP, herr.Error())

	case errors.As(err, &coder):
		return validStatus(coder.StatusCode()), errorDocument(TitleGeneric, err.Error())

	default:
		return http.StatusInternalServerError, errorDocument(TitleGeneric, err.Error())
	}
}

func errorDocument(title, details string) ErrorDocument {
	return ErrorDocument{Errors: []ErrorObject{{Title: title, Details: details}}}
}

func validStatus(status int) int {
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// JSONPointer converts a dotted member path into a JSON pointer:
// "data.type" becomes "/data/type". An empty path yields "".
func JSONPointer(path string) string {
	if path == "" {
		return ""
	}
	segments := strings.Split(path, ".")
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~", "~0")
		segments[i] = strings.ReplaceAll(s, "/", "~1")
	}
	return "/" + strings.Join(segments, "/")
}
