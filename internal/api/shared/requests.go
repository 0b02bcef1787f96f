package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request documents.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// DecodeDocument decodes the request body into v. Malformed JSON yields a
// 400 HTTPError; a member of the wrong JSON type yields a ValidationError
// naming the member.
func DecodeDocument(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	var (
		typeErr  *json.UnmarshalTypeError
		maxErr   *http.MaxBytesError
		syntaxEr *json.SyntaxError
	)
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return NewValidationError(typeErr.Field, typeMessage(typeErr.Field, typeErr.Type))
	case errors.As(err, &maxErr):
		return WrapHTTPError(http.StatusRequestEntityTooLarge, "Request body too large", err)
	case errors.As(err, &syntaxEr), errors.Is(err, io.ErrUnexpectedEOF):
		return WrapHTTPError(http.StatusBadRequest, "Malformed JSON in request body", err)
	case errors.Is(err, io.EOF):
		return WrapHTTPError(http.StatusBadRequest, "Request body is empty", err)
	default:
		return WrapHTTPError(http.StatusBadRequest, "Invalid request body", err)
	}
}

func typeMessage(path string, target reflect.Type) string {
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	switch target.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s must be a string.", path)
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		// JSON objects and arrays are both reported as arrays.
		return fmt.Sprintf("The %s must be an array.", path)
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Float64:
		return fmt.Sprintf("The %s must be a number.", path)
	default:
		return fmt.Sprintf("The %s is invalid.", path)
	}
}

// ValidateRequest validates v with its `validate` struct tags and converts
// failures into a ValidationError whose paths follow the JSON member names.
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out.Fields = append(out.Fields, FieldError{Path: path, Message: fieldMessage(path, fe)})
	}
	return out
}

// fieldPath turns a validator namespace such as
// "UpdateRelationshipRequest.data[0].id" into "data.0.id".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}
	return indexPattern.ReplaceAllString(rest, ".$1")
}

func fieldMessage(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without", "required_if", "notblank":
		return fmt.Sprintf("The %s field is required.", path)
	case "eq", "oneof":
		return fmt.Sprintf("The selected %s is invalid.", path)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", path, fe.Param())
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", path, fe.Param())
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", path)
	default:
		return fmt.Sprintf("The %s format is invalid.", path)
	}
}
