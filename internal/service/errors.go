package service

import "fmt"

// ServiceError wraps an unexpected failure with the operation that hit it.
// Expected conditions (store sentinels and domain validation errors) are
// returned without wrapping.
type ServiceError struct {
	Operation string
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func wrap(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Operation: operation, Err: err}
}
