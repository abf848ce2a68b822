package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of domain error categories. Callers dispatch on the
// discriminant rather than on concrete error types.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// FieldError describes a single field-level violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the domain error carried from services to the API boundary
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%d field errors)", e.Kind, e.Message, len(e.Details))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Status maps the error kind to its fixed HTTP status
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a VALIDATION_ERROR carrying field-level details
func Validation(details ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Details: details,
	}
}

// BadRequest builds a VALIDATION_ERROR with a custom message and no details
func BadRequest(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound builds a NOT_FOUND error for the named resource
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict builds a CONFLICT error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected fault. The message is intentionally generic;
// the underlying cause is for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error"}
}

// From extracts the *Error from err, or wraps it as an internal fault
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the discriminant for err, KindInternal for unknown errors
func KindOf(err error) Kind {
	return From(err).Kind
}
