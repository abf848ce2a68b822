package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the client reports
type Kind string

const (
	// KindAPI is a structured error response from the server
	KindAPI Kind = "api"
	// KindNetwork is a transport-level failure (connection refused, DNS)
	KindNetwork Kind = "network"
	// KindTimeout is an attempt aborted by the per-attempt timeout
	KindTimeout Kind = "timeout"
)

// FieldError is a field-level violation carried by a validation response
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single error type surfaced by the client. Callers dispatch
// on Kind rather than on concrete types.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for non-API kinds
	Code    string // machine-readable code from the error envelope
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	case KindTimeout:
		return "timeout: " + e.Message
	default:
		return "network error: " + e.Message
	}
}

// Retryable reports whether the failure is transient: timeouts, transport
// failures, 429, and 5xx. Other 4xx responses are terminal.
func (e *Error) Retryable() bool {
	if e.Kind != KindAPI {
		return true
	}
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// AsError extracts the client *Error from err, nil if it is none
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// UserMessage maps a client error to a fixed user-readable message
func UserMessage(err error) string {
	e := AsError(err)
	if e == nil {
		return "Something went wrong. Please try again."
	}

	switch e.Kind {
	case KindTimeout:
		return "The request timed out. Please try again."
	case KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	}

	switch {
	case e.Status == http.StatusBadRequest:
		return "Invalid request. Please check your input and try again."
	case e.Status == http.StatusUnauthorized:
		return "You are not authorized. Please sign in."
	case e.Status == http.StatusForbidden:
		return "You do not have permission to do that."
	case e.Status == http.StatusNotFound:
		return "The requested resource was not found."
	case e.Status == http.StatusConflict:
		return "This conflicts with existing data."
	case e.Status == http.StatusUnprocessableEntity:
		return "Some fields are invalid. Please review and try again."
	case e.Status == http.StatusTooManyRequests:
		return "Too many requests. Please wait a moment and try again."
	case e.Status >= 500:
		return "The server had a problem. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
