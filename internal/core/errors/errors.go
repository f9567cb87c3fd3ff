// Package errors defines the error vocabulary shared by the core services
// and the HTTP layer. Services return these sentinels; the HTTP error
// handler owns the mapping to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the core services. Adapters match on them
// with errors.Is, so wrap rather than replace when adding context.
var (
	// Account errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooWeak    = errors.New("password does not meet security requirements")

	// Ticket and message errors.
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrTicketIDMismatch = errors.New("ticket_id mismatch")
	ErrEmptyUpdate      = errors.New("no updatable fields provided")

	// ErrInvalidID covers any identifier that is not a well-formed
	// document ID, regardless of which collection it points at.
	ErrInvalidID = errors.New("invalid ID format")

	ErrInternal = errors.New("internal server error")
)

// AppError carries an HTTP-ready rendering of an error: the status code,
// a stable machine-readable code, and a message safe to show to clients.
// Err keeps the original cause for errors.Is / errors.As and for logging.
type AppError struct {
	Err        error
	Message    string
	Code       string
	StatusCode int
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// NewBadRequestError marks err as a client mistake (malformed body,
// unparseable field) that should surface as a 400 rather than a 500.
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

// ValidationErrors accumulates per-field failures so a response can report
// everything wrong with a payload at once instead of one field at a time.
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make(map[string][]string)}
}

// Add records a failure message against a field. A field may collect
// several messages.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool { return len(v.Errors) > 0 }

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
