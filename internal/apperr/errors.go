// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable identifier for a failure class
type Code string

const (
	// Validation indicates malformed caller input
	Validation Code = "VALIDATION"
	// NotFound indicates the record is absent or owned by someone else
	NotFound Code = "NOT_FOUND"
	// Unauthorized indicates a missing or invalid owner identity
	Unauthorized Code = "UNAUTHORIZED"
	// Unavailable indicates an external collaborator could not be reached
	Unavailable Code = "UNAVAILABLE"
	// Internal indicates an unexpected failure
	Internal Code = "INTERNAL"
)

// Error carries a code, a caller-safe message and an optional cause
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// New creates an Error without a cause
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error around cause
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Validationf creates a validation error with a formatted message
func Validationf(format string, args ...interface{}) *Error {
	return New(Validation, fmt.Sprintf(format, args...))
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the code of the first *Error in err's chain, Internal otherwise
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return Internal
}

// Is reports whether err carries code
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// MessageOf returns the caller-safe message of err
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an internal server error occurred"
}
