// Package apperrors defines the error taxonomy the boundary translates into
// HTTP responses. Services return these instead of raw store or driver
// errors so nothing internal leaks onto the wire.
package apperrors

import (
	"fmt"
	"net/http"

	"medibook/pkg/validation"
)

type Code string

const (
	CodeValidation      Code = "validation"
	CodeNotFound        Code = "not_found"
	CodeUnauthenticated Code = "unauthenticated"
	CodeUnauthorized    Code = "unauthorized"
	CodeInternal        Code = "internal"
)

// Error carries a taxonomy code, a user-safe message, and for validation
// failures the full field-error list.
type Error struct {
	Code    Code
	Message string
	Fields  []validation.FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches an internal cause that is logged but never serialized.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Validation builds a 400-class error from a failed verdict.
func Validation(verdict validation.Verdict) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed", Fields: verdict.Errors}
}

// NotFound builds the conventional "{Resource} not found" error.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// ToHTTPStatus maps a taxonomy code to its response status. Unknown codes
// collapse to 500 on purpose.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
