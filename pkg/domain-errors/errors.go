// Package derrors defines the domain error taxonomy shared by services and
// the HTTP layer. Stores return sentinel errors; services translate them into
// coded errors; handlers map codes onto HTTP statuses.
package derrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeValidation marks malformed or missing input (empty item text,
	// bad email, missing required field).
	CodeValidation Code = "validation"
	// CodeConflict marks uniqueness violations (duplicate list name,
	// already-registered email).
	CodeConflict Code = "conflict"
	// CodeUnauthorized marks missing/invalid credentials or a caller that
	// is not a member of the targeted list.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks an absent list, item, or user.
	CodeNotFound Code = "not_found"
	// CodeInvalidOperation marks a state-invariant violation: completing a
	// completed item, unsetting an absent due date, emptying a list's
	// membership.
	CodeInvalidOperation Code = "invalid_operation"
	// CodeInternal marks unexpected failures. Descriptions are logged but
	// never returned to clients.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. It may wrap an underlying cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so unexpected failures always surface as 500s.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message for err. Internal and uncoded
// errors yield an empty message.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a domain code to the HTTP status the API contract
// promises: invalid input, conflicts and invariant violations are all client
// errors (400), authorization failures 401, absent resources 404.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeConflict, CodeInvalidOperation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
