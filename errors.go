package docsearch

import (
	"errors"
	"fmt"
)

// Application error codes. These are machine-readable and map cleanly onto
// transport-level responses (e.g., EINVALID becomes HTTP 400).
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to show to an operator.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docsearch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message so internals never leak
// to end users; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
