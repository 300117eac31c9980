package bookhound

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are propagated alongside error messages so callers can branch on
// the kind of failure without string matching.
const (
	EINVALID     = "invalid"     // validation failed or caller error
	ENOTFOUND    = "not_found"   // entity does not exist
	ESTRUCTURE   = "structure"   // page shape did not match the adapter's expectations
	EUNAVAILABLE = "unavailable" // transport failure (timeout, non-2xx, connection)
	EINTERNAL    = "internal"    // internal error
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface. Not meant for end users.
func (e *Error) Error() string {
	return fmt.Sprintf("bookhound error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Returns a generic message for non-application errors and an empty
// string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper to construct an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
