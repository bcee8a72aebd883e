// Package errors provides structured error types for shapestack.
//
// Every failure in the geometry core is a deterministic usage error, so the
// package only distinguishes what went wrong, not whether it is worth
// retrying:
//   - INVALID_ARGUMENT: nil shapes, non-positive scale factors, bad
//     construction parameters
//   - OUT_OF_RANGE: an index outside [0, size)
//   - INVALID_STATE: an aggregate requested from an empty container, or a
//     member that failed inside an aggregate
//   - INVALID_FORMAT, FILE_NOT_FOUND: scene and layout documents
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "index %d out of range [0, %d)", i, n)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // Handle bad index
//	}
//
//	// Wrap a member failure under the aggregate that observed it
//	err := errors.Wrap(errors.ErrCodeInvalidState, cause, "frame rect of shape at index %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Usage errors raised by the geometry core
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeOutOfRange      Code = "OUT_OF_RANGE"
	ErrCodeInvalidState    Code = "INVALID_STATE"

	// Document errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for the first *Error and compares its code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Chain returns one line per level of a nested error, outermost first.
// Each *Error level contributes its code and message without the cause, so a
// caller can print "level 0", "level 1", ... the way nested failures occurred.
func Chain(err error) []string {
	var lines []string
	for err != nil {
		var e *Error
		if errors.As(err, &e) && e == err {
			lines = append(lines, fmt.Sprintf("%s: %s", e.Code, e.Message))
		} else if errors.Unwrap(err) == nil {
			lines = append(lines, err.Error())
		}
		err = errors.Unwrap(err)
	}
	return lines
}
