// Package errors provides structured error types for the metromap application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the parser, compiler, and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly diagnostics that point at the offending input line
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the failure taxonomy of the map generator:
//   - STRUCTURAL_*: malformed statement syntax
//   - REFERENCE_*: statements referring to lines or stations that do not exist
//   - DUPLICATE_*: uniqueness violations
//   - INVARIANT_*: whole-network invariant violations found after parsing
//   - UNSUPPORTED_*: syntactically valid constructs with no compilation yet
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructural, "(line %d) Station declaration contains coordinate which is not an integer.", lineNo)
//	if errors.Is(err, errors.ErrCodeStructural) {
//	    // Handle malformed input
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the map generator's failure taxonomy. Every failure during
// parsing, validation, or constraint compilation carries one of these codes.
const (
	// Malformed statement syntax (missing quotes, wrong token count,
	// non-integer coordinate, unrecognized statement form).
	ErrCodeStructural Code = "STRUCTURAL"

	// A statement refers to a station that does not exist at the time it
	// is resolved, or names a station with no identifier mapping.
	ErrCodeNoIdentifier   Code = "REFERENCE_NO_IDENTIFIER"
	ErrCodeUnknownStation Code = "REFERENCE_UNKNOWN_STATION"

	// Duplicate line name, or duplicate station name within one line.
	ErrCodeDuplicate Code = "DUPLICATE"

	// A whole-network invariant was violated (e.g. an orphan station).
	ErrCodeInvariant Code = "INVARIANT"

	// Syntactically valid but not-yet-compilable construct (multi-line
	// scoped cardinal constraints, same-station/equal constraints).
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// Resource and I/O errors outside the input file itself.
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeConfig   Code = "INVALID_CONFIG"
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
// It unwraps the error chain looking for an *Error with a matching code.
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
