// Package errors provides structured error types for splot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Layout validation failures have their own typed errors (see layout.go),
// each of which also reports a Code so that [GetCode] works on them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "rows must be positive, got %d", rows)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "failed to open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSequence Code = "INVALID_SEQUENCE"
	ErrCodeInvalidDefect   Code = "INVALID_DEFECT"
	ErrCodeInvalidRange    Code = "INVALID_RANGE"
	ErrCodeValidation      Code = "VALIDATION_FAILED"

	// Layout validation errors
	ErrCodeCapacityMismatch          Code = "CAPACITY_MISMATCH"
	ErrCodeMaskLengthExceedsSource   Code = "MASK_LENGTH_EXCEEDS_SOURCE"
	ErrCodePartitionNotFound         Code = "PARTITION_NOT_FOUND"
	ErrCodePartitionCapacityExceeded Code = "PARTITION_CAPACITY_EXCEEDED"
	ErrCodeUnsupportedDensity        Code = "UNSUPPORTED_DENSITY"
	ErrCodeNoSourceSequences         Code = "NO_SOURCE_SEQUENCES"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeColumnMissing Code = "COLUMN_NOT_FOUND"

	// Request limits
	ErrCodeTooLarge Code = "REQUEST_TOO_LARGE"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal       Code = "INTERNAL_ERROR"
	ErrCodePoolExhaustion Code = "INTERNAL_POOL_EXHAUSTION"
	ErrCodeUnsupported    Code = "UNSUPPORTED"
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

// coder is implemented by the typed layout errors.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain (including joined errors) looking for an *Error
// or a typed error with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	if codeOf(err) == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if Is(e, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), code)
	}
	return false
}

func codeOf(err error) Code {
	switch e := err.(type) {
	case *Error:
		return e.Code
	case coder:
		return e.Code()
	}
	return ""
}

// GetCode extracts the error code from an error, if available.
// An *Error in the chain takes precedence over the typed layout errors.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the messages of any joined causes on their own lines.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if joined, ok := e.Cause.(interface{ Unwrap() []error }); ok {
			msg := e.Message
			for _, c := range joined.Unwrap() {
				msg += "\n  - " + c.Error()
			}
			return msg
		}
		return e.Message
	}
	return err.Error()
}

// Problems flattens a joined error into its individual causes. A non-joined
// error yields a one-element slice; nil yields nil.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.Cause != nil {
		err = e.Cause
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// Join is errors.Join from the standard library, re-exported so callers that
// import this package under the name errors keep access to it.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// As is errors.As from the standard library, re-exported for the same reason
// as [Join].
func As(err error, target any) bool {
	return errors.As(err, target)
}
