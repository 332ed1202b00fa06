// Package errors provides structured error types for qrnoize.
//
// This package defines error codes and types that enable:
//   - Consistent handling across the CLI and the HTTP service
//   - Machine-readable codes that map onto process exit statuses
//   - Error wrapping with context preservation
//
// # Error Codes
//
//   - INVALID_*: argument and input validation failures
//   - CONFIG_SYNTAX / UNSUPPORTED_FORMAT: recoverable conditions that are
//     normally reported as warnings and skipped
//   - IO_ERROR / INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "%s is neither a file nor a directory", path)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    os.Exit(errors.ExitCode(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fatal run errors
	ErrCodeInvalidArgs  Code = "INVALID_ARGS"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Recoverable conditions, reported as warnings
	ErrCodeConfigSyntax      Code = "CONFIG_SYNTAX"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Validation errors
	ErrCodeInvalidStackName Code = "INVALID_STACK_NAME"
	ErrCodeInvalidOptions   Code = "INVALID_OPTIONS"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeIO       Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit statuses.
const (
	ExitOK           = 0
	ExitInvalidArgs  = 1
	ExitInvalidInput = 2
	ExitFailure      = 1
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

// ExitCode maps an error onto the process exit status.
// The outermost *Error in the chain decides.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrCodeInvalidArgs:
		return ExitInvalidArgs
	case ErrCodeInvalidInput:
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}
