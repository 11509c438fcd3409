// Package apperrors defines structured application error types, allowing a
// clear distinction between error classes (configuration, solving, server)
// and carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with
// %w. All wrapping types implement Unwrap() to support errors.Is/errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes signal the outcome of the program to the OS.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The operation timed out.
	ExitErrorMismatch = 3   // Result mismatch between solver methods.
	ExitErrorConfig   = 4   // Configuration error.
	ExitErrorCanceled = 130 // Canceled (e.g. SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags
// or values. The application cannot proceed with such input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SolveError encapsulates a solver failure while preserving the original
// cause, so callers can inspect the underlying typed error with errors.As.
type SolveError struct {
	// Cause is the underlying error that triggered this failure.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e SolveError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing error chain
// inspection (e.g. using errors.Is or errors.As).
func (e SolveError) Unwrap() error { return e.Cause }

// ServerError represents errors occurring in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError, combining the
// description with the underlying cause when present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
//
// Parameters:
//   - message: A description of the error context.
//   - cause: The underlying error that occurred (can be nil).
//
// Returns:
//   - error: A new ServerError instance.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap (nil passes through unchanged).
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks whether the error is a context cancellation or
// deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
