package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorDomain   = 3   // Indicates an expression left the domain of an operation.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

var (
	// ErrInvalidArgument is the root of every invalid-argument failure: bad
	// precisions, aliased outputs of multi-output operations and moved-from
	// operands.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain is the root of every domain failure reported by a kernel,
	// such as the square root of a negative value.
	ErrDomain = errors.New("domain error")
)

// PrecisionError reports a precision outside the range accepted by the
// precision policy. It unwraps to ErrInvalidArgument.
type PrecisionError struct {
	// Requested is the precision that was asked for.
	Requested uint64
	// Min is the smallest precision the policy accepts.
	Min uint
	// Max is the largest precision the policy accepts.
	Max uint
}

// Error returns a message naming the requested precision and the valid range.
func (e PrecisionError) Error() string {
	return fmt.Sprintf("invalid precision %d: the minimum allowed precision is %d, the maximum allowed precision is %d",
		e.Requested, e.Min, e.Max)
}

// Unwrap returns ErrInvalidArgument.
func (e PrecisionError) Unwrap() error { return ErrInvalidArgument }

// InvalidArgumentError reports an argument rejected by an operation before
// any mutation took place. It unwraps to ErrInvalidArgument.
type InvalidArgumentError struct {
	// Op is the name of the rejecting operation.
	Op string
	// Message explains why the argument was rejected.
	Message string
}

// Error returns a formatted message describing the rejected argument.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument to %s: %s", e.Op, e.Message)
}

// Unwrap returns ErrInvalidArgument.
func (e InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument creates an InvalidArgumentError with a formatted message.
func NewInvalidArgument(op, format string, a ...any) error {
	return InvalidArgumentError{Op: op, Message: fmt.Sprintf(format, a...)}
}

// DomainError reports an operation evaluated outside its mathematical
// domain. Kernels return it and the dispatch engine propagates it unchanged.
type DomainError struct {
	// Op is the name of the failing operation.
	Op string
	// Message describes the domain violation.
	Message string
}

// Error returns a formatted message describing the domain violation.
func (e DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Op, e.Message)
}

// Unwrap returns ErrDomain.
func (e DomainError) Unwrap() error { return ErrDomain }

// NewDomainError creates a DomainError with a formatted message.
func NewDomainError(op, format string, a ...any) error {
	return DomainError{Op: op, Message: fmt.Sprintf(format, a...)}
}

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
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

// CalculationError encapsulates an evaluation error while preserving the
// original cause and the expression that produced it.
type CalculationError struct {
	// Expr is the expression being evaluated, if known.
	Expr string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause, prefixed with
// the expression when one is recorded.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e CalculationError) Error() string {
	if e.Expr == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%q: %s", e.Expr, e.Cause.Error())
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the CalculationError.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field (or expression token) failed validation and provides a human-readable
// explanation.
type ValidationError struct {
	// Field is the name of the field or token that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
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

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsInvalidArgument reports whether err descends from ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsDomain reports whether err descends from ErrDomain.
func IsDomain(err error) bool {
	return errors.Is(err, ErrDomain)
}
