// Package apperrors defines structured error types, allowing for a clear
// distinction between error classes (invalid arguments, domain failures,
// configuration, evaluation, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
// Library-level failures descend from one of two sentinels, ErrInvalidArgument
// and ErrDomain, so callers can branch on the class without knowing the type.
package apperrors
