// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return errors wrapping one of these
// kinds and handlers map the kind to an HTTP status code.
package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds shared by every domain module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates a backing service could not serve the request.
	// Callers may retry the whole operation later.
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal indicates an unrecoverable fault inside the service.
	ErrInternal = errors.New("internal error")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Mark attaches a domain sentinel to a lower level cause so both stay reachable
// through Is. Returns nil when cause is nil.
func Mark(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
