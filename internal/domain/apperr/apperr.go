// Package apperr defines the error classes every calculator and store reports
// through. Domain packages wrap these sentinels so callers can branch with
// errors.Is without knowing which package failed.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that was rejected before any computation ran.
	ErrValidation = errors.New("validation failed")

	// ErrConsistency marks an operation that would break a persisted
	// invariant, such as a duplicate period or an edit after confirmation.
	ErrConsistency = errors.New("consistency violation")

	// ErrNotFound marks a lookup of a record that does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConsistency(err error) bool {
	return errors.Is(err, ErrConsistency)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
