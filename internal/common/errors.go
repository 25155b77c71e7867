// Package common holds the error taxonomy shared by repositories, services
// and handlers. Callers match these values with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// Auth errors.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Workflow errors.
	ErrValidation        = errors.New("validation error")
	ErrDeadlinePassed    = errors.New("competition deadline has passed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid is a shorthand for building a *ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
