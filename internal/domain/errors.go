package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChildren is returned when a simulation is requested for a household without children
	ErrNoChildren = errors.New("household must contain at least one child")

	// ErrInvalidBirthDate is returned when a child's birth date is missing or unparseable
	ErrInvalidBirthDate = errors.New("invalid birth date")

	// ErrProgramNotFound is returned by catalog lookups for unknown slugs
	ErrProgramNotFound = errors.New("program not found")
)

// ValidationError describes a single invalid field in a household or catalog document
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
