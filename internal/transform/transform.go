package transform

import (
	"fmt"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// HouseholdTransform defines the interface for all household transformations.
// Transforms are composable what-if edits: "a second child arrives", "the
// eldest moves to kindergarten". They never modify their input.
type HouseholdTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.SimulatorInput) (domain.SimulatorInput, error)

	// Name returns a short identifier for this transform (e.g., "add_child").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.SimulatorInput) error
}

// ApplyTransforms applies a sequence of transforms to a base household.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.SimulatorInput, transforms []HouseholdTransform) (domain.SimulatorInput, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return domain.SimulatorInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.SimulatorInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.SimulatorInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
