// Package persistence provides standardized error types for storage
// operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow definition was not found.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrVariableNotFound indicates a catalog variable was not found.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrStatusNotFound indicates a status category was not found.
	ErrStatusNotFound = errors.New("status not found")

	// ErrCaseNotFound indicates a case was not found.
	ErrCaseNotFound = errors.New("case not found")

	// ErrStepNotFound indicates a step was not found in its workflow.
	ErrStepNotFound = errors.New("step not found")

	// ErrFieldNotFound indicates a field was not found on its step.
	ErrFieldNotFound = errors.New("field not found")
)

// StoreError wraps a storage error with the operation and entity it
// happened on.
type StoreError struct {
	Op       string // Operation being performed (e.g. "GetByID", "Save")
	Entity   string // Collection name
	EntityID string // Document id if applicable
	Err      error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Entity, e.EntityID, e.Err)
	}

	return fmt.Sprintf("%s operation failed for %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new store error with context.
func NewStoreError(op, entity, entityID string, err error) *StoreError {
	return &StoreError{Op: op, Entity: entity, EntityID: entityID, Err: err}
}

// IsWorkflowNotFound checks if an error indicates a missing workflow.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsVariableNotFound checks if an error indicates a missing variable.
func IsVariableNotFound(err error) bool {
	return errors.Is(err, ErrVariableNotFound)
}

// IsStatusNotFound checks if an error indicates a missing status.
func IsStatusNotFound(err error) bool {
	return errors.Is(err, ErrStatusNotFound)
}

// IsCaseNotFound checks if an error indicates a missing case.
func IsCaseNotFound(err error) bool {
	return errors.Is(err, ErrCaseNotFound)
}

// IsNotFound checks if an error indicates any missing entity.
func IsNotFound(err error) bool {
	return IsWorkflowNotFound(err) || IsVariableNotFound(err) ||
		IsStatusNotFound(err) || IsCaseNotFound(err) ||
		errors.Is(err, ErrStepNotFound) || errors.Is(err, ErrFieldNotFound)
}
