// Package services implements the procedure components: the variable
// catalog, field schemas, step and workflow definitions, status
// binding, and running cases.
package services

import (
	"errors"
	"fmt"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
)

// Error taxonomy. Every failure is scoped to one call; nothing here is
// fatal to the process.
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidFieldValues = errors.New("field values do not match the step schema")
	ErrInvalidReorder     = errors.New("reorder list is not a permutation of the workflow's steps")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrUnknownStepStatus  = errors.New("unknown step status")

	// Business conflicts (409 Conflict).
	ErrDuplicateName         = errors.New("name is already in use")
	ErrImmutableEntry        = errors.New("catalog entry is system-provided and cannot be changed")
	ErrSystemFieldProtected  = errors.New("system field cannot be modified")
	ErrStandardWorkflowFixed = errors.New("the standard workflow cannot be modified")
	ErrWorkflowAlreadyBound  = errors.New("workflow is already bound to another status")
	ErrInvalidTransition     = errors.New("step status transition is not allowed")

	// Integrity warnings: the first half of a two-step write landed,
	// the second did not. The operation is idempotent; callers retry
	// to converge.
	ErrBindingIncomplete = errors.New("status binding incomplete, retry assign")
)

// Not-found sentinels re-exported from the persistence layer.
var (
	ErrWorkflowNotFound = persistence.ErrWorkflowNotFound
	ErrVariableNotFound = persistence.ErrVariableNotFound
	ErrStatusNotFound   = persistence.ErrStatusNotFound
	ErrCaseNotFound     = persistence.ErrCaseNotFound
	ErrStepNotFound     = persistence.ErrStepNotFound
	ErrFieldNotFound    = persistence.ErrFieldNotFound
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewServiceError creates a new service error with context.
func NewServiceError(op, code, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Code: code, Message: message, Err: err}
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidFieldValues) ||
		errors.Is(err, ErrInvalidReorder) ||
		errors.Is(err, ErrUnknownFieldType) ||
		errors.Is(err, ErrUnknownStepStatus)
}

// IsConflictError checks if an error should map to HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrImmutableEntry) ||
		errors.Is(err, ErrSystemFieldProtected) ||
		errors.Is(err, ErrStandardWorkflowFixed) ||
		errors.Is(err, ErrWorkflowAlreadyBound) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsIntegrityWarning checks for the partial status-binding failure.
func IsIntegrityWarning(err error) bool {
	return errors.Is(err, ErrBindingIncomplete)
}

// IsNotFound checks if an error should map to HTTP 404.
func IsNotFound(err error) bool {
	return persistence.IsNotFound(err)
}
