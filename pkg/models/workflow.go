// Package models defines the core domain models for procedure
// definitions and case progression.
package models

import "time"

// StandardWorkflowID is the sentinel id of the built-in standard
// workflow. Every status category falls back to it when no custom
// workflow is assigned. The standard workflow is shared, so it never
// carries a status back-reference.
const StandardWorkflowID = "standard"

// WorkflowDefinition is a named, ordered collection of step
// definitions, optionally bound to one status category.
//
// StatusID and StatusName are denormalized cache fields: they are
// written by the status-binding service only and can lag behind the
// status collection if the second half of an assign fails. Callers
// repair them by retrying the assign; nothing else writes them.
type WorkflowDefinition struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" validate:"required,min=3"`
	Description string            `json:"description,omitempty"`
	StatusID    string            `json:"status_id,omitempty"`
	StatusName  string            `json:"status_name,omitempty"`
	Steps       []*StepDefinition `json:"steps"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IsStandard reports whether this is the shared standard workflow.
func (w *WorkflowDefinition) IsStandard() bool {
	return w.ID == StandardWorkflowID
}

// StepByID returns the step with the given id, or nil.
func (w *WorkflowDefinition) StepByID(stepID string) *StepDefinition {
	for _, step := range w.Steps {
		if step.ID == stepID {
			return step
		}
	}

	return nil
}

// StandardWorkflow returns the built-in standard workflow definition.
func StandardWorkflow() *WorkflowDefinition {
	return &WorkflowDefinition{
		ID:          StandardWorkflowID,
		Name:        "Standard workflow",
		Description: "Default workflow applied to statuses without an explicit assignment",
		Steps:       []*StepDefinition{},
	}
}

// StatusCategory is a status of the surrounding application. The core
// references statuses, it does not own them; WorkflowID defaults to
// the standard sentinel.
type StatusCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Color      string `json:"color,omitempty"`
	WorkflowID string `json:"workflow_id"`
}
