// Package web provides HTTP request and response types for the
// procedure API.
package web

import "github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new
// workflow definition.
type CreateWorkflowRequest struct {
	Name        string `json:"name"        validate:"required,min=3"`
	Description string `json:"description"`
}

// UpdateWorkflowRequest represents the request body for renaming a
// workflow. Description is optional to support partial updates.
type UpdateWorkflowRequest struct {
	Name        string  `json:"name"                  validate:"required,min=3"`
	Description *string `json:"description,omitempty"`
}

// CreateStepRequest represents the request body for appending a step.
type CreateStepRequest struct {
	Name                     string                   `json:"name"                        validate:"required,min=1"`
	Description              string                   `json:"description"`
	EstimatedDuration        models.EstimatedDuration `json:"estimated_duration"`
	IsRequired               bool                     `json:"is_required"`
	HasCost                  bool                     `json:"has_cost"`
	NotifyBeforeDeadlineDays int                      `json:"notify_before_deadline_days" validate:"min=0"`
	AllowedActorIDs          []string                 `json:"allowed_actor_ids"`
}

// UpdateStepRequest represents the request body for patching step
// metadata. All fields are optional.
type UpdateStepRequest struct {
	Name                     *string                   `json:"name,omitempty" validate:"omitempty,min=1"`
	Description              *string                   `json:"description,omitempty"`
	EstimatedDuration        *models.EstimatedDuration `json:"estimated_duration,omitempty"`
	IsRequired               *bool                     `json:"is_required,omitempty"`
	HasCost                  *bool                     `json:"has_cost,omitempty"`
	NotifyBeforeDeadlineDays *int                      `json:"notify_before_deadline_days,omitempty" validate:"omitempty,min=0"`
	AllowedActorIDs          []string                  `json:"allowed_actor_ids,omitempty"`
}

// ReorderStepsRequest carries the full permutation of step ids in
// their new order.
type ReorderStepsRequest struct {
	StepIDs []string `json:"step_ids" validate:"required,min=1"`
}

// BindVariableRequest attaches a catalog variable to a step.
type BindVariableRequest struct {
	VariableID string `json:"variable_id" validate:"required"`
}

// CreateFieldRequest represents the request body for an inline-authored
// field. The variable type is bind-only and rejected here.
type CreateFieldRequest struct {
	Name           string             `json:"name"        validate:"required,min=1"`
	Type           models.FieldType   `json:"type"        validate:"required"`
	Required       bool               `json:"required"`
	Description    string             `json:"description"`
	Options        []string           `json:"options"`
	CurrencySymbol string             `json:"currency_symbol"`
	Cardinality    models.Cardinality `json:"cardinality" validate:"omitempty,oneof=single list"`
	Role           models.FieldRole   `json:"role"`
	UserSource     models.UserSource  `json:"user_source" validate:"omitempty,oneof=users customers"`
}

// UpdateFieldRequest represents the request body for patching a
// non-system field.
type UpdateFieldRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	Required       *bool               `json:"required,omitempty"`
	Description    *string             `json:"description,omitempty"`
	Options        []string            `json:"options,omitempty"`
	CurrencySymbol *string             `json:"currency_symbol,omitempty"`
	Cardinality    *models.Cardinality `json:"cardinality,omitempty" validate:"omitempty,oneof=single list"`
	Role           *models.FieldRole   `json:"role,omitempty"`
}

// CreateVariableRequest represents the request body for registering a
// catalog variable.
type CreateVariableRequest struct {
	Name         string                `json:"name"        validate:"required,min=1"`
	Description  string                `json:"description"`
	Source       models.VariableSource `json:"source"      validate:"omitempty,oneof=request system custom"`
	Type         models.FieldType      `json:"type"        validate:"required"`
	Options      []string              `json:"options"`
	DefaultValue string                `json:"default_value"`
	IsRequired   bool                  `json:"is_required"`
	UserSource   models.UserSource     `json:"user_source" validate:"omitempty,oneof=users customers"`
}

// UpdateVariableRequest represents the request body for editing a
// custom catalog variable.
type UpdateVariableRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,min=1"`
	Description  *string            `json:"description,omitempty"`
	Type         *models.FieldType  `json:"type,omitempty"`
	Options      []string           `json:"options,omitempty"`
	DefaultValue *string            `json:"default_value,omitempty"`
	IsRequired   *bool              `json:"is_required,omitempty"`
	UserSource   *models.UserSource `json:"user_source,omitempty" validate:"omitempty,oneof=users customers"`
}

// RegisterStatusRequest registers a status category of the surrounding
// application with the procedure core.
type RegisterStatusRequest struct {
	ID    string `json:"id"    validate:"required,min=1"`
	Name  string `json:"name"  validate:"required,min=1"`
	Color string `json:"color"`
}

// AssignWorkflowRequest binds a workflow to a status category.
type AssignWorkflowRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required"`
}

// CreateCaseRequest instantiates a case against a workflow.
type CreateCaseRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required"`
}

// SetStepStatusRequest advances one step of a running case.
type SetStepStatusRequest struct {
	Status models.StepProgress `json:"status" validate:"required"`
}

// SetApprovalRequest records the approval flag on a case step.
type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}

// SubmitFieldsRequest carries field values submitted against a case
// step. Values are validated against the step's field schema.
type SubmitFieldsRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}
