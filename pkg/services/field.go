package services

import (
	"context"
	"fmt"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/google/uuid"
)

// Field manages the field schemas of a step. The four system fields
// are protected: they can never be updated, retyped, or deleted.
type Field struct {
	persistence persistence.Persistence
}

// NewField creates a new field service.
func NewField(persistence persistence.Persistence) *Field {
	return &Field{persistence: persistence}
}

// BindVariable attaches a catalog variable to a step, snapshotting
// name, description, and required at bind time. Binding the same
// variable twice is a no-op reported through created=false, not an
// error: the authoring surface retries freely.
func (f *Field) BindVariable(ctx context.Context, workflowID, stepID, variableID string) (*models.FieldSchema, bool, error) {
	variable, err := f.persistence.VariableRepository().GetByID(ctx, variableID)
	if err != nil {
		return nil, false, err
	}

	if variable == nil {
		return nil, false, ErrVariableNotFound
	}

	workflow, step, err := f.getStep(ctx, workflowID, stepID)
	if err != nil {
		return nil, false, err
	}

	for _, existing := range step.Fields {
		if existing.Type == models.FieldTypeVariable && existing.VariableSourceID == variableID {
			return existing, false, nil
		}
	}

	options := make([]string, len(variable.Options))
	copy(options, variable.Options)

	field := &models.FieldSchema{
		ID:               uuid.New().String(),
		Name:             variable.Name,
		Type:             models.FieldTypeVariable,
		Required:         variable.IsRequired,
		Description:      variable.Description,
		Options:          options,
		VariableSourceID: variable.ID,
		Cardinality:      models.CardinalitySingle,
		UserSource:       variable.UserSource,
	}

	step.Fields = append(step.Fields, field)

	if err := f.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, false, fmt.Errorf("failed to save workflow: %w", err)
	}

	return field, true, nil
}

// FieldInput carries an inline-authored field.
type FieldInput struct {
	Name           string
	Type           models.FieldType
	Required       bool
	Description    string
	Options        []string
	CurrencySymbol string
	Cardinality    models.Cardinality
	Role           models.FieldRole
	UserSource     models.UserSource
}

// AddCustomField appends an inline-authored field to the step.
func (f *Field) AddCustomField(ctx context.Context, workflowID, stepID string, input FieldInput) (*models.FieldSchema, error) {
	if !input.Type.Valid() || input.Type == models.FieldTypeVariable {
		return nil, NewServiceError("Field.AddCustomField", "UNKNOWN_FIELD_TYPE",
			fmt.Sprintf("field type %q cannot be authored inline", input.Type), ErrUnknownFieldType)
	}

	workflow, step, err := f.getStep(ctx, workflowID, stepID)
	if err != nil {
		return nil, err
	}

	cardinality := input.Cardinality
	if cardinality == "" {
		cardinality = models.CardinalitySingle
	}

	field := &models.FieldSchema{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Type:           input.Type,
		Required:       input.Required,
		Description:    input.Description,
		Options:        input.Options,
		CurrencySymbol: input.CurrencySymbol,
		Cardinality:    cardinality,
		Role:           input.Role,
		UserSource:     input.UserSource,
	}

	step.Fields = append(step.Fields, field)

	if err := f.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return field, nil
}

// FieldPatch carries the updatable attributes of a field.
type FieldPatch struct {
	Name           *string
	Required       *bool
	Description    *string
	Options        []string
	CurrencySymbol *string
	Cardinality    *models.Cardinality
	Role           *models.FieldRole
}

// UpdateField merges the patch into a non-system field.
func (f *Field) UpdateField(ctx context.Context, workflowID, stepID, fieldID string, patch FieldPatch) (*models.FieldSchema, error) {
	workflow, step, err := f.getStep(ctx, workflowID, stepID)
	if err != nil {
		return nil, err
	}

	field := step.FieldByID(fieldID)
	if field == nil {
		return nil, ErrFieldNotFound
	}

	if field.IsSystem {
		return nil, NewServiceError("Field.UpdateField", "SYSTEM_FIELD",
			fmt.Sprintf("field %q is system-managed", field.Name), ErrSystemFieldProtected)
	}

	if patch.Name != nil {
		field.Name = *patch.Name
	}

	if patch.Required != nil {
		field.Required = *patch.Required
	}

	if patch.Description != nil {
		field.Description = *patch.Description
	}

	if patch.Options != nil {
		field.Options = patch.Options
	}

	if patch.CurrencySymbol != nil {
		field.CurrencySymbol = *patch.CurrencySymbol
	}

	if patch.Cardinality != nil {
		field.Cardinality = *patch.Cardinality
	}

	if patch.Role != nil {
		field.Role = *patch.Role
	}

	if err := f.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return field, nil
}

// DeleteField removes a non-system field from the step.
func (f *Field) DeleteField(ctx context.Context, workflowID, stepID, fieldID string) error {
	workflow, step, err := f.getStep(ctx, workflowID, stepID)
	if err != nil {
		return err
	}

	field := step.FieldByID(fieldID)
	if field == nil {
		return ErrFieldNotFound
	}

	if field.IsSystem {
		return NewServiceError("Field.DeleteField", "SYSTEM_FIELD",
			fmt.Sprintf("field %q is system-managed", field.Name), ErrSystemFieldProtected)
	}

	remaining := make([]*models.FieldSchema, 0, len(step.Fields)-1)

	for _, candidate := range step.Fields {
		if candidate.ID != fieldID {
			remaining = append(remaining, candidate)
		}
	}

	step.Fields = remaining

	if err := f.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

func (f *Field) getStep(ctx context.Context, workflowID, stepID string) (*models.WorkflowDefinition, *models.StepDefinition, error) {
	workflow, err := f.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, nil, err
	}

	if workflow == nil {
		return nil, nil, ErrWorkflowNotFound
	}

	step := workflow.StepByID(stepID)
	if step == nil {
		return nil, nil, ErrStepNotFound
	}

	return workflow, step, nil
}
