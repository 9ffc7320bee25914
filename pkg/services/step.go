package services

import (
	"context"
	"fmt"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/google/uuid"
)

// Step manages the ordered steps of a workflow definition. Order is
// 0-based and kept contiguous: every structural change renumbers the
// remaining steps and writes the workflow back in one save, so a
// reorder either commits whole or not at all.
type Step struct {
	persistence persistence.Persistence
}

// NewStep creates a new step service.
func NewStep(persistence persistence.Persistence) *Step {
	return &Step{persistence: persistence}
}

// StepMeta carries the metadata of a new step.
type StepMeta struct {
	Name                     string
	Description              string
	EstimatedDuration        models.EstimatedDuration
	IsRequired               bool
	HasCost                  bool
	NotifyBeforeDeadlineDays int
	AllowedActorIDs          []string
}

// Add appends a step at the end of the workflow, pre-populated with
// the four system fields.
func (s *Step) Add(ctx context.Context, workflowID string, meta StepMeta) (*models.StepDefinition, error) {
	workflow, err := s.getWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	step := models.NewStepDefinition(meta.Name)
	step.ID = uuid.New().String()
	step.Description = meta.Description
	step.EstimatedDuration = meta.EstimatedDuration
	step.Order = len(workflow.Steps)
	step.IsRequired = meta.IsRequired
	step.HasCost = meta.HasCost
	step.NotifyBeforeDeadlineDays = meta.NotifyBeforeDeadlineDays
	step.AllowedActorIDs = meta.AllowedActorIDs

	workflow.Steps = append(workflow.Steps, step)

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return step, nil
}

// StepPatch carries the updatable metadata of a step. Fields are
// managed through the field service, never here.
type StepPatch struct {
	Name                     *string
	Description              *string
	EstimatedDuration        *models.EstimatedDuration
	IsRequired               *bool
	HasCost                  *bool
	NotifyBeforeDeadlineDays *int
	AllowedActorIDs          []string
}

// Update merges the patch into the step's metadata.
func (s *Step) Update(ctx context.Context, workflowID, stepID string, patch StepPatch) (*models.StepDefinition, error) {
	workflow, err := s.getWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	step := workflow.StepByID(stepID)
	if step == nil {
		return nil, ErrStepNotFound
	}

	if patch.Name != nil {
		step.Name = *patch.Name
	}

	if patch.Description != nil {
		step.Description = *patch.Description
	}

	if patch.EstimatedDuration != nil {
		step.EstimatedDuration = *patch.EstimatedDuration
	}

	if patch.IsRequired != nil {
		step.IsRequired = *patch.IsRequired
	}

	if patch.HasCost != nil {
		step.HasCost = *patch.HasCost
	}

	if patch.NotifyBeforeDeadlineDays != nil {
		step.NotifyBeforeDeadlineDays = *patch.NotifyBeforeDeadlineDays
	}

	if patch.AllowedActorIDs != nil {
		step.AllowedActorIDs = patch.AllowedActorIDs
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return step, nil
}

// Delete removes an optional step and renumbers the remaining steps to
// a contiguous 0..n-1 sequence. Deleting a required step is refused
// with (false, nil) and leaves the workflow untouched, matching the
// idempotent-retry contract of the authoring surface.
func (s *Step) Delete(ctx context.Context, workflowID, stepID string) (bool, error) {
	workflow, err := s.getWorkflow(ctx, workflowID)
	if err != nil {
		return false, err
	}

	step := workflow.StepByID(stepID)
	if step == nil {
		return false, ErrStepNotFound
	}

	if step.IsRequired {
		return false, nil
	}

	remaining := make([]*models.StepDefinition, 0, len(workflow.Steps)-1)

	for _, candidate := range workflow.Steps {
		if candidate.ID == stepID {
			continue
		}

		candidate.Order = len(remaining)
		remaining = append(remaining, candidate)
	}

	workflow.Steps = remaining

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return false, fmt.Errorf("failed to save workflow: %w", err)
	}

	return true, nil
}

// Reorder rewrites the step order from a full permutation of step ids.
// The permutation is validated before anything is touched and the
// workflow is written in a single save: the whole permutation commits
// or none of it does.
func (s *Step) Reorder(ctx context.Context, workflowID string, orderedIDs []string) error {
	workflow, err := s.getWorkflow(ctx, workflowID)
	if err != nil {
		return err
	}

	if len(orderedIDs) != len(workflow.Steps) {
		return NewServiceError("Step.Reorder", "INVALID_REORDER",
			fmt.Sprintf("expected %d step ids, got %d", len(workflow.Steps), len(orderedIDs)),
			ErrInvalidReorder)
	}

	byID := make(map[string]*models.StepDefinition, len(workflow.Steps))
	for _, step := range workflow.Steps {
		byID[step.ID] = step
	}

	reordered := make([]*models.StepDefinition, 0, len(orderedIDs))

	for index, id := range orderedIDs {
		step, ok := byID[id]
		if !ok {
			return NewServiceError("Step.Reorder", "INVALID_REORDER",
				fmt.Sprintf("step %s is not part of the workflow or appears twice", id),
				ErrInvalidReorder)
		}

		delete(byID, id)

		step.Order = index
		reordered = append(reordered, step)
	}

	workflow.Steps = reordered

	if err := s.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

func (s *Step) getWorkflow(ctx context.Context, workflowID string) (*models.WorkflowDefinition, error) {
	workflow, err := s.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}
