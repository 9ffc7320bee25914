package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/google/uuid"
)

// Workflow manages workflow definitions. The standard workflow is a
// fixed sentinel: it always resolves, and it can never be renamed or
// deleted.
type Workflow struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewWorkflow creates a new workflow service. The publisher may be nil
// when no change notifications are wanted.
func NewWorkflow(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Workflow {
	return &Workflow{persistence: persistence, publisher: publisher, logger: logger}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every workflow definition, with the standard sentinel
// always present and first.
func (w *Workflow) List(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	stored, err := w.persistence.WorkflowRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	workflows := make([]*models.WorkflowDefinition, 0, len(stored)+1)
	workflows = append(workflows, models.StandardWorkflow())

	for _, workflow := range stored {
		if !workflow.IsStandard() {
			workflows = append(workflows, workflow)
		}
	}

	return workflows, nil
}

// FetchByID retrieves a workflow by its ID. The standard sentinel
// resolves even when the store has never seen it.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	workflow, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		if id == models.StandardWorkflowID {
			return models.StandardWorkflow(), nil
		}

		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

// Create adds a new workflow definition with no steps.
func (w *Workflow) Create(ctx context.Context, name, description string) (*models.WorkflowDefinition, error) {
	exists, err := w.IsNameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, NewServiceError("Workflow.Create", "DUPLICATE_NAME",
			fmt.Sprintf("a workflow named %q already exists", name), ErrDuplicateName)
	}

	now := time.Now().UTC()
	workflow := &models.WorkflowDefinition{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Steps:       []*models.StepDefinition{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowCreated{
		BaseEvent:    baseEvent(events.WorkflowCreatedEvent),
		WorkflowID:   workflow.ID,
		WorkflowName: workflow.Name,
	})

	return workflow, nil
}

// Rename changes a workflow's name and, optionally, its description.
func (w *Workflow) Rename(ctx context.Context, id, name string, description *string) (*models.WorkflowDefinition, error) {
	if id == models.StandardWorkflowID {
		return nil, NewServiceError("Workflow.Rename", "STANDARD_WORKFLOW",
			"the standard workflow cannot be renamed", ErrStandardWorkflowFixed)
	}

	workflow, err := w.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := w.IsNameExists(ctx, name, id)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, NewServiceError("Workflow.Rename", "DUPLICATE_NAME",
			fmt.Sprintf("a workflow named %q already exists", name), ErrDuplicateName)
	}

	workflow.Name = name
	if description != nil {
		workflow.Description = *description
	}

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to rename workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowUpdated{
		BaseEvent:  baseEvent(events.WorkflowUpdatedEvent),
		WorkflowID: workflow.ID,
	})

	return workflow, nil
}

// Delete removes a workflow definition. It does NOT unbind a status
// still pointing at the workflow; callers unassign through the binding
// service first or the status keeps a dangling reference until its
// next assign. That reference is recoverable, not fatal: resolution
// falls back to the standard workflow.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	if id == models.StandardWorkflowID {
		return NewServiceError("Workflow.Delete", "STANDARD_WORKFLOW",
			"the standard workflow cannot be deleted", ErrStandardWorkflowFixed)
	}

	if _, err := w.FetchByID(ctx, id); err != nil {
		return err
	}

	if err := w.persistence.WorkflowRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}

	w.publish(ctx, id, events.WorkflowDeleted{
		BaseEvent:  baseEvent(events.WorkflowDeletedEvent),
		WorkflowID: id,
	})

	return nil
}

// IsNameExists reports whether another workflow already uses the name,
// ignoring case and surrounding whitespace.
func (w *Workflow) IsNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	workflows, err := w.List(ctx)
	if err != nil {
		return false, err
	}

	for _, workflow := range workflows {
		if workflow.ID == excludeID {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(workflow.Name), strings.TrimSpace(name)) {
			return true, nil
		}
	}

	return false, nil
}

func (w *Workflow) publish(ctx context.Context, key string, event eventbus.Event) {
	if w.publisher == nil {
		return
	}

	if err := w.publisher.Publish(ctx, key, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

func baseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
