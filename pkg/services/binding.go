package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
)

// Binding manages the association between status categories and
// workflow definitions. A custom workflow can back at most one status;
// the standard workflow is shared by every status without an explicit
// assignment and never carries a back-reference.
//
// Assign is a two-step write against a store without multi-document
// transactions: first the status row, then the workflow back-reference
// and its denormalized status-name cache. The second write can fail
// after the first landed. The operation does not roll back; it is
// idempotent, and retrying Assign converges both documents. This loose
// consistency is deliberate and surfaced through ErrBindingIncomplete.
type Binding struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewBinding creates a new status-binding service.
func NewBinding(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Binding {
	return &Binding{persistence: persistence, publisher: publisher, logger: logger}
}

// Assign binds a workflow to a status category.
func (b *Binding) Assign(ctx context.Context, statusID, workflowID string) error {
	var workflow *models.WorkflowDefinition

	if workflowID != models.StandardWorkflowID {
		var err error

		workflow, err = b.persistence.WorkflowRepository().GetByID(ctx, workflowID)
		if err != nil {
			return err
		}

		if workflow == nil {
			return ErrWorkflowNotFound
		}

		if workflow.StatusID != "" && workflow.StatusID != statusID {
			return NewServiceError("Binding.Assign", "WORKFLOW_BOUND",
				fmt.Sprintf("workflow %q is bound to status %s", workflow.Name, workflow.StatusID),
				ErrWorkflowAlreadyBound)
		}
	}

	status, err := b.persistence.StatusRepository().GetByID(ctx, statusID)
	if err != nil {
		return err
	}

	if status == nil {
		return ErrStatusNotFound
	}

	previousWorkflowID := status.WorkflowID

	// First write: the status row.
	status.WorkflowID = workflowID
	if err := b.persistence.StatusRepository().Save(ctx, status); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}

	// Second write: workflow back-references. A failure from here on
	// leaves the status row already pointing at the new workflow.
	if err := b.writeBackReferences(ctx, status, workflow, previousWorkflowID); err != nil {
		return NewServiceError("Binding.Assign", "BINDING_INCOMPLETE",
			err.Error(), ErrBindingIncomplete)
	}

	b.publish(ctx, statusID, events.StatusAssigned{
		BaseEvent:  baseEvent(events.StatusAssignedEvent),
		StatusID:   statusID,
		WorkflowID: workflowID,
	})

	return nil
}

func (b *Binding) writeBackReferences(
	ctx context.Context,
	status *models.StatusCategory,
	workflow *models.WorkflowDefinition,
	previousWorkflowID string,
) error {
	// Release the back-reference of the custom workflow this status
	// pointed at before, if any.
	if previousWorkflowID != "" &&
		previousWorkflowID != models.StandardWorkflowID &&
		previousWorkflowID != status.WorkflowID {
		previous, err := b.persistence.WorkflowRepository().GetByID(ctx, previousWorkflowID)
		if err != nil {
			return fmt.Errorf("failed to load previously bound workflow: %w", err)
		}

		if previous != nil && previous.StatusID == status.ID {
			previous.StatusID = ""
			previous.StatusName = ""

			if err := b.persistence.WorkflowRepository().Save(ctx, previous); err != nil {
				return fmt.Errorf("failed to release previous workflow: %w", err)
			}
		}
	}

	// The standard workflow is shared; it never records an owner.
	if workflow == nil {
		return nil
	}

	workflow.StatusID = status.ID
	workflow.StatusName = status.Name

	if err := b.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save workflow back-reference: %w", err)
	}

	return nil
}

// RegisterStatus registers a status category of the surrounding
// application. Statuses without a workflow assignment run under the
// standard workflow. Re-registering an existing status updates its
// name and color and keeps the assignment.
func (b *Binding) RegisterStatus(ctx context.Context, status *models.StatusCategory) (*models.StatusCategory, error) {
	existing, err := b.persistence.StatusRepository().GetByID(ctx, status.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Name = status.Name
		existing.Color = status.Color

		if err := b.persistence.StatusRepository().Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to save status: %w", err)
		}

		return existing, nil
	}

	if status.WorkflowID == "" {
		status.WorkflowID = models.StandardWorkflowID
	}

	if err := b.persistence.StatusRepository().Save(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to save status: %w", err)
	}

	return status, nil
}

// ListStatuses returns every registered status category.
func (b *Binding) ListStatuses(ctx context.Context) ([]*models.StatusCategory, error) {
	return b.persistence.StatusRepository().GetAll(ctx)
}

// Unassign points a status back at the standard workflow and releases
// the custom workflow it was bound to. Used before deleting a bound
// workflow.
func (b *Binding) Unassign(ctx context.Context, statusID string) error {
	return b.Assign(ctx, statusID, models.StandardWorkflowID)
}

// ListAssignable returns the workflows a status may be bound to: the
// standard workflow plus every custom workflow that is unbound or
// already bound to this very status. Custom workflows bound elsewhere
// never appear.
func (b *Binding) ListAssignable(ctx context.Context, excludeStatusID string) ([]*models.WorkflowDefinition, error) {
	stored, err := b.persistence.WorkflowRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	assignable := make([]*models.WorkflowDefinition, 0, len(stored)+1)
	assignable = append(assignable, models.StandardWorkflow())

	for _, workflow := range stored {
		if workflow.IsStandard() {
			continue
		}

		if workflow.StatusID == "" || workflow.StatusID == excludeStatusID {
			assignable = append(assignable, workflow)
		}
	}

	return assignable, nil
}

// ResolveForStatus returns the workflow a status runs under, falling
// back to the standard workflow for unknown or dangling assignments.
func (b *Binding) ResolveForStatus(ctx context.Context, statusID string) (*models.WorkflowDefinition, error) {
	status, err := b.persistence.StatusRepository().GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}

	if status == nil {
		return nil, ErrStatusNotFound
	}

	if status.WorkflowID == "" || status.WorkflowID == models.StandardWorkflowID {
		return models.StandardWorkflow(), nil
	}

	workflow, err := b.persistence.WorkflowRepository().GetByID(ctx, status.WorkflowID)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		// Dangling reference left by a delete without unassign.
		return models.StandardWorkflow(), nil
	}

	return workflow, nil
}

func (b *Binding) publish(ctx context.Context, key string, event eventbus.Event) {
	if b.publisher == nil {
		return
	}

	if err := b.publisher.Publish(ctx, key, event); err != nil {
		b.logger.ErrorContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
