package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/progression"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// Case tracks running cases through their workflows: one history
// entry per step, forward-only status transitions, schema-checked
// field submissions, and progress reporting.
type Case struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewCase creates a new case service.
func NewCase(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Case {
	return &Case{persistence: persistence, publisher: publisher, logger: logger}
}

// Instantiate starts a case against a workflow, seeding one
// NOT_STARTED history entry per step in step order.
func (c *Case) Instantiate(ctx context.Context, workflowID string) (*models.Case, error) {
	workflow, err := c.getWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	steps := make([]*models.StepDefinition, len(workflow.Steps))
	copy(steps, workflow.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })

	history := make([]*models.CaseHistoryEntry, 0, len(steps))

	for _, step := range steps {
		history = append(history, &models.CaseHistoryEntry{
			StepID:        step.ID,
			Name:          step.Name,
			Description:   step.Description,
			Status:        models.StepNotStarted,
			EstimatedDays: step.EstimatedDuration.Days(),
			AssigneeRole:  strings.Join(step.AllowedActorIDs, ","),
			HasCost:       step.HasCost,
			Fields:        map[string]any{},
		})
	}

	newCase := &models.Case{
		ID:         uuid.New().String(),
		WorkflowID: workflow.ID,
		History:    history,
	}

	if err := c.persistence.CaseRepository().Save(ctx, newCase); err != nil {
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	c.publish(ctx, newCase.ID, events.CaseInstantiated{
		BaseEvent:  baseEvent(events.CaseInstantiatedEvent),
		CaseID:     newCase.ID,
		WorkflowID: workflow.ID,
		StepCount:  len(history),
	})

	return newCase, nil
}

// List returns every running case.
func (c *Case) List(ctx context.Context) ([]*models.Case, error) {
	return c.persistence.CaseRepository().GetAll(ctx)
}

// FetchByID returns one case.
func (c *Case) FetchByID(ctx context.Context, id string) (*models.Case, error) {
	loaded, err := c.persistence.CaseRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if loaded == nil {
		return nil, ErrCaseNotFound
	}

	return loaded, nil
}

// SetStepStatus advances one step of the case. Setting the current
// status again is a no-op; anything the forward-only machine forbids
// fails with ErrInvalidTransition.
func (c *Case) SetStepStatus(ctx context.Context, caseID, stepID string, status models.StepProgress) (*models.Case, error) {
	if !status.Valid() {
		return nil, NewServiceError("Case.SetStepStatus", "UNKNOWN_STATUS",
			fmt.Sprintf("step status %q is not recognized", status), ErrUnknownStepStatus)
	}

	loaded, err := c.FetchByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	entry := loaded.EntryForStep(stepID)
	if entry == nil {
		return nil, ErrStepNotFound
	}

	if entry.Status == status {
		return loaded, nil
	}

	if !entry.Status.CanTransition(status) {
		return nil, NewServiceError("Case.SetStepStatus", "INVALID_TRANSITION",
			fmt.Sprintf("cannot move step %q from %s to %s", entry.Name, entry.Status, status),
			ErrInvalidTransition)
	}

	entry.Status = status

	if err := c.persistence.CaseRepository().Save(ctx, loaded); err != nil {
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	c.publishStepStatus(ctx, loaded, entry)

	return loaded, nil
}

// SetApproval records the approval flag on one step of the case.
func (c *Case) SetApproval(ctx context.Context, caseID, stepID string, approved bool) (*models.Case, error) {
	loaded, err := c.FetchByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	entry := loaded.EntryForStep(stepID)
	if entry == nil {
		return nil, ErrStepNotFound
	}

	entry.IsApproved = approved

	if err := c.persistence.CaseRepository().Save(ctx, loaded); err != nil {
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	return loaded, nil
}

// SubmitFields validates submitted values against the step's field
// schema and merges them into the step's history entry. Repeatable
// lists must carry a populated first entry; later entries may be empty.
func (c *Case) SubmitFields(ctx context.Context, caseID, stepID string, values map[string]any) (*models.Case, error) {
	loaded, err := c.FetchByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	entry := loaded.EntryForStep(stepID)
	if entry == nil {
		return nil, ErrStepNotFound
	}

	workflow, err := c.getWorkflow(ctx, loaded.WorkflowID)
	if err != nil {
		return nil, err
	}

	step := workflow.StepByID(stepID)
	if step == nil {
		return nil, ErrStepNotFound
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(step.FieldsSchema()),
		gojsonschema.NewGoLoader(values),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate field values: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}

		return nil, NewServiceError("Case.SubmitFields", "INVALID_FIELD_VALUES",
			strings.Join(details, "; "), ErrInvalidFieldValues)
	}

	// The compiled schema only enforces non-emptiness of the list
	// itself; the first-entry rule lives here.
	for _, field := range step.Fields {
		if field.IsSystem || field.Cardinality != models.CardinalityList {
			continue
		}

		submitted, ok := values[field.Name]
		if !ok {
			continue
		}

		if !models.ValidateRepeatable(repeatableEntries(submitted)) {
			return nil, NewServiceError("Case.SubmitFields", "INVALID_FIELD_VALUES",
				fmt.Sprintf("repeatable field %q requires its first entry to be populated", field.Name),
				ErrInvalidFieldValues)
		}
	}

	if entry.Fields == nil {
		entry.Fields = map[string]any{}
	}

	names := make([]string, 0, len(values))

	for name, value := range values {
		entry.Fields[name] = value
		names = append(names, name)
	}

	if err := c.persistence.CaseRepository().Save(ctx, loaded); err != nil {
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	sort.Strings(names)
	c.publish(ctx, loaded.ID, events.CaseFieldsSubmitted{
		BaseEvent: baseEvent(events.CaseFieldsSubmittedEvent),
		CaseID:    loaded.ID,
		StepID:    stepID,
		Fields:    names,
	})

	return loaded, nil
}

// ProgressReport summarizes how far a case has advanced.
type ProgressReport struct {
	CurrentStepIndex *int   `json:"current_step_index"` // nil when the case is fully resolved
	CurrentStepID    string `json:"current_step_id,omitempty"`
	Percentage       int    `json:"percentage"`
	Resolved         bool   `json:"resolved"`
}

// Progress computes the case's current step and completion percentage.
func (c *Case) Progress(ctx context.Context, caseID string) (*ProgressReport, error) {
	loaded, err := c.FetchByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		Percentage: progression.ProgressPercentage(loaded.History),
	}

	index := progression.CurrentStepIndex(loaded.History)
	if index == progression.NoCurrentStep {
		report.Resolved = true

		return report, nil
	}

	report.CurrentStepIndex = &index
	report.CurrentStepID = loaded.History[index].StepID

	return report, nil
}

// InheritedValue resolves the nearest prior value for a logical field,
// scanning backward from the case's current step. found=false means
// the consumer renders a fresh empty input.
func (c *Case) InheritedValue(ctx context.Context, caseID, fieldName string) (any, bool, error) {
	loaded, err := c.FetchByID(ctx, caseID)
	if err != nil {
		return nil, false, err
	}

	index := progression.CurrentStepIndex(loaded.History)
	if index == progression.NoCurrentStep {
		index = len(loaded.History)
	}

	value, found := progression.NearestPriorValue(loaded.History, index, fieldName)

	return value, found, nil
}

// repeatableEntries normalizes a submitted list value. The schema check
// already rejected non-array values, so anything else comes back empty.
func repeatableEntries(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		entries := make([]any, 0, len(v))
		for _, s := range v {
			entries = append(entries, s)
		}

		return entries
	default:
		return nil
	}
}

func (c *Case) getWorkflow(ctx context.Context, workflowID string) (*models.WorkflowDefinition, error) {
	workflow, err := c.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		if workflowID == models.StandardWorkflowID {
			return models.StandardWorkflow(), nil
		}

		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

func (c *Case) publishStepStatus(ctx context.Context, loaded *models.Case, entry *models.CaseHistoryEntry) {
	notifyDays := 0

	if workflow, err := c.getWorkflow(ctx, loaded.WorkflowID); err == nil {
		if step := workflow.StepByID(entry.StepID); step != nil {
			notifyDays = step.NotifyBeforeDeadlineDays
		}
	}

	c.publish(ctx, loaded.ID, events.CaseStepStatus{
		BaseEvent:                baseEvent(events.CaseStepStatusEvent),
		CaseID:                   loaded.ID,
		WorkflowID:               loaded.WorkflowID,
		StepID:                   entry.StepID,
		StepName:                 entry.Name,
		Status:                   entry.Status,
		NotifyBeforeDeadlineDays: notifyDays,
	})
}

func (c *Case) publish(ctx context.Context, key string, event eventbus.Event) {
	if c.publisher == nil {
		return
	}

	if err := c.publisher.Publish(ctx, key, event); err != nil {
		c.logger.ErrorContext(ctx, "failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
