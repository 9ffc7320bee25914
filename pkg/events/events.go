// Package events defines the domain events published when procedure
// definitions and running cases change. They realize the optional
// change-notification callback of the repository contract: consumers
// subscribe instead of polling shared state.
package events

import (
	"time"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

type EventType string

// Topic carrying every procedure event.
const Topic = "procedure.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Definition lifecycle events.
	WorkflowCreatedEvent EventType = "workflow.created"
	WorkflowUpdatedEvent EventType = "workflow.updated"
	WorkflowDeletedEvent EventType = "workflow.deleted"

	// Status binding events.
	StatusAssignedEvent EventType = "status.assigned"

	// Case lifecycle events.
	CaseInstantiatedEvent    EventType = "case.instantiated"
	CaseStepStatusEvent      EventType = "case.step.status"
	CaseFieldsSubmittedEvent EventType = "case.fields.submitted"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type WorkflowCreated struct {
	BaseEvent

	WorkflowID   string `json:"workflow_id"`
	WorkflowName string `json:"workflow_name"`
}

func (e WorkflowCreated) GetType() EventType { return WorkflowCreatedEvent }

type WorkflowUpdated struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
}

func (e WorkflowUpdated) GetType() EventType { return WorkflowUpdatedEvent }

type WorkflowDeleted struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
}

func (e WorkflowDeleted) GetType() EventType { return WorkflowDeletedEvent }

type StatusAssigned struct {
	BaseEvent

	StatusID   string `json:"status_id"`
	WorkflowID string `json:"workflow_id"`
}

func (e StatusAssigned) GetType() EventType { return StatusAssignedEvent }

type CaseInstantiated struct {
	BaseEvent

	CaseID     string `json:"case_id"`
	WorkflowID string `json:"workflow_id"`
	StepCount  int    `json:"step_count"`
}

func (e CaseInstantiated) GetType() EventType { return CaseInstantiatedEvent }

// CaseStepStatus is published on every step transition. It carries the
// step's notify-before-deadline offset so a notification scheduler can
// act on deadlines without loading the workflow definition.
type CaseStepStatus struct {
	BaseEvent

	CaseID                   string              `json:"case_id"`
	WorkflowID               string              `json:"workflow_id"`
	StepID                   string              `json:"step_id"`
	StepName                 string              `json:"step_name"`
	Status                   models.StepProgress `json:"status"`
	NotifyBeforeDeadlineDays int                 `json:"notify_before_deadline_days"`
}

func (e CaseStepStatus) GetType() EventType { return CaseStepStatusEvent }

type CaseFieldsSubmitted struct {
	BaseEvent

	CaseID string   `json:"case_id"`
	StepID string   `json:"step_id"`
	Fields []string `json:"fields"`
}

func (e CaseFieldsSubmitted) GetType() EventType { return CaseFieldsSubmittedEvent }
