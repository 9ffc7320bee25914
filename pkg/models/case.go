package models

import "time"

// StepProgress is the run-time status of one step of a running case.
type StepProgress string

const (
	StepNotStarted StepProgress = "NOT_STARTED"
	StepInProgress StepProgress = "IN_PROGRESS"
	StepCompleted  StepProgress = "COMPLETED"
	StepSkipped    StepProgress = "SKIPPED"
)

// Valid reports whether p is a known progress value.
func (p StepProgress) Valid() bool {
	switch p {
	case StepNotStarted, StepInProgress, StepCompleted, StepSkipped:
		return true
	}

	return false
}

// Resolved reports whether the step no longer blocks the case.
func (p StepProgress) Resolved() bool {
	return p == StepCompleted || p == StepSkipped
}

// CanTransition reports whether the status machine allows moving from
// p to next. Progress is forward-only: COMPLETED and SKIPPED are
// terminal, and nothing returns to NOT_STARTED.
func (p StepProgress) CanTransition(next StepProgress) bool {
	switch p {
	case StepNotStarted:
		return next == StepInProgress || next == StepCompleted || next == StepSkipped
	case StepInProgress:
		return next == StepCompleted || next == StepSkipped
	default:
		return false
	}
}

// CaseHistoryEntry is the per-step record of a running case. A case
// carries exactly one entry per step of its workflow, in step order,
// created when the case is instantiated and never deleted while the
// case exists.
type CaseHistoryEntry struct {
	StepID        string         `json:"step_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Status        StepProgress   `json:"status"`
	EstimatedDays int            `json:"estimated_days"`
	AssigneeRole  string         `json:"assignee_role,omitempty"`
	HasCost       bool           `json:"has_cost"`
	Fields        map[string]any `json:"fields"`
	IsApproved    bool           `json:"is_approved"`
}

// Case is one concrete run of a workflow.
type Case struct {
	ID         string              `json:"id"`
	WorkflowID string              `json:"workflow_id"`
	History    []*CaseHistoryEntry `json:"history"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// EntryForStep returns the history entry tracking the given step, or nil.
func (c *Case) EntryForStep(stepID string) *CaseHistoryEntry {
	for _, entry := range c.History {
		if entry.StepID == stepID {
			return entry
		}
	}

	return nil
}
