package services

import (
	"context"
	"testing"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepAdd(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding")

	step, err := steps.Add(ctx, workflow.ID, StepMeta{
		Name:              "Collect documents",
		EstimatedDuration: models.EstimatedDuration{Value: 36, Unit: models.DurationHours},
		IsRequired:        true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, step.ID)
	assert.Equal(t, 0, step.Order)
	assert.True(t, step.HasSystemFields())
	assert.Equal(t, 2, step.EstimatedDuration.Days())
}

func TestStepAddAppendsAtEnd(t *testing.T) {
	p := newTestPersistence(t)
	workflow := seedWorkflow(t, p, "Onboarding", "First", "Second", "Third")

	require.Len(t, workflow.Steps, 3)
	for index, step := range workflow.Steps {
		assert.Equal(t, index, step.Order)
	}
}

func TestStepUpdateMetadata(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding", "Review")
	stepID := workflow.Steps[0].ID

	name := "Final review"
	notify := 3

	updated, err := steps.Update(ctx, workflow.ID, stepID, StepPatch{
		Name:                     &name,
		NotifyBeforeDeadlineDays: &notify,
		AllowedActorIDs:          []string{"legal"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Final review", updated.Name)
	assert.Equal(t, 3, updated.NotifyBeforeDeadlineDays)
	assert.Equal(t, []string{"legal"}, updated.AllowedActorIDs)
}

func TestStepUpdateNotFound(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)

	workflow := seedWorkflow(t, p, "Onboarding", "Review")

	name := "Renamed"
	_, err := steps.Update(context.Background(), workflow.ID, "missing", StepPatch{Name: &name})
	assert.ErrorIs(t, err, ErrStepNotFound)
}

func TestStepDeleteRenumbers(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	workflows := NewWorkflow(p, nil, testLogger())
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding", "First", "Second", "Third")

	deleted, err := steps.Delete(ctx, workflow.ID, workflow.Steps[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	reloaded, err := workflows.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Steps, 2)
	assert.Equal(t, "First", reloaded.Steps[0].Name)
	assert.Equal(t, 0, reloaded.Steps[0].Order)
	assert.Equal(t, "Third", reloaded.Steps[1].Name)
	assert.Equal(t, 1, reloaded.Steps[1].Order)
}

func TestStepDeleteRequiredIsRefused(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	workflows := NewWorkflow(p, nil, testLogger())
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding")

	step, err := steps.Add(ctx, workflow.ID, StepMeta{Name: "Mandatory", IsRequired: true})
	require.NoError(t, err)

	deleted, err := steps.Delete(ctx, workflow.ID, step.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	reloaded, err := workflows.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Steps, 1)
}

func TestStepReorder(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	workflows := NewWorkflow(p, nil, testLogger())
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding", "First", "Second", "Third")

	err := steps.Reorder(ctx, workflow.ID, []string{
		workflow.Steps[2].ID,
		workflow.Steps[0].ID,
		workflow.Steps[1].ID,
	})
	require.NoError(t, err)

	reloaded, err := workflows.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Third", reloaded.Steps[0].Name)
	assert.Equal(t, "First", reloaded.Steps[1].Name)
	assert.Equal(t, "Second", reloaded.Steps[2].Name)

	for index, step := range reloaded.Steps {
		assert.Equal(t, index, step.Order)
	}
}

func TestStepReorderRejectsBadPermutations(t *testing.T) {
	p := newTestPersistence(t)
	steps := NewStep(p)
	workflows := NewWorkflow(p, nil, testLogger())
	ctx := context.Background()

	workflow := seedWorkflow(t, p, "Onboarding", "First", "Second")
	first := workflow.Steps[0].ID
	second := workflow.Steps[1].ID

	tests := []struct {
		name    string
		ordered []string
	}{
		{name: "too short", ordered: []string{first}},
		{name: "too long", ordered: []string{first, second, first}},
		{name: "unknown id", ordered: []string{first, "missing"}},
		{name: "duplicate id", ordered: []string{first, first}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := steps.Reorder(ctx, workflow.ID, tt.ordered)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidReorder)
		})
	}

	// None of the rejected permutations touched the stored order.
	reloaded, err := workflows.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", reloaded.Steps[0].Name)
	assert.Equal(t, "Second", reloaded.Steps[1].Name)
}
