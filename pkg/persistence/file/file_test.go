package file

import (
	"context"
	"testing"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRepository_RoundTrip(t *testing.T) {
	persistence := NewPersistence(t.TempDir())
	ctx := context.Background()

	step := models.NewStepDefinition("Sampling")
	step.ID = "step-1"
	step.EstimatedDuration = models.EstimatedDuration{Value: 2, Unit: models.DurationDays}

	workflow := &models.WorkflowDefinition{
		ID:    "wf-1",
		Name:  "Production",
		Steps: []*models.StepDefinition{step},
	}

	require.NoError(t, persistence.WorkflowRepository().Save(ctx, workflow))
	assert.False(t, workflow.CreatedAt.IsZero())

	loaded, err := persistence.WorkflowRepository().GetByID(ctx, "wf-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Production", loaded.Name)
	require.Len(t, loaded.Steps, 1)
	assert.True(t, loaded.Steps[0].HasSystemFields())
}

func TestWorkflowRepository_GetByIDMissing(t *testing.T) {
	persistence := NewPersistence(t.TempDir())

	workflow, err := persistence.WorkflowRepository().GetByID(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, workflow)
}

func TestWorkflowRepository_DeleteMissingIsNoop(t *testing.T) {
	persistence := NewPersistence(t.TempDir())

	assert.NoError(t, persistence.WorkflowRepository().Delete(context.Background(), "absent"))
}

func TestVariableRepository_RoundTrip(t *testing.T) {
	persistence := NewPersistence(t.TempDir())
	ctx := context.Background()

	variable := &models.AvailableVariable{
		ID:     "var-1",
		Name:   "Designer",
		Source: models.VariableSourceCustom,
		Type:   models.FieldTypeUser,
	}

	require.NoError(t, persistence.VariableRepository().Save(ctx, variable))

	all, err := persistence.VariableRepository().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Designer", all[0].Name)

	require.NoError(t, persistence.VariableRepository().Delete(ctx, "var-1"))

	all, err = persistence.VariableRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStatusRepository_RoundTrip(t *testing.T) {
	persistence := NewPersistence(t.TempDir())
	ctx := context.Background()

	status := &models.StatusCategory{
		ID:         "status-1",
		Name:       "In production",
		Color:      "#00aa00",
		WorkflowID: models.StandardWorkflowID,
	}

	require.NoError(t, persistence.StatusRepository().Save(ctx, status))

	loaded, err := persistence.StatusRepository().GetByID(ctx, "status-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.StandardWorkflowID, loaded.WorkflowID)
}

func TestCaseRepository_RoundTrip(t *testing.T) {
	persistence := NewPersistence(t.TempDir())
	ctx := context.Background()

	c := &models.Case{
		ID:         "case-1",
		WorkflowID: "wf-1",
		History: []*models.CaseHistoryEntry{
			{StepID: "s1", Status: models.StepNotStarted, Fields: map[string]any{}},
		},
	}

	require.NoError(t, persistence.CaseRepository().Save(ctx, c))

	loaded, err := persistence.CaseRepository().GetByID(ctx, "case-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, models.StepNotStarted, loaded.History[0].Status)
}

func TestPersistence_HealthCheck(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, NewPersistence(dir).HealthCheck(context.Background()))
	assert.Error(t, NewPersistence(dir+"/missing").HealthCheck(context.Background()))
}

func TestNewPersistence_StripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	persistence := NewPersistence("file://" + dir)

	assert.NoError(t, persistence.HealthCheck(context.Background()))
}
