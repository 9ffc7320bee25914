package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence/file"
	"github.com/stretchr/testify/require"
)

func newTestPersistence(t *testing.T) *file.Persistence {
	t.Helper()

	return file.NewPersistence(t.TempDir())
}

func testLogger() *slog.Logger {
	return slog.Default()
}

// seedWorkflow creates a workflow with the given step names through the
// services, so every step carries its system fields and contiguous order.
func seedWorkflow(t *testing.T, p *file.Persistence, name string, stepNames ...string) *models.WorkflowDefinition {
	t.Helper()

	ctx := context.Background()
	workflows := NewWorkflow(p, nil, testLogger())
	steps := NewStep(p)

	workflow, err := workflows.Create(ctx, name, "")
	require.NoError(t, err)

	for _, stepName := range stepNames {
		_, err := steps.Add(ctx, workflow.ID, StepMeta{
			Name:              stepName,
			EstimatedDuration: models.EstimatedDuration{Value: 2, Unit: models.DurationDays},
		})
		require.NoError(t, err)
	}

	reloaded, err := workflows.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)

	return reloaded
}
