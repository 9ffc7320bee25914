package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/directory"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence/file"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	persistence := file.NewPersistence(t.TempDir())
	logger := slog.Default()
	validate := validator.New(validator.WithRequiredStructEnabled())
	static := &directory.Static{
		Users: []directory.User{{ID: "u1", Name: "Alice"}},
	}

	handlers := web.NewAPIHandlers(
		services.NewWorkflow(persistence, nil, logger),
		services.NewStep(persistence),
		services.NewField(persistence),
		services.NewCatalog(persistence),
		services.NewBinding(persistence, nil, logger),
		services.NewCase(persistence, nil, logger),
		validate,
		static,
		static,
	)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/steps", handlers.CreateStep)
	w.Put("/:id/steps", handlers.ReorderSteps)
	w.Patch("/:id/steps/:stepId", handlers.UpdateStep)
	w.Delete("/:id/steps/:stepId", handlers.DeleteStep)
	w.Post("/:id/steps/:stepId/fields", handlers.CreateField)
	w.Post("/:id/steps/:stepId/fields/bind-variable", handlers.BindVariable)
	w.Patch("/:id/steps/:stepId/fields/:fieldId", handlers.UpdateField)
	w.Delete("/:id/steps/:stepId/fields/:fieldId", handlers.DeleteField)
	w.Get("/:id/steps/:stepId/fields/:fieldId/options", handlers.GetFieldOptions)

	v := app.Group("/variables")
	v.Get("/", handlers.GetVariables)
	v.Post("/", handlers.CreateVariable)
	v.Get("/:id", handlers.GetVariable)
	v.Patch("/:id", handlers.UpdateVariable)
	v.Delete("/:id", handlers.DeleteVariable)

	s := app.Group("/statuses")
	s.Get("/", handlers.GetStatuses)
	s.Post("/", handlers.RegisterStatus)
	s.Get("/:id/workflow", handlers.GetStatusWorkflow)
	s.Put("/:id/workflow", handlers.AssignWorkflow)
	s.Delete("/:id/workflow", handlers.UnassignWorkflow)
	s.Get("/:id/assignable-workflows", handlers.GetAssignableWorkflows)

	cs := app.Group("/cases")
	cs.Get("/", handlers.GetCases)
	cs.Post("/", handlers.CreateCase)
	cs.Get("/:id", handlers.GetCase)
	cs.Get("/:id/progress", handlers.GetCaseProgress)
	cs.Get("/:id/inherited-value", handlers.GetInheritedValue)
	cs.Put("/:id/steps/:stepId/status", handlers.SetCaseStepStatus)
	cs.Put("/:id/steps/:stepId/approval", handlers.SetCaseStepApproval)
	cs.Post("/:id/steps/:stepId/fields", handlers.SubmitCaseFields)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, responseBody
}

func createWorkflow(t *testing.T, app *fiber.App, name string) models.WorkflowDefinition {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/workflows", web.CreateWorkflowRequest{Name: name})
	require.Equal(t, http.StatusCreated, status, string(body))

	var workflow models.WorkflowDefinition
	require.NoError(t, json.Unmarshal(body, &workflow))

	return workflow
}

func createStep(t *testing.T, app *fiber.App, workflowID, name string) models.StepDefinition {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/workflows/"+workflowID+"/steps", web.CreateStepRequest{
		Name:              name,
		EstimatedDuration: models.EstimatedDuration{Value: 1, Unit: models.DurationDays},
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var step models.StepDefinition
	require.NoError(t, json.Unmarshal(body, &step))

	return step
}

func TestAPIHandlers_CreateWorkflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
	}{
		{
			name:           "successful creation",
			requestBody:    web.CreateWorkflowRequest{Name: "Design review", Description: "Reviews designs"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "validation error - missing name",
			requestBody:    web.CreateWorkflowRequest{Description: "No name"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation error - name too short",
			requestBody:    web.CreateWorkflowRequest{Name: "De"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := setupTestApp(t)

			status, body := doJSON(t, app, http.MethodPost, "/workflows", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, status, string(body))
		})
	}
}

func TestAPIHandlers_CreateWorkflowDuplicateName(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	createWorkflow(t, app, "Design review")

	status, body := doJSON(t, app, http.MethodPost, "/workflows", web.CreateWorkflowRequest{Name: "design review"})
	assert.Equal(t, http.StatusConflict, status, string(body))
}

func TestAPIHandlers_GetWorkflowsIncludesStandard(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	createWorkflow(t, app, "Design review")

	status, body := doJSON(t, app, http.MethodGet, "/workflows/", nil)
	require.Equal(t, http.StatusOK, status)

	var response struct {
		Workflows  []models.WorkflowDefinition `json:"workflows"`
		TotalCount int                         `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	require.Equal(t, 2, response.TotalCount)
	assert.Equal(t, models.StandardWorkflowID, response.Workflows[0].ID)
}

func TestAPIHandlers_DeleteStandardWorkflowIsConflict(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodDelete, "/workflows/"+models.StandardWorkflowID, nil)
	assert.Equal(t, http.StatusConflict, status, string(body))
}

func TestAPIHandlers_StepLifecycle(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Onboarding")

	first := createStep(t, app, workflow.ID, "First")
	second := createStep(t, app, workflow.ID, "Second")

	assert.True(t, first.HasSystemFields())

	// Reorder with the full permutation reversed.
	status, body := doJSON(t, app, http.MethodPut, "/workflows/"+workflow.ID+"/steps", web.ReorderStepsRequest{
		StepIDs: []string{second.ID, first.ID},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var reordered models.WorkflowDefinition
	require.NoError(t, json.Unmarshal(body, &reordered))
	assert.Equal(t, second.ID, reordered.Steps[0].ID)

	// A partial permutation is rejected.
	status, _ = doJSON(t, app, http.MethodPut, "/workflows/"+workflow.ID+"/steps", web.ReorderStepsRequest{
		StepIDs: []string{first.ID},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/workflows/"+workflow.ID+"/steps/"+first.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAPIHandlers_BindVariable(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Sourcing")
	step := createStep(t, app, workflow.ID, "Pick supplier")

	status, body := doJSON(t, app, http.MethodPost, "/variables", web.CreateVariableRequest{
		Name: "Supplier",
		Type: models.FieldTypeText,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var variable models.AvailableVariable
	require.NoError(t, json.Unmarshal(body, &variable))

	bindPath := "/workflows/" + workflow.ID + "/steps/" + step.ID + "/fields/bind-variable"

	status, body = doJSON(t, app, http.MethodPost, bindPath, web.BindVariableRequest{VariableID: variable.ID})
	require.Equal(t, http.StatusCreated, status, string(body))

	// Binding the same variable again reports the existing field.
	status, _ = doJSON(t, app, http.MethodPost, bindPath, web.BindVariableRequest{VariableID: variable.ID})
	assert.Equal(t, http.StatusOK, status)
}

func TestAPIHandlers_SystemFieldProtection(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Sourcing")
	step := createStep(t, app, workflow.ID, "Pick supplier")

	path := "/workflows/" + workflow.ID + "/steps/" + step.ID + "/fields/" + models.SystemFieldAssignee

	status, body := doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, status, string(body))
}

func TestAPIHandlers_FieldOptionsFromDirectory(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Sourcing")
	step := createStep(t, app, workflow.ID, "Pick supplier")

	path := "/workflows/" + workflow.ID + "/steps/" + step.ID + "/fields/" + models.SystemFieldAssignee + "/options"

	status, body := doJSON(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var response struct {
		Options []models.Option `json:"options"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	require.Len(t, response.Options, 1)
	assert.Equal(t, "u1", response.Options[0].Value)
	assert.Equal(t, "Alice", response.Options[0].Label)
}

func TestAPIHandlers_StatusBinding(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Design review")

	status, _ := doJSON(t, app, http.MethodPost, "/statuses", web.RegisterStatusRequest{ID: "in-review", Name: "In review"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/statuses", web.RegisterStatusRequest{ID: "blocked", Name: "Blocked"})
	require.Equal(t, http.StatusCreated, status)

	// Unassigned statuses resolve to the standard workflow.
	status, body := doJSON(t, app, http.MethodGet, "/statuses/in-review/workflow", nil)
	require.Equal(t, http.StatusOK, status)

	var resolved models.WorkflowDefinition
	require.NoError(t, json.Unmarshal(body, &resolved))
	assert.True(t, resolved.IsStandard())

	status, body = doJSON(t, app, http.MethodPut, "/statuses/in-review/workflow", web.AssignWorkflowRequest{WorkflowID: workflow.ID})
	require.Equal(t, http.StatusOK, status, string(body))

	// Binding the same workflow to a second status is a conflict.
	status, _ = doJSON(t, app, http.MethodPut, "/statuses/blocked/workflow", web.AssignWorkflowRequest{WorkflowID: workflow.ID})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/statuses/in-review/workflow", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAPIHandlers_CaseLifecycle(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Onboarding")
	first := createStep(t, app, workflow.ID, "Collect documents")
	second := createStep(t, app, workflow.ID, "Verify identity")

	status, body := doJSON(t, app, http.MethodPost, "/cases", web.CreateCaseRequest{WorkflowID: workflow.ID})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created models.Case
	require.NoError(t, json.Unmarshal(body, &created))
	require.Len(t, created.History, 2)

	status, body = doJSON(t, app, http.MethodPut, "/cases/"+created.ID+"/steps/"+first.ID+"/status",
		web.SetStepStatusRequest{Status: models.StepCompleted})
	require.Equal(t, http.StatusOK, status, string(body))

	// Completed steps never move back.
	status, _ = doJSON(t, app, http.MethodPut, "/cases/"+created.ID+"/steps/"+first.ID+"/status",
		web.SetStepStatusRequest{Status: models.StepInProgress})
	assert.Equal(t, http.StatusConflict, status)

	status, body = doJSON(t, app, http.MethodGet, "/cases/"+created.ID+"/progress", nil)
	require.Equal(t, http.StatusOK, status)

	var progress struct {
		CurrentStepIndex *int `json:"current_step_index"`
		Percentage       int  `json:"percentage"`
		Resolved         bool `json:"resolved"`
	}
	require.NoError(t, json.Unmarshal(body, &progress))
	require.NotNil(t, progress.CurrentStepIndex)
	assert.Equal(t, 1, *progress.CurrentStepIndex)
	assert.Equal(t, 50, progress.Percentage)

	status, _ = doJSON(t, app, http.MethodPut, "/cases/"+created.ID+"/steps/"+second.ID+"/approval",
		web.SetApprovalRequest{Approved: true})
	assert.Equal(t, http.StatusOK, status)
}

func TestAPIHandlers_SubmitCaseFields(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	workflow := createWorkflow(t, app, "Onboarding")
	step := createStep(t, app, workflow.ID, "Collect documents")

	status, body := doJSON(t, app, http.MethodPost,
		"/workflows/"+workflow.ID+"/steps/"+step.ID+"/fields",
		web.CreateFieldRequest{Name: "Passport number", Type: models.FieldTypeText, Required: true})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = doJSON(t, app, http.MethodPost, "/cases", web.CreateCaseRequest{WorkflowID: workflow.ID})
	require.Equal(t, http.StatusCreated, status)

	var created models.Case
	require.NoError(t, json.Unmarshal(body, &created))

	fieldsPath := "/cases/" + created.ID + "/steps/" + step.ID + "/fields"

	status, _ = doJSON(t, app, http.MethodPost, fieldsPath, web.SubmitFieldsRequest{
		Values: map[string]any{"Passport number": 42},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPost, fieldsPath, web.SubmitFieldsRequest{
		Values: map[string]any{"Passport number": "X123456"},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var updated models.Case
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "X123456", updated.EntryForStep(step.ID).Fields["Passport number"])
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "healthy")
}
