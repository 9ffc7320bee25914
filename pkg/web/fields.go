package web

import (
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/directory"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) BindVariable(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")

	if workflowID == "" || stepID == "" {
		return badRequest(c, "Workflow ID and step ID are required")
	}

	var req BindVariableRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	field, created, err := h.fieldService.BindVariable(c.Context(), workflowID, stepID, req.VariableID)
	if err != nil {
		return handleServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(field)
}

func (h *APIHandlers) CreateField(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")

	if workflowID == "" || stepID == "" {
		return badRequest(c, "Workflow ID and step ID are required")
	}

	var req CreateFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	field, err := h.fieldService.AddCustomField(c.Context(), workflowID, stepID, services.FieldInput{
		Name:           req.Name,
		Type:           req.Type,
		Required:       req.Required,
		Description:    req.Description,
		Options:        req.Options,
		CurrencySymbol: req.CurrencySymbol,
		Cardinality:    req.Cardinality,
		Role:           req.Role,
		UserSource:     req.UserSource,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(field)
}

func (h *APIHandlers) UpdateField(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")
	fieldID := c.Params("fieldId")

	if workflowID == "" || stepID == "" || fieldID == "" {
		return badRequest(c, "Workflow ID, step ID and field ID are required")
	}

	var req UpdateFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	field, err := h.fieldService.UpdateField(c.Context(), workflowID, stepID, fieldID, services.FieldPatch{
		Name:           req.Name,
		Required:       req.Required,
		Description:    req.Description,
		Options:        req.Options,
		CurrencySymbol: req.CurrencySymbol,
		Cardinality:    req.Cardinality,
		Role:           req.Role,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(field)
}

func (h *APIHandlers) DeleteField(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")
	fieldID := c.Params("fieldId")

	if workflowID == "" || stepID == "" || fieldID == "" {
		return badRequest(c, "Workflow ID, step ID and field ID are required")
	}

	if err := h.fieldService.DeleteField(c.Context(), workflowID, stepID, fieldID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFieldOptions resolves the selectable options for a field by its
// semantic role, drawing from the user directory and lookups.
func (h *APIHandlers) GetFieldOptions(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")
	fieldID := c.Params("fieldId")

	if workflowID == "" || stepID == "" || fieldID == "" {
		return badRequest(c, "Workflow ID, step ID and field ID are required")
	}

	workflow, err := h.workflowService.FetchByID(c.Context(), workflowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	step := workflow.StepByID(stepID)
	if step == nil {
		return notFound(c, "Step not found")
	}

	field := step.FieldByID(fieldID)
	if field == nil {
		return notFound(c, "Field not found")
	}

	catalog, err := directory.OptionCatalogFrom(c.Context(), h.users, h.lookup)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"field_id": field.ID,
		"options":  models.OptionsFor(field, catalog),
	})
}
