package web

import (
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetCases(c fiber.Ctx) error {
	cases, err := h.caseService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"cases":       cases,
		"total_count": len(cases),
	})
}

func (h *APIHandlers) GetCase(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Case ID is required")
	}

	loaded, err := h.caseService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(loaded)
}

func (h *APIHandlers) CreateCase(c fiber.Ctx) error {
	var req CreateCaseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.caseService.Instantiate(c.Context(), req.WorkflowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) SetCaseStepStatus(c fiber.Ctx) error {
	caseID := c.Params("id")
	stepID := c.Params("stepId")

	if caseID == "" || stepID == "" {
		return badRequest(c, "Case ID and step ID are required")
	}

	var req SetStepStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.caseService.SetStepStatus(c.Context(), caseID, stepID, req.Status)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) SetCaseStepApproval(c fiber.Ctx) error {
	caseID := c.Params("id")
	stepID := c.Params("stepId")

	if caseID == "" || stepID == "" {
		return badRequest(c, "Case ID and step ID are required")
	}

	var req SetApprovalRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.caseService.SetApproval(c.Context(), caseID, stepID, req.Approved)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) SubmitCaseFields(c fiber.Ctx) error {
	caseID := c.Params("id")
	stepID := c.Params("stepId")

	if caseID == "" || stepID == "" {
		return badRequest(c, "Case ID and step ID are required")
	}

	var req SubmitFieldsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.caseService.SubmitFields(c.Context(), caseID, stepID, req.Values)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) GetCaseProgress(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Case ID is required")
	}

	report, err := h.caseService.Progress(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(report)
}

// GetInheritedValue resolves the nearest prior value for a logical
// field name, scanning backward from the case's current step.
func (h *APIHandlers) GetInheritedValue(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Case ID is required")
	}

	fieldName := c.Query("field")
	if fieldName == "" {
		return badRequest(c, "field query parameter is required")
	}

	value, found, err := h.caseService.InheritedValue(c.Context(), id, fieldName)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"field": fieldName,
		"value": value,
		"found": found,
	})
}
