package web

import (
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetStatuses(c fiber.Ctx) error {
	statuses, err := h.bindingService.ListStatuses(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"statuses":    statuses,
		"total_count": len(statuses),
	})
}

func (h *APIHandlers) RegisterStatus(c fiber.Ctx) error {
	var req RegisterStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	status, err := h.bindingService.RegisterStatus(c.Context(), &models.StatusCategory{
		ID:    req.ID,
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(status)
}

// GetStatusWorkflow resolves the workflow a status runs under, falling
// back to the standard workflow for unassigned or dangling statuses.
func (h *APIHandlers) GetStatusWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Status ID is required")
	}

	workflow, err := h.bindingService.ResolveForStatus(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) AssignWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Status ID is required")
	}

	var req AssignWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.bindingService.Assign(c.Context(), id, req.WorkflowID); err != nil {
		return handleServiceError(c, err)
	}

	workflow, err := h.bindingService.ResolveForStatus(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) UnassignWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Status ID is required")
	}

	if err := h.bindingService.Unassign(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAssignableWorkflows lists the workflows a status may be bound to.
func (h *APIHandlers) GetAssignableWorkflows(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Status ID is required")
	}

	workflows, err := h.bindingService.ListAssignable(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows":   workflows,
		"total_count": len(workflows),
	})
}
