package web

import (
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) CreateStep(c fiber.Ctx) error {
	workflowID := c.Params("id")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req CreateStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	step, err := h.stepService.Add(c.Context(), workflowID, services.StepMeta{
		Name:                     req.Name,
		Description:              req.Description,
		EstimatedDuration:        req.EstimatedDuration,
		IsRequired:               req.IsRequired,
		HasCost:                  req.HasCost,
		NotifyBeforeDeadlineDays: req.NotifyBeforeDeadlineDays,
		AllowedActorIDs:          req.AllowedActorIDs,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(step)
}

func (h *APIHandlers) UpdateStep(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")

	if workflowID == "" || stepID == "" {
		return badRequest(c, "Workflow ID and step ID are required")
	}

	var req UpdateStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	step, err := h.stepService.Update(c.Context(), workflowID, stepID, services.StepPatch{
		Name:                     req.Name,
		Description:              req.Description,
		EstimatedDuration:        req.EstimatedDuration,
		IsRequired:               req.IsRequired,
		HasCost:                  req.HasCost,
		NotifyBeforeDeadlineDays: req.NotifyBeforeDeadlineDays,
		AllowedActorIDs:          req.AllowedActorIDs,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(step)
}

func (h *APIHandlers) DeleteStep(c fiber.Ctx) error {
	workflowID := c.Params("id")
	stepID := c.Params("stepId")

	if workflowID == "" || stepID == "" {
		return badRequest(c, "Workflow ID and step ID are required")
	}

	deleted, err := h.stepService.Delete(c.Context(), workflowID, stepID)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !deleted {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"deleted": false,
			"reason":  "required steps cannot be deleted",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ReorderSteps(c fiber.Ctx) error {
	workflowID := c.Params("id")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ReorderStepsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.stepService.Reorder(c.Context(), workflowID, req.StepIDs); err != nil {
		return handleServiceError(c, err)
	}

	workflow, err := h.workflowService.FetchByID(c.Context(), workflowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}
