package web

import (
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetVariables(c fiber.Ctx) error {
	variables, err := h.catalogService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"variables":   variables,
		"total_count": len(variables),
	})
}

func (h *APIHandlers) GetVariable(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Variable ID is required")
	}

	variable, err := h.catalogService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(variable)
}

func (h *APIHandlers) CreateVariable(c fiber.Ctx) error {
	var req CreateVariableRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	variable, err := h.catalogService.Add(c.Context(), &models.AvailableVariable{
		Name:         req.Name,
		Description:  req.Description,
		Source:       req.Source,
		Type:         req.Type,
		Options:      req.Options,
		DefaultValue: req.DefaultValue,
		IsRequired:   req.IsRequired,
		UserSource:   req.UserSource,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(variable)
}

func (h *APIHandlers) UpdateVariable(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Variable ID is required")
	}

	var req UpdateVariableRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	variable, err := h.catalogService.Update(c.Context(), id, services.CatalogPatch{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		Options:      req.Options,
		DefaultValue: req.DefaultValue,
		IsRequired:   req.IsRequired,
		UserSource:   req.UserSource,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(variable)
}

func (h *APIHandlers) DeleteVariable(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Variable ID is required")
	}

	if err := h.catalogService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
