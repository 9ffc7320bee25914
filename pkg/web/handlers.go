// Package web provides HTTP handlers and REST API endpoints for
// procedure definitions and running cases.
package web

import (
	"net/http"
	"time"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/directory"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	workflowService *services.Workflow
	stepService     *services.Step
	fieldService    *services.Field
	catalogService  *services.Catalog
	bindingService  *services.Binding
	caseService     *services.Case
	validator       *validator.Validate
	users           directory.UserDirectory
	lookup          directory.Lookup
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	stepService *services.Step,
	fieldService *services.Field,
	catalogService *services.Catalog,
	bindingService *services.Binding,
	caseService *services.Case,
	validator *validator.Validate,
	users directory.UserDirectory,
	lookup directory.Lookup,
) *APIHandlers {
	return &APIHandlers{
		workflowService: workflowService,
		stepService:     stepService,
		fieldService:    fieldService,
		catalogService:  catalogService,
		bindingService:  bindingService,
		caseService:     caseService,
		validator:       validator,
		users:           users,
		lookup:          lookup,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Procedure API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Procedure API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
