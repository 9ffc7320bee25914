// Package main provides the procedure API server implementation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/directory"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/services"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	validate    *validator.Validate
	users       directory.UserDirectory
	lookup      directory.Lookup
	sink        directory.NotificationSink
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
) *API {
	static := &directory.Static{}

	return &API{
		persistence: persistence,
		logger:      logger,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		users:       static,
		lookup:      static,
		sink:        &directory.LogSink{Logger: logger},
	}
}

// Subscribe wires the notification sink to step-transition events and
// starts consuming the event topic.
func (a *API) Subscribe(ctx context.Context) error {
	err := a.eventBus.Handle(events.CaseStepStatusEvent, func(ctx context.Context, event any) error {
		stepStatus, ok := event.(*events.CaseStepStatus)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", event)
		}

		message := fmt.Sprintf("step %q moved to %s", stepStatus.StepName, stepStatus.Status)

		return a.sink.Notify(ctx, stepStatus.CaseID, message, nil)
	})
	if err != nil {
		return err
	}

	return a.eventBus.Subscribe(ctx)
}

func (a *API) App() *fiber.App {
	workflowService := services.NewWorkflow(a.persistence, a.eventBus, a.logger)
	stepService := services.NewStep(a.persistence)
	fieldService := services.NewField(a.persistence)
	catalogService := services.NewCatalog(a.persistence)
	bindingService := services.NewBinding(a.persistence, a.eventBus, a.logger)
	caseService := services.NewCase(a.persistence, a.eventBus, a.logger)

	handlers := web.NewAPIHandlers(
		workflowService,
		stepService,
		fieldService,
		catalogService,
		bindingService,
		caseService,
		a.validate,
		a.users,
		a.lookup,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Procedure API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)

	// Step endpoints:
	w.Post("/:id/steps", handlers.CreateStep)
	w.Put("/:id/steps", handlers.ReorderSteps)
	w.Patch("/:id/steps/:stepId", handlers.UpdateStep)
	w.Delete("/:id/steps/:stepId", handlers.DeleteStep)

	// Field endpoints:
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

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
