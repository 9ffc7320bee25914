// Package directory defines the external collaborators the procedure
// core consumes: the user directory feeding user-typed fields, the
// category/status lookups feeding role-tagged selects, and the
// notification sink the surrounding application delivers through. The
// core only depends on these interfaces; real implementations live in
// the host application.
package directory

import (
	"context"
	"log/slog"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// User is one selectable person from the directory.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserDirectory lists the people user-typed fields can point at.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]User, error)
	ListCustomers(ctx context.Context) ([]User, error)
}

// Lookup provides the read-only option listings for fields whose role
// names a category, status, or material.
type Lookup interface {
	Categories(ctx context.Context) ([]models.Option, error)
	Statuses(ctx context.Context) ([]models.Option, error)
	Materials(ctx context.Context) ([]models.Option, error)
}

// NotificationSink delivers step and deadline notifications. The core
// publishes the data (step transitions, notify-before-deadline
// offsets); scheduling and delivery are the host's concern.
type NotificationSink interface {
	Notify(ctx context.Context, caseID, message string, audienceDepartments []string) error
}

// Static is an in-memory UserDirectory and Lookup used in development
// and tests.
type Static struct {
	Users     []User
	Customers []User
	Category  []models.Option
	Status    []models.Option
	Material  []models.Option
}

func (s *Static) ListUsers(_ context.Context) ([]User, error)     { return s.Users, nil }
func (s *Static) ListCustomers(_ context.Context) ([]User, error) { return s.Customers, nil }

func (s *Static) Categories(_ context.Context) ([]models.Option, error) { return s.Category, nil }
func (s *Static) Statuses(_ context.Context) ([]models.Option, error)   { return s.Status, nil }
func (s *Static) Materials(_ context.Context) ([]models.Option, error)  { return s.Material, nil }

// LogSink writes notifications to the structured log. It stands in for
// a real delivery channel in development.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Notify(ctx context.Context, caseID, message string, audienceDepartments []string) error {
	s.Logger.InfoContext(ctx, "notification",
		"case_id", caseID,
		"message", message,
		"departments", audienceDepartments,
	)

	return nil
}

// OptionCatalogFrom assembles the option lists a field renderer needs
// from the directory and lookups.
func OptionCatalogFrom(ctx context.Context, users UserDirectory, lookup Lookup) (models.OptionCatalog, error) {
	var catalog models.OptionCatalog

	userList, err := users.ListUsers(ctx)
	if err != nil {
		return catalog, err
	}

	customerList, err := users.ListCustomers(ctx)
	if err != nil {
		return catalog, err
	}

	catalog.Users = toOptions(userList)
	catalog.Customers = toOptions(customerList)

	if catalog.Categories, err = lookup.Categories(ctx); err != nil {
		return catalog, err
	}

	if catalog.Statuses, err = lookup.Statuses(ctx); err != nil {
		return catalog, err
	}

	if catalog.Materials, err = lookup.Materials(ctx); err != nil {
		return catalog, err
	}

	return catalog, nil
}

func toOptions(users []User) []models.Option {
	options := make([]models.Option, 0, len(users))
	for _, user := range users {
		options = append(options, models.Option{Value: user.ID, Label: user.Name})
	}

	return options
}
