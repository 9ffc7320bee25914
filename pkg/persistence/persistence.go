// Package persistence provides the storage abstraction the procedure
// core talks to. The store is document-oriented and offers no
// multi-document transactions; every call is an independent remote
// round trip the caller may cancel through its context.
package persistence

import (
	"context"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// Persistence bundles the per-collection repositories.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	VariableRepository() VariableRepository
	StatusRepository() StatusRepository
	CaseRepository() CaseRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores workflow definitions. GetByID returns
// (nil, nil) for unknown ids; callers decide whether that is an error.
type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.WorkflowDefinition, error)
	GetByID(ctx context.Context, id string) (*models.WorkflowDefinition, error)
	Save(ctx context.Context, workflow *models.WorkflowDefinition) error
	Delete(ctx context.Context, id string) error
}

// VariableRepository stores the variable catalog.
type VariableRepository interface {
	GetAll(ctx context.Context) ([]*models.AvailableVariable, error)
	GetByID(ctx context.Context, id string) (*models.AvailableVariable, error)
	Save(ctx context.Context, variable *models.AvailableVariable) error
	Delete(ctx context.Context, id string) error
}

// StatusRepository stores the status categories the binding service
// writes workflow assignments into.
type StatusRepository interface {
	GetAll(ctx context.Context) ([]*models.StatusCategory, error)
	GetByID(ctx context.Context, id string) (*models.StatusCategory, error)
	Save(ctx context.Context, status *models.StatusCategory) error
	Delete(ctx context.Context, id string) error
}

// CaseRepository stores running cases and their step histories.
type CaseRepository interface {
	GetAll(ctx context.Context) ([]*models.Case, error)
	GetByID(ctx context.Context, id string) (*models.Case, error)
	Save(ctx context.Context, c *models.Case) error
	Delete(ctx context.Context, id string) error
}
