package file

import (
	"context"
	"time"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// WorkflowRepository handles workflow-definition documents.
type WorkflowRepository struct {
	store docStore
}

func (r *WorkflowRepository) GetAll(_ context.Context) ([]*models.WorkflowDefinition, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	workflows := make([]*models.WorkflowDefinition, 0, len(ids))

	for _, id := range ids {
		var workflow models.WorkflowDefinition

		found, err := r.store.get(id, &workflow)
		if err != nil {
			return nil, err
		}

		if found {
			workflows = append(workflows, &workflow)
		}
	}

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.WorkflowDefinition, error) {
	var workflow models.WorkflowDefinition

	found, err := r.store.get(id, &workflow)
	if err != nil || !found {
		return nil, err
	}

	return &workflow, nil
}

func (r *WorkflowRepository) Save(_ context.Context, workflow *models.WorkflowDefinition) error {
	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	return r.store.put(workflow.ID, workflow)
}

func (r *WorkflowRepository) Delete(_ context.Context, id string) error {
	return r.store.delete(id)
}

// VariableRepository handles catalog-variable documents.
type VariableRepository struct {
	store docStore
}

func (r *VariableRepository) GetAll(_ context.Context) ([]*models.AvailableVariable, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	variables := make([]*models.AvailableVariable, 0, len(ids))

	for _, id := range ids {
		var variable models.AvailableVariable

		found, err := r.store.get(id, &variable)
		if err != nil {
			return nil, err
		}

		if found {
			variables = append(variables, &variable)
		}
	}

	return variables, nil
}

func (r *VariableRepository) GetByID(_ context.Context, id string) (*models.AvailableVariable, error) {
	var variable models.AvailableVariable

	found, err := r.store.get(id, &variable)
	if err != nil || !found {
		return nil, err
	}

	return &variable, nil
}

func (r *VariableRepository) Save(_ context.Context, variable *models.AvailableVariable) error {
	return r.store.put(variable.ID, variable)
}

func (r *VariableRepository) Delete(_ context.Context, id string) error {
	return r.store.delete(id)
}

// StatusRepository handles status-category documents.
type StatusRepository struct {
	store docStore
}

func (r *StatusRepository) GetAll(_ context.Context) ([]*models.StatusCategory, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	statuses := make([]*models.StatusCategory, 0, len(ids))

	for _, id := range ids {
		var status models.StatusCategory

		found, err := r.store.get(id, &status)
		if err != nil {
			return nil, err
		}

		if found {
			statuses = append(statuses, &status)
		}
	}

	return statuses, nil
}

func (r *StatusRepository) GetByID(_ context.Context, id string) (*models.StatusCategory, error) {
	var status models.StatusCategory

	found, err := r.store.get(id, &status)
	if err != nil || !found {
		return nil, err
	}

	return &status, nil
}

func (r *StatusRepository) Save(_ context.Context, status *models.StatusCategory) error {
	return r.store.put(status.ID, status)
}

func (r *StatusRepository) Delete(_ context.Context, id string) error {
	return r.store.delete(id)
}

// CaseRepository handles running-case documents.
type CaseRepository struct {
	store docStore
}

func (r *CaseRepository) GetAll(_ context.Context) ([]*models.Case, error) {
	ids, err := r.store.ids()
	if err != nil {
		return nil, err
	}

	cases := make([]*models.Case, 0, len(ids))

	for _, id := range ids {
		var c models.Case

		found, err := r.store.get(id, &c)
		if err != nil {
			return nil, err
		}

		if found {
			cases = append(cases, &c)
		}
	}

	return cases, nil
}

func (r *CaseRepository) GetByID(_ context.Context, id string) (*models.Case, error) {
	var c models.Case

	found, err := r.store.get(id, &c)
	if err != nil || !found {
		return nil, err
	}

	return &c, nil
}

func (r *CaseRepository) Save(_ context.Context, c *models.Case) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	c.UpdatedAt = now

	return r.store.put(c.ID, c)
}

func (r *CaseRepository) Delete(_ context.Context, id string) error {
	return r.store.delete(id)
}
