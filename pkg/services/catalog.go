package services

import (
	"context"
	"fmt"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/google/uuid"
)

// Catalog manages the registry of reusable variables. Names are unique
// across the whole catalog, compared trimmed and case-insensitively;
// request- and system-sourced entries are immutable.
type Catalog struct {
	persistence persistence.Persistence
}

// NewCatalog creates a new catalog service.
func NewCatalog(persistence persistence.Persistence) *Catalog {
	return &Catalog{persistence: persistence}
}

// List returns every catalog entry.
func (c *Catalog) List(ctx context.Context) ([]*models.AvailableVariable, error) {
	return c.persistence.VariableRepository().GetAll(ctx)
}

// FetchByID returns one catalog entry.
func (c *Catalog) FetchByID(ctx context.Context, id string) (*models.AvailableVariable, error) {
	variable, err := c.persistence.VariableRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if variable == nil {
		return nil, ErrVariableNotFound
	}

	return variable, nil
}

// Add registers a new variable. Entries without a source default to
// custom; seeding request/system entries goes through the same path.
func (c *Catalog) Add(ctx context.Context, variable *models.AvailableVariable) (*models.AvailableVariable, error) {
	taken, err := c.IsNameTaken(ctx, variable.Name, "")
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, NewServiceError("Catalog.Add", "DUPLICATE_NAME",
			fmt.Sprintf("a variable named %q already exists", variable.Name), ErrDuplicateName)
	}

	if variable.Source == "" {
		variable.Source = models.VariableSourceCustom
	}

	if !variable.Type.Valid() {
		return nil, NewServiceError("Catalog.Add", "UNKNOWN_FIELD_TYPE",
			fmt.Sprintf("field type %q is not supported", variable.Type), ErrUnknownFieldType)
	}

	variable.ID = uuid.New().String()

	if err := c.persistence.VariableRepository().Save(ctx, variable); err != nil {
		return nil, fmt.Errorf("failed to save variable: %w", err)
	}

	return variable, nil
}

// CatalogPatch carries the updatable fields of a catalog entry. Nil
// pointers leave the current value in place.
type CatalogPatch struct {
	Name         *string
	Description  *string
	Type         *models.FieldType
	Options      []string
	DefaultValue *string
	IsRequired   *bool
	UserSource   *models.UserSource
}

// Update edits a custom variable.
func (c *Catalog) Update(ctx context.Context, id string, patch CatalogPatch) (*models.AvailableVariable, error) {
	existing, err := c.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.Source.Editable() {
		return nil, NewServiceError("Catalog.Update", "IMMUTABLE_ENTRY",
			fmt.Sprintf("%s variables cannot be edited", existing.Source), ErrImmutableEntry)
	}

	if patch.Name != nil && !existing.NameEquals(*patch.Name) {
		taken, err := c.IsNameTaken(ctx, *patch.Name, id)
		if err != nil {
			return nil, err
		}

		if taken {
			return nil, NewServiceError("Catalog.Update", "DUPLICATE_NAME",
				fmt.Sprintf("a variable named %q already exists", *patch.Name), ErrDuplicateName)
		}

		existing.Name = *patch.Name
	}

	if patch.Description != nil {
		existing.Description = *patch.Description
	}

	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, NewServiceError("Catalog.Update", "UNKNOWN_FIELD_TYPE",
				fmt.Sprintf("field type %q is not supported", *patch.Type), ErrUnknownFieldType)
		}

		existing.Type = *patch.Type
	}

	if patch.Options != nil {
		existing.Options = patch.Options
	}

	if patch.DefaultValue != nil {
		existing.DefaultValue = *patch.DefaultValue
	}

	if patch.IsRequired != nil {
		existing.IsRequired = *patch.IsRequired
	}

	if patch.UserSource != nil {
		existing.UserSource = *patch.UserSource
	}

	if err := c.persistence.VariableRepository().Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save variable: %w", err)
	}

	return existing, nil
}

// Delete removes a custom variable. Request- and system-sourced
// entries are non-deletable.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	existing, err := c.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	if !existing.Source.Editable() {
		return NewServiceError("Catalog.Delete", "IMMUTABLE_ENTRY",
			fmt.Sprintf("%s variables cannot be deleted", existing.Source), ErrImmutableEntry)
	}

	if err := c.persistence.VariableRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete variable: %w", err)
	}

	return nil
}

// IsNameTaken reports whether any entry other than excludeID already
// uses the name, ignoring case and surrounding whitespace.
func (c *Catalog) IsNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	variables, err := c.persistence.VariableRepository().GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list variables: %w", err)
	}

	for _, variable := range variables {
		if variable.ID == excludeID {
			continue
		}

		if variable.NameEquals(name) {
			return true, nil
		}
	}

	return false, nil
}
