package services

import (
	"context"
	"testing"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdd(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	added, err := catalog.Add(ctx, &models.AvailableVariable{
		Name: "Budget",
		Type: models.FieldTypeCurrency,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, models.VariableSourceCustom, added.Source)

	loaded, err := catalog.FetchByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budget", loaded.Name)
}

func TestCatalogAddRejectsDuplicateName(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	_, err := catalog.Add(ctx, &models.AvailableVariable{Name: "Budget", Type: models.FieldTypeCurrency})
	require.NoError(t, err)

	tests := []struct {
		name      string
		duplicate string
	}{
		{name: "exact", duplicate: "Budget"},
		{name: "case insensitive", duplicate: "budget"},
		{name: "surrounding whitespace", duplicate: "  Budget "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Add(ctx, &models.AvailableVariable{Name: tt.duplicate, Type: models.FieldTypeText})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDuplicateName)
			assert.True(t, IsConflictError(err))
		})
	}
}

func TestCatalogAddRejectsUnknownType(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)

	_, err := catalog.Add(context.Background(), &models.AvailableVariable{Name: "Weird", Type: "hologram"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFieldType)
	assert.True(t, IsValidationError(err))
}

func TestCatalogUpdate(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	added, err := catalog.Add(ctx, &models.AvailableVariable{Name: "Budget", Type: models.FieldTypeCurrency})
	require.NoError(t, err)

	newName := "Approved budget"
	required := true

	updated, err := catalog.Update(ctx, added.ID, CatalogPatch{Name: &newName, IsRequired: &required})
	require.NoError(t, err)
	assert.Equal(t, "Approved budget", updated.Name)
	assert.True(t, updated.IsRequired)
}

func TestCatalogUpdateKeepsOwnName(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	added, err := catalog.Add(ctx, &models.AvailableVariable{Name: "Budget", Type: models.FieldTypeCurrency})
	require.NoError(t, err)

	// Renaming to a different casing of its own name is not a conflict.
	sameName := "BUDGET"

	updated, err := catalog.Update(ctx, added.ID, CatalogPatch{Name: &sameName})
	require.NoError(t, err)
	assert.Equal(t, "Budget", updated.Name)
}

func TestCatalogImmutableSources(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	for _, source := range []models.VariableSource{models.VariableSourceRequest, models.VariableSourceSystem} {
		added, err := catalog.Add(ctx, &models.AvailableVariable{
			Name:   "Seeded " + string(source),
			Type:   models.FieldTypeText,
			Source: source,
		})
		require.NoError(t, err)

		name := "Renamed"
		_, err = catalog.Update(ctx, added.ID, CatalogPatch{Name: &name})
		assert.ErrorIs(t, err, ErrImmutableEntry)

		err = catalog.Delete(ctx, added.ID)
		assert.ErrorIs(t, err, ErrImmutableEntry)
	}
}

func TestCatalogDelete(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)
	ctx := context.Background()

	added, err := catalog.Add(ctx, &models.AvailableVariable{Name: "Budget", Type: models.FieldTypeCurrency})
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(ctx, added.ID))

	_, err = catalog.FetchByID(ctx, added.ID)
	assert.ErrorIs(t, err, ErrVariableNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCatalogFetchByIDNotFound(t *testing.T) {
	p := newTestPersistence(t)
	catalog := NewCatalog(p)

	_, err := catalog.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVariableNotFound)
}
