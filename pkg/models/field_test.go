package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFor_RoleDispatch(t *testing.T) {
	src := OptionCatalog{
		Users:      []Option{{Value: "u1", Label: "Ana"}},
		Customers:  []Option{{Value: "c1", Label: "Acme"}},
		Categories: []Option{{Value: "cat1", Label: "Fabric"}},
		Statuses:   []Option{{Value: "st1", Label: "Open"}},
		Materials:  []Option{{Value: "m1", Label: "Cotton"}},
	}

	testCases := []struct {
		name     string
		field    *FieldSchema
		expected []Option
	}{
		{
			name:     "person role uses the user directory",
			field:    &FieldSchema{Type: FieldTypeUser, Role: RolePerson},
			expected: src.Users,
		},
		{
			name:     "person role with customer source",
			field:    &FieldSchema{Type: FieldTypeUser, Role: RolePerson, UserSource: UserSourceCustomers},
			expected: src.Customers,
		},
		{
			name:     "category role",
			field:    &FieldSchema{Type: FieldTypeSelect, Role: RoleCategory},
			expected: src.Categories,
		},
		{
			name:     "status role",
			field:    &FieldSchema{Type: FieldTypeSelect, Role: RoleStatus},
			expected: src.Statuses,
		},
		{
			name:     "material role",
			field:    &FieldSchema{Type: FieldTypeSelect, Role: RoleMaterial},
			expected: src.Materials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OptionsFor(tc.field, src))
		})
	}
}

func TestOptionsFor_FreeEnumUsesInlineOptions(t *testing.T) {
	field := &FieldSchema{
		Type:    FieldTypeSelect,
		Role:    RoleFreeEnum,
		Options: []string{"S", "M", "L"},
	}

	options := OptionsFor(field, OptionCatalog{})

	require.Len(t, options, 3)
	assert.Equal(t, Option{Value: "M", Label: "M"}, options[1])
}

func TestOptionsFor_MissingRoleFallsBackToInline(t *testing.T) {
	field := &FieldSchema{Type: FieldTypeSelect, Options: []string{"yes", "no"}}

	options := OptionsFor(field, OptionCatalog{Statuses: []Option{{Value: "x"}}})

	assert.Equal(t, []Option{{Value: "yes", Label: "yes"}, {Value: "no", Label: "no"}}, options)
}

func TestValidateRepeatable(t *testing.T) {
	assert.False(t, ValidateRepeatable(nil))
	assert.False(t, ValidateRepeatable([]any{}))
	assert.False(t, ValidateRepeatable([]any{""}))
	assert.False(t, ValidateRepeatable([]any{nil, "second"}))
	assert.True(t, ValidateRepeatable([]any{"first"}))
	assert.True(t, ValidateRepeatable([]any{"first", nil, ""}))
}

func TestRemoveRepeatableEntry_ClearsInsteadOfSplicingHead(t *testing.T) {
	values := []any{"keep", "drop", "tail"}

	result := RemoveRepeatableEntry(values, 0)

	require.Len(t, result, 3)
	assert.Nil(t, result[0])
	assert.Equal(t, "drop", result[1])
	// The input slice is left untouched.
	assert.Equal(t, "keep", values[0])
}

func TestRemoveRepeatableEntry_SplicesOtherIndices(t *testing.T) {
	values := []any{"first", "second", "third"}

	result := RemoveRepeatableEntry(values, 1)

	assert.Equal(t, []any{"first", "third"}, result)
}

func TestRemoveRepeatableEntry_OutOfRangeIsNoop(t *testing.T) {
	values := []any{"only"}

	assert.Equal(t, values, RemoveRepeatableEntry(values, 5))
	assert.Equal(t, values, RemoveRepeatableEntry(values, -1))
}

func TestIsEmptyValue(t *testing.T) {
	assert.True(t, IsEmptyValue(nil))
	assert.True(t, IsEmptyValue(""))
	assert.True(t, IsEmptyValue([]any{}))
	assert.True(t, IsEmptyValue(map[string]any{}))
	assert.False(t, IsEmptyValue("value"))
	assert.False(t, IsEmptyValue(0))
	assert.False(t, IsEmptyValue(false))
	assert.False(t, IsEmptyValue([]any{"x"}))
}
