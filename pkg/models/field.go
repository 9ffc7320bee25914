package models

// FieldType is the closed set of kinds a step field can take.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeDate        FieldType = "date"
	FieldTypeDateTime    FieldType = "datetime"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeUser        FieldType = "user"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeNumber      FieldType = "number"
	FieldTypeCurrency    FieldType = "currency"
	FieldTypeVariable    FieldType = "variable" // Bound from the variable catalog
)

// Valid reports whether t is one of the known field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeDateTime, FieldTypeSelect,
		FieldTypeMultiSelect, FieldTypeUser, FieldTypeCheckbox,
		FieldTypeNumber, FieldTypeCurrency, FieldTypeVariable:
		return true
	}

	return false
}

// HasOptions reports whether the kind carries an inline option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiSelect
}

// FieldRole is the semantic role a select-like field plays. Option
// resolution dispatches on the role instead of matching field names.
type FieldRole string

const (
	RolePerson   FieldRole = "person"
	RoleCategory FieldRole = "category"
	RoleStatus   FieldRole = "status"
	RoleMaterial FieldRole = "material"
	RoleFreeEnum FieldRole = "free_enum" // Options authored inline on the field
)

// Cardinality distinguishes single-valued fields from repeatable lists.
// Repeatable lists require the first entry to be populated; additional
// entries are optional.
type Cardinality string

const (
	CardinalitySingle Cardinality = "single"
	CardinalityList   Cardinality = "list"
)

// FieldSchema is the typed definition of one data slot on a step. A
// schema is owned exclusively by its step; when bound from the catalog,
// name/description/required are snapshots taken at bind time and are
// not re-resolved when the catalog entry changes later.
type FieldSchema struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"        validate:"required"`
	Type             FieldType   `json:"type"        validate:"required"`
	Required         bool        `json:"required"`
	Description      string      `json:"description,omitempty"`
	Options          []string    `json:"options,omitempty"`
	CurrencySymbol   string      `json:"currency_symbol,omitempty"`
	VariableSourceID string      `json:"variable_source_id,omitempty"` // Traceability only, never re-read
	IsSystem         bool        `json:"is_system"`
	Cardinality      Cardinality `json:"cardinality" validate:"omitempty,oneof=single list"`
	Role             FieldRole   `json:"role,omitempty"`
	UserSource       UserSource  `json:"user_source,omitempty"`
}

// Option is one selectable entry offered to a field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionCatalog carries the externally sourced option lists that
// role-tagged fields draw from. The lists come from the user directory
// and the category/status lookups; this package only dispatches.
type OptionCatalog struct {
	Users      []Option
	Customers  []Option
	Categories []Option
	Statuses   []Option
	Materials  []Option
}

// OptionsFor resolves the selectable options for a field by its
// semantic role. Fields without a recognized role fall back to their
// inline option list.
func OptionsFor(field *FieldSchema, src OptionCatalog) []Option {
	switch field.Role {
	case RolePerson:
		if field.UserSource == UserSourceCustomers {
			return src.Customers
		}

		return src.Users
	case RoleCategory:
		return src.Categories
	case RoleStatus:
		return src.Statuses
	case RoleMaterial:
		return src.Materials
	case RoleFreeEnum:
		return inlineOptions(field)
	default:
		return inlineOptions(field)
	}
}

func inlineOptions(field *FieldSchema) []Option {
	options := make([]Option, 0, len(field.Options))
	for _, value := range field.Options {
		options = append(options, Option{Value: value, Label: value})
	}

	return options
}

// ValidateRepeatable checks a repeatable-list value: the first entry
// must be populated, the rest may be empty.
func ValidateRepeatable(values []any) bool {
	if len(values) == 0 {
		return false
	}

	return !IsEmptyValue(values[0])
}

// RemoveRepeatableEntry removes one entry from a repeatable-list value.
// The first entry can never be spliced out; it is cleared in place
// instead so the list always keeps its mandatory slot.
func RemoveRepeatableEntry(values []any, index int) []any {
	if index < 0 || index >= len(values) {
		return values
	}

	if index == 0 {
		out := make([]any, len(values))
		copy(out, values)
		out[0] = nil

		return out
	}

	out := make([]any, 0, len(values)-1)
	out = append(out, values[:index]...)
	out = append(out, values[index+1:]...)

	return out
}

// IsEmptyValue reports whether a submitted field value counts as
// unset: nil, an empty string, or an empty list/map.
func IsEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
