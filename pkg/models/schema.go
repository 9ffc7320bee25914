package models

// JSONSchema represents a JSON Schema used to validate the field
// values submitted against a step.
type JSONSchema struct {
	Type        string               `json:"type"`
	Properties  map[string]*Property `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
}

// Property represents a JSON Schema property.
type Property struct {
	Type      string    `json:"type"`
	Enum      []any     `json:"enum,omitempty"`
	Format    string    `json:"format,omitempty"`
	Items     *Property `json:"items,omitempty"`
	MinItems  *int      `json:"minItems,omitempty"`
	MinLength *int      `json:"minLength,omitempty"`
}

// FieldsSchema compiles the step's non-system fields into a JSON
// Schema document. Submitted case values are validated against it
// before they are written into the case history.
func (s *StepDefinition) FieldsSchema() *JSONSchema {
	schema := &JSONSchema{
		Type:       "object",
		Title:      s.Name,
		Properties: map[string]*Property{},
	}

	for _, field := range s.Fields {
		if field.IsSystem {
			continue
		}

		prop := fieldProperty(field)

		if field.Cardinality == CardinalityList {
			one := 1
			prop = &Property{Type: "array", Items: prop, MinItems: &one}
		}

		schema.Properties[field.Name] = prop

		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}

	return schema
}

func fieldProperty(field *FieldSchema) *Property {
	switch field.Type {
	case FieldTypeNumber, FieldTypeCurrency:
		return &Property{Type: "number"}
	case FieldTypeCheckbox:
		return &Property{Type: "boolean"}
	case FieldTypeDate:
		return &Property{Type: "string", Format: "date"}
	case FieldTypeDateTime:
		return &Property{Type: "string", Format: "date-time"}
	case FieldTypeSelect:
		return &Property{Type: "string", Enum: enumValues(field.Options)}
	case FieldTypeMultiSelect:
		return &Property{
			Type:  "array",
			Items: &Property{Type: "string", Enum: enumValues(field.Options)},
		}
	default:
		// text, user and variable snapshots are free-form strings.
		return &Property{Type: "string"}
	}
}

func enumValues(options []string) []any {
	if len(options) == 0 {
		return nil
	}

	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option)
	}

	return values
}
