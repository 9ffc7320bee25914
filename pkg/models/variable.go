package models

import "strings"

// VariableSource identifies where a catalog variable comes from.
type VariableSource string

const (
	VariableSourceRequest VariableSource = "request" // Mirrors a field of the incoming request
	VariableSourceSystem  VariableSource = "system"  // Provided by the platform itself
	VariableSourceCustom  VariableSource = "custom"  // Authored by an administrator
)

// Editable reports whether catalog entries with this source may be
// changed or removed. Only custom entries are editable; request and
// system entries are seeded once and stay immutable.
func (s VariableSource) Editable() bool {
	return s == VariableSourceCustom
}

// UserSource selects which directory backs a user-typed variable.
type UserSource string

const (
	UserSourceUsers     UserSource = "users"
	UserSourceCustomers UserSource = "customers"
)

// AvailableVariable is a reusable, named, typed data slot in the
// variable catalog. Steps reference catalog entries by id; binding a
// variable to a step copies name/description/required into the step's
// field schema (see FieldSchema.VariableSourceID).
type AvailableVariable struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"          validate:"required"`
	Description  string         `json:"description"`
	Source       VariableSource `json:"source"        validate:"required,oneof=request system custom"`
	Type         FieldType      `json:"type"          validate:"required"`
	Options      []string       `json:"options,omitempty"`
	DefaultValue string         `json:"default_value,omitempty"`
	IsRequired   bool           `json:"is_required"`
	UserSource   UserSource     `json:"user_source,omitempty" validate:"omitempty,oneof=users customers"`
}

// NameEquals compares catalog names the way the catalog enforces
// uniqueness: trimmed and case-insensitive.
func (v *AvailableVariable) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(v.Name), strings.TrimSpace(name))
}
