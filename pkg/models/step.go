package models

// DurationUnit is the unit an estimated step duration is expressed in.
type DurationUnit string

const (
	DurationDays  DurationUnit = "days"
	DurationHours DurationUnit = "hours"
)

// EstimatedDuration is a step's expected lead time.
type EstimatedDuration struct {
	Value int          `json:"value" validate:"min=0"`
	Unit  DurationUnit `json:"unit"  validate:"required,oneof=days hours"`
}

// Days converts the estimate to whole days, rounding hours up. The
// case history stores estimates in days regardless of the authored unit.
func (d EstimatedDuration) Days() int {
	if d.Unit == DurationHours {
		return (d.Value + 23) / 24
	}

	return d.Value
}

// Fixed ids of the four fields injected into every step. They are
// created with the step and can never be deleted, renamed, or retyped.
const (
	SystemFieldAssignee    = "assignee"
	SystemFieldReceiveDate = "receiveDate"
	SystemFieldDeadline    = "deadline"
	SystemFieldStatus      = "status"
)

// SystemFields returns fresh copies of the four always-present fields.
func SystemFields() []*FieldSchema {
	return []*FieldSchema{
		{
			ID:          SystemFieldAssignee,
			Name:        "Assignee",
			Type:        FieldTypeUser,
			Required:    true,
			IsSystem:    true,
			Cardinality: CardinalitySingle,
			Role:        RolePerson,
			UserSource:  UserSourceUsers,
		},
		{
			ID:          SystemFieldReceiveDate,
			Name:        "Receive date",
			Type:        FieldTypeDate,
			Required:    true,
			IsSystem:    true,
			Cardinality: CardinalitySingle,
		},
		{
			ID:          SystemFieldDeadline,
			Name:        "Deadline",
			Type:        FieldTypeDate,
			Required:    true,
			IsSystem:    true,
			Cardinality: CardinalitySingle,
		},
		{
			ID:          SystemFieldStatus,
			Name:        "Status",
			Type:        FieldTypeSelect,
			Required:    true,
			IsSystem:    true,
			Cardinality: CardinalitySingle,
			Role:        RoleStatus,
		},
	}
}

// StepDefinition is one ordered stage of a workflow. Steps own their
// field schemas exclusively; Order is 0-based and kept contiguous by
// the step service on every structural change.
type StepDefinition struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name" validate:"required"`
	Description              string            `json:"description,omitempty"`
	EstimatedDuration        EstimatedDuration `json:"estimated_duration"`
	Order                    int               `json:"order"`
	IsRequired               bool              `json:"is_required"`
	HasCost                  bool              `json:"has_cost"`
	NotifyBeforeDeadlineDays int               `json:"notify_before_deadline_days"`
	AllowedActorIDs          []string          `json:"allowed_actor_ids,omitempty"`
	Fields                   []*FieldSchema    `json:"fields"`
}

// NewStepDefinition builds a step with the four system fields already
// in place.
func NewStepDefinition(name string) *StepDefinition {
	return &StepDefinition{
		Name:   name,
		Fields: SystemFields(),
	}
}

// FieldByID returns the field with the given id, or nil.
func (s *StepDefinition) FieldByID(fieldID string) *FieldSchema {
	for _, field := range s.Fields {
		if field.ID == fieldID {
			return field
		}
	}

	return nil
}

// HasSystemFields reports whether all four system field ids are present.
func (s *StepDefinition) HasSystemFields() bool {
	ids := map[string]bool{}
	for _, field := range s.Fields {
		if field.IsSystem {
			ids[field.ID] = true
		}
	}

	return ids[SystemFieldAssignee] && ids[SystemFieldReceiveDate] &&
		ids[SystemFieldDeadline] && ids[SystemFieldStatus]
}
