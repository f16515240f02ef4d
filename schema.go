package frontend

// PropertyType is the declared type of a schema property.
type PropertyType string

const (
	TypeString  PropertyType = "string"
	TypeBoolean PropertyType = "boolean"
	TypeNumber  PropertyType = "number"
	TypeObject  PropertyType = "object"
)

// SchemaProperty declares how a dataset value is coerced.
type SchemaProperty struct {
	Type PropertyType `json:"type" yaml:"type"`
}

// Condition is satisfied when every Required field is truthy.
type Condition struct {
	Required     []string `json:"required" yaml:"required"`
	ErrorMessage string   `json:"errorMessage" yaml:"errorMessage"`
}

// Schema describes a component configuration.
type Schema struct {
	Properties map[string]SchemaProperty `json:"properties" yaml:"properties"`
	// AnyOf requires at least one satisfied condition.
	AnyOf []Condition `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// Property returns the declaration for field.
func (s *Schema) Property(field string) (SchemaProperty, bool) {
	if s == nil {
		return SchemaProperty{}, false
	}
	p, ok := s.Properties[field]
	return p, ok
}

// ValidateConfig returns the error messages of the unsatisfied anyOf
// conditions when none of them is satisfied. An empty result means valid.
func ValidateConfig(schema *Schema, config Object) []string {
	if schema == nil {
		return nil
	}

	var unsatisfied []string
	for _, condition := range schema.AnyOf {
		if !condition.satisfied(config) {
			unsatisfied = append(unsatisfied, condition.ErrorMessage)
		}
	}

	if len(schema.AnyOf)-len(unsatisfied) >= 1 {
		return nil
	}
	return unsatisfied
}

func (c Condition) satisfied(config Object) bool {
	for _, key := range c.Required {
		if !config.Get(key).Truthy() {
			return false
		}
	}
	return true
}
