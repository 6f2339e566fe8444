package constraints

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// CardinalityConstraint validates the number of values a multi-valued field
// holds on every entity of one kind.
type CardinalityConstraint struct {
	Kind  sbol.Kind // Kind to apply constraint to
	Field string    // "type", "role", "sequence", or an owned collection name
	Min   int       // Minimum number of values (0 = optional)
	Max   int       // Maximum number of values (0 = unlimited)
}

// Name returns the constraint name
func (cc *CardinalityConstraint) Name() string {
	return fmt.Sprintf("CardinalityConstraint(%s,%s,[%d,%d])", cc.Kind, cc.Field, cc.Min, cc.Max)
}

// Validate checks the cardinality constraint against all entities of the target kind
func (cc *CardinalityConstraint) Validate(doc DocumentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, e := range doc.Entities() {
		if e.Kind() != cc.Kind {
			continue
		}
		count, ok := countValues(e, cc.Field)
		if !ok {
			return nil, fmt.Errorf("%s has no multi-valued field %q", cc.Kind, cc.Field)
		}

		// Check minimum
		if cc.Min > 0 && count < cc.Min {
			v := violationOn(e, MissingRequiredField, cc.Field, cc.Name(),
				fmt.Sprintf("%s %s has %d %s value(s), minimum is %d", e.Kind(), e.Identity(), count, cc.Field, cc.Min))
			v.Details = map[string]any{"count": count, "min": cc.Min}
			violations = append(violations, v)
		}

		// Check maximum
		if cc.Max > 0 && count > cc.Max {
			v := violationOn(e, CardinalityViolation, cc.Field, cc.Name(),
				fmt.Sprintf("%s %s has %d %s value(s), maximum is %d", e.Kind(), e.Identity(), count, cc.Field, cc.Max))
			v.Details = map[string]any{"count": count, "max": cc.Max}
			violations = append(violations, v)
		}
	}

	return violations, nil
}

// countValues counts the values of a multi-valued field
func countValues(e sbol.Entity, field string) (int, bool) {
	switch x := e.(type) {
	case *sbol.ComponentDefinition:
		switch field {
		case "type":
			return len(x.Types()), true
		case "role":
			return len(x.Roles()), true
		case "sequence":
			return len(x.Sequences()), true
		case "component":
			return len(x.Components()), true
		case "sequenceConstraint":
			return len(x.SequenceConstraints()), true
		}
	case *sbol.ModuleDefinition:
		switch field {
		case "role":
			return len(x.Roles()), true
		case "functionalComponent":
			return len(x.FunctionalComponents()), true
		case "interaction":
			return len(x.Interactions()), true
		case "module":
			return len(x.Modules()), true
		}
	case *sbol.Interaction:
		switch field {
		case "type":
			return len(x.Types()), true
		case "participation":
			return len(x.Participations()), true
		}
	case *sbol.Participation:
		if field == "role" {
			return len(x.Roles()), true
		}
	case *sbol.Module:
		if field == "mapsTo" {
			return len(x.Mappings()), true
		}
	}
	return 0, false
}
