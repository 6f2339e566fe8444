package constraints

import (
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// DocumentReader defines the read-only operations needed for constraint
// validation. *sbol.Document implements it.
type DocumentReader interface {
	// Entities returns every entity in creation order.
	Entities() []sbol.Entity
	// Resolve looks an entity up by persistent or full identity.
	Resolve(ref string) (sbol.Entity, error)
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	MissingReference ViolationType = iota
	MissingRequiredField
	ForeignSubjectObject
	DuplicateIdentity
	CardinalityViolation
)

func (vt ViolationType) String() string {
	switch vt {
	case MissingReference:
		return "missing-reference"
	case MissingRequiredField:
		return "missing-required-field"
	case ForeignSubjectObject:
		return "foreign-subject-object"
	case DuplicateIdentity:
		return "duplicate-identity"
	case CardinalityViolation:
		return "cardinality"
	default:
		return "unknown"
	}
}

// Violation represents a constraint violation on one entity field.
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Identity   string    // identity of the offending entity
	Kind       sbol.Kind // kind of the offending entity
	Field      string    // SBOL property name, "" for whole-entity violations
	Constraint string
	Message    string
	Details    map[string]any
}

// Constraint is the interface that all constraint types must implement.
type Constraint interface {
	// Validate checks the constraint against the document
	// Returns a list of violations (empty if valid)
	Validate(doc DocumentReader) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}

func violationOn(e sbol.Entity, vt ViolationType, field, constraint, message string) Violation {
	return Violation{
		Type:       vt,
		Severity:   Error,
		Identity:   e.Identity(),
		Kind:       e.Kind(),
		Field:      field,
		Constraint: constraint,
		Message:    message,
	}
}
