package sbol

import "fmt"

// Kind identifies the SBOL class of an entity.
type Kind int

const (
	ComponentDefinitionKind Kind = iota + 1
	SequenceKind
	ComponentKind
	SequenceConstraintKind
	ModuleDefinitionKind
	FunctionalComponentKind
	InteractionKind
	ParticipationKind
	ModuleKind
	MappingKind
)

var kindNames = map[Kind]string{
	ComponentDefinitionKind: "ComponentDefinition",
	SequenceKind:            "Sequence",
	ComponentKind:           "Component",
	SequenceConstraintKind:  "SequenceConstraint",
	ModuleDefinitionKind:    "ModuleDefinition",
	FunctionalComponentKind: "FunctionalComponent",
	InteractionKind:         "Interaction",
	ParticipationKind:       "Participation",
	ModuleKind:              "Module",
	MappingKind:             "Mapping",
}

// String returns the SBOL class name, e.g. "ComponentDefinition".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// TopLevel reports whether entities of this kind live directly in a Document
// rather than inside an owning definition.
func (k Kind) TopLevel() bool {
	switch k {
	case ComponentDefinitionKind, SequenceKind, ModuleDefinitionKind:
		return true
	default:
		return false
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		ComponentDefinitionKind, SequenceKind, ComponentKind, SequenceConstraintKind,
		ModuleDefinitionKind, FunctionalComponentKind, InteractionKind,
		ParticipationKind, ModuleKind, MappingKind,
	}
}
