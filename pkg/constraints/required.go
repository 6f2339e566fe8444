package constraints

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// RequiredFieldConstraint checks that fields without a usable default are
// set: displayId and version on every entity, elements and encoding on
// Sequences, restriction and refinement on SequenceConstraints and Mappings,
// every reference field, and an owner for every child entity.
type RequiredFieldConstraint struct {
	// SkipVersion disables the version check, for unversioned documents.
	SkipVersion bool
}

// Name returns the constraint name
func (rc *RequiredFieldConstraint) Name() string {
	return "RequiredFieldConstraint"
}

// Validate checks required fields of every entity
func (rc *RequiredFieldConstraint) Validate(doc DocumentReader) ([]Violation, error) {
	violations := make([]Violation, 0)
	missing := func(e sbol.Entity, field string) {
		violations = append(violations, violationOn(e, MissingRequiredField, field, rc.Name(),
			fmt.Sprintf("%s %s has no %s", e.Kind(), e.Identity(), field)))
	}

	for _, e := range doc.Entities() {
		if e.DisplayID() == "" {
			missing(e, "displayId")
		}
		if !rc.SkipVersion && e.Version() == "" {
			missing(e, "version")
		}
		if !e.Kind().TopLevel() && e.Parent() == "" {
			v := violationOn(e, MissingRequiredField, "parent", rc.Name(),
				fmt.Sprintf("%s %s is not owned by any definition", e.Kind(), e.Identity()))
			violations = append(violations, v)
		}

		switch x := e.(type) {
		case *sbol.Sequence:
			if x.Elements() == "" {
				missing(e, "elements")
			}
			if x.Encoding() == "" {
				missing(e, "encoding")
			}
		case *sbol.SequenceConstraint:
			if x.Restriction() == "" {
				missing(e, "restriction")
			}
		case *sbol.Mapping:
			if x.Refinement() == "" {
				missing(e, "refinement")
			}
		}

		// ComponentDefinition sequences are optional; every other
		// reference field is single-valued and required.
		if e.Kind() == sbol.ComponentDefinitionKind {
			continue
		}
		for _, ref := range e.References() {
			if ref.Target == "" {
				missing(e, ref.Field)
			}
		}
	}

	return violations, nil
}
