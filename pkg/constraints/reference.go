package constraints

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// ReferenceConstraint checks that every set reference field resolves within
// the document, and to an entity of the kind the field requires. Unset
// references are left to RequiredFieldConstraint.
type ReferenceConstraint struct{}

// Name returns the constraint name
func (rc *ReferenceConstraint) Name() string {
	return "ReferenceConstraint"
}

// Validate resolves every reference of every entity
func (rc *ReferenceConstraint) Validate(doc DocumentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, e := range doc.Entities() {
		for _, ref := range e.References() {
			if ref.Target == "" {
				continue
			}

			target, err := doc.Resolve(ref.Target)
			if err != nil {
				v := violationOn(e, MissingReference, ref.Field, rc.Name(),
					fmt.Sprintf("%s %s does not resolve in this document", ref.Field, ref.Target))
				v.Details = map[string]any{"target": ref.Target, "want": ref.Want.String()}
				violations = append(violations, v)
				continue
			}

			if target.Kind() != ref.Want {
				v := violationOn(e, MissingReference, ref.Field, rc.Name(),
					fmt.Sprintf("%s %s is a %s, want a %s", ref.Field, ref.Target, target.Kind(), ref.Want))
				v.Details = map[string]any{
					"target": ref.Target,
					"want":   ref.Want.String(),
					"got":    target.Kind().String(),
				}
				violations = append(violations, v)
			}
		}
	}

	return violations, nil
}

// resolveKind returns the entity ref points at when it exists and has kind.
func resolveKind(doc DocumentReader, ref string, kind sbol.Kind) (sbol.Entity, bool) {
	if ref == "" {
		return nil, false
	}
	e, err := doc.Resolve(ref)
	if err != nil || e.Kind() != kind {
		return nil, false
	}
	return e, true
}
