package constraints

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// MembershipConstraint checks container/contained pairs: a SequenceConstraint
// may only relate Components of its own ComponentDefinition, and a Mapping
// must bind a FunctionalComponent of the enclosing ModuleDefinition (local) to
// one of the Module's definition (remote). References that do not resolve are
// skipped here and reported by ReferenceConstraint.
type MembershipConstraint struct{}

// Name returns the constraint name
func (mc *MembershipConstraint) Name() string {
	return "MembershipConstraint"
}

// Validate checks every SequenceConstraint and Mapping
func (mc *MembershipConstraint) Validate(doc DocumentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, e := range doc.Entities() {
		switch x := e.(type) {
		case *sbol.SequenceConstraint:
			violations = append(violations, mc.checkSequenceConstraint(doc, x)...)
		case *sbol.Mapping:
			violations = append(violations, mc.checkMapping(doc, x)...)
		}
	}

	return violations, nil
}

func (mc *MembershipConstraint) checkSequenceConstraint(doc DocumentReader, sc *sbol.SequenceConstraint) []Violation {
	owner, ok := resolveKind(doc, sc.Parent(), sbol.ComponentDefinitionKind)
	if !ok {
		return nil
	}
	cd := owner.(*sbol.ComponentDefinition)

	var violations []Violation
	for _, ref := range sc.References() {
		target, ok := resolveKind(doc, ref.Target, sbol.ComponentKind)
		if !ok {
			continue
		}
		if target.Parent() != cd.PersistentIdentity() {
			violations = append(violations, mc.foreign(sc, ref.Field, ref.Target, target.Parent(), cd.PersistentIdentity()))
		}
	}
	return violations
}

func (mc *MembershipConstraint) checkMapping(doc DocumentReader, mp *sbol.Mapping) []Violation {
	owner, ok := resolveKind(doc, mp.Parent(), sbol.ModuleKind)
	if !ok {
		return nil
	}
	module := owner.(*sbol.Module)

	var violations []Violation
	if local, ok := resolveKind(doc, mp.Local(), sbol.FunctionalComponentKind); ok && module.Parent() != "" {
		if local.Parent() != module.Parent() {
			violations = append(violations, mc.foreign(mp, "local", mp.Local(), local.Parent(), module.Parent()))
		}
	}

	definition, ok := resolveKind(doc, module.Definition(), sbol.ModuleDefinitionKind)
	if !ok {
		return violations
	}
	if remote, ok := resolveKind(doc, mp.Remote(), sbol.FunctionalComponentKind); ok {
		if remote.Parent() != definition.PersistentIdentity() {
			violations = append(violations, mc.foreign(mp, "remote", mp.Remote(), remote.Parent(), definition.PersistentIdentity()))
		}
	}
	return violations
}

func (mc *MembershipConstraint) foreign(e sbol.Entity, field, target, got, want string) Violation {
	if got == "" {
		got = "no definition"
	}
	v := violationOn(e, ForeignSubjectObject, field, mc.Name(),
		fmt.Sprintf("%s %s belongs to %s, not %s", field, target, got, want))
	v.Details = map[string]any{"target": target, "owner": got, "expected_owner": want}
	return v
}
