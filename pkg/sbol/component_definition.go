package sbol

import (
	"fmt"
	"slices"
)

// ComponentDefinition is a reusable molecular part: DNA, RNA, protein,
// complex or small molecule.
type ComponentDefinition struct {
	Identified
	types               uriSet
	roles               uriSet
	sequences           uriSet
	components          []*Component
	sequenceConstraints []*SequenceConstraint
}

// AddType adds a molecule type URI (e.g. a BioPAX class).
func (cd *ComponentDefinition) AddType(uri string) error {
	return cd.types.add(&cd.Identified, "AddType", "type", uri)
}

// RemoveType removes uri and reports whether it was present.
func (cd *ComponentDefinition) RemoveType(uri string) bool { return cd.types.remove(uri) }

// Types returns the type URIs in insertion order.
func (cd *ComponentDefinition) Types() []string { return cd.types.list() }

// AddRole adds a functional role URI (e.g. a Sequence Ontology term).
func (cd *ComponentDefinition) AddRole(uri string) error {
	return cd.roles.add(&cd.Identified, "AddRole", "role", uri)
}

// RemoveRole removes uri and reports whether it was present.
func (cd *ComponentDefinition) RemoveRole(uri string) bool { return cd.roles.remove(uri) }

// Roles returns the role URIs in insertion order.
func (cd *ComponentDefinition) Roles() []string { return cd.roles.list() }

// AddSequence references a Sequence by identity.
func (cd *ComponentDefinition) AddSequence(ref string) error {
	return cd.sequences.add(&cd.Identified, "AddSequence", "sequence", ref)
}

// Sequences returns the referenced Sequence identities.
func (cd *ComponentDefinition) Sequences() []string { return cd.sequences.list() }

// AddComponent appends c to the definition's sub-parts.
func (cd *ComponentDefinition) AddComponent(c *Component) error {
	if c == nil {
		return cd.invalid("AddComponent", "", errNilChild)
	}
	added, err := cd.doc.adopt("AddComponent", &cd.Identified, c)
	if err != nil || !added {
		return err
	}
	cd.components = append(cd.components, c)
	return nil
}

// Components returns the owned Components in insertion order.
func (cd *ComponentDefinition) Components() []*Component { return slices.Clone(cd.components) }

// AddSequenceConstraint appends sc to the definition's ordering constraints.
func (cd *ComponentDefinition) AddSequenceConstraint(sc *SequenceConstraint) error {
	if sc == nil {
		return cd.invalid("AddSequenceConstraint", "", errNilChild)
	}
	added, err := cd.doc.adopt("AddSequenceConstraint", &cd.Identified, sc)
	if err != nil || !added {
		return err
	}
	cd.sequenceConstraints = append(cd.sequenceConstraints, sc)
	return nil
}

// SequenceConstraints returns the owned constraints in insertion order.
func (cd *ComponentDefinition) SequenceConstraints() []*SequenceConstraint {
	return slices.Clone(cd.sequenceConstraints)
}

// HasComponent reports whether ref names one of cd's own Components.
func (cd *ComponentDefinition) HasComponent(ref string) bool {
	for _, c := range cd.components {
		if c.persistentIdentity == ref || c.identity == ref {
			return true
		}
	}
	return false
}

func (cd *ComponentDefinition) References() []Reference {
	refs := make([]Reference, 0, len(cd.sequences))
	for _, s := range cd.sequences {
		refs = append(refs, Reference{Field: "sequence", Target: s, Want: SequenceKind})
	}
	return refs
}

func (cd *ComponentDefinition) Children() []string {
	ids := make([]string, 0, len(cd.components)+len(cd.sequenceConstraints))
	for _, c := range cd.components {
		ids = append(ids, c.persistentIdentity)
	}
	for _, sc := range cd.sequenceConstraints {
		ids = append(ids, sc.persistentIdentity)
	}
	return ids
}

// Component is an instance of a ComponentDefinition used as a sub-part of
// another ComponentDefinition.
type Component struct {
	Identified
	definition string
	access     Access
}

// SetDefinition references the instantiated ComponentDefinition.
func (c *Component) SetDefinition(ref string) error {
	return c.setReference("SetDefinition", "definition", &c.definition, ref)
}

// Definition returns the referenced ComponentDefinition identity.
func (c *Component) Definition() string { return c.definition }

// SetAccess sets public or private access.
func (c *Component) SetAccess(a Access) error {
	if !a.Valid() {
		return c.invalid("SetAccess", "access", fmt.Errorf("unknown access %q", a))
	}
	c.access = a
	return nil
}

// Access returns the access level; public unless set otherwise.
func (c *Component) Access() Access { return c.access }

func (c *Component) References() []Reference {
	return []Reference{{Field: "definition", Target: c.definition, Want: ComponentDefinitionKind}}
}

func (c *Component) Children() []string { return nil }

// SequenceConstraint relates two sibling Components of one
// ComponentDefinition, e.g. "subject precedes object".
type SequenceConstraint struct {
	Identified
	restriction Restriction
	subject     string
	object      string
}

// SetRestriction sets the relation between subject and object.
func (sc *SequenceConstraint) SetRestriction(r Restriction) error {
	if !r.Valid() {
		return sc.invalid("SetRestriction", "restriction", fmt.Errorf("unknown restriction %q", r))
	}
	sc.restriction = r
	return nil
}

// Restriction returns the relation, or "" when unset.
func (sc *SequenceConstraint) Restriction() Restriction { return sc.restriction }

// SetSubject references the constrained Component.
func (sc *SequenceConstraint) SetSubject(ref string) error {
	return sc.setReference("SetSubject", "subject", &sc.subject, ref)
}

// Subject returns the subject Component identity.
func (sc *SequenceConstraint) Subject() string { return sc.subject }

// SetObject references the Component the subject is related to.
func (sc *SequenceConstraint) SetObject(ref string) error {
	return sc.setReference("SetObject", "object", &sc.object, ref)
}

// Object returns the object Component identity.
func (sc *SequenceConstraint) Object() string { return sc.object }

func (sc *SequenceConstraint) References() []Reference {
	return []Reference{
		{Field: "subject", Target: sc.subject, Want: ComponentKind},
		{Field: "object", Target: sc.object, Want: ComponentKind},
	}
}

func (sc *SequenceConstraint) Children() []string { return nil }
