package sbol

import (
	"fmt"
	"slices"
)

// ModuleDefinition is a reusable functional circuit: the parts it uses, the
// interactions between them and nested sub-modules.
type ModuleDefinition struct {
	Identified
	roles                uriSet
	functionalComponents []*FunctionalComponent
	interactions         []*Interaction
	modules              []*Module
}

// AddRole adds a role URI.
func (md *ModuleDefinition) AddRole(uri string) error {
	return md.roles.add(&md.Identified, "AddRole", "role", uri)
}

// RemoveRole removes uri and reports whether it was present.
func (md *ModuleDefinition) RemoveRole(uri string) bool { return md.roles.remove(uri) }

// Roles returns the role URIs in insertion order.
func (md *ModuleDefinition) Roles() []string { return md.roles.list() }

// AddFunctionalComponent appends fc. Adding the same fc twice is a no-op.
func (md *ModuleDefinition) AddFunctionalComponent(fc *FunctionalComponent) error {
	if fc == nil {
		return md.invalid("AddFunctionalComponent", "", errNilChild)
	}
	added, err := md.doc.adopt("AddFunctionalComponent", &md.Identified, fc)
	if err != nil || !added {
		return err
	}
	md.functionalComponents = append(md.functionalComponents, fc)
	return nil
}

// FunctionalComponents returns the owned FunctionalComponents in insertion order.
func (md *ModuleDefinition) FunctionalComponents() []*FunctionalComponent {
	return slices.Clone(md.functionalComponents)
}

// AddInteraction appends i. Adding the same interaction twice is a no-op.
func (md *ModuleDefinition) AddInteraction(i *Interaction) error {
	if i == nil {
		return md.invalid("AddInteraction", "", errNilChild)
	}
	added, err := md.doc.adopt("AddInteraction", &md.Identified, i)
	if err != nil || !added {
		return err
	}
	md.interactions = append(md.interactions, i)
	return nil
}

// Interactions returns the owned Interactions in insertion order.
func (md *ModuleDefinition) Interactions() []*Interaction { return slices.Clone(md.interactions) }

// AddModule appends m. Adding the same module twice is a no-op.
func (md *ModuleDefinition) AddModule(m *Module) error {
	if m == nil {
		return md.invalid("AddModule", "", errNilChild)
	}
	added, err := md.doc.adopt("AddModule", &md.Identified, m)
	if err != nil || !added {
		return err
	}
	md.modules = append(md.modules, m)
	return nil
}

// Modules returns the owned Modules in insertion order.
func (md *ModuleDefinition) Modules() []*Module { return slices.Clone(md.modules) }

// HasFunctionalComponent reports whether ref names one of md's own
// FunctionalComponents.
func (md *ModuleDefinition) HasFunctionalComponent(ref string) bool {
	for _, fc := range md.functionalComponents {
		if fc.persistentIdentity == ref || fc.identity == ref {
			return true
		}
	}
	return false
}

func (md *ModuleDefinition) References() []Reference { return nil }

func (md *ModuleDefinition) Children() []string {
	ids := make([]string, 0, len(md.functionalComponents)+len(md.interactions)+len(md.modules))
	for _, fc := range md.functionalComponents {
		ids = append(ids, fc.persistentIdentity)
	}
	for _, i := range md.interactions {
		ids = append(ids, i.persistentIdentity)
	}
	for _, m := range md.modules {
		ids = append(ids, m.persistentIdentity)
	}
	return ids
}

// FunctionalComponent is an instance of a ComponentDefinition playing a part
// inside a ModuleDefinition.
type FunctionalComponent struct {
	Identified
	definition string
	access     Access
	direction  Direction
}

// SetDefinition references the instantiated ComponentDefinition.
func (fc *FunctionalComponent) SetDefinition(ref string) error {
	return fc.setReference("SetDefinition", "definition", &fc.definition, ref)
}

// Definition returns the referenced ComponentDefinition identity.
func (fc *FunctionalComponent) Definition() string { return fc.definition }

// SetAccess sets public or private access.
func (fc *FunctionalComponent) SetAccess(a Access) error {
	if !a.Valid() {
		return fc.invalid("SetAccess", "access", fmt.Errorf("unknown access %q", a))
	}
	fc.access = a
	return nil
}

// Access returns the access level; public unless set otherwise.
func (fc *FunctionalComponent) Access() Access { return fc.access }

// SetDirection sets in, out, inout or none.
func (fc *FunctionalComponent) SetDirection(d Direction) error {
	if !d.Valid() {
		return fc.invalid("SetDirection", "direction", fmt.Errorf("unknown direction %q", d))
	}
	fc.direction = d
	return nil
}

// Direction returns the direction; none unless set otherwise.
func (fc *FunctionalComponent) Direction() Direction { return fc.direction }

func (fc *FunctionalComponent) References() []Reference {
	return []Reference{{Field: "definition", Target: fc.definition, Want: ComponentDefinitionKind}}
}

func (fc *FunctionalComponent) Children() []string { return nil }

// Interaction is a typed biochemical event between FunctionalComponents.
type Interaction struct {
	Identified
	types          uriSet
	participations []*Participation
}

// AddType adds an interaction type URI (e.g. an SBO term).
func (i *Interaction) AddType(uri string) error {
	return i.types.add(&i.Identified, "AddType", "type", uri)
}

// RemoveType removes uri and reports whether it was present.
func (i *Interaction) RemoveType(uri string) bool { return i.types.remove(uri) }

// Types returns the type URIs in insertion order.
func (i *Interaction) Types() []string { return i.types.list() }

// AddParticipation appends p. Adding the same participation twice is a no-op.
func (i *Interaction) AddParticipation(p *Participation) error {
	if p == nil {
		return i.invalid("AddParticipation", "", errNilChild)
	}
	added, err := i.doc.adopt("AddParticipation", &i.Identified, p)
	if err != nil || !added {
		return err
	}
	i.participations = append(i.participations, p)
	return nil
}

// Participations returns the owned Participations in insertion order.
func (i *Interaction) Participations() []*Participation { return slices.Clone(i.participations) }

func (i *Interaction) References() []Reference { return nil }

func (i *Interaction) Children() []string {
	ids := make([]string, 0, len(i.participations))
	for _, p := range i.participations {
		ids = append(ids, p.persistentIdentity)
	}
	return ids
}

// Participation links one FunctionalComponent into an Interaction with a role.
type Participation struct {
	Identified
	roles       uriSet
	participant string
}

// AddRole adds a participant role URI (e.g. SBO reactant).
func (p *Participation) AddRole(uri string) error {
	return p.roles.add(&p.Identified, "AddRole", "role", uri)
}

// RemoveRole removes uri and reports whether it was present.
func (p *Participation) RemoveRole(uri string) bool { return p.roles.remove(uri) }

// Roles returns the role URIs in insertion order.
func (p *Participation) Roles() []string { return p.roles.list() }

// SetParticipant references the participating FunctionalComponent.
func (p *Participation) SetParticipant(ref string) error {
	return p.setReference("SetParticipant", "participant", &p.participant, ref)
}

// Participant returns the participating FunctionalComponent identity.
func (p *Participation) Participant() string { return p.participant }

func (p *Participation) References() []Reference {
	return []Reference{{Field: "participant", Target: p.participant, Want: FunctionalComponentKind}}
}

func (p *Participation) Children() []string { return nil }

// Module is an instance of a ModuleDefinition nested in another
// ModuleDefinition.
type Module struct {
	Identified
	definition string
	mappings   []*Mapping
}

// SetDefinition references the instantiated ModuleDefinition.
func (m *Module) SetDefinition(ref string) error {
	return m.setReference("SetDefinition", "definition", &m.definition, ref)
}

// Definition returns the referenced ModuleDefinition identity.
func (m *Module) Definition() string { return m.definition }

// AddMapping appends mp. Adding the same mapping twice is a no-op.
func (m *Module) AddMapping(mp *Mapping) error {
	if mp == nil {
		return m.invalid("AddMapping", "", errNilChild)
	}
	added, err := m.doc.adopt("AddMapping", &m.Identified, mp)
	if err != nil || !added {
		return err
	}
	m.mappings = append(m.mappings, mp)
	return nil
}

// Mappings returns the owned Mappings in insertion order.
func (m *Module) Mappings() []*Mapping { return slices.Clone(m.mappings) }

func (m *Module) References() []Reference {
	return []Reference{{Field: "definition", Target: m.definition, Want: ModuleDefinitionKind}}
}

func (m *Module) Children() []string {
	ids := make([]string, 0, len(m.mappings))
	for _, mp := range m.mappings {
		ids = append(ids, mp.persistentIdentity)
	}
	return ids
}

// Mapping binds a FunctionalComponent inside a Module's definition (remote)
// to one in the enclosing ModuleDefinition (local).
type Mapping struct {
	Identified
	refinement Refinement
	local      string
	remote     string
}

// SetRefinement sets which side wins when the two are merged.
func (mp *Mapping) SetRefinement(r Refinement) error {
	if !r.Valid() {
		return mp.invalid("SetRefinement", "refinement", fmt.Errorf("unknown refinement %q", r))
	}
	mp.refinement = r
	return nil
}

// Refinement returns the refinement, or "" when unset.
func (mp *Mapping) Refinement() Refinement { return mp.refinement }

// SetLocal references the FunctionalComponent in the enclosing definition.
func (mp *Mapping) SetLocal(ref string) error {
	return mp.setReference("SetLocal", "local", &mp.local, ref)
}

// Local returns the local FunctionalComponent identity.
func (mp *Mapping) Local() string { return mp.local }

// SetRemote references the FunctionalComponent inside the Module's definition.
func (mp *Mapping) SetRemote(ref string) error {
	return mp.setReference("SetRemote", "remote", &mp.remote, ref)
}

// Remote returns the remote FunctionalComponent identity.
func (mp *Mapping) Remote() string { return mp.remote }

func (mp *Mapping) References() []Reference {
	return []Reference{
		{Field: "local", Target: mp.local, Want: FunctionalComponentKind},
		{Field: "remote", Target: mp.remote, Want: FunctionalComponentKind},
	}
}

func (mp *Mapping) Children() []string { return nil }
