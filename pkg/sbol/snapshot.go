package sbol

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/validation"
)

// Record is a flat, format-neutral view of one entity. Fields that do not
// apply to the record's kind are left empty.
type Record struct {
	Kind               string       `json:"kind" yaml:"kind"`
	Identity           string       `json:"identity" yaml:"identity"`
	PersistentIdentity string       `json:"persistentIdentity" yaml:"persistentIdentity"`
	DisplayID          string       `json:"displayId,omitempty" yaml:"displayId,omitempty"`
	Version            string       `json:"version,omitempty" yaml:"version,omitempty"`
	Name               string       `json:"name,omitempty" yaml:"name,omitempty"`
	Description        string       `json:"description,omitempty" yaml:"description,omitempty"`
	Parent             string       `json:"parent,omitempty" yaml:"parent,omitempty"`
	Types              []string     `json:"types,omitempty" yaml:"types,omitempty"`
	Roles              []string     `json:"roles,omitempty" yaml:"roles,omitempty"`
	Sequences          []string     `json:"sequences,omitempty" yaml:"sequences,omitempty"`
	Elements           string       `json:"elements,omitempty" yaml:"elements,omitempty"`
	Encoding           string       `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Definition         string       `json:"definition,omitempty" yaml:"definition,omitempty"`
	Access             string       `json:"access,omitempty" yaml:"access,omitempty"`
	Direction          string       `json:"direction,omitempty" yaml:"direction,omitempty"`
	Restriction        string       `json:"restriction,omitempty" yaml:"restriction,omitempty"`
	Subject            string       `json:"subject,omitempty" yaml:"subject,omitempty"`
	Object             string       `json:"object,omitempty" yaml:"object,omitempty"`
	Participant        string       `json:"participant,omitempty" yaml:"participant,omitempty"`
	Refinement         string       `json:"refinement,omitempty" yaml:"refinement,omitempty"`
	Local              string       `json:"local,omitempty" yaml:"local,omitempty"`
	Remote             string       `json:"remote,omitempty" yaml:"remote,omitempty"`
	Annotations        []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Snapshot is a value copy of a Document's graph. Records appear in document
// order: each top-level entity followed depth-first by the entities it owns,
// then any unowned children in creation order.
type Snapshot struct {
	Records []Record `json:"entities" yaml:"entities"`
}

// Snapshot captures the Document. References that resolve are rewritten to
// their target's persistent identity so that two Documents with the same
// reference topology produce equal snapshots.
func (d *Document) Snapshot() Snapshot {
	ordered := d.documentOrder()
	s := Snapshot{Records: make([]Record, 0, len(ordered))}
	for _, e := range ordered {
		s.Records = append(s.Records, d.record(e))
	}
	return s
}

// Canonical returns a copy sorted by persistent identity, for comparisons
// that ignore container order.
func (s Snapshot) Canonical() Snapshot {
	out := Snapshot{Records: slices.Clone(s.Records)}
	slices.SortStableFunc(out.Records, func(a, b Record) int {
		return strings.Compare(a.PersistentIdentity, b.PersistentIdentity)
	})
	return out
}

// Walk calls fn for every entity in document order (see Snapshot).
func (d *Document) Walk(fn func(e Entity, depth int) error) error {
	visited := make(map[*Identified]bool, len(d.entities))
	var visit func(e Entity, depth int) error
	visit = func(e Entity, depth int) error {
		visited[e.base()] = true
		if err := fn(e, depth); err != nil {
			return err
		}
		for _, ref := range e.Children() {
			child := d.lookup(ref)
			if child == nil || visited[child.base()] {
				continue
			}
			if err := visit(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, e := range d.entities {
		if e.Kind().TopLevel() {
			if err := visit(e, 0); err != nil {
				return err
			}
		}
	}
	for _, e := range d.entities {
		if !visited[e.base()] {
			if err := visit(e, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Document) documentOrder() []Entity {
	out := make([]Entity, 0, len(d.entities))
	_ = d.Walk(func(e Entity, _ int) error {
		out = append(out, e)
		return nil
	})
	return out
}

// canonicalRef maps ref to its target's persistent identity when it resolves.
func (d *Document) canonicalRef(ref string) string {
	if e := d.lookup(ref); e != nil {
		return e.PersistentIdentity()
	}
	return ref
}

func (d *Document) record(e Entity) Record {
	r := Record{
		Kind:               e.Kind().String(),
		Identity:           e.Identity(),
		PersistentIdentity: e.PersistentIdentity(),
		DisplayID:          e.DisplayID(),
		Version:            e.Version(),
		Name:               e.Name(),
		Description:        e.Description(),
		Parent:             e.Parent(),
		Annotations:        e.Annotations(),
	}

	switch v := e.(type) {
	case *ComponentDefinition:
		r.Types = v.Types()
		r.Roles = v.Roles()
		for _, s := range v.Sequences() {
			r.Sequences = append(r.Sequences, d.canonicalRef(s))
		}
	case *Sequence:
		r.Elements = v.Elements()
		r.Encoding = v.Encoding()
	case *Component:
		r.Definition = d.canonicalRef(v.Definition())
		r.Access = string(v.Access())
	case *SequenceConstraint:
		r.Restriction = string(v.Restriction())
		r.Subject = d.canonicalRef(v.Subject())
		r.Object = d.canonicalRef(v.Object())
	case *ModuleDefinition:
		r.Roles = v.Roles()
	case *FunctionalComponent:
		r.Definition = d.canonicalRef(v.Definition())
		r.Access = string(v.Access())
		r.Direction = string(v.Direction())
	case *Interaction:
		r.Types = v.Types()
	case *Participation:
		r.Roles = v.Roles()
		r.Participant = d.canonicalRef(v.Participant())
	case *Module:
		r.Definition = d.canonicalRef(v.Definition())
	case *Mapping:
		r.Refinement = string(v.Refinement())
		r.Local = d.canonicalRef(v.Local())
		r.Remote = d.canonicalRef(v.Remote())
	}
	if len(r.Annotations) == 0 {
		r.Annotations = nil
	}
	return r
}

// FromSnapshot rebuilds a Document from records. Entities are created in
// record order; ownership and references are wired once every record exists,
// and references are normalised to persistent identities.
func FromSnapshot(s Snapshot, opts ...Option) (*Document, error) {
	d := NewDocument(opts...)
	created := make([]Entity, len(s.Records))

	for i, r := range s.Records {
		kind, err := ParseKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := validateRecord(kind, r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		e, err := d.Create(kind, r.PersistentIdentity)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := applyFields(e, r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		created[i] = e
	}

	for i, r := range s.Records {
		e := created[i]
		if err := d.applyReferences(e, r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if r.Parent == "" {
			continue
		}
		parent, err := d.Resolve(r.Parent)
		if err != nil {
			return nil, fmt.Errorf("record %d: parent: %w", i, err)
		}
		if err := Attach(parent, e); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return d, nil
}

// validateRecord checks a record's identity fields before anything is created.
func validateRecord(kind Kind, r Record) error {
	err := validation.ValidateIdentified(&validation.IdentifiedFields{
		PersistentIdentity: r.PersistentIdentity,
		DisplayID:          r.DisplayID,
		Version:            r.Version,
	})
	if err != nil {
		return NewError("Restore").Entity(kind, r.Identity).Invalid(err).Err()
	}
	return nil
}

func applyFields(e Entity, r Record) error {
	b := e.base()
	if r.Version != "" {
		if err := b.SetVersion(r.Version); err != nil {
			return err
		}
	}
	if r.Identity != "" && r.Identity != b.identity {
		return NewError("Restore").Entity(b.kind, r.Identity).Field("identity").
			Invalid(fmt.Errorf("identity does not equal %s", b.identity)).Err()
	}
	if r.DisplayID != "" {
		if err := b.SetDisplayID(r.DisplayID); err != nil {
			return err
		}
	}
	if err := b.SetName(r.Name); err != nil {
		return err
	}
	if err := b.SetDescription(r.Description); err != nil {
		return err
	}
	for _, a := range r.Annotations {
		if err := b.AddAnnotation(a.Predicate, a.Value); err != nil {
			return err
		}
	}

	switch v := e.(type) {
	case *ComponentDefinition:
		return addAll(append(mapAdd(r.Types, v.AddType), mapAdd(r.Roles, v.AddRole)...))
	case *Sequence:
		if err := v.SetElements(r.Elements); err != nil {
			return err
		}
		if r.Encoding != "" {
			return v.SetEncoding(r.Encoding)
		}
	case *Component:
		if r.Access != "" {
			return v.SetAccess(Access(r.Access))
		}
	case *SequenceConstraint:
		if r.Restriction != "" {
			return v.SetRestriction(Restriction(r.Restriction))
		}
	case *ModuleDefinition:
		return addAll(mapAdd(r.Roles, v.AddRole))
	case *FunctionalComponent:
		if r.Access != "" {
			if err := v.SetAccess(Access(r.Access)); err != nil {
				return err
			}
		}
		if r.Direction != "" {
			return v.SetDirection(Direction(r.Direction))
		}
	case *Interaction:
		return addAll(mapAdd(r.Types, v.AddType))
	case *Participation:
		return addAll(mapAdd(r.Roles, v.AddRole))
	case *Mapping:
		if r.Refinement != "" {
			return v.SetRefinement(Refinement(r.Refinement))
		}
	}
	return nil
}

func (d *Document) applyReferences(e Entity, r Record) error {
	ref := d.canonicalRef
	switch v := e.(type) {
	case *ComponentDefinition:
		for _, s := range r.Sequences {
			if err := v.AddSequence(ref(s)); err != nil {
				return err
			}
		}
	case *Component:
		return v.SetDefinition(ref(r.Definition))
	case *SequenceConstraint:
		if err := v.SetSubject(ref(r.Subject)); err != nil {
			return err
		}
		return v.SetObject(ref(r.Object))
	case *FunctionalComponent:
		return v.SetDefinition(ref(r.Definition))
	case *Participation:
		return v.SetParticipant(ref(r.Participant))
	case *Module:
		return v.SetDefinition(ref(r.Definition))
	case *Mapping:
		if err := v.SetLocal(ref(r.Local)); err != nil {
			return err
		}
		return v.SetRemote(ref(r.Remote))
	}
	return nil
}

func mapAdd(values []string, add func(string) error) []func() error {
	fns := make([]func() error, 0, len(values))
	for _, v := range values {
		fns = append(fns, func() error { return add(v) })
	}
	return fns
}

func addAll(fns []func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// Attach adds child to parent's matching owned collection, e.g. a Component
// to a ComponentDefinition or a Mapping to a Module.
func Attach(parent, child Entity) error {
	switch p := parent.(type) {
	case *ComponentDefinition:
		switch c := child.(type) {
		case *Component:
			return p.AddComponent(c)
		case *SequenceConstraint:
			return p.AddSequenceConstraint(c)
		}
	case *ModuleDefinition:
		switch c := child.(type) {
		case *FunctionalComponent:
			return p.AddFunctionalComponent(c)
		case *Interaction:
			return p.AddInteraction(c)
		case *Module:
			return p.AddModule(c)
		}
	case *Interaction:
		if c, ok := child.(*Participation); ok {
			return p.AddParticipation(c)
		}
	case *Module:
		if c, ok := child.(*Mapping); ok {
			return p.AddMapping(c)
		}
	}
	return fmt.Errorf("%w: a %s cannot own a %s", ErrKindMismatch, parent.Kind(), child.Kind())
}
