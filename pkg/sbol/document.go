// Package sbol implements an SBOL 2 document model: typed, versioned design
// entities that reference each other by identity, held in a Document that
// enforces identity uniqueness.
//
// A Document is not safe for concurrent use. Build it from one goroutine (or
// guard it externally), then hand it to a serializer; serializers only read.
package sbol

import (
	"fmt"
	"slices"

	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/validation"
)

// Document creates entities and owns them for its whole lifetime.
type Document struct {
	entities     []Entity
	byPersistent map[string]Entity
	byIdentity   map[string]Entity

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for creation and ownership events.
func WithLogger(logger logging.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records entity creation in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(d *Document) {
		d.metrics = r
	}
}

// NewDocument returns an empty Document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		byPersistent: make(map[string]Entity),
		byIdentity:   make(map[string]Entity),
		logger:       logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateComponentDefinition registers a new ComponentDefinition.
func (d *Document) CreateComponentDefinition(persistentIdentity string) (*ComponentDefinition, error) {
	cd := &ComponentDefinition{}
	if err := d.register(cd, ComponentDefinitionKind, persistentIdentity); err != nil {
		return nil, err
	}
	return cd, nil
}

// CreateSequence registers a new Sequence.
func (d *Document) CreateSequence(persistentIdentity string) (*Sequence, error) {
	s := &Sequence{}
	if err := d.register(s, SequenceKind, persistentIdentity); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateComponent registers a new Component with public access.
func (d *Document) CreateComponent(persistentIdentity string) (*Component, error) {
	c := &Component{access: AccessPublic}
	if err := d.register(c, ComponentKind, persistentIdentity); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateSequenceConstraint registers a new SequenceConstraint.
func (d *Document) CreateSequenceConstraint(persistentIdentity string) (*SequenceConstraint, error) {
	sc := &SequenceConstraint{}
	if err := d.register(sc, SequenceConstraintKind, persistentIdentity); err != nil {
		return nil, err
	}
	return sc, nil
}

// CreateModuleDefinition registers a new ModuleDefinition.
func (d *Document) CreateModuleDefinition(persistentIdentity string) (*ModuleDefinition, error) {
	md := &ModuleDefinition{}
	if err := d.register(md, ModuleDefinitionKind, persistentIdentity); err != nil {
		return nil, err
	}
	return md, nil
}

// CreateFunctionalComponent registers a new FunctionalComponent with public
// access and no direction.
func (d *Document) CreateFunctionalComponent(persistentIdentity string) (*FunctionalComponent, error) {
	fc := &FunctionalComponent{access: AccessPublic, direction: DirectionNone}
	if err := d.register(fc, FunctionalComponentKind, persistentIdentity); err != nil {
		return nil, err
	}
	return fc, nil
}

// CreateInteraction registers a new Interaction.
func (d *Document) CreateInteraction(persistentIdentity string) (*Interaction, error) {
	i := &Interaction{}
	if err := d.register(i, InteractionKind, persistentIdentity); err != nil {
		return nil, err
	}
	return i, nil
}

// CreateParticipation registers a new Participation.
func (d *Document) CreateParticipation(persistentIdentity string) (*Participation, error) {
	p := &Participation{}
	if err := d.register(p, ParticipationKind, persistentIdentity); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateModule registers a new Module.
func (d *Document) CreateModule(persistentIdentity string) (*Module, error) {
	m := &Module{}
	if err := d.register(m, ModuleKind, persistentIdentity); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMapping registers a new Mapping.
func (d *Document) CreateMapping(persistentIdentity string) (*Mapping, error) {
	mp := &Mapping{}
	if err := d.register(mp, MappingKind, persistentIdentity); err != nil {
		return nil, err
	}
	return mp, nil
}

// Create registers a new entity of the given kind. It is the untyped form of
// the Create<Kind> methods, used by decoders.
func (d *Document) Create(kind Kind, persistentIdentity string) (Entity, error) {
	var (
		e   Entity
		err error
	)
	switch kind {
	case ComponentDefinitionKind:
		e, err = d.CreateComponentDefinition(persistentIdentity)
	case SequenceKind:
		e, err = d.CreateSequence(persistentIdentity)
	case ComponentKind:
		e, err = d.CreateComponent(persistentIdentity)
	case SequenceConstraintKind:
		e, err = d.CreateSequenceConstraint(persistentIdentity)
	case ModuleDefinitionKind:
		e, err = d.CreateModuleDefinition(persistentIdentity)
	case FunctionalComponentKind:
		e, err = d.CreateFunctionalComponent(persistentIdentity)
	case InteractionKind:
		e, err = d.CreateInteraction(persistentIdentity)
	case ParticipationKind:
		e, err = d.CreateParticipation(persistentIdentity)
	case ModuleKind:
		e, err = d.CreateModule(persistentIdentity)
	case MappingKind:
		e, err = d.CreateMapping(persistentIdentity)
	default:
		return nil, fmt.Errorf("%w: cannot create kind %d", ErrKindMismatch, kind)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (d *Document) register(e Entity, kind Kind, persistentIdentity string) error {
	op := "Create" + kind.String()
	if err := validation.ValidateURI("persistentIdentity", persistentIdentity); err != nil {
		d.metrics.RecordEntityRejected(kind.String(), "invalid")
		return NewError(op).Entity(kind, persistentIdentity).Field("persistentIdentity").Invalid(err).Err()
	}
	if existing := d.lookup(persistentIdentity); existing != nil {
		d.metrics.RecordEntityRejected(kind.String(), "duplicate")
		d.logger.Warn("duplicate identity rejected",
			logging.Identity(persistentIdentity), logging.Kind(kind.String()))
		return &DuplicateIdentityError{Identity: persistentIdentity, Kind: kind, Existing: existing.Kind()}
	}

	b := e.base()
	b.doc = d
	b.kind = kind
	b.seq = len(d.entities)
	b.identity = persistentIdentity
	b.persistentIdentity = persistentIdentity

	d.entities = append(d.entities, e)
	d.byPersistent[persistentIdentity] = e
	d.byIdentity[persistentIdentity] = e

	d.metrics.RecordEntityCreated(kind.String())
	d.logger.Debug("entity created", logging.Identity(persistentIdentity), logging.Kind(kind.String()))
	return nil
}

// reindex moves e to a new full identity after a version change.
func (d *Document) reindex(e *Identified, identity string) error {
	if existing := d.lookup(identity); existing != nil && existing.base() != e {
		return &DuplicateIdentityError{Identity: identity, Kind: e.kind, Existing: existing.Kind()}
	}
	self := d.byPersistent[e.persistentIdentity]
	if d.byIdentity[e.identity] == self {
		delete(d.byIdentity, e.identity)
	}
	d.byIdentity[identity] = self
	return nil
}

// adopt records parent as the owner of child. It reports false when child
// is already owned by parent.
func (d *Document) adopt(op string, parent *Identified, child Entity) (bool, error) {
	if d == nil {
		return false, NewError(op).Entity(parent.kind, parent.identity).Cause(ErrForeignDocument).Err()
	}
	c := child.base()
	if c.doc != d {
		return false, NewError(op).Entity(parent.kind, parent.identity).
			Cause(fmt.Errorf("%w: %s", ErrForeignDocument, c.identity)).Err()
	}
	if c == parent {
		return false, NewError(op).Entity(parent.kind, parent.identity).
			Invalid(fmt.Errorf("entity cannot own itself")).Err()
	}
	switch c.parent {
	case parent.persistentIdentity:
		return false, nil
	case "":
	default:
		return false, NewError(op).Entity(parent.kind, parent.identity).
			Cause(fmt.Errorf("%w: %s is owned by %s", ErrAlreadyOwned, c.identity, c.parent)).Err()
	}
	c.parent = parent.persistentIdentity
	d.logger.Debug("entity adopted",
		logging.Identity(c.persistentIdentity), logging.Kind(c.kind.String()), logging.Ref(parent.persistentIdentity))
	return true, nil
}

func (d *Document) lookup(ref string) Entity {
	if e, ok := d.byPersistent[ref]; ok {
		return e
	}
	if e, ok := d.byIdentity[ref]; ok {
		return e
	}
	return nil
}

// Resolve returns the entity whose persistent identity or full identity is
// ref.
func (d *Document) Resolve(ref string) (Entity, error) {
	if e := d.lookup(ref); e != nil {
		return e, nil
	}
	return nil, &UnresolvedReferenceError{Reference: ref}
}

func resolveAs[T Entity](d *Document, ref string, kind Kind) (T, error) {
	var zero T
	e, err := d.Resolve(ref)
	if err != nil {
		return zero, err
	}
	typed, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is a %s, not a %s", ErrKindMismatch, ref, e.Kind(), kind)
	}
	return typed, nil
}

// ResolveComponentDefinition resolves ref and checks its kind.
func (d *Document) ResolveComponentDefinition(ref string) (*ComponentDefinition, error) {
	return resolveAs[*ComponentDefinition](d, ref, ComponentDefinitionKind)
}

// ResolveSequence resolves ref and checks its kind.
func (d *Document) ResolveSequence(ref string) (*Sequence, error) {
	return resolveAs[*Sequence](d, ref, SequenceKind)
}

// ResolveComponent resolves ref and checks its kind.
func (d *Document) ResolveComponent(ref string) (*Component, error) {
	return resolveAs[*Component](d, ref, ComponentKind)
}

// ResolveModuleDefinition resolves ref and checks its kind.
func (d *Document) ResolveModuleDefinition(ref string) (*ModuleDefinition, error) {
	return resolveAs[*ModuleDefinition](d, ref, ModuleDefinitionKind)
}

// ResolveFunctionalComponent resolves ref and checks its kind.
func (d *Document) ResolveFunctionalComponent(ref string) (*FunctionalComponent, error) {
	return resolveAs[*FunctionalComponent](d, ref, FunctionalComponentKind)
}

// ResolveModule resolves ref and checks its kind.
func (d *Document) ResolveModule(ref string) (*Module, error) {
	return resolveAs[*Module](d, ref, ModuleKind)
}

// Entities returns every entity in creation order.
func (d *Document) Entities() []Entity {
	return slices.Clone(d.entities)
}

// Len returns the number of entities in the Document.
func (d *Document) Len() int {
	return len(d.entities)
}

// Position returns the creation index of the entity ref resolves to, or -1.
func (d *Document) Position(ref string) int {
	if e := d.lookup(ref); e != nil {
		return e.base().seq
	}
	return -1
}

// TopLevels returns the ComponentDefinitions, Sequences and
// ModuleDefinitions in creation order.
func (d *Document) TopLevels() []Entity {
	var out []Entity
	for _, e := range d.entities {
		if e.Kind().TopLevel() {
			out = append(out, e)
		}
	}
	return out
}

func collect[T Entity](d *Document) []T {
	var out []T
	for _, e := range d.entities {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// ComponentDefinitions returns every ComponentDefinition in creation order.
func (d *Document) ComponentDefinitions() []*ComponentDefinition {
	return collect[*ComponentDefinition](d)
}

// Sequences returns every Sequence in creation order.
func (d *Document) Sequences() []*Sequence {
	return collect[*Sequence](d)
}

// ModuleDefinitions returns every ModuleDefinition in creation order.
func (d *Document) ModuleDefinitions() []*ModuleDefinition {
	return collect[*ModuleDefinition](d)
}

// Count returns how many entities of kind the Document holds.
func (d *Document) Count(kind Kind) int {
	n := 0
	for _, e := range d.entities {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}
