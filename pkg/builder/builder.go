// Package builder assembles SBOL documents from plain definition tables.
//
// Every entity is named by a local path under the builder's namespace:
// top-level definitions by a single segment ("pConst"), children by their
// owner's path plus their own id ("mKate_gene/pConst"). References between
// definitions are written as local paths and expanded to persistent
// identities. The first failure is captured and turns every later call into
// a no-op, so a whole table can be fed in before checking Error.
package builder

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/identity"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// SequenceDef defines a top-level Sequence.
type SequenceDef struct {
	Path     string
	Elements string
	Encoding string
}

// ComponentDef defines a Component owned by a ComponentDefinition.
type ComponentDef struct {
	ID         string
	Definition string // local path of the instantiated ComponentDefinition
	Access     sbol.Access
}

// SequenceConstraintDef defines a positional constraint between two
// Components of the same ComponentDefinition.
type SequenceConstraintDef struct {
	ID          string
	Restriction sbol.Restriction
	Subject     string // Component id within the owner
	Object      string // Component id within the owner
}

// ComponentDefinitionDef defines a top-level ComponentDefinition and its
// owned Components and SequenceConstraints.
type ComponentDefinitionDef struct {
	Path        string
	Name        string
	Description string
	Types       []string
	Roles       []string
	Sequences   []string // local paths of Sequences
	Components  []ComponentDef
	Constraints []SequenceConstraintDef
}

// FunctionalComponentDef defines a FunctionalComponent owned by a
// ModuleDefinition.
type FunctionalComponentDef struct {
	ID         string
	Definition string // local path of a ComponentDefinition
	Access     sbol.Access
	Direction  sbol.Direction
}

// ParticipationDef defines one participant of an Interaction.
type ParticipationDef struct {
	ID          string
	Roles       []string
	Participant string // FunctionalComponent id within the ModuleDefinition
}

// InteractionDef defines an Interaction owned by a ModuleDefinition.
type InteractionDef struct {
	ID             string
	Types          []string
	Participations []ParticipationDef
}

// MappingDef connects a local FunctionalComponent with one inside the
// instantiated ModuleDefinition.
type MappingDef struct {
	ID         string
	Refinement sbol.Refinement
	Local      string // FunctionalComponent id within the owning ModuleDefinition
	Remote     string // FunctionalComponent id within the Module's definition
}

// ModuleDef defines a Module instance owned by a ModuleDefinition.
type ModuleDef struct {
	ID         string
	Definition string // local path of the instantiated ModuleDefinition
	Mappings   []MappingDef
}

// ModuleDefinitionDef defines a top-level ModuleDefinition and everything it
// owns.
type ModuleDefinitionDef struct {
	Path                 string
	Name                 string
	Description          string
	Roles                []string
	FunctionalComponents []FunctionalComponentDef
	Interactions         []InteractionDef
	Modules              []ModuleDef
}

// Builder populates one Document.
type Builder struct {
	doc    *sbol.Document
	ns     identity.Namespace
	logger logging.Logger
	err    error // first error, sticky
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build progress.
func WithLogger(logger logging.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a builder that adds to doc. A nil doc starts a fresh one.
func New(doc *sbol.Document, ns identity.Namespace, opts ...Option) *Builder {
	if doc == nil {
		doc = sbol.NewDocument()
	}
	b := &Builder{doc: doc, ns: ns, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Error returns the first error encountered, if any.
func (b *Builder) Error() error { return b.err }

// Document returns the document being built, complete or not.
func (b *Builder) Document() *sbol.Document { return b.doc }

// Build returns the document, or the first error encountered.
func (b *Builder) Build() (*sbol.Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.logger.Info("document built",
		logging.Count(b.doc.Len()),
		logging.Int("top_levels", len(b.doc.TopLevels())))
	return b.doc, nil
}

// Ref expands a local path into its persistent identity. It returns "" and
// records the error when the path is invalid.
func (b *Builder) Ref(path string) string {
	if b.err != nil {
		return ""
	}
	uri, err := b.ns.PersistentURI(path)
	if err != nil {
		b.fail(fmt.Errorf("path %q: %w", path, err))
		return ""
	}
	return uri
}

// Sequences creates top-level Sequences.
func (b *Builder) Sequences(defs ...SequenceDef) *Builder {
	for _, def := range defs {
		if b.err != nil {
			return b
		}
		seq, err := b.doc.CreateSequence(b.Ref(def.Path))
		if !b.check(def.Path, err) {
			return b
		}
		b.identify(seq, def.Path)
		b.check(def.Path, seq.SetElements(def.Elements))
		b.check(def.Path, seq.SetEncoding(def.Encoding))
	}
	return b
}

// ComponentDefinitions creates top-level ComponentDefinitions with their
// Components and SequenceConstraints.
func (b *Builder) ComponentDefinitions(defs ...ComponentDefinitionDef) *Builder {
	for _, def := range defs {
		b.componentDefinition(def)
		if b.err != nil {
			return b
		}
	}
	return b
}

func (b *Builder) componentDefinition(def ComponentDefinitionDef) {
	cd, err := b.doc.CreateComponentDefinition(b.Ref(def.Path))
	if !b.check(def.Path, err) {
		return
	}
	b.identify(cd, def.Path)
	b.check(def.Path, cd.SetName(def.Name))
	b.check(def.Path, cd.SetDescription(def.Description))
	for _, t := range def.Types {
		b.check(def.Path, cd.AddType(t))
	}
	for _, r := range def.Roles {
		b.check(def.Path, cd.AddRole(r))
	}
	for _, s := range def.Sequences {
		b.check(def.Path, cd.AddSequence(b.Ref(s)))
	}

	for _, cdef := range def.Components {
		path := def.Path + "/" + cdef.ID
		c, err := b.doc.CreateComponent(b.Ref(path))
		if !b.check(path, err) {
			return
		}
		b.identify(c, path)
		b.check(path, c.SetDefinition(b.Ref(cdef.Definition)))
		if cdef.Access != "" {
			b.check(path, c.SetAccess(cdef.Access))
		}
		b.check(path, cd.AddComponent(c))
	}

	for _, scdef := range def.Constraints {
		path := def.Path + "/" + scdef.ID
		sc, err := b.doc.CreateSequenceConstraint(b.Ref(path))
		if !b.check(path, err) {
			return
		}
		b.identify(sc, path)
		b.check(path, sc.SetRestriction(scdef.Restriction))
		b.check(path, sc.SetSubject(b.Ref(def.Path+"/"+scdef.Subject)))
		b.check(path, sc.SetObject(b.Ref(def.Path+"/"+scdef.Object)))
		b.check(path, cd.AddSequenceConstraint(sc))
	}
}

// ModuleDefinitions creates top-level ModuleDefinitions with their
// FunctionalComponents, Interactions and Modules.
func (b *Builder) ModuleDefinitions(defs ...ModuleDefinitionDef) *Builder {
	for _, def := range defs {
		b.moduleDefinition(def)
		if b.err != nil {
			return b
		}
	}
	return b
}

func (b *Builder) moduleDefinition(def ModuleDefinitionDef) {
	md, err := b.doc.CreateModuleDefinition(b.Ref(def.Path))
	if !b.check(def.Path, err) {
		return
	}
	b.identify(md, def.Path)
	b.check(def.Path, md.SetName(def.Name))
	b.check(def.Path, md.SetDescription(def.Description))
	for _, r := range def.Roles {
		b.check(def.Path, md.AddRole(r))
	}

	for _, fcdef := range def.FunctionalComponents {
		path := def.Path + "/" + fcdef.ID
		fc, err := b.doc.CreateFunctionalComponent(b.Ref(path))
		if !b.check(path, err) {
			return
		}
		b.identify(fc, path)
		b.check(path, fc.SetDefinition(b.Ref(fcdef.Definition)))
		if fcdef.Access != "" {
			b.check(path, fc.SetAccess(fcdef.Access))
		}
		if fcdef.Direction != "" {
			b.check(path, fc.SetDirection(fcdef.Direction))
		}
		b.check(path, md.AddFunctionalComponent(fc))
	}

	for _, idef := range def.Interactions {
		b.interaction(md, def.Path, idef)
	}

	for _, mdef := range def.Modules {
		b.module(md, def.Path, mdef)
	}
}

func (b *Builder) interaction(md *sbol.ModuleDefinition, mdPath string, def InteractionDef) {
	if b.err != nil {
		return
	}
	path := mdPath + "/" + def.ID
	i, err := b.doc.CreateInteraction(b.Ref(path))
	if !b.check(path, err) {
		return
	}
	b.identify(i, path)
	for _, t := range def.Types {
		b.check(path, i.AddType(t))
	}
	for _, pdef := range def.Participations {
		ppath := path + "/" + pdef.ID
		p, err := b.doc.CreateParticipation(b.Ref(ppath))
		if !b.check(ppath, err) {
			return
		}
		b.identify(p, ppath)
		for _, r := range pdef.Roles {
			b.check(ppath, p.AddRole(r))
		}
		b.check(ppath, p.SetParticipant(b.Ref(mdPath+"/"+pdef.Participant)))
		b.check(ppath, i.AddParticipation(p))
	}
	b.check(path, md.AddInteraction(i))
}

func (b *Builder) module(md *sbol.ModuleDefinition, mdPath string, def ModuleDef) {
	if b.err != nil {
		return
	}
	path := mdPath + "/" + def.ID
	m, err := b.doc.CreateModule(b.Ref(path))
	if !b.check(path, err) {
		return
	}
	b.identify(m, path)
	b.check(path, m.SetDefinition(b.Ref(def.Definition)))
	for _, mpdef := range def.Mappings {
		mpath := path + "/" + mpdef.ID
		mp, err := b.doc.CreateMapping(b.Ref(mpath))
		if !b.check(mpath, err) {
			return
		}
		b.identify(mp, mpath)
		b.check(mpath, mp.SetRefinement(mpdef.Refinement))
		b.check(mpath, mp.SetLocal(b.Ref(mdPath+"/"+mpdef.Local)))
		b.check(mpath, mp.SetRemote(b.Ref(def.Definition+"/"+mpdef.Remote)))
		b.check(mpath, m.AddMapping(mp))
	}
	b.check(path, md.AddModule(m))
}

// Attach adds the entity at childPath to the entity at parentPath. Adding a
// child to its current owner again is a no-op.
func (b *Builder) Attach(parentPath, childPath string) *Builder {
	if b.err != nil {
		return b
	}
	parent, err := b.doc.Resolve(b.Ref(parentPath))
	if !b.check(parentPath, err) {
		return b
	}
	child, err := b.doc.Resolve(b.Ref(childPath))
	if !b.check(childPath, err) {
		return b
	}
	b.check(childPath, sbol.Attach(parent, child))
	return b
}

type versioned interface {
	SetDisplayID(id string) error
	SetVersion(version string) error
}

// identify sets the displayId from the path and applies the namespace
// version.
func (b *Builder) identify(e versioned, path string) {
	if !b.check(path, e.SetDisplayID(identity.DisplayID(path))) {
		return
	}
	if b.ns.Version != "" {
		b.check(path, e.SetVersion(b.ns.Version))
	}
}

// check records err against path and reports whether the build is still
// clean.
func (b *Builder) check(path string, err error) bool {
	if b.err != nil {
		return false
	}
	if err != nil {
		b.fail(fmt.Errorf("build %s: %w", path, err))
		return false
	}
	return true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
		b.logger.Error("build failed", logging.Error(err))
	}
}
