package constraints

import (
	"testing"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

const (
	ns          = "http://example.org/"
	version     = "1.0.0"
	typeDNA     = "http://www.biopax.org/release/biopax-level3.owl#DnaRegion"
	typeProtein = "http://www.biopax.org/release/biopax-level3.owl#Protein"
	production  = "http://identifiers.org/biomodels.sbo/SBO:0000589"
	promoter    = "http://identifiers.org/biomodels.sbo/SBO:0000598"
	product     = "http://identifiers.org/biomodels.sbo/SBO:0000011"
)

// testDoc builds valid documents; any failed setter fails the test.
type testDoc struct {
	t   *testing.T
	doc *sbol.Document
}

func newTestDoc(t *testing.T) *testDoc {
	t.Helper()
	return &testDoc{t: t, doc: sbol.NewDocument()}
}

func (td *testDoc) must(err error) {
	td.t.Helper()
	if err != nil {
		td.t.Fatal(err)
	}
}

func (td *testDoc) create(kind sbol.Kind, path, displayID string) sbol.Entity {
	td.t.Helper()
	e, err := td.doc.Create(kind, ns+path)
	td.must(err)
	td.must(e.(interface{ SetDisplayID(string) error }).SetDisplayID(displayID))
	td.must(e.(interface{ SetVersion(string) error }).SetVersion(version))
	return e
}

func (td *testDoc) cd(path, typ string) *sbol.ComponentDefinition {
	td.t.Helper()
	cd := td.create(sbol.ComponentDefinitionKind, path, path).(*sbol.ComponentDefinition)
	td.must(cd.AddType(typ))
	return cd
}

func (td *testDoc) component(owner *sbol.ComponentDefinition, name string, def *sbol.ComponentDefinition) *sbol.Component {
	td.t.Helper()
	c := td.create(sbol.ComponentKind, owner.DisplayID()+"/"+name, name).(*sbol.Component)
	td.must(c.SetDefinition(def.PersistentIdentity()))
	td.must(owner.AddComponent(c))
	return c
}

func (td *testDoc) constraint(owner *sbol.ComponentDefinition, name string, subject, object *sbol.Component) *sbol.SequenceConstraint {
	td.t.Helper()
	sc := td.create(sbol.SequenceConstraintKind, owner.DisplayID()+"/"+name, name).(*sbol.SequenceConstraint)
	td.must(sc.SetRestriction(sbol.RestrictionPrecedes))
	td.must(sc.SetSubject(subject.PersistentIdentity()))
	td.must(sc.SetObject(object.PersistentIdentity()))
	td.must(owner.AddSequenceConstraint(sc))
	return sc
}

func (td *testDoc) md(path string) *sbol.ModuleDefinition {
	td.t.Helper()
	return td.create(sbol.ModuleDefinitionKind, path, path).(*sbol.ModuleDefinition)
}

func (td *testDoc) fc(owner *sbol.ModuleDefinition, name string, def *sbol.ComponentDefinition) *sbol.FunctionalComponent {
	td.t.Helper()
	fc := td.create(sbol.FunctionalComponentKind, owner.DisplayID()+"/"+name, name).(*sbol.FunctionalComponent)
	td.must(fc.SetDefinition(def.PersistentIdentity()))
	td.must(owner.AddFunctionalComponent(fc))
	return fc
}

func (td *testDoc) interaction(owner *sbol.ModuleDefinition, name, typ string) *sbol.Interaction {
	td.t.Helper()
	i := td.create(sbol.InteractionKind, owner.DisplayID()+"/"+name, name).(*sbol.Interaction)
	td.must(i.AddType(typ))
	td.must(owner.AddInteraction(i))
	return i
}

func (td *testDoc) participation(owner *sbol.Interaction, name, role, participant string) *sbol.Participation {
	td.t.Helper()
	p := td.create(sbol.ParticipationKind, owner.Parent()[len(ns):]+"/"+owner.DisplayID()+"/"+name, name).(*sbol.Participation)
	td.must(p.AddRole(role))
	td.must(p.SetParticipant(participant))
	td.must(owner.AddParticipation(p))
	return p
}

// productionModel is the A/B/M scenario: two CDs, one MD with two FCs and a
// production interaction with two participations.
func productionModel(t *testing.T) (*testDoc, *sbol.Participation) {
	t.Helper()
	td := newTestDoc(t)
	a := td.cd("A", typeDNA)
	b := td.cd("B", typeProtein)
	m := td.md("M")
	fcA := td.fc(m, "fcA", a)
	fcB := td.fc(m, "fcB", b)
	i := td.interaction(m, "I", production)
	td.participation(i, "pA", promoter, fcA.PersistentIdentity())
	pB := td.participation(i, "pB", product, fcB.PersistentIdentity())
	return td, pB
}

// entityList is a DocumentReader over an arbitrary entity slice, used to feed
// graphs a Document would refuse to build.
type entityList struct {
	entities []sbol.Entity
	docs     []*sbol.Document
}

func (l entityList) Entities() []sbol.Entity { return l.entities }

func (l entityList) Resolve(ref string) (sbol.Entity, error) {
	var err error
	for _, d := range l.docs {
		var e sbol.Entity
		if e, err = d.Resolve(ref); err == nil {
			return e, nil
		}
	}
	return nil, err
}
