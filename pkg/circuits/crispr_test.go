package circuits

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dd0wney/sbolgraph/pkg/builder"
	"github.com/dd0wney/sbolgraph/pkg/constraints"
	"github.com/dd0wney/sbolgraph/pkg/identity"
	"github.com/dd0wney/sbolgraph/pkg/rdfxml"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
	"github.com/dd0wney/sbolgraph/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "http://sbols.org/CRISPR_Example/"

func buildModel(t *testing.T) *sbol.Document {
	t.Helper()
	ns, err := identity.NewNamespace(prefix, "1.0.0")
	require.NoError(t, err)
	doc, err := CRISPRRepression(ns)
	require.NoError(t, err)
	return doc
}

func TestCRISPRRepression_Counts(t *testing.T) {
	doc := buildModel(t)

	want := map[sbol.Kind]int{
		sbol.ComponentDefinitionKind: 25,
		sbol.SequenceKind:            4,
		sbol.ComponentKind:           11,
		sbol.SequenceConstraintKind:  6,
		sbol.ModuleDefinitionKind:    2,
		sbol.FunctionalComponentKind: 16,
		sbol.InteractionKind:         14,
		sbol.ParticipationKind:       23,
		sbol.ModuleKind:              1,
		sbol.MappingKind:             5,
	}
	for kind, n := range want {
		assert.Equal(t, n, doc.Count(kind), "count of %s", kind)
	}
	assert.Equal(t, 107, doc.Len())
}

func TestCRISPRRepression_Validates(t *testing.T) {
	doc := buildModel(t)

	result, err := constraints.NewDefaultValidator().Validate(doc)
	require.NoError(t, err)
	for _, v := range result.Violations {
		t.Errorf("unexpected violation: %s", v)
	}
	assert.True(t, result.Valid)
}

func TestCRISPRRepression_Identities(t *testing.T) {
	doc := buildModel(t)

	for _, e := range doc.Entities() {
		assert.Equal(t, "1.0.0", e.Version(), e.PersistentIdentity())
		assert.Equal(t, e.PersistentIdentity()+"/1.0.0", e.Identity())
		assert.Equal(t, identity.DisplayID(e.PersistentIdentity()), e.DisplayID())
		assert.True(t, strings.HasPrefix(e.Identity(), prefix), e.Identity())
	}

	tmpl, err := doc.ResolveModuleDefinition(prefix + TemplatePath)
	require.NoError(t, err)
	assert.Equal(t, "CRISPR-based Repression Template", tmpl.Name())
	assert.Contains(t, tmpl.Description(), "Nature Methods, vol. 11, no. 7, pp. 723-726, 2014.")
	assert.Len(t, tmpl.FunctionalComponents(), 5)
	assert.Len(t, tmpl.Interactions(), 3)
}

func TestCRISPRRepression_Circuit(t *testing.T) {
	doc := buildModel(t)

	circuit, err := doc.ResolveModuleDefinition(prefix + CircuitPath + "/1.0.0")
	require.NoError(t, err)
	require.Len(t, circuit.FunctionalComponents(), 11)
	for _, fc := range circuit.FunctionalComponents() {
		assert.Equal(t, sbol.AccessPrivate, fc.Access(), fc.Identity())
		assert.Equal(t, sbol.DirectionNone, fc.Direction(), fc.Identity())
	}
	assert.Len(t, circuit.Interactions(), 11)

	require.Len(t, circuit.Modules(), 1)
	module := circuit.Modules()[0]
	assert.Equal(t, prefix+TemplatePath, module.Definition())
	mappings := module.Mappings()
	require.Len(t, mappings, 5)
	assert.Equal(t, prefix+CircuitPath+"/cas9m_BFP_gRNA_b", mappings[0].Local())
	assert.Equal(t, prefix+TemplatePath+"/cas9_gRNA_complex", mappings[0].Remote())
	for _, mp := range mappings {
		assert.Equal(t, sbol.RefinementUseLocal, mp.Refinement())
	}

	gene, err := doc.ResolveComponentDefinition(prefix + "gRNA_b_gene")
	require.NoError(t, err)
	var order []string
	for _, c := range gene.Components() {
		order = append(order, c.DisplayID())
	}
	assert.Equal(t, []string{"gRNA_b_terminator", "CRa_U6", "gRNA_b_nc"}, order)
	sc := gene.SequenceConstraints()
	require.Len(t, sc, 2)
	assert.Equal(t, prefix+"gRNA_b_gene/CRa_U6", sc[0].Subject())
	assert.Equal(t, prefix+"gRNA_b_gene/gRNA_b_nc", sc[0].Object())
}

func TestCRISPRRepression_Sequences(t *testing.T) {
	doc := buildModel(t)

	lengths := map[string]int{
		"CRa_U6_seq": 490,
		"gRNA_b_seq": 381,
		"mKate_seq":  814,
		"CRP_b_seq":  283,
	}
	for path, n := range lengths {
		seq, err := doc.ResolveSequence(prefix + path)
		require.NoError(t, err)
		assert.Len(t, seq.Elements(), n, path)
		assert.Equal(t, vocab.EncodingIUPACDNA, seq.Encoding())
		assert.Empty(t, strings.Trim(seq.Elements(), "ACGT"), "%s has non-nucleotide characters", path)
	}

	cd, err := doc.ResolveComponentDefinition(prefix + "gRNA_b_nc")
	require.NoError(t, err)
	assert.Equal(t, []string{prefix + "gRNA_b_seq"}, cd.Sequences())
}

func TestCRISPRRepression_RoundTrip(t *testing.T) {
	doc := buildModel(t)

	data, err := rdfxml.Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "<sbol:ModuleDefinition "))
	assert.Equal(t, 25, strings.Count(string(data), "<sbol:ComponentDefinition "))

	parsed, err := rdfxml.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, doc.Snapshot(), parsed.Snapshot())

	again, err := rdfxml.Serialize(parsed)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestCRISPRRepression_CustomNamespace(t *testing.T) {
	ns, err := identity.NewNamespace("https://lab.example.com/designs#", "")
	require.NoError(t, err)

	doc, err := CRISPRRepression(ns)
	require.NoError(t, err)
	cd, err := doc.ResolveComponentDefinition("https://lab.example.com/designs#EYFP")
	require.NoError(t, err)
	assert.Equal(t, cd.PersistentIdentity(), cd.Identity())
}

func TestPopulate_IntoExistingDocument(t *testing.T) {
	ns, err := identity.NewNamespace(prefix, "1.0.0")
	require.NoError(t, err)

	doc := sbol.NewDocument()
	_, err = doc.CreateComponentDefinition(prefix + "EYFP")
	require.NoError(t, err)

	b := Populate(builder.New(doc, ns))
	require.Error(t, b.Error())
	assert.ErrorIs(t, b.Error(), sbol.ErrDuplicateIdentity)
}
