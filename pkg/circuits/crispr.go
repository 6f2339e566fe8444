// Package circuits holds ready-made SBOL models.
//
// CRISPR repression follows Kiani et al., "CRISPR transcriptional repression
// devices and layered circuits in mammalian cells" (Nature Methods, 2014): a
// generic template of dCas9, guide RNA, target gene and target protein, and
// a characterization circuit that instantiates the template with the CRP_b
// promoter, gRNA_b, cas9m_BFP and an EYFP reporter.
package circuits

import (
	"github.com/dd0wney/sbolgraph/pkg/builder"
	"github.com/dd0wney/sbolgraph/pkg/identity"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
	"github.com/dd0wney/sbolgraph/pkg/vocab"
)

// Local paths of the two ModuleDefinitions.
const (
	TemplatePath = "CRISPR_Template"
	CircuitPath  = "CRPb_characterization_circuit"
)

const (
	templateTitle       = "CRISPR-based Repression Template"
	templateDescription = "Authors: S. Kiani, J. Beal, M. Ebrahimkhani, J. Huh, R. Hall, Z. Xie, Y. Li, and R. Weiss" +
		"Titel: Crispr transcriptional repression devices and layered circuits in mammalian cells" +
		"Journal: Nature Methods, vol. 11, no. 7, pp. 723-726, 2014."
)

// CRISPRRepression builds the complete repression model in a new Document.
func CRISPRRepression(ns identity.Namespace, opts ...builder.Option) (*sbol.Document, error) {
	return Populate(builder.New(nil, ns, opts...)).Build()
}

// Populate adds the repression model to b. Errors are left on b.
func Populate(b *builder.Builder) *builder.Builder {
	return b.
		ComponentDefinitions(templateDefinitions()...).
		ModuleDefinitions(template()).
		ComponentDefinitions(circuitDefinitions()...).
		Sequences(sequences()...).
		ModuleDefinitions(circuit())
}

func templateDefinitions() []builder.ComponentDefinitionDef {
	return []builder.ComponentDefinitionDef{
		{Path: "cas9_generic", Types: []string{vocab.TypeProtein}},
		{Path: "gRNA_generic", Types: []string{vocab.TypeRNA}, Roles: []string{vocab.RoleSGRNA}},
		{Path: "cas9_gRNA_complex", Types: []string{vocab.TypeComplex}},
		{Path: "target_gene", Types: []string{vocab.TypeDNA}, Roles: []string{vocab.RolePromoter}},
		{Path: "target", Types: []string{vocab.TypeProtein}},
	}
}

func template() builder.ModuleDefinitionDef {
	return builder.ModuleDefinitionDef{
		Path:        TemplatePath,
		Name:        templateTitle,
		Description: templateDescription,
		FunctionalComponents: []builder.FunctionalComponentDef{
			{ID: "cas9_generic", Definition: "cas9_generic"},
			{ID: "gRNA_generic", Definition: "gRNA_generic"},
			{ID: "cas9_gRNA_complex", Definition: "cas9_gRNA_complex"},
			{ID: "target_gene", Definition: "target_gene"},
			{ID: "target", Definition: "target"},
		},
		Interactions: []builder.InteractionDef{
			{
				ID:    "cas9_complex_formation",
				Types: []string{vocab.InteractionNonCovalentBinding},
				Participations: []builder.ParticipationDef{
					{ID: "cas9_generic", Roles: []string{vocab.ParticipantReactant}, Participant: "cas9_generic"},
					{ID: "gRNA_generic", Roles: []string{vocab.ParticipantReactant}, Participant: "gRNA_generic"},
					{ID: "cas9_gRNA_complex", Roles: []string{vocab.ParticipantProduct}, Participant: "cas9_gRNA_complex"},
				},
			},
			production("target_production", "target_gene", "target"),
			{
				ID:    "target_gene_inhibition",
				Types: []string{vocab.InteractionInhibition},
				Participations: []builder.ParticipationDef{
					{ID: "cas9_gRNA_complex", Roles: []string{vocab.ParticipantInhibitor}, Participant: "cas9_gRNA_complex"},
					{ID: "target_gene", Roles: []string{vocab.ParticipantPromoter}, Participant: "target_gene"},
				},
			},
		},
	}
}

func circuitDefinitions() []builder.ComponentDefinitionDef {
	dna := []string{vocab.TypeDNA}
	protein := []string{vocab.TypeProtein}
	precedes := func(id, subject, object string) builder.SequenceConstraintDef {
		return builder.SequenceConstraintDef{ID: id, Restriction: sbol.RestrictionPrecedes, Subject: subject, Object: object}
	}
	parts := func(ids ...string) []builder.ComponentDef {
		defs := make([]builder.ComponentDef, len(ids))
		for i, id := range ids {
			defs[i] = builder.ComponentDef{ID: id, Definition: id}
		}
		return defs
	}

	return []builder.ComponentDefinitionDef{
		{Path: "pConst", Types: dna, Roles: []string{vocab.RolePromoter}},
		{Path: "cas9m_BFP_cds", Types: dna, Roles: []string{vocab.RoleCDS}},
		{
			Path: "cas9m_BFP_gene", Types: dna, Roles: []string{vocab.RolePromoter},
			Components:  parts("pConst", "cas9m_BFP_cds"),
			Constraints: []builder.SequenceConstraintDef{precedes("cas9m_BFP_gene_constraint", "pConst", "cas9m_BFP_cds")},
		},
		{Path: "cas9m_BFP", Types: protein},
		{Path: "CRa_U6", Types: dna, Roles: []string{vocab.RolePromoter}, Sequences: []string{"CRa_U6_seq"}},
		{Path: "gRNA_b_nc", Types: dna, Roles: []string{vocab.RoleCDS}, Sequences: []string{"gRNA_b_seq"}},
		{Path: "gRNA_b_terminator", Types: dna, Roles: []string{vocab.RoleTerminator}},
		{
			Path: "gRNA_b_gene", Types: dna, Roles: []string{vocab.RolePromoter},
			Components: parts("gRNA_b_terminator", "CRa_U6", "gRNA_b_nc"),
			Constraints: []builder.SequenceConstraintDef{
				precedes("gRNA_b_gene_constraint1", "CRa_U6", "gRNA_b_nc"),
				precedes("gRNA_b_gene_constraint2", "gRNA_b_nc", "gRNA_b_terminator"),
			},
		},
		{Path: "gRNA_b", Types: []string{vocab.TypeRNA}, Roles: []string{vocab.RoleSGRNA}},
		{Path: "cas9m_BFP_gRNA_b", Types: []string{vocab.TypeComplex}},
		{Path: "mKate_cds", Types: dna, Roles: []string{vocab.RoleCDS}, Sequences: []string{"mKate_seq"}},
		{
			Path: "mKate_gene", Types: dna, Roles: []string{vocab.RolePromoter},
			Components:  parts("pConst", "mKate_cds"),
			Constraints: []builder.SequenceConstraintDef{precedes("mKate_gene_constraint", "pConst", "mKate_cds")},
		},
		{Path: "mKate", Types: protein},
		{Path: "Gal4VP16_cds", Types: dna, Roles: []string{vocab.RoleCDS}},
		{
			Path: "Gal4VP16_gene", Types: dna, Roles: []string{vocab.RolePromoter},
			Components:  parts("pConst", "Gal4VP16_cds"),
			Constraints: []builder.SequenceConstraintDef{precedes("GAL4VP16_gene_constraint", "pConst", "Gal4VP16_cds")},
		},
		{Path: "Gal4VP16", Types: protein},
		{Path: "CRP_b", Types: dna, Roles: []string{vocab.RolePromoter}, Sequences: []string{"CRP_b_seq"}},
		{Path: "EYFP_cds", Types: dna, Roles: []string{vocab.RoleCDS}},
		{
			Path: "EYFP_gene", Types: dna, Roles: []string{vocab.RolePromoter},
			Components:  parts("EYFP_cds", "CRP_b"),
			Constraints: []builder.SequenceConstraintDef{precedes("EYFP_gene_constraint", "CRP_b", "EYFP_cds")},
		},
		{Path: "EYFP", Types: protein},
	}
}

func sequences() []builder.SequenceDef {
	return []builder.SequenceDef{
		{Path: "CRa_U6_seq", Elements: craU6Elements, Encoding: vocab.EncodingIUPACDNA},
		{Path: "gRNA_b_seq", Elements: gRNABElements, Encoding: vocab.EncodingIUPACDNA},
		{Path: "mKate_seq", Elements: mKateElements, Encoding: vocab.EncodingIUPACDNA},
		{Path: "CRP_b_seq", Elements: crpBElements, Encoding: vocab.EncodingIUPACDNA},
	}
}

func circuit() builder.ModuleDefinitionDef {
	ids := []string{
		"gRNA_b_gene", "cas9m_BFP_gene", "gRNA_b", "EYFP", "Gal4VP16_gene", "Gal4VP16",
		"EYFP_gene", "cas9m_BFP", "mKate_gene", "mKate", "cas9m_BFP_gRNA_b",
	}
	fcs := make([]builder.FunctionalComponentDef, len(ids))
	for i, id := range ids {
		fcs[i] = builder.FunctionalComponentDef{
			ID:         id,
			Definition: id,
			Access:     sbol.AccessPrivate,
			Direction:  sbol.DirectionNone,
		}
	}

	useLocal := func(id, local, remote string) builder.MappingDef {
		return builder.MappingDef{ID: id, Refinement: sbol.RefinementUseLocal, Local: local, Remote: remote}
	}

	return builder.ModuleDefinitionDef{
		Path:                 CircuitPath,
		FunctionalComponents: fcs,
		Interactions: []builder.InteractionDef{
			production("mKate_production", "mKate_gene", "mKate"),
			production("Gal4VP16_production", "Gal4VP16_gene", "Gal4VP16"),
			production("cas9m_BFP_production", "cas9m_BFP_gene", "cas9m_BFP"),
			production("gRNA_b_production", "gRNA_b_gene", "gRNA_b"),
			{
				ID:    "EYFP_Activation",
				Types: []string{vocab.InteractionStimulation},
				Participations: []builder.ParticipationDef{
					{ID: "EYFP_gene", Roles: []string{vocab.ParticipantPromoter}, Participant: "EYFP_gene"},
					{ID: "Gal4VP16", Roles: []string{vocab.ParticipantStimulator}, Participant: "Gal4VP16"},
				},
			},
			degradation("mKate_deg", "mKate"),
			degradation("Gal4VP16_deg", "Gal4VP16"),
			degradation("cas9m_BFP_deg", "cas9m_BFP"),
			degradation("gRNA_b_deg", "gRNA_b"),
			degradation("EYFP_deg", "EYFP"),
			degradation("cas9m_BFP_gRNA_b_deg", "cas9m_BFP_gRNA_b"),
		},
		Modules: []builder.ModuleDef{{
			ID:         TemplatePath,
			Definition: TemplatePath,
			Mappings: []builder.MappingDef{
				useLocal("cas9m_BFP_gRNA_map", "cas9m_BFP_gRNA_b", "cas9_gRNA_complex"),
				useLocal("EYFP_map", "EYFP", "target"),
				useLocal("gRNA_b_map", "gRNA_b", "gRNA_generic"),
				useLocal("cas9m_BFP_map", "cas9m_BFP", "cas9_generic"),
				useLocal("EYFP_gene_map", "EYFP_gene", "target_gene"),
			},
		}},
	}
}

// production is a genetic production with the gene as promoter and the
// product as product.
func production(id, gene, product string) builder.InteractionDef {
	return builder.InteractionDef{
		ID:    id,
		Types: []string{vocab.InteractionGeneticProduction},
		Participations: []builder.ParticipationDef{
			{ID: gene, Roles: []string{vocab.ParticipantPromoter}, Participant: gene},
			{ID: product, Roles: []string{vocab.ParticipantProduct}, Participant: product},
		},
	}
}

func degradation(id, reactant string) builder.InteractionDef {
	return builder.InteractionDef{
		ID:    id,
		Types: []string{vocab.InteractionDegradation},
		Participations: []builder.ParticipationDef{
			{ID: reactant, Roles: []string{vocab.ParticipantReactant}, Participant: reactant},
		},
	}
}
