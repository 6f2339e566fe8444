// Package vocab holds the external ontology terms used to describe SBOL
// designs: Sequence Ontology roles, Systems Biology Ontology interaction and
// participant terms, BioPAX molecule types and sequence encodings.
//
// The document model treats all of these as opaque URIs; nothing in pkg/sbol
// depends on this package.
package vocab

// Namespaces
const (
	SBOL    = "http://sbols.org/v2#"
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DCTerms = "http://purl.org/dc/terms/"
	Prov    = "http://www.w3.org/ns/prov#"

	// SO is the identifiers.org base for Sequence Ontology terms.
	SO = "http://identifiers.org/so/"
	// SBO is the identifiers.org base for Systems Biology Ontology terms.
	SBO    = "http://identifiers.org/biomodels.sbo/"
	BioPAX = "http://www.biopax.org/release/biopax-level3.owl#"
)

// Dublin Core terms used for names and descriptions.
const (
	DCTitle       = DCTerms + "title"
	DCDescription = DCTerms + "description"
)

// ComponentDefinition types (BioPAX).
const (
	TypeDNA           = BioPAX + "DnaRegion"
	TypeRNA           = BioPAX + "RnaRegion"
	TypeProtein       = BioPAX + "Protein"
	TypeComplex       = BioPAX + "Complex"
	TypeSmallMolecule = BioPAX + "SmallMolecule"
)

// ComponentDefinition roles (Sequence Ontology).
const (
	RolePromoter         = SO + "SO:0000167"
	RoleCDS              = SO + "SO:0000316"
	RoleTerminator       = SO + "SO:0000141"
	RoleRBS              = SO + "SO:0000139"
	RoleSGRNA            = SO + "SO:0001998"
	RoleGene             = SO + "SO:0000704"
	RoleEngineeredRegion = SO + "SO:0000804"
)

// Interaction types (SBO).
const (
	InteractionNonCovalentBinding = SBO + "SBO:0000177"
	InteractionGeneticProduction  = SBO + "SBO:0000589"
	InteractionInhibition         = SBO + "SBO:0000169"
	InteractionStimulation        = SBO + "SBO:0000170"
	InteractionDegradation        = SBO + "SBO:0000179"
	InteractionControl            = SBO + "SBO:0000168"
)

// Participation roles (SBO).
const (
	ParticipantReactant   = SBO + "SBO:0000010"
	ParticipantProduct    = SBO + "SBO:0000011"
	ParticipantPromoter   = SBO + "SBO:0000598"
	ParticipantInhibitor  = SBO + "SBO:0000020"
	ParticipantStimulator = SBO + "SBO:0000459"
	ParticipantModifier   = SBO + "SBO:0000019"
	ParticipantTemplate   = SBO + "SBO:0000645"
)

// Sequence encodings.
const (
	EncodingIUPACDNA     = "http://www.chem.qmul.ac.uk/iubmb/misc/naseq.html"
	EncodingIUPACProtein = "http://www.chem.qmul.ac.uk/iupac/AminoAcid/"
	EncodingSMILES       = "http://www.opensmiles.org/opensmiles.html"
)

// Prefixes maps well-known namespaces to the prefix conventionally used for
// them in RDF/XML output.
var Prefixes = map[string]string{
	RDF:     "rdf",
	SBOL:    "sbol",
	DCTerms: "dcterms",
	Prov:    "prov",
}

var labels = map[string]string{
	TypeDNA:                       "DNA",
	TypeRNA:                       "RNA",
	TypeProtein:                   "protein",
	TypeComplex:                   "complex",
	TypeSmallMolecule:             "small molecule",
	RolePromoter:                  "promoter",
	RoleCDS:                       "CDS",
	RoleTerminator:                "terminator",
	RoleRBS:                       "ribosome entry site",
	RoleSGRNA:                     "sgRNA",
	RoleGene:                      "gene",
	RoleEngineeredRegion:          "engineered region",
	InteractionNonCovalentBinding: "non-covalent binding",
	InteractionGeneticProduction:  "genetic production",
	InteractionInhibition:         "inhibition",
	InteractionStimulation:        "stimulation",
	InteractionDegradation:        "degradation",
	InteractionControl:            "control",
	ParticipantReactant:           "reactant",
	ParticipantProduct:            "product",
	ParticipantPromoter:           "promoter",
	ParticipantInhibitor:          "inhibitor",
	ParticipantStimulator:         "stimulator",
	ParticipantModifier:           "modifier",
	ParticipantTemplate:           "template",
	EncodingIUPACDNA:              "IUPAC DNA",
	EncodingIUPACProtein:          "IUPAC protein",
	EncodingSMILES:                "SMILES",
}

// Label returns a human-readable name for a known term, or the term itself.
func Label(term string) string {
	if l, ok := labels[term]; ok {
		return l
	}
	return term
}

// Known reports whether term is one of the constants in this package.
func Known(term string) bool {
	_, ok := labels[term]
	return ok
}
