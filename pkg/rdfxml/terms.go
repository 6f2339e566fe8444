// Package rdfxml reads and writes SBOL 2 documents in the RDF/XML exchange
// format. Output is deterministic: the same Document always encodes to the
// same bytes.
package rdfxml

import (
	"github.com/dd0wney/sbolgraph/pkg/sbol"
	"github.com/dd0wney/sbolgraph/pkg/vocab"
)

// Format is the codec name used in logs and metrics.
const Format = "rdfxml"

const (
	nsRDF     = vocab.RDF
	nsSBOL    = vocab.SBOL
	nsDCTerms = vocab.DCTerms
)

// classNames maps kinds to their RDF class local names.
var classNames = map[sbol.Kind]string{
	sbol.ComponentDefinitionKind: "ComponentDefinition",
	sbol.SequenceKind:            "Sequence",
	sbol.ComponentKind:           "Component",
	sbol.SequenceConstraintKind:  "SequenceConstraint",
	sbol.ModuleDefinitionKind:    "ModuleDefinition",
	sbol.FunctionalComponentKind: "FunctionalComponent",
	sbol.InteractionKind:         "Interaction",
	sbol.ParticipationKind:       "Participation",
	sbol.ModuleKind:              "Module",
	sbol.MappingKind:             "MapsTo",
}

// ownerProperties maps child kinds to the property their owner lists them
// under.
var ownerProperties = map[sbol.Kind]string{
	sbol.ComponentKind:           "component",
	sbol.SequenceConstraintKind:  "sequenceConstraint",
	sbol.FunctionalComponentKind: "functionalComponent",
	sbol.InteractionKind:         "interaction",
	sbol.ParticipationKind:       "participation",
	sbol.ModuleKind:              "module",
	sbol.MappingKind:             "mapsTo",
}

func kindForClass(local string) (sbol.Kind, bool) {
	for k, name := range classNames {
		if name == local {
			return k, true
		}
	}
	return 0, false
}

func isOwnerProperty(local string) bool {
	for _, p := range ownerProperties {
		if p == local {
			return true
		}
	}
	return false
}
