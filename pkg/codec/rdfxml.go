package codec

import (
	"io"

	"github.com/dd0wney/sbolgraph/pkg/rdfxml"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// RDFXML is the SBOL 2 exchange format.
type RDFXML struct {
	serializer *rdfxml.Serializer
	parser     *rdfxml.Parser
}

// NewRDFXML returns the RDF/XML codec.
func NewRDFXML(s Settings) *RDFXML {
	return &RDFXML{
		serializer: rdfxml.NewSerializer(
			rdfxml.WithValidator(s.validator()),
			rdfxml.WithLogger(s.Logger),
			rdfxml.WithMetrics(s.Metrics),
		),
		parser: rdfxml.NewParser(
			rdfxml.ParseWithLogger(s.Logger),
			rdfxml.ParseWithMetrics(s.Metrics),
		),
	}
}

func (c *RDFXML) Name() string { return rdfxml.Format }

func (c *RDFXML) Encode(w io.Writer, doc *sbol.Document) error {
	return c.serializer.Encode(w, doc)
}

func (c *RDFXML) Decode(r io.Reader) (*sbol.Document, error) {
	return c.parser.Parse(r)
}
