package sbol

import "github.com/dd0wney/sbolgraph/pkg/validation"

// Sequence is a literal residue string and the encoding it is written in.
type Sequence struct {
	Identified
	elements string
	encoding string
}

// SetElements sets the residue string.
func (s *Sequence) SetElements(elements string) error {
	if err := validation.ValidateText("elements", elements); err != nil {
		return s.invalid("SetElements", "elements", err)
	}
	s.elements = elements
	return nil
}

// Elements returns the residue string.
func (s *Sequence) Elements() string { return s.elements }

// SetEncoding sets the encoding URI (e.g. IUPAC DNA).
func (s *Sequence) SetEncoding(uri string) error {
	return s.setReference("SetEncoding", "encoding", &s.encoding, uri)
}

// Encoding returns the encoding URI.
func (s *Sequence) Encoding() string { return s.encoding }

func (s *Sequence) References() []Reference { return nil }

func (s *Sequence) Children() []string { return nil }
