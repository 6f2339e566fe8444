package rdfxml

import (
	"bytes"
	"errors"
	"io"

	"github.com/dd0wney/sbolgraph/pkg/constraints"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// ErrUnencodable is returned for Document content RDF/XML cannot express,
// such as an annotation predicate without a valid XML local name.
var ErrUnencodable = errors.New("cannot encode as RDF/XML")

// Serializer validates Documents and encodes them as SBOL 2 RDF/XML.
type Serializer struct {
	validator    *constraints.Validator
	validatorSet bool
	logger       logging.Logger
	metrics      *metrics.Registry
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithValidator replaces the default validator. A nil validator disables
// validation.
func WithValidator(v *constraints.Validator) Option {
	return func(s *Serializer) {
		s.validator = v
		s.validatorSet = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records serialization counts, sizes and durations in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Serializer) {
		s.metrics = r
	}
}

// NewSerializer returns a Serializer that runs the default constraints
// before encoding.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	if !s.validatorSet {
		s.validator = constraints.NewDefaultValidator(
			constraints.WithLogger(s.logger), constraints.WithMetrics(s.metrics))
	}
	return s
}

// Serialize validates doc and returns its RDF/XML encoding. A document with
// violations yields a *constraints.ValidationError listing all of them and
// no output.
func (s *Serializer) Serialize(doc *sbol.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode validates doc and writes its RDF/XML encoding to w. Nothing is
// written when validation fails.
func (s *Serializer) Encode(w io.Writer, doc *sbol.Document) error {
	timer := logging.StartTimer(s.logger, "serialize", logging.Format(Format))

	if s.validator != nil {
		if err := s.validator.Check(doc); err != nil {
			s.metrics.RecordSerialization(Format, "invalid", 0, timer.Elapsed())
			timer.EndError(err)
			return err
		}
	}

	counter := &countingWriter{w: w}
	wr := newWriter(doc, counter)
	if err := wr.write(wr.topLevels); err != nil {
		s.metrics.RecordSerialization(Format, "error", 0, timer.Elapsed())
		timer.EndError(err)
		return err
	}

	s.metrics.RecordSerialization(Format, "success", counter.n, timer.Elapsed())
	timer.End(logging.Count(doc.Len()), logging.Bytes(counter.n))
	return nil
}

// Serialize encodes doc with a default Serializer.
func Serialize(doc *sbol.Document) ([]byte, error) {
	return NewSerializer().Serialize(doc)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
