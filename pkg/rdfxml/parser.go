package rdfxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/identity"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// ErrMalformed is returned for input that is well-formed XML but not an SBOL
// RDF/XML document this package can read.
var ErrMalformed = errors.New("malformed SBOL RDF/XML")

// Parser decodes SBOL 2 RDF/XML into Documents.
type Parser struct {
	logger  logging.Logger
	metrics *metrics.Registry
	docOpts []sbol.Option
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// ParseWithLogger sets the parser logger; it is also handed to the Document.
func ParseWithLogger(logger logging.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
			p.docOpts = append(p.docOpts, sbol.WithLogger(logger))
		}
	}
}

// ParseWithMetrics records parse outcomes in r; it is also handed to the
// Document.
func ParseWithMetrics(r *metrics.Registry) ParserOption {
	return func(p *Parser) {
		p.metrics = r
		p.docOpts = append(p.docOpts, sbol.WithMetrics(r))
	}
}

// NewParser returns a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads one RDF/XML document with a default Parser.
func Parse(r io.Reader) (*sbol.Document, error) {
	return NewParser().Parse(r)
}

// Parse reads one RDF/XML document. Owned entities must be nested inside
// their owner. References are normalised to persistent identities. Top-level
// classes other than ComponentDefinition, Sequence and ModuleDefinition are
// skipped with a warning.
func (p *Parser) Parse(r io.Reader) (*sbol.Document, error) {
	timer := logging.StartTimer(p.logger, "parse", logging.Format(Format))

	snapshot, err := p.decode(r)
	if err == nil {
		var doc *sbol.Document
		doc, err = sbol.FromSnapshot(snapshot, p.docOpts...)
		if err == nil {
			p.metrics.RecordParse(Format, "success")
			timer.End(logging.Count(doc.Len()))
			return doc, nil
		}
	}

	p.metrics.RecordParse(Format, "error")
	timer.EndError(err)
	return nil, err
}

// Decode reads RDF/XML into a Snapshot without building a Document.
func (p *Parser) Decode(r io.Reader) (sbol.Snapshot, error) {
	return p.decode(r)
}

func (p *Parser) decode(r io.Reader) (sbol.Snapshot, error) {
	root, err := readTree(r)
	if err != nil {
		return sbol.Snapshot{}, err
	}
	if !root.is(nsRDF, "RDF") {
		return sbol.Snapshot{}, fmt.Errorf("%w: root element is %s, want rdf:RDF", ErrMalformed, root.name.Local)
	}

	var s sbol.Snapshot
	for _, el := range root.children {
		kind, ok := kindForClass(el.name.Local)
		if el.name.Space != nsSBOL || !ok || !kind.TopLevel() {
			p.logger.Warn("skipping unsupported top-level element",
				logging.String("namespace", el.name.Space), logging.String("element", el.name.Local))
			continue
		}
		if err := decodeEntity(el, kind, "", &s.Records); err != nil {
			return sbol.Snapshot{}, err
		}
	}
	return s, nil
}

// decodeEntity appends the record for el, then the records of its owned
// children, to out.
func decodeEntity(el *node, kind sbol.Kind, parent string, out *[]sbol.Record) error {
	about, ok := el.attr(nsRDF, "about")
	if !ok || about == "" {
		return fmt.Errorf("%w: %s without rdf:about", ErrMalformed, el.name.Local)
	}
	rec := sbol.Record{Kind: kind.String(), Identity: about, Parent: parent}
	*out = append(*out, rec)
	idx := len(*out) - 1

	type nested struct {
		el   *node
		kind sbol.Kind
	}
	var children []nested

	for _, prop := range el.children {
		space, local := prop.name.Space, prop.name.Local
		switch {
		case space == nsSBOL && isOwnerProperty(local):
			if len(prop.children) != 1 {
				return fmt.Errorf("%w: %s of %s must contain exactly one nested entity", ErrMalformed, local, about)
			}
			child := prop.children[0]
			childKind, ok := kindForClass(child.name.Local)
			if child.name.Space != nsSBOL || !ok || ownerProperties[childKind] != local {
				return fmt.Errorf("%w: %s cannot hold a %s", ErrMalformed, local, child.name.Local)
			}
			children = append(children, nested{child, childKind})
		case space == nsSBOL:
			if err := setField(&rec, prop); err != nil {
				return fmt.Errorf("%s: %w", about, err)
			}
		case space == nsDCTerms && local == "title":
			rec.Name = prop.text()
		case space == nsDCTerms && local == "description":
			rec.Description = prop.text()
		case space == nsRDF:
			return fmt.Errorf("%w: unexpected rdf:%s in %s", ErrMalformed, local, about)
		default:
			value := prop.text()
			if res, ok := prop.attr(nsRDF, "resource"); ok {
				value = res
			}
			rec.Annotations = append(rec.Annotations, sbol.Annotation{Predicate: space + local, Value: value})
		}
	}

	if rec.PersistentIdentity == "" {
		persistent, ok := identity.Split(about, rec.Version)
		if !ok {
			return fmt.Errorf("%w: %s does not end with its version %s", ErrMalformed, about, rec.Version)
		}
		rec.PersistentIdentity = persistent
	}
	(*out)[idx] = rec

	for _, c := range children {
		if err := decodeEntity(c.el, c.kind, rec.PersistentIdentity, out); err != nil {
			return err
		}
	}
	return nil
}

// setField stores one sbol: property on rec.
func setField(rec *sbol.Record, prop *node) error {
	local := prop.name.Local
	if target, ok := resourceFields[local]; ok {
		res, ok := prop.attr(nsRDF, "resource")
		if !ok {
			return fmt.Errorf("%w: sbol:%s needs rdf:resource", ErrMalformed, local)
		}
		target(rec, res)
		return nil
	}

	switch local {
	case "displayId":
		rec.DisplayID = prop.text()
	case "version":
		rec.Version = prop.text()
	case "elements":
		rec.Elements = prop.text()
	default:
		return fmt.Errorf("%w: unknown property sbol:%s", ErrMalformed, local)
	}
	return nil
}

var resourceFields = map[string]func(*sbol.Record, string){
	"persistentIdentity": func(r *sbol.Record, v string) { r.PersistentIdentity = v },
	"type":               func(r *sbol.Record, v string) { r.Types = append(r.Types, v) },
	"role":               func(r *sbol.Record, v string) { r.Roles = append(r.Roles, v) },
	"sequence":           func(r *sbol.Record, v string) { r.Sequences = append(r.Sequences, v) },
	"encoding":           func(r *sbol.Record, v string) { r.Encoding = v },
	"definition":         func(r *sbol.Record, v string) { r.Definition = v },
	"access":             func(r *sbol.Record, v string) { r.Access = v },
	"direction":          func(r *sbol.Record, v string) { r.Direction = v },
	"restriction":        func(r *sbol.Record, v string) { r.Restriction = v },
	"subject":            func(r *sbol.Record, v string) { r.Subject = v },
	"object":             func(r *sbol.Record, v string) { r.Object = v },
	"participant":        func(r *sbol.Record, v string) { r.Participant = v },
	"refinement":         func(r *sbol.Record, v string) { r.Refinement = v },
	"local":              func(r *sbol.Record, v string) { r.Local = v },
	"remote":             func(r *sbol.Record, v string) { r.Remote = v },
}

// node is a minimal element tree; namespaces are already resolved by the
// decoder.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*node
	chars    strings.Builder
}

func (n *node) is(space, local string) bool {
	return n.name.Space == space && n.name.Local == local
}

func (n *node) attr(space, local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) text() string {
	return n.chars.String()
}

func readTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var stack []*node
	var root *node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root != nil {
				return nil, fmt.Errorf("%w: more than one root element", ErrMalformed)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].chars.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	return root, nil
}
