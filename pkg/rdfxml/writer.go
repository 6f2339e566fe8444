package rdfxml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
	"github.com/dd0wney/sbolgraph/pkg/validation"
	"github.com/dd0wney/sbolgraph/pkg/vocab"
)

const indentUnit = "  "

// writer emits one Document. The first write error is kept and every later
// call becomes a no-op.
type writer struct {
	doc      *sbol.Document
	out      *bufio.Writer
	prefixes map[string]string // namespace -> prefix
	declared []string          // namespaces in declaration order
	err      error
}

func newWriter(doc *sbol.Document, w io.Writer) *writer {
	return &writer{
		doc:      doc,
		out:      bufio.NewWriter(w),
		prefixes: make(map[string]string),
	}
}

func (w *writer) write(body func()) error {
	if err := w.prepare(); err != nil {
		return err
	}

	w.raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	w.raw("<rdf:RDF")
	for _, ns := range w.declared {
		w.raw(fmt.Sprintf("\n%sxmlns:%s=", indentUnit, w.prefixes[ns]))
		w.attrValue(ns)
	}
	w.raw(">\n")
	body()
	w.raw("</rdf:RDF>\n")

	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

// prepare declares the core namespaces, then every annotation namespace in
// first-use order. Owned kinds are only written nested in their owner, so a
// child without one fails here, before any output.
func (w *writer) prepare() error {
	for _, ns := range []string{nsDCTerms, vocab.Prov, nsRDF, nsSBOL} {
		w.declare(ns, vocab.Prefixes[ns])
	}
	next := 0
	return w.doc.Walk(func(e sbol.Entity, depth int) error {
		if depth == 0 && !e.Kind().TopLevel() {
			return fmt.Errorf("%w: %s %s has no owner", ErrUnencodable, e.Kind(), e.Identity())
		}
		for _, a := range e.Annotations() {
			ns, _, err := splitPredicate(a.Predicate)
			if err != nil {
				return fmt.Errorf("%s %s: %w", e.Kind(), e.Identity(), err)
			}
			if _, ok := w.prefixes[ns]; ok {
				continue
			}
			prefix, known := vocab.Prefixes[ns]
			if !known {
				prefix = fmt.Sprintf("ns%d", next)
				next++
			}
			w.declare(ns, prefix)
		}
		return nil
	})
}

func (w *writer) declare(ns, prefix string) {
	w.prefixes[ns] = prefix
	w.declared = append(w.declared, ns)
}

func (w *writer) topLevels() {
	for _, e := range w.doc.TopLevels() {
		w.entity(e, 1)
	}
}

func (w *writer) entity(e sbol.Entity, depth int) {
	class := "sbol:" + classNames[e.Kind()]
	w.indent(depth)
	w.raw("<" + class + " rdf:about=")
	w.attrValue(e.Identity())
	w.raw(">\n")

	d := depth + 1
	w.resource(d, "sbol:persistentIdentity", e.PersistentIdentity())
	w.literal(d, "sbol:displayId", e.DisplayID())
	w.literal(d, "sbol:version", e.Version())
	w.literal(d, "dcterms:title", e.Name())
	w.literal(d, "dcterms:description", e.Description())

	switch x := e.(type) {
	case *sbol.ComponentDefinition:
		w.resources(d, "sbol:type", x.Types())
		w.resources(d, "sbol:role", x.Roles())
		for _, s := range x.Sequences() {
			w.reference(d, "sbol:sequence", s)
		}
	case *sbol.Sequence:
		w.literal(d, "sbol:elements", x.Elements())
		w.resource(d, "sbol:encoding", x.Encoding())
	case *sbol.Component:
		w.reference(d, "sbol:definition", x.Definition())
		w.resource(d, "sbol:access", string(x.Access()))
	case *sbol.SequenceConstraint:
		w.resource(d, "sbol:restriction", string(x.Restriction()))
		w.reference(d, "sbol:subject", x.Subject())
		w.reference(d, "sbol:object", x.Object())
	case *sbol.ModuleDefinition:
		w.resources(d, "sbol:role", x.Roles())
	case *sbol.FunctionalComponent:
		w.reference(d, "sbol:definition", x.Definition())
		w.resource(d, "sbol:access", string(x.Access()))
		w.resource(d, "sbol:direction", string(x.Direction()))
	case *sbol.Interaction:
		w.resources(d, "sbol:type", x.Types())
	case *sbol.Participation:
		w.resources(d, "sbol:role", x.Roles())
		w.reference(d, "sbol:participant", x.Participant())
	case *sbol.Module:
		w.reference(d, "sbol:definition", x.Definition())
	case *sbol.Mapping:
		w.resource(d, "sbol:refinement", string(x.Refinement()))
		w.reference(d, "sbol:local", x.Local())
		w.reference(d, "sbol:remote", x.Remote())
	}

	for _, ref := range e.Children() {
		child, err := w.doc.Resolve(ref)
		if err != nil {
			w.fail(err)
			return
		}
		prop := "sbol:" + ownerProperties[child.Kind()]
		w.indent(d)
		w.raw("<" + prop + ">\n")
		w.entity(child, d+1)
		w.indent(d)
		w.raw("</" + prop + ">\n")
	}

	for _, a := range e.Annotations() {
		ns, local, _ := splitPredicate(a.Predicate)
		w.element(d, w.prefixes[ns]+":"+local, a.Value)
	}

	w.indent(depth)
	w.raw("</" + class + ">\n")
}

// reference renders ref as the full identity of its target.
func (w *writer) reference(depth int, name, ref string) {
	if ref == "" {
		return
	}
	if target, err := w.doc.Resolve(ref); err == nil {
		ref = target.Identity()
	}
	w.resource(depth, name, ref)
}

func (w *writer) resources(depth int, name string, uris []string) {
	for _, uri := range uris {
		w.resource(depth, name, uri)
	}
}

func (w *writer) resource(depth int, name, uri string) {
	if uri == "" {
		return
	}
	w.indent(depth)
	w.raw("<" + name + " rdf:resource=")
	w.attrValue(uri)
	w.raw("/>\n")
}

// literal writes an optional field; empty values are omitted.
func (w *writer) literal(depth int, name, value string) {
	if value == "" {
		return
	}
	w.element(depth, name, value)
}

func (w *writer) element(depth int, name, value string) {
	w.indent(depth)
	w.raw("<" + name + ">")
	w.text(value)
	w.raw("</" + name + ">\n")
}

func (w *writer) indent(depth int) {
	w.raw(strings.Repeat(indentUnit, depth))
}

func (w *writer) attrValue(s string) {
	w.raw(`"`)
	w.text(s)
	w.raw(`"`)
}

// text escapes s. encoding/xml would substitute U+FFFD for characters XML
// cannot carry, so those fail the write instead.
func (w *writer) text(s string) {
	if w.err != nil {
		return
	}
	if err := validation.ValidateText("text", s); err != nil {
		w.err = fmt.Errorf("%w: %w", ErrUnencodable, err)
		return
	}
	w.err = xml.EscapeText(w.out, []byte(s))
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// splitPredicate splits an annotation predicate into namespace and an
// element-safe local name.
func splitPredicate(predicate string) (ns, local string, err error) {
	ns, local, err = validation.SplitPredicate(predicate)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrUnencodable, err)
	}
	return ns, local, nil
}
