package sbol

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/validation"
)

// Namespaces and predicates that back core fields and so cannot carry
// free-form annotations.
const (
	RDFNamespace         = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DCTermsNamespace     = "http://purl.org/dc/terms/"
	TitlePredicate       = DCTermsNamespace + "title"
	DescriptionPredicate = DCTermsNamespace + "description"
)

// Annotation is a (predicate, literal) pair attached to an entity.
type Annotation struct {
	Predicate string `json:"predicate" yaml:"predicate"`
	Value     string `json:"value" yaml:"value"`
}

// Entity is implemented by every SBOL class in this package.
type Entity interface {
	Kind() Kind
	Identity() string
	PersistentIdentity() string
	DisplayID() string
	Version() string
	Name() string
	Description() string
	// Parent is the persistent identity of the owning entity, or "" for
	// top-level entities and children not yet added to an owner.
	Parent() string
	Annotations() []Annotation
	// References lists every reference-valued field, including unset ones.
	References() []Reference
	// Children lists owned entities' persistent identities in property order.
	Children() []string

	base() *Identified
}

// Reference is one reference-valued field of an entity.
type Reference struct {
	Field  string // SBOL property name, e.g. "definition"
	Target string // identity or persistent identity, "" when unset
	Want   Kind   // kind the target must have
}

// Identified carries the fields shared by every entity. It is embedded in
// each concrete type; its zero value is not usable outside a Document.
type Identified struct {
	doc                *Document
	kind               Kind
	seq                int
	identity           string
	persistentIdentity string
	displayID          string
	version            string
	name               string
	description        string
	parent             string
	annotations        []Annotation
}

func (e *Identified) base() *Identified { return e }

func (e *Identified) Kind() Kind                 { return e.kind }
func (e *Identified) Identity() string           { return e.identity }
func (e *Identified) PersistentIdentity() string { return e.persistentIdentity }
func (e *Identified) DisplayID() string          { return e.displayID }
func (e *Identified) Version() string            { return e.version }
func (e *Identified) Name() string               { return e.name }
func (e *Identified) Description() string        { return e.description }
func (e *Identified) Parent() string             { return e.parent }

// Annotations returns a copy of the entity's annotations in insertion order.
func (e *Identified) Annotations() []Annotation {
	return slices.Clone(e.annotations)
}

// SetDisplayID sets the short local name.
func (e *Identified) SetDisplayID(id string) error {
	if err := validation.ValidateDisplayID(id); err != nil {
		return e.invalid("SetDisplayID", "displayId", err)
	}
	e.displayID = id
	return nil
}

// SetVersion sets the version and recomputes the identity as
// persistentIdentity + "/" + version. An empty version makes the identity
// equal to the persistent identity. If the new identity is already taken in
// the Document the call fails and nothing changes.
func (e *Identified) SetVersion(version string) error {
	if version != "" {
		if err := validation.ValidateVersion(version); err != nil {
			return e.invalid("SetVersion", "version", err)
		}
	}

	identity := e.persistentIdentity
	if version != "" {
		identity += "/" + version
	}
	if identity == e.identity {
		e.version = version
		return nil
	}

	if e.doc != nil {
		if err := e.doc.reindex(e, identity); err != nil {
			return err
		}
	}
	e.identity = identity
	e.version = version
	return nil
}

// SetName sets the human-readable name (dcterms:title). Text that XML
// cannot carry is rejected.
func (e *Identified) SetName(name string) error {
	if err := validation.ValidateText("name", name); err != nil {
		return e.invalid("SetName", "name", err)
	}
	e.name = name
	return nil
}

// SetDescription sets the free-text description (dcterms:description).
func (e *Identified) SetDescription(description string) error {
	if err := validation.ValidateText("description", description); err != nil {
		return e.invalid("SetDescription", "description", err)
	}
	e.description = description
	return nil
}

// AddAnnotation attaches a literal under predicate. The predicate's local
// name must be a valid XML name and the value valid XML text; the value may
// be empty. Adding an identical pair twice is a no-op.
func (e *Identified) AddAnnotation(predicate, value string) error {
	if _, _, err := validation.SplitPredicate(predicate); err != nil {
		return e.invalid("AddAnnotation", "annotation", err)
	}
	if err := validation.ValidateText("annotation", value); err != nil {
		return e.invalid("AddAnnotation", "annotation", err)
	}
	if reservedPredicate(predicate) {
		return NewError("AddAnnotation").Entity(e.kind, e.identity).Field("annotation").
			Cause(fmt.Errorf("%w: %s", ErrReservedPredicate, predicate)).Err()
	}
	a := Annotation{Predicate: predicate, Value: value}
	if !slices.Contains(e.annotations, a) {
		e.annotations = append(e.annotations, a)
	}
	return nil
}

// AnnotationValues returns every literal stored under predicate.
func (e *Identified) AnnotationValues(predicate string) []string {
	var values []string
	for _, a := range e.annotations {
		if a.Predicate == predicate {
			values = append(values, a.Value)
		}
	}
	return values
}

func (e *Identified) invalid(op, field string, err error) error {
	return NewError(op).Entity(e.kind, e.identity).Field(field).Invalid(err).Err()
}

func (e *Identified) setReference(op, field string, dst *string, ref string) error {
	if ref != "" {
		if err := validation.ValidateURI(field, ref); err != nil {
			return e.invalid(op, field, err)
		}
	}
	*dst = ref
	return nil
}

func reservedPredicate(p string) bool {
	return strings.HasPrefix(p, Namespace) || strings.HasPrefix(p, RDFNamespace) ||
		p == TitlePredicate || p == DescriptionPredicate
}

// uriSet is an insertion-ordered set of URIs, used for types and roles.
type uriSet []string

func (s *uriSet) add(e *Identified, op, field, uri string) error {
	if err := validation.ValidateURI(field, uri); err != nil {
		return e.invalid(op, field, err)
	}
	if !slices.Contains(*s, uri) {
		*s = append(*s, uri)
	}
	return nil
}

func (s *uriSet) remove(uri string) bool {
	i := slices.Index(*s, uri)
	if i < 0 {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

func (s uriSet) list() []string {
	return slices.Clone([]string(s))
}
