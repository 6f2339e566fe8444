// Package codec maps format names and file extensions to Document encoders
// and decoders.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dd0wney/sbolgraph/pkg/constraints"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// ErrUnknownFormat is returned when no codec matches a name or extension.
var ErrUnknownFormat = errors.New("unknown document format")

// CompressedSuffix marks snappy-compressed artifacts; it is ignored when
// picking a codec by extension.
const CompressedSuffix = ".sz"

// Codec defines how to read and write a specific document format.
type Codec interface {
	// Name is the format name, e.g. "rdfxml".
	Name() string
	// Encode validates doc and writes it to w.
	Encode(w io.Writer, doc *sbol.Document) error
	// Decode reads a Document from r.
	Decode(r io.Reader) (*sbol.Document, error)
}

// Settings are shared by every codec in a Registry.
type Settings struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
	// Validator runs before encoding. Nil uses the default constraints;
	// set SkipValidation to encode without checking.
	Validator      *constraints.Validator
	SkipValidation bool
}

func (s Settings) validator() *constraints.Validator {
	if s.SkipValidation {
		return nil
	}
	if s.Validator != nil {
		return s.Validator
	}
	return constraints.NewDefaultValidator(
		constraints.WithLogger(s.Logger), constraints.WithMetrics(s.Metrics))
}

func (s Settings) logger() logging.Logger {
	if s.Logger == nil {
		return logging.NewNopLogger()
	}
	return s.Logger
}

func (s Settings) docOptions() []sbol.Option {
	return []sbol.Option{sbol.WithLogger(s.Logger), sbol.WithMetrics(s.Metrics)}
}

// Registry holds codecs by name and extension.
type Registry struct {
	byName map[string]Codec
	byExt  map[string]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Codec), byExt: make(map[string]Codec)}
}

// Default returns the standard set of codecs: rdfxml (.rdf, .xml), json
// (.json) and yaml (.yaml, .yml).
func Default(s Settings) *Registry {
	r := NewRegistry()
	r.Register(NewRDFXML(s), ".rdf", ".xml")
	r.Register(NewJSON(s), ".json")
	r.Register(NewYAML(s), ".yaml", ".yml")
	return r
}

// Register adds c under its name and the given extensions, replacing any
// previous holder.
func (r *Registry) Register(c Codec, exts ...string) {
	r.byName[c.Name()] = c
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = c
	}
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	if c, ok := r.byName[strings.ToLower(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, name, strings.Join(r.Names(), ", "))
}

// ForPath picks a codec from path's extension, looking through a trailing
// CompressedSuffix.
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, CompressedSuffix)))
	if c, ok := r.byExt[ext]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: no codec for extension %q of %s", ErrUnknownFormat, ext, path)
}

// Names returns the registered format names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
