// Package identity builds the hierarchical URIs that identify SBOL entities.
//
// An identity is the concatenation of a namespace prefix, a slash-delimited
// local path and an optional version:
//
//	http://sbols.org/CRISPR_Example/CRPb_characterization_circuit/gRNA_b_fc/1.0.0
//	\______________________________/\_________________________________/\____/
//	            prefix                              path                version
//
// Path segments that contain reserved delimiters are rejected rather than
// escaped, so an identity can always be split back into its parts.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dd0wney/sbolgraph/pkg/validation"
)

var (
	// ErrEmptySegment is returned for paths with empty segments ("a//b", "/a", "").
	ErrEmptySegment = errors.New("empty path segment")
	// ErrReservedCharacter is returned for path segments containing URI delimiters.
	ErrReservedCharacter = errors.New("reserved character in path segment")
	// ErrInvalidPrefix is returned when the namespace prefix is not a usable base URI.
	ErrInvalidPrefix = errors.New("invalid namespace prefix")
	// ErrInvalidVersion is returned for malformed version strings.
	ErrInvalidVersion = errors.New("invalid version")
)

// reserved lists the delimiters that would change how an identity parses.
const reserved = "#?%:@[]/\\"

// BuildURI returns prefix+path, or prefix+path+"/"+version when a non-empty
// version is supplied. Only the first version argument is used.
func BuildURI(prefix, path string, version ...string) (string, error) {
	if err := validation.ValidateNamespace(prefix); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrefix, err)
	}
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	uri := prefix + path
	if len(version) > 0 && version[0] != "" {
		if err := validation.ValidateVersion(version[0]); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidVersion, err)
		}
		uri += "/" + version[0]
	}
	return uri, nil
}

// MustBuildURI is like BuildURI but panics on error. Use it for static data only.
func MustBuildURI(prefix, path string, version ...string) string {
	uri, err := BuildURI(prefix, path, version...)
	if err != nil {
		panic(err)
	}
	return uri
}

// ValidatePath checks every segment of a slash-delimited local path.
func ValidatePath(path string) error {
	for i, segment := range strings.Split(path, "/") {
		if segment == "" {
			return fmt.Errorf("%w: segment %d of %q", ErrEmptySegment, i, path)
		}
		for _, r := range segment {
			if strings.ContainsRune(reserved, r) || unicode.IsSpace(r) || unicode.IsControl(r) {
				return fmt.Errorf("%w: %q in segment %q", ErrReservedCharacter, r, segment)
			}
		}
	}
	return nil
}

// Split strips "/"+version from identity, returning the persistent identity.
// ok is false when identity does not carry that version suffix.
func Split(identity, version string) (persistent string, ok bool) {
	if version == "" {
		return identity, true
	}
	suffix := "/" + version
	if !strings.HasSuffix(identity, suffix) || len(identity) == len(suffix) {
		return identity, false
	}
	return strings.TrimSuffix(identity, suffix), true
}

// DisplayID returns the last segment of a path or persistent identity.
func DisplayID(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexAny(path, "/#"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Namespace binds a prefix and a default version for repeated URI construction.
type Namespace struct {
	Prefix  string
	Version string
}

// NewNamespace validates prefix and version once so that later URI calls
// only need to check paths.
func NewNamespace(prefix, version string) (Namespace, error) {
	if err := validation.ValidateNamespace(prefix); err != nil {
		return Namespace{}, fmt.Errorf("%w: %v", ErrInvalidPrefix, err)
	}
	if version != "" {
		if err := validation.ValidateVersion(version); err != nil {
			return Namespace{}, fmt.Errorf("%w: %v", ErrInvalidVersion, err)
		}
	}
	return Namespace{Prefix: prefix, Version: version}, nil
}

// PersistentURI returns the unversioned identity for path.
func (n Namespace) PersistentURI(path string) (string, error) {
	return BuildURI(n.Prefix, path)
}

// URI returns the versioned identity for path.
func (n Namespace) URI(path string) (string, error) {
	return BuildURI(n.Prefix, path, n.Version)
}
