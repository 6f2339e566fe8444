package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxDisplayIDLength bounds displayIds so generated URIs stay readable
	MaxDisplayIDLength = 256

	// Regular expressions
	versionPattern   = regexp.MustCompile(`^[0-9]+[a-zA-Z0-9_.\-]*$`)
	displayIDPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ErrInvalid is wrapped by every error returned from this package's value checks.
var ErrInvalid = errors.New("invalid value")

func init() {
	validate = validator.New()
	mustRegister("sbolversion", func(fl validator.FieldLevel) bool {
		return versionPattern.MatchString(fl.Field().String())
	})
	mustRegister("displayid", func(fl validator.FieldLevel) bool {
		return displayIDPattern.MatchString(fl.Field().String())
	})
	mustRegister("absuri", func(fl validator.FieldLevel) bool {
		return isAbsoluteURI(fl.Field().String())
	})
	mustRegister("xmltext", func(fl validator.FieldLevel) bool {
		return isXMLText(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// IdentifiedFields carries the identity-related values shared by every SBOL entity.
type IdentifiedFields struct {
	PersistentIdentity string `json:"persistentIdentity" validate:"required,absuri"`
	DisplayID          string `json:"displayId" validate:"omitempty,displayid,max=256"`
	Version            string `json:"version" validate:"omitempty,sbolversion"`
}

// ValidateIdentified validates a set of identity fields in one call.
func ValidateIdentified(f *IdentifiedFields) error {
	if f == nil {
		return errors.New("identified fields cannot be nil")
	}
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateURI checks that s is an absolute URI (scheme plus host or opaque part).
func ValidateURI(field, s string) error {
	return checkVar(field, s, "required,absuri")
}

// ValidateNamespace checks a namespace prefix: an absolute http(s) URI ending in '/' or '#'.
func ValidateNamespace(prefix string) error {
	if err := ValidateURI("Namespace", prefix); err != nil {
		return err
	}
	u, _ := url.Parse(prefix)
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: Namespace: scheme %q must be http or https", ErrInvalid, u.Scheme)
	}
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, "#") {
		return fmt.Errorf("%w: Namespace: %q must end with '/' or '#'", ErrInvalid, prefix)
	}
	return nil
}

// ValidateVersion checks the SBOL version shape, e.g. "1.0.0" or "2-alpha".
func ValidateVersion(v string) error {
	return checkVar("Version", v, "required,sbolversion")
}

// ValidateDisplayID checks that id is usable as a displayId and a URI path segment.
func ValidateDisplayID(id string) error {
	if len(id) > MaxDisplayIDLength {
		return fmt.Errorf("%w: DisplayID: exceeds maximum length of %d characters", ErrInvalid, MaxDisplayIDLength)
	}
	return checkVar("DisplayID", id, "required,displayid")
}

// ValidateText checks that s is valid UTF-8 made only of characters an XML
// document can carry. The empty string is valid.
func ValidateText(field, s string) error {
	return checkVar(field, s, "xmltext")
}

// SplitPredicate splits an annotation predicate into namespace and local
// name at the last '#' or '/'. The local name must be an XML NCName so the
// predicate can be written as an element name.
func SplitPredicate(predicate string) (ns, local string, err error) {
	if err := ValidateURI("Predicate", predicate); err != nil {
		return "", "", err
	}
	i := strings.LastIndexAny(predicate, "#/")
	if i < 0 || i == len(predicate)-1 {
		return "", "", fmt.Errorf("%w: Predicate: %q has no local name", ErrInvalid, predicate)
	}
	ns, local = predicate[:i+1], predicate[i+1:]
	if !isNCName(local) {
		return "", "", fmt.Errorf("%w: Predicate: local name %q is not a valid XML name", ErrInvalid, local)
	}
	return ns, local, nil
}

func isNCName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && (r == '-' || r == '.' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return s != ""
}

// isXMLText reports whether every rune of s is in the XML 1.0 Char production.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x9, r == 0xA, r == 0xD:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

func isAbsoluteURI(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n<>\"") || !isXMLText(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func checkVar(field, value, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(field, value, verrs[0])
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalid, field, err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		return describe(e.Field(), fmt.Sprint(e.Value()), e)
	}

	return err
}

func describe(field, value string, e validator.FieldError) error {
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
	case "max":
		return fmt.Errorf("%w: %s: must not exceed %s characters", ErrInvalid, field, e.Param())
	case "absuri":
		return fmt.Errorf("%w: %s: %q is not an absolute URI", ErrInvalid, field, value)
	case "sbolversion":
		return fmt.Errorf("%w: %s: %q must start with a digit followed by letters, digits, '_', '.' or '-'", ErrInvalid, field, value)
	case "xmltext":
		return fmt.Errorf("%w: %s: %q contains characters not allowed in XML text", ErrInvalid, field, value)
	case "displayid":
		return fmt.Errorf("%w: %s: %q must start with a letter or underscore, followed by alphanumeric or underscore", ErrInvalid, field, value)
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
	}
}
