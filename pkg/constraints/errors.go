package constraints

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed is matched by every *ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d violation(s)", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Is makes errors.Is(err, ErrValidationFailed) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// String renders "type identity field: message".
func (v Violation) String() string {
	if v.Field == "" {
		return fmt.Sprintf("%s %s: %s", v.Type, v.Identity, v.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", v.Type, v.Identity, v.Field, v.Message)
}

// AsValidationError extracts the violations from err, if it carries any.
func AsValidationError(err error) ([]Violation, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}
