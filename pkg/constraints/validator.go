package constraints

import (
	"fmt"
	"slices"
	"time"

	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/parallel"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// ValidationResult contains the results of validating a document against constraints
type ValidationResult struct {
	Valid      bool        // True if no violations found
	Violations []Violation // List of all violations, in entity creation order
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns violations filtered by severity level
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsByType returns violations filtered by type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsFor returns the violations reported on one entity identity
func (vr *ValidationResult) GetViolationsFor(identity string) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Identity == identity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// CountByType returns the number of violations per type name
func (vr *ValidationResult) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, v := range vr.Violations {
		counts[v.Type.String()]++
	}
	return counts
}

// Err returns a *ValidationError carrying every violation, or nil when valid
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return &ValidationError{Violations: slices.Clone(vr.Violations)}
}

// Validator manages a set of constraints and validates documents against them
type Validator struct {
	constraints []Constraint
	logger      logging.Logger
	metrics     *metrics.Registry
	workers     int
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger logs failed validation runs at warn level.
func WithLogger(logger logging.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMetrics records run counts, durations and violations in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(v *Validator) {
		v.metrics = r
	}
}

// WithWorkers runs up to n constraints concurrently. Results are identical to
// a sequential run.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		v.workers = n
	}
}

// NewValidator creates a new empty validator
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		constraints: make([]Constraint, 0),
		logger:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewDefaultValidator returns a validator loaded with DefaultConstraints.
func NewDefaultValidator(opts ...Option) *Validator {
	v := NewValidator(opts...)
	v.AddConstraints(DefaultConstraints())
	return v
}

// DefaultConstraints returns the checks a document must pass before it is
// serialized.
func DefaultConstraints() []Constraint {
	return []Constraint{
		&UniquenessConstraint{},
		&RequiredFieldConstraint{},
		&CardinalityConstraint{Kind: sbol.ComponentDefinitionKind, Field: "type", Min: 1},
		&CardinalityConstraint{Kind: sbol.InteractionKind, Field: "type", Min: 1},
		&ReferenceConstraint{},
		&MembershipConstraint{},
	}
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// AddConstraints adds multiple constraints to the validator
func (v *Validator) AddConstraints(constraints []Constraint) {
	v.constraints = append(v.constraints, constraints...)
}

// Validate runs all constraints against the document and returns every
// violation, ordered by the offending entity's creation position. Violations
// on the same entity keep constraint order.
func (v *Validator) Validate(doc DocumentReader) (*ValidationResult, error) {
	timer := logging.StartTimer(v.logger, "validate")
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	found, err := v.run(doc)
	if err != nil {
		return nil, err
	}
	for _, violations := range found {
		if len(violations) > 0 {
			result.Valid = false
			result.Violations = append(result.Violations, violations...)
		}
	}

	position := make(map[string]int)
	for i, e := range doc.Entities() {
		if _, ok := position[e.Identity()]; !ok {
			position[e.Identity()] = i
		}
	}
	slices.SortStableFunc(result.Violations, func(a, b Violation) int {
		return position[a.Identity] - position[b.Identity]
	})

	v.metrics.RecordValidation(result.CountByType(), timer.Elapsed())
	if result.Valid {
		timer.End()
	} else {
		v.logger.Warn("document failed validation",
			logging.Count(len(result.Violations)),
			logging.Latency(timer.Elapsed()))
	}
	return result, nil
}

// run evaluates every constraint and returns their violations in constraint
// order.
func (v *Validator) run(doc DocumentReader) ([][]Violation, error) {
	found := make([][]Violation, len(v.constraints))
	if v.workers <= 1 || len(v.constraints) <= 1 {
		for i, constraint := range v.constraints {
			violations, err := constraint.Validate(doc)
			if err != nil {
				return nil, err
			}
			found[i] = violations
		}
		return found, nil
	}

	tasks := make([]func() error, len(v.constraints))
	for i, constraint := range v.constraints {
		tasks[i] = func() error {
			violations, err := constraint.Validate(doc)
			found[i] = violations
			return err
		}
	}
	errs, err := parallel.Run(v.workers, tasks, parallel.WithLogger(v.logger))
	if err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.constraints[i].Name(), err)
		}
	}
	return found, nil
}

// Check validates doc and returns a *ValidationError when any constraint is
// violated.
func (v *Validator) Check(doc DocumentReader) error {
	result, err := v.Validate(doc)
	if err != nil {
		return err
	}
	return result.Err()
}

// GetConstraints returns all constraints in the validator
func (v *Validator) GetConstraints() []Constraint {
	return v.constraints
}

// ClearConstraints removes all constraints from the validator
func (v *Validator) ClearConstraints() {
	v.constraints = make([]Constraint, 0)
}
