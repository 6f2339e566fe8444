package constraints

import (
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// TestValidator_ValidModel checks the production scenario passes every default constraint
func TestValidator_ValidModel(t *testing.T) {
	td, _ := productionModel(t)

	result, err := NewDefaultValidator().Validate(td.doc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("Expected valid model, got violations: %v", result.Violations)
	}
	if result.CheckedAt.IsZero() {
		t.Error("Expected CheckedAt to be set")
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

// TestValidator_SingleMissingReference checks a dangling participant yields exactly one violation
func TestValidator_SingleMissingReference(t *testing.T) {
	td, pB := productionModel(t)
	td.must(pB.SetParticipant(ns + "M/ghost"))

	result, err := NewDefaultValidator().Validate(td.doc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d: %v", len(result.Violations), result.Violations)
	}
	v := result.Violations[0]
	if v.Type != MissingReference || v.Identity != pB.Identity() || v.Field != "participant" {
		t.Errorf("Unexpected violation %+v", v)
	}
	if v.Kind != sbol.ParticipationKind || v.Severity != Error {
		t.Errorf("Violation kind/severity = %s/%s", v.Kind, v.Severity)
	}
}

// TestValidator_ForeignSubject checks a SequenceConstraint relating another definition's Component
func TestValidator_ForeignSubject(t *testing.T) {
	td := newTestDoc(t)
	part := td.cd("part", typeDNA)
	gene := td.cd("gene", typeDNA)
	other := td.cd("other", typeDNA)
	c1 := td.component(gene, "c1", part)
	c2 := td.component(gene, "c2", part)
	stray := td.component(other, "c1", part)
	td.constraint(gene, "ok", c1, c2)
	bad := td.constraint(gene, "bad", stray, c2)

	err := NewDefaultValidator().Check(td.doc)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Expected ErrValidationFailed, got %v", err)
	}
	violations, ok := AsValidationError(err)
	if !ok || len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %v", violations)
	}
	v := violations[0]
	if v.Type != ForeignSubjectObject || v.Identity != bad.Identity() || v.Field != "subject" {
		t.Errorf("Unexpected violation %+v", v)
	}
}

// TestValidator_AggregatesAndOrders checks every violation is reported in creation order
func TestValidator_AggregatesAndOrders(t *testing.T) {
	d := sbol.NewDocument()
	m, _ := d.CreateModuleDefinition(ns + "M")
	a, _ := d.CreateComponentDefinition(ns + "A")
	fc, _ := d.CreateFunctionalComponent(ns + "M/fc")
	_ = m.AddFunctionalComponent(fc)
	_ = fc.SetDefinition(ns + "missing")

	result, err := NewDefaultValidator().Validate(d)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// M: displayId, version. A: displayId, version, type.
	// fc: displayId, version, missing definition.
	want := []struct {
		identity string
		typ      ViolationType
		field    string
	}{
		{m.Identity(), MissingRequiredField, "displayId"},
		{m.Identity(), MissingRequiredField, "version"},
		{a.Identity(), MissingRequiredField, "displayId"},
		{a.Identity(), MissingRequiredField, "version"},
		{a.Identity(), MissingRequiredField, "type"},
		{fc.Identity(), MissingRequiredField, "displayId"},
		{fc.Identity(), MissingRequiredField, "version"},
		{fc.Identity(), MissingReference, "definition"},
	}
	if len(result.Violations) != len(want) {
		t.Fatalf("Expected %d violations, got %d: %v", len(want), len(result.Violations), result.Violations)
	}
	for i, w := range want {
		v := result.Violations[i]
		if v.Identity != w.identity || v.Type != w.typ || v.Field != w.field {
			t.Errorf("violation %d = (%s %s %s), want (%s %s %s)",
				i, v.Identity, v.Type, v.Field, w.identity, w.typ, w.field)
		}
	}

	if got := len(result.GetViolationsByType(MissingReference)); got != 1 {
		t.Errorf("GetViolationsByType(MissingReference) = %d", got)
	}
	if got := len(result.GetViolationsFor(a.Identity())); got != 3 {
		t.Errorf("GetViolationsFor(A) = %d", got)
	}
	if got := len(result.GetViolationsBySeverity(Warning)); got != 0 {
		t.Errorf("GetViolationsBySeverity(Warning) = %d", got)
	}
	if counts := result.CountByType(); counts["missing-required-field"] != 7 {
		t.Errorf("CountByType = %v", counts)
	}

	err = result.Err()
	if !strings.Contains(err.Error(), "8 violation(s)") {
		t.Errorf("Error() = %q", err.Error())
	}
}

// TestValidator_RecordsMetrics checks a run is counted by result
func TestValidator_RecordsMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	td, pB := productionModel(t)
	v := NewDefaultValidator(WithMetrics(reg))

	if _, err := v.Validate(td.doc); err != nil {
		t.Fatal(err)
	}
	td.must(pB.SetParticipant(ns + "gone"))
	if _, err := v.Validate(td.doc); err != nil {
		t.Fatal(err)
	}

	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	runs := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "sbol_validation_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			runs[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	if runs["valid"] != 1 || runs["invalid"] != 1 {
		t.Errorf("validation runs = %v", runs)
	}
}

// TestValidator_ConstraintManagement tests adding and clearing constraints
func TestValidator_ConstraintManagement(t *testing.T) {
	v := NewValidator()
	v.AddConstraint(&ReferenceConstraint{})
	v.AddConstraints([]Constraint{&MembershipConstraint{}, &UniquenessConstraint{}})
	if len(v.GetConstraints()) != 3 {
		t.Errorf("Expected 3 constraints, got %d", len(v.GetConstraints()))
	}
	v.ClearConstraints()
	if len(v.GetConstraints()) != 0 {
		t.Error("Expected no constraints after clear")
	}

	result, err := v.Validate(sbol.NewDocument())
	if err != nil || !result.Valid {
		t.Errorf("Empty validator on empty document = (%v, %v)", result, err)
	}
}

type failingConstraint struct{}

func (failingConstraint) Name() string { return "failing" }
func (failingConstraint) Validate(DocumentReader) ([]Violation, error) {
	return nil, errors.New("boom")
}

// TestValidator_ConstraintError tests that constraint errors abort validation
func TestValidator_ConstraintError(t *testing.T) {
	v := NewValidator()
	v.AddConstraint(failingConstraint{})
	if _, err := v.Validate(sbol.NewDocument()); err == nil {
		t.Error("Expected constraint error to propagate")
	}
}

// TestValidator_WorkersMatchSequential checks concurrent evaluation reports the same violations in the same order
func TestValidator_WorkersMatchSequential(t *testing.T) {
	td, pB := productionModel(t)
	td.must(pB.SetParticipant(ns + "M/ghost"))
	td.create(sbol.ComponentDefinitionKind, "untyped", "untyped")

	sequential, err := NewDefaultValidator().Validate(td.doc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	concurrent, err := NewDefaultValidator(WithWorkers(4)).Validate(td.doc)
	if err != nil {
		t.Fatalf("Validate with workers failed: %v", err)
	}
	if len(sequential.Violations) < 2 {
		t.Fatalf("Expected at least 2 violations, got %v", sequential.Violations)
	}
	if len(concurrent.Violations) != len(sequential.Violations) {
		t.Fatalf("Got %d violations with workers, want %d", len(concurrent.Violations), len(sequential.Violations))
	}
	for i := range sequential.Violations {
		if concurrent.Violations[i].String() != sequential.Violations[i].String() {
			t.Errorf("Violation %d = %s, want %s", i, concurrent.Violations[i], sequential.Violations[i])
		}
	}
}

// TestValidator_WorkersConstraintError checks errors from concurrent constraints still abort validation
func TestValidator_WorkersConstraintError(t *testing.T) {
	v := NewValidator(WithWorkers(2))
	v.AddConstraints([]Constraint{&ReferenceConstraint{}, failingConstraint{}})
	_, err := v.Validate(sbol.NewDocument())
	if err == nil || !strings.Contains(err.Error(), "failing: boom") {
		t.Errorf("Expected wrapped constraint error, got %v", err)
	}
}
