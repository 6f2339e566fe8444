package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.EntitiesCreatedTotal == nil {
		t.Error("EntitiesCreatedTotal not initialized")
	}
	if r.ValidationRunsTotal == nil {
		t.Error("ValidationRunsTotal not initialized")
	}
	if r.SerializationDuration == nil {
		t.Error("SerializationDuration not initialized")
	}
	if r.ArtifactWritesTotal == nil {
		t.Error("ArtifactWritesTotal not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordEntityCreated(t *testing.T) {
	r := NewRegistry()

	r.RecordEntityCreated("ComponentDefinition")
	r.RecordEntityCreated("ComponentDefinition")
	r.RecordEntityCreated("Sequence")
	r.RecordEntityRejected("Sequence", "duplicate")

	if got := counterValue(t, r.EntitiesCreatedTotal, "ComponentDefinition"); got != 2 {
		t.Errorf("ComponentDefinition count = %v, want 2", got)
	}
	if got := counterValue(t, r.EntityCreateRejected, "Sequence", "duplicate"); got != 1 {
		t.Errorf("rejected count = %v, want 1", got)
	}
}

func TestRecordValidation(t *testing.T) {
	r := NewRegistry()

	r.RecordValidation(map[string]int{}, time.Millisecond)
	r.RecordValidation(map[string]int{"missing-reference": 2, "foreign-subject-object": 1}, time.Millisecond)

	if got := counterValue(t, r.ValidationRunsTotal, "valid"); got != 1 {
		t.Errorf("valid runs = %v, want 1", got)
	}
	if got := counterValue(t, r.ValidationRunsTotal, "invalid"); got != 1 {
		t.Errorf("invalid runs = %v, want 1", got)
	}
	if got := counterValue(t, r.ValidationViolationsTotal, "missing-reference"); got != 2 {
		t.Errorf("missing-reference = %v, want 2", got)
	}
}

func TestRecordSerializationAndArtifact(t *testing.T) {
	r := NewRegistry()

	r.RecordSerialization("rdfxml", "success", 4096, 2*time.Millisecond)
	r.RecordSerialization("rdfxml", "invalid", 0, time.Millisecond)
	r.RecordArtifactWrite("file", "success", 4096)
	r.RecordArtifactWrite("s3", "error", 0)

	if got := counterValue(t, r.SerializationsTotal, "rdfxml", "success"); got != 1 {
		t.Errorf("success serializations = %v, want 1", got)
	}
	if got := counterValue(t, r.ArtifactBytesTotal, "file"); got != 4096 {
		t.Errorf("file bytes = %v, want 4096", got)
	}
	if got := counterValue(t, r.ArtifactWritesTotal, "s3", "error"); got != 1 {
		t.Errorf("s3 errors = %v, want 1", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordEntityCreated("Sequence")
	r.RecordEntityRejected("Sequence", "invalid")
	r.RecordParse("rdfxml", "success")
	r.RecordValidation(map[string]int{"missing-reference": 1}, time.Millisecond)
	r.RecordSerialization("rdfxml", "success", 1, time.Millisecond)
	r.RecordArtifactWrite("file", "success", 1)
}

func TestWriteSummary(t *testing.T) {
	r := NewRegistry()
	r.RecordEntityCreated("Sequence")
	r.RecordSerialization("yaml", "success", 100, time.Millisecond)

	var buf bytes.Buffer
	if err := r.WriteSummary(&buf); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `sbol_entities_created_total{kind="Sequence"} 1`) {
		t.Errorf("summary missing entity counter:\n%s", out)
	}
	if !strings.Contains(out, `sbol_serialization_duration_seconds_count{format="yaml"} 1`) {
		t.Errorf("summary missing histogram count:\n%s", out)
	}
}
