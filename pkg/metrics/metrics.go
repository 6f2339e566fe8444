package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// Every Record method is a no-op on a nil *Registry so callers can leave
// metrics unconfigured.

// RecordEntityCreated records a successful entity registration
func (r *Registry) RecordEntityCreated(kind string) {
	if r == nil {
		return
	}
	r.EntitiesCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordEntityRejected records a factory call that failed
func (r *Registry) RecordEntityRejected(kind, reason string) {
	if r == nil {
		return
	}
	r.EntityCreateRejected.WithLabelValues(kind, reason).Inc()
}

// RecordParse records a document decode
func (r *Registry) RecordParse(format, status string) {
	if r == nil {
		return
	}
	r.DocumentsParsedTotal.WithLabelValues(format, status).Inc()
}

// RecordValidation records one validation pass and its violations by kind
func (r *Registry) RecordValidation(violationsByType map[string]int, duration time.Duration) {
	if r == nil {
		return
	}
	result := "valid"
	for typ, n := range violationsByType {
		if n == 0 {
			continue
		}
		result = "invalid"
		r.ValidationViolationsTotal.WithLabelValues(typ).Add(float64(n))
	}
	r.ValidationRunsTotal.WithLabelValues(result).Inc()
	r.ValidationDuration.Observe(duration.Seconds())
}

// RecordSerialization records an encode attempt
func (r *Registry) RecordSerialization(format, status string, size int, duration time.Duration) {
	if r == nil {
		return
	}
	r.SerializationsTotal.WithLabelValues(format, status).Inc()
	r.SerializationDuration.WithLabelValues(format).Observe(duration.Seconds())
	if status == "success" {
		r.SerializedBytes.WithLabelValues(format).Observe(float64(size))
	}
}

// RecordArtifactWrite records an artifact write to a sink
func (r *Registry) RecordArtifactWrite(sink, status string, size int64) {
	if r == nil {
		return
	}
	r.ArtifactWritesTotal.WithLabelValues(sink, status).Inc()
	if status == "success" {
		r.ArtifactBytesTotal.WithLabelValues(sink).Add(float64(size))
	}
}

// WriteSummary writes every counter and histogram count as one
// "name{labels} value" line, sorted by name.
func (r *Registry) WriteSummary(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			name := mf.GetName()
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				name += "_count"
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s %g\n", name, formatLabels(m.GetLabel()), value); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, lp := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
