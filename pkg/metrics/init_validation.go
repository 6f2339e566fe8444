package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initValidationMetrics() {
	r.ValidationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_validation_runs_total",
			Help: "Total number of document validation passes",
		},
		[]string{"result"}, // valid, invalid
	)

	r.ValidationViolationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_validation_violations_total",
			Help: "Violations reported by validation, by violation kind",
		},
		[]string{"type"},
	)

	r.ValidationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sbol_validation_duration_seconds",
			Help:    "Duration of document validation passes",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)
}
