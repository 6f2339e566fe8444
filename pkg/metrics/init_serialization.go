package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSerializationMetrics() {
	r.SerializationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_serializations_total",
			Help: "Total number of documents encoded",
		},
		[]string{"format", "status"}, // success, invalid, error
	)

	r.SerializationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sbol_serialization_duration_seconds",
			Help:    "Duration of document encoding including validation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"format"},
	)

	r.SerializedBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sbol_serialized_bytes",
			Help:    "Size of encoded documents in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"format"},
	)
}
