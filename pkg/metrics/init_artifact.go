package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initArtifactMetrics() {
	r.ArtifactWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_artifact_writes_total",
			Help: "Total number of output artifacts written",
		},
		[]string{"sink", "status"}, // file, s3 / success, error
	)

	r.ArtifactBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_artifact_bytes_total",
			Help: "Bytes written to output artifacts after compression",
		},
		[]string{"sink"},
	)
}
