package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Document Metrics
	EntitiesCreatedTotal *prometheus.CounterVec
	EntityCreateRejected *prometheus.CounterVec
	DocumentsParsedTotal *prometheus.CounterVec

	// Validation Metrics
	ValidationRunsTotal       *prometheus.CounterVec
	ValidationViolationsTotal *prometheus.CounterVec
	ValidationDuration        prometheus.Histogram

	// Serialization Metrics
	SerializationsTotal   *prometheus.CounterVec
	SerializationDuration *prometheus.HistogramVec
	SerializedBytes       *prometheus.HistogramVec

	// Artifact Metrics
	ArtifactWritesTotal *prometheus.CounterVec
	ArtifactBytesTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initDocumentMetrics()
	r.initValidationMetrics()
	r.initSerializationMetrics()
	r.initArtifactMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
