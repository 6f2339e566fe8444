package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDocumentMetrics() {
	r.EntitiesCreatedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_entities_created_total",
			Help: "Total number of entities registered in documents",
		},
		[]string{"kind"},
	)

	r.EntityCreateRejected = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_entity_create_rejected_total",
			Help: "Entity creations rejected at the factory",
		},
		[]string{"kind", "reason"}, // duplicate, invalid
	)

	r.DocumentsParsedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbol_documents_parsed_total",
			Help: "Total number of documents decoded from an interchange format",
		},
		[]string{"format", "status"},
	)
}
