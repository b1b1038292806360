package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	DiagramsBuilt         prometheus.Counter
	RelationshipsInferred prometheus.Counter
	BuildDuration         prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DiagramsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erd_backend",
			Name:      "diagrams_built_total",
			Help:      "Number of diagrams built.",
		}),
		RelationshipsInferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erd_backend",
			Name:      "relationships_inferred_total",
			Help:      "Number of relationships inferred across all builds.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "erd_backend",
			Name:      "diagram_build_duration_seconds",
			Help:      "Time spent inferring relationships and laying out diagrams.",
		}),
	}

	reg.MustRegister(m.DiagramsBuilt, m.RelationshipsInferred, m.BuildDuration)

	return m
}
