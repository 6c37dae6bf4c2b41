package integrity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "integrity",
	Name:      "deletions_total",
	Help:      "Entity deletions by outcome (deleted, skipped, error).",
}, []string{"outcome"})

var cascadeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "integrity",
	Name:      "cascade_failures_total",
	Help:      "Edges and tag assignments that could not be removed during a cascade.",
}, []string{"kind"})
