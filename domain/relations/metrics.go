package relations

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "relationships",
	Name:      "upserts_total",
	Help:      "Relationship upserts by outcome (created, merged, unchanged, failed).",
}, []string{"outcome"})

var edgeReadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "relationships",
	Name:      "read_failures_total",
	Help:      "Edge reads that failed and were served as empty.",
})
