package suggestions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var snapshotRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "suggestions",
	Name:      "snapshot_refreshes_total",
	Help:      "Catalog snapshots built for match suggestions.",
})

var snapshotRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "content",
	Subsystem: "suggestions",
	Name:      "snapshot_records",
	Help:      "Records in the current suggestion snapshot by content type.",
}, []string{"type"})
