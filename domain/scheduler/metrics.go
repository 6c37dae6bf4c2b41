package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var taskRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "content",
	Subsystem: "scheduler",
	Name:      "task_runs_total",
	Help:      "Scheduled task runs by task and result (ok, error).",
}, []string{"task", "result"})
