package background

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

var (
	TaskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_task_runs_total",
			Help: "Background task runs by task name and result",
		},
		[]string{"task", "result"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "background_task_duration_seconds",
			Help:    "Background task run duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)
)
