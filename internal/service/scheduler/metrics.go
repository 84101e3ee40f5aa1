package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_scheduler_assignments_total",
			Help: "Total number of assignment attempts by result",
		},
		[]string{"result"},
	)

	AssignmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_scheduler_assignment_duration_seconds",
			Help:    "Duration of a single assignment attempt including retries",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	TriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_scheduler_triggers_total",
			Help: "Total number of capacity triggers by kind",
		},
		[]string{"kind"},
	)

	TriggerOverflowTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_scheduler_trigger_overflow_total",
			Help: "Triggers folded into a full sweep because the queue was full",
		},
	)
)
