package shipment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShipmentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_shipments_created_total",
			Help: "Total number of created shipments",
		},
	)

	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_shipment_transitions_total",
			Help: "Total number of applied status transitions",
		},
		[]string{"from", "to"},
	)

	TransitionsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_shipment_transitions_rejected_total",
			Help: "Total number of rejected status transitions by reason",
		},
		[]string{"reason"},
	)

	ReviewsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_reviews_submitted_total",
			Help: "Total number of submitted reviews",
		},
	)
)
