package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConsumerErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kafka_consumer_errors_total",
			Help: "Errors reported by the Kafka consumer group",
		},
	)

	ConsumerRebalancesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kafka_consumer_rebalances_total",
			Help: "Consumer group sessions ended by a rebalance",
		},
	)
)
