package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_rate_limit_rejected_total",
			Help: "Requests rejected with 429 by route template",
		},
		[]string{"method", "route"},
	)

	RateLimitTokensAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_rate_limit_tokens_available",
			Help: "Tokens left in the shared API bucket after the last decision",
		},
	)
)
