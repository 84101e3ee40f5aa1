package token

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_tokens_issued_total",
			Help: "Total number of issued verification codes and review tokens",
		},
		[]string{"kind"},
	)

	TokensConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_tokens_consumed_total",
			Help: "Total number of consume attempts by outcome",
		},
		[]string{"kind", "result"},
	)

	TokensDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_tokens_deleted_total",
			Help: "Total number of expired tokens removed by cleanup",
		},
	)
)

const (
	kindCode   = "verification_code"
	kindReview = "review_token"
)
