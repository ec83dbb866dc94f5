package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "store_mutations_total", Help: "Number of portfolio store mutations by collection and outcome."},
		[]string{"collection", "outcome"},
	)
	AssistantRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "assistant_requests_total", Help: "Number of assistant upstream calls by endpoint and outcome."},
		[]string{"endpoint", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreMutations)
	reg.MustRegister(AssistantRequests)
}
