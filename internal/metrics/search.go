package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsearch",
			Name:      "search_requests_total",
			Help:      "Total search requests by producing retrieval stage",
		},
		[]string{"stage", "outcome"}, // stage: vector|narrow-fallback|wide-fallback, outcome: results|empty
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "finsearch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search pipeline duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchCandidatesSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "finsearch",
			Name:      "search_candidates_skipped_total",
			Help:      "Candidates dropped due to malformed payloads",
		},
	)

	SearchStageDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsearch",
			Name:      "search_stage_degraded_total",
			Help:      "Retrieval stages that degraded to empty output on backend failure",
		},
		[]string{"stage"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidatesSkippedTotal)
	prometheus.MustRegister(SearchStageDegradedTotal)
	searchMetricsRegistered = true
}
