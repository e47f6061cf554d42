package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog ingestion Prometheus metrics.
var (
	IngestProductsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsearch",
			Name:      "ingest_products_total",
			Help:      "Products processed by the ingest pipeline by outcome",
		},
		[]string{"outcome"}, // indexed|failed
	)

	IngestBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "finsearch",
			Name:      "ingest_batch_duration_seconds",
			Help:      "Duration of a full IndexProducts run in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingest metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestProductsTotal)
	prometheus.MustRegister(IngestBatchDuration)
	ingestMetricsRegistered = true
}
