// Package metrics defines the service's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AggregationRuns counts completed aggregation requests.
	AggregationRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aggregator_runs_total",
		Help: "Number of completed aggregation runs.",
	})

	// AggregationDuration observes how long one aggregation run takes.
	AggregationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aggregator_run_duration_seconds",
		Help:    "Duration of aggregation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// SourceFailures counts degraded (wallet, network, source) legs by source.
	SourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregator_source_failures_total",
		Help: "Number of per-source fetch failures degraded to zero contributions.",
	}, []string{"source"})

	// OracleLookups counts price oracle lookups by outcome (hit, miss, error).
	OracleLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregator_oracle_lookups_total",
		Help: "Number of price oracle lookups by cache outcome.",
	}, []string{"outcome"})
)

// MustRegisterMetrics registers every collector with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		AggregationRuns,
		AggregationDuration,
		SourceFailures,
		OracleLookups,
	)
}
