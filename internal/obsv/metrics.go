// Package obsv registers the process-wide Prometheus collectors shared by
// every engine and the coordinator, mirroring the HistogramVec/CounterVec
// pair the teacher registers in pkg/graph/processors/nlp.go and pipeline.go.
package obsv

import "github.com/prometheus/client_golang/prometheus"

var (
	// AnalyzeDuration records wall-time per analyze() call, labeled by engine.
	AnalyzeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semcore_engine_analyze_duration_seconds",
			Help:    "Time spent in one engine's analyze() call.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine"},
	)

	// CacheLookupsTotal counts cache probes, labeled by engine and outcome (hit/miss).
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semcore_engine_cache_lookups_total",
			Help: "Cache probes per engine, partitioned by hit/miss.",
		},
		[]string{"engine", "outcome"},
	)

	// BatchSize records the size of batches submitted to the coordinator.
	BatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "semcore_coordinator_batch_size",
			Help:    "Number of (surface, pos) pairs per analyze_batch_deduped call.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// AnalysisFailuresTotal counts PerformAnalysis errors, labeled by engine and error kind.
	AnalysisFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semcore_engine_analysis_failures_total",
			Help: "Engine analysis failures, partitioned by error kind.",
		},
		[]string{"engine", "kind"},
	)
)

func init() {
	prometheus.MustRegister(AnalyzeDuration, CacheLookupsTotal, BatchSize, AnalysisFailuresTotal)
}
