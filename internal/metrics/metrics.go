package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SelectionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "furnishing_selection_runs_total",
			Help: "Total number of furniture selection runs",
		},
		[]string{"mode"}, // external | local
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "furnishing_selection_duration_seconds",
			Help:    "Duration of a furniture selection run in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CoverageFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "furnishing_coverage_fallbacks_total",
			Help: "Items appended by the coverage backstop after the primary selection",
		},
	)

	UncoveredCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "furnishing_uncovered_categories_total",
			Help: "Requested categories left out of a result, by reason",
		},
		[]string{"reason"},
	)

	CatalogQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "furnishing_catalog_query_failures_total",
			Help: "Catalog queries that failed and were treated as empty",
		},
		[]string{"tier"},
	)

	VisionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "furnishing_vision_failures_total",
			Help: "Vision model calls that failed or returned unparsable output",
		},
		[]string{"mode"},
	)

	DetectionBindings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "furnishing_detection_bindings_total",
			Help: "Detected items processed by the image matcher, by outcome",
		},
		[]string{"outcome"}, // bound | unmatched
	)
)
