package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_created_total",
			Help: "Total number of matches created",
		},
	)

	overallScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_overall_scores",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	generationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_generation_errors_total",
			Help: "Per-item errors skipped during match generation",
		},
		[]string{"operation"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_generation_duration_seconds",
			Help:    "Duration of match generation operations",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"operation"},
	)
)

func recordMatchCreated(overall int) {
	matchesCreatedTotal.Inc()
	overallScores.Observe(float64(overall))
}

func recordGenerationError(operation string) {
	generationErrors.WithLabelValues(operation).Inc()
}

func observeGenerationDuration(operation string, d time.Duration) {
	generationDuration.WithLabelValues(operation).Observe(d.Seconds())
}
