package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoringOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playgroundr_scoring_outcomes_total",
			Help: "Places scored, by final scoring state",
		},
		[]string{"state"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playgroundr_scoring_duration_seconds",
			Help:    "Time spent scoring a single place or a ranked batch",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation"},
	)

	PlacesRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playgroundr_places_requests_total",
			Help: "Places API requests, by endpoint and API status",
		},
		[]string{"endpoint", "status"},
	)

	PlacesRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "playgroundr_places_request_duration_seconds",
			Help: "Places API request latency",
		},
		[]string{"endpoint"},
	)

	PlacesRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playgroundr_places_records_skipped_total",
			Help: "Search hits dropped because their details lookup failed",
		},
		[]string{"endpoint"},
	)

	PlaceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playgroundr_place_cache_lookups_total",
			Help: "Place detail cache lookups, by result",
		},
		[]string{"result"},
	)
)
