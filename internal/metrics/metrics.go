// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - recommendation requests and combination search cost
// - feedback ingestion outcomes
// - collaborator calls and circuit breakers
// - catalog size and domain event publishing
// - API endpoint latency and throughput

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "success", "insufficient_inventory", "invalid_constraint", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wardrobe_recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Search Metrics
	SearchEvaluated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wardrobe_search_candidates_evaluated",
			Help:    "Complete outfits scored per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 .. 262144
		},
	)

	SearchPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_search_branches_pruned_total",
			Help: "Partial outfits abandoned by branch-and-bound",
		},
	)

	SearchRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_search_rejections_total",
			Help: "Outfits and branches rejected by hard constraints",
		},
		[]string{"kind"},
	)

	SearchTruncated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_search_truncated_total",
			Help: "Searches cut short by timeout or cancellation",
		},
	)

	// Feedback Metrics
	FeedbackEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_feedback_total",
			Help: "Feedback events by outcome",
		},
		[]string{"outcome"}, // "applied", "duplicate", "unknown_candidate", "invalid", "error"
	)

	// Collaborator Metrics
	CollaboratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_collaborator_requests_total",
			Help: "Calls to external collaborators",
		},
		[]string{"collaborator", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wardrobe_collaborator_duration_seconds",
			Help:    "Collaborator call latency in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"collaborator"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wardrobe_catalog_items",
			Help: "Active catalog items per slot",
		},
		[]string{"slot"},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wardrobe_catalog_version",
			Help: "Version of the current catalog snapshot",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_events_published_total",
			Help: "Domain events published",
		},
		[]string{"topic", "outcome"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_events_consumed_total",
			Help: "Domain events handled by consumers",
		},
		[]string{"topic", "outcome"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordRecommendation records one recommendation request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordSearch records the cost of one combination search.
func RecordSearch(evaluated, pruned int, rejected map[string]int, truncated bool) {
	SearchEvaluated.Observe(float64(evaluated))
	SearchPruned.Add(float64(pruned))
	for kind, n := range rejected {
		SearchRejections.WithLabelValues(kind).Add(float64(n))
	}
	if truncated {
		SearchTruncated.Inc()
	}
}

// RecordFeedback records a feedback outcome.
func RecordFeedback(outcome string) {
	FeedbackEvents.WithLabelValues(outcome).Inc()
}

// RecordCollaboratorCall records a call to an external collaborator.
func RecordCollaboratorCall(collaborator, outcome string, duration time.Duration) {
	CollaboratorRequests.WithLabelValues(collaborator, outcome).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetCatalogItems replaces the per-slot catalog gauges.
func SetCatalogItems(version uint64, perSlot map[string]int) {
	CatalogVersion.Set(float64(version))
	for slot, n := range perSlot {
		CatalogItems.WithLabelValues(slot).Set(float64(n))
	}
}

// RecordEventPublished records a domain event publish attempt.
func RecordEventPublished(topic string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	EventsPublished.WithLabelValues(topic, outcome).Inc()
}

// RecordEventConsumed records a domain event handled by a consumer.
func RecordEventConsumed(topic string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	EventsConsumed.WithLabelValues(topic, outcome).Inc()
}
