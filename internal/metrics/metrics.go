// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package metrics defines Prometheus collectors for the service.
// All collectors are registered on the default registry via promauto
// and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes HTTP request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shoprec_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RecommendationDuration observes end-to-end recommendation compute latency,
	// labeled by outcome (computed, empty, error).
	RecommendationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shoprec_recommendation_duration_seconds",
		Help:    "Recommendation pipeline latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"outcome"})

	// RecommendationsServed counts recommendation responses by source
	// (cache, computed).
	RecommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_recommendations_served_total",
		Help: "Total recommendation responses served",
	}, []string{"source"})

	// CacheOperations counts cache lookups by result (hit, miss, error).
	CacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_cache_operations_total",
		Help: "Cache lookup results",
	}, []string{"result"})

	// FeedRowsFetched counts interaction rows fetched from the upstream feed.
	FeedRowsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoprec_feed_rows_fetched_total",
		Help: "Total interaction rows fetched from the upstream feed",
	})

	// FeedFetchDuration observes upstream feed fetch latency.
	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shoprec_feed_fetch_duration_seconds",
		Help:    "Upstream interaction feed fetch latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// CircuitBreakerState reports the feed circuit breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shoprec_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	// CircuitBreakerTransitions counts circuit breaker state transitions.
	CircuitBreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_circuit_breaker_transitions_total",
		Help: "Circuit breaker state transitions",
	}, []string{"name", "from", "to"})

	// CircuitBreakerRequests counts requests through the breaker by result
	// (success, failure, rejected).
	CircuitBreakerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_circuit_breaker_requests_total",
		Help: "Requests through the circuit breaker by result",
	}, []string{"name", "result"})

	// ImportRecords counts seed import results by entity and outcome.
	ImportRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoprec_import_records_total",
		Help: "Dataset import results by entity and outcome",
	}, []string{"entity", "outcome"})

	// StoreEntities reports the number of stored entities by kind.
	StoreEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shoprec_store_entities",
		Help: "Number of entities in the store by kind",
	}, []string{"kind"})
)
