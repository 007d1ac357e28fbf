package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpath_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustpath_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// GraphBuildDuration covers every data fetch plus assembly of one graph.
	GraphBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustpath_graph_build_duration_seconds",
		Help:    "Time spent building a user's acquaintance graph",
		Buckets: prometheus.DefBuckets,
	})

	GraphNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustpath_graph_nodes",
		Help:    "Number of nodes in built graphs",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	GraphEdges = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustpath_graph_edges",
		Help:    "Number of directed edges in built graphs",
		Buckets: prometheus.ExponentialBuckets(2, 2, 15),
	})

	// FetchFailures counts data-access errors by fetch operation.
	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpath_fetch_failures_total",
			Help: "Data-access failures encountered while building graphs",
		},
		[]string{"operation"},
	)

	PathSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpath_path_searches_total",
			Help: "Path searches by outcome (found, empty, self, unknown_target)",
		},
		[]string{"outcome"},
	)

	PathCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustpath_path_candidates",
		Help:    "Candidate paths materialized per search before ranking",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})

	QueueExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustpath_path_queue_expansions",
		Help:    "Work items popped from the search queue per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// TargetResolutions counts description lookups by source (own, team, none).
	TargetResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustpath_target_resolutions_total",
			Help: "Target description lookups by resolution source",
		},
		[]string{"source"},
	)
)
