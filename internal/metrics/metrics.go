// Package metrics defines Prometheus metrics for the pathfinder server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathfinder_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	// AlgorithmDuration observes graph algorithm runs, including the snapshot fetch.
	// kind is "bfs" or "shortest_path"; outcome is "ok", "not_found", "no_path" or "error".
	AlgorithmDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathfinder_algorithm_duration_seconds",
			Help:    "Graph algorithm duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "outcome"},
	)

	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pathfinder_login_failures_total",
			Help: "Total failed login attempts",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathfinder_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	// ChangeEvents counts graph_changes notifications forwarded to WebSocket clients.
	ChangeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_change_events_total",
			Help: "Graph change notifications forwarded to clients",
		},
		[]string{"table", "op"},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathfinder_nodes_total",
			Help: "Total node count",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathfinder_edges_total",
			Help: "Total edge count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		AlgorithmDuration, LoginFailures, WSConnections,
		ChangeEvents, NodeCount, EdgeCount,
	)
}
