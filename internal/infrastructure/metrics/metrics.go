package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast Registry Metrics
var (
	// BroadcastPublishesTotal tracks publish calls by ticket fan-out outcome
	BroadcastPublishesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_publishes_total",
			Help: "Total new-message publishes handed to the broadcast registry",
		},
	)

	// BroadcastDeliveriesTotal tracks per-listener delivery outcomes
	BroadcastDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_deliveries_total",
			Help: "Per-listener delivery attempts by result (delivered/dropped)",
		},
		[]string{"result"},
	)

	// BroadcastSubscribersCurrent tracks currently registered listeners
	BroadcastSubscribersCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_subscribers_current",
			Help: "Current number of registered ticket listeners",
		},
	)

	// BroadcastRoomsCurrent tracks tickets with at least one listener
	BroadcastRoomsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_rooms_current",
			Help: "Current number of tickets with at least one listener",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectionsTotal tracks connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error)",
		},
		[]string{"result"},
	)

	// WebSocketEchoFramesTotal tracks inbound frames echoed back to the sender
	WebSocketEchoFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_echo_frames_total",
			Help: "Total inbound text frames echoed back verbatim",
		},
	)
)

// HTTP Request Metrics
var (
	// HTTPRequestsTotal tracks requests by method, route pattern, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path, and status",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route pattern
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)
