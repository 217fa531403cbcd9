// Package metrics defines the Prometheus instrumentation for the push layer
// and the WebSocket endpoint. All collectors are registered via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcaster metrics
var (
	// BroadcasterActiveUsers tracks the number of users with at least one open channel
	BroadcasterActiveUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcaster_active_users",
			Help: "Number of users with at least one connected push channel",
		},
	)

	// BroadcasterConnectedClients tracks total number of connected WebSocket clients
	BroadcasterConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcaster_connected_clients_total",
			Help: "Total number of connected WebSocket clients across all users",
		},
	)

	// BroadcasterMessagesSent tracks push messages sent by message type
	BroadcasterMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcaster_messages_sent_total",
			Help: "Total push messages sent by message type",
		},
		[]string{"type"},
	)

	// BroadcasterSlowClientsEvicted tracks clients evicted for full send buffers
	BroadcasterSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_slow_clients_evicted_total",
			Help: "Total clients disconnected because their send buffer was full",
		},
	)

	// BroadcasterStopTimeoutsTotal tracks forced shutdowns
	BroadcasterStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_stop_timeouts_total",
			Help: "Total broadcaster stops that exceeded the graceful timeout",
		},
	)

	// BroadcasterPanicsTotal tracks recovered panics in the broadcaster goroutine
	BroadcasterPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_panics_total",
			Help: "Total panics recovered in the broadcaster goroutine",
		},
	)

	// TipBroadcastsTotal tracks scheduled tip fan-outs
	TipBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tip_broadcasts_total",
			Help: "Total scheduled financial tip broadcasts",
		},
	)
)

// WebSocket connection metrics
var (
	// WebSocketMessageSendDuration tracks time to write a message to a client
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// WebSocketPingFailures tracks failed keepalive pings
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total failed WebSocket keepalive pings",
		},
	)

	// WebSocketIdleDisconnects tracks connections closed for inactivity
	WebSocketIdleDisconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_idle_disconnects_total",
			Help: "Total WebSocket connections closed due to idle timeout",
		},
	)

	// WebSocketConnectionsRejected tracks rejected upgrade attempts by reason
	WebSocketConnectionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_rejected_total",
			Help: "Total rejected WebSocket connections by reason",
		},
		[]string{"reason"},
	)
)
