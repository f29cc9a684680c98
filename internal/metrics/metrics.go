package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub metrics
var (
	// HubConnectedClients tracks the number of registered WebSocket connections
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Number of registered WebSocket connections",
		},
	)

	// HubSubscriptions tracks the total number of subscription edges across clients
	HubSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_subscriptions",
			Help: "Total topic subscriptions across all connections",
		},
	)

	// HubMessagesSentTotal counts messages written to clients by envelope type
	HubMessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_messages_sent_total",
			Help: "Messages fanned out to clients by type",
		},
		[]string{"type"},
	)

	// HubSlowClientsEvicted counts clients dropped because their send buffer filled
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Clients disconnected because their send buffer was full",
		},
	)

	// HubStopTimeoutsTotal counts hub shutdowns that exceeded the stop timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stop_timeouts_total",
			Help: "Hub shutdowns that exceeded the graceful stop timeout",
		},
	)
)

// Simulator metrics
var (
	// SimulatorScheduledTopics tracks topics with an active update timer
	SimulatorScheduledTopics = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "simulator_scheduled_topics",
			Help: "Topics with an active match update timer",
		},
	)

	// SimulatorTicksTotal counts update timer ticks by outcome
	SimulatorTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulator_ticks_total",
			Help: "Match update timer ticks by outcome (skipped/noop/mutated)",
		},
		[]string{"outcome"},
	)

	// SnapshotBroadcastsTotal counts global match-list broadcasts
	SnapshotBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_broadcasts_total",
			Help: "Global matches_broadcast emissions",
		},
	)
)

// WebSocket transport metrics
var (
	// WebSocketMessageSendDuration tracks per-message write latency
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// WebSocketPingFailures counts keepalive pings that failed to write
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Keepalive pings that failed to write",
		},
	)

	// WebSocketProtocolErrors counts malformed inbound payloads
	WebSocketProtocolErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_protocol_errors_total",
			Help: "Inbound payloads rejected as malformed",
		},
	)

	// ConnectionsRejectedTotal counts upgrades refused by the connection limiter
	ConnectionsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connections_rejected_total",
			Help: "WebSocket upgrades refused by the connection limiter, by reason",
		},
		[]string{"reason"},
	)
)
