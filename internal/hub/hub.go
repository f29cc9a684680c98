package hub

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/metrics"
	"github.com/kemetharvest/gool/internal/protocol"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// client is a registered connection with its subscription set.
// Owned exclusively by the hub goroutine.
type client struct {
	id            uuid.UUID
	connection    *websocket.Conn
	writer        *clientWriter
	subscriptions map[string]struct{}
}

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	connection   *websocket.Conn
	replyChannel chan uuid.UUID
}

type unregisterCmd struct {
	baseHubCmd
	connectionID uuid.UUID
}

type subscribeCmd struct {
	baseHubCmd
	connectionID uuid.UUID
	topic        string
}

type unsubscribeCmd struct {
	baseHubCmd
	connectionID uuid.UUID
	topic        string
}

type sendCmd struct {
	baseHubCmd
	connectionID uuid.UUID
	messageType  string
	payload      []byte
}

type broadcastAllCmd struct {
	baseHubCmd
	messageType string
	payload     []byte
}

type broadcastTopicCmd struct {
	baseHubCmd
	topic       string
	messageType string
	payload     []byte
}

type statsCmd struct {
	baseHubCmd
	replyChannel chan Stats
}

type stopCmd struct {
	baseHubCmd
}

// Stats is a point-in-time view of the hub's registry.
type Stats struct {
	ConnectedClients int
	Subscriptions    int
}

// Hub owns the set of live connections and fans messages out to them.
type Hub struct {
	cmdCh       chan hubCmd
	clock       clockwork.Clock
	encoder     *protocol.Encoder
	clients     map[uuid.UUID]*client
	onSubscribe func(topic string)
	done        chan struct{}
	stopTimeout time.Duration
}

// New creates a hub and starts its actor goroutine.
// onSubscribe is called on every successful subscribe so the match update
// scheduler can ensure a timer exists for the topic; idempotence lives there.
func New(clock clockwork.Clock, encoder *protocol.Encoder, onSubscribe func(topic string)) *Hub {
	h := &Hub{
		cmdCh:       make(chan hubCmd, 256),
		clock:       clock,
		encoder:     encoder,
		clients:     make(map[uuid.UUID]*client),
		onSubscribe: onSubscribe,
		done:        make(chan struct{}),
		stopTimeout: stopTimeout,
	}
	go h.run()
	return h
}

// --- Public API ---

// Register adds a connection and returns its freshly assigned identifier.
func (h *Hub) Register(conn *websocket.Conn) (uuid.UUID, error) {
	replyCh := make(chan uuid.UUID, 1)
	h.cmdCh <- registerCmd{connection: conn, replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case id := <-replyCh:
		return id, nil
	case <-timer.Chan():
		return uuid.Nil, fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection. Unknown ids are a no-op.
func (h *Hub) Unregister(connectionID uuid.UUID) {
	h.cmdCh <- unregisterCmd{connectionID: connectionID}
}

// Subscribe adds topic to the connection's subscription set and acknowledges
// with a subscribed envelope to that connection only.
func (h *Hub) Subscribe(connectionID uuid.UUID, topic string) {
	h.cmdCh <- subscribeCmd{connectionID: connectionID, topic: topic}
}

// Unsubscribe removes topic from the connection's subscription set.
func (h *Hub) Unsubscribe(connectionID uuid.UUID, topic string) {
	h.cmdCh <- unsubscribeCmd{connectionID: connectionID, topic: topic}
}

// Send queues a payload for a single connection. Unknown ids are a no-op.
func (h *Hub) Send(connectionID uuid.UUID, messageType string, payload []byte) {
	h.cmdCh <- sendCmd{connectionID: connectionID, messageType: messageType, payload: payload}
}

// BroadcastAll queues the payload for every registered connection.
// The payload is serialized by the caller exactly once.
func (h *Hub) BroadcastAll(messageType string, payload []byte) {
	h.cmdCh <- broadcastAllCmd{messageType: messageType, payload: payload}
}

// BroadcastToSubscribers queues the payload for connections subscribed to topic.
func (h *Hub) BroadcastToSubscribers(topic, messageType string, payload []byte) {
	h.cmdCh <- broadcastTopicCmd{topic: topic, messageType: messageType, payload: payload}
}

// Stats returns current registry counts.
// ConnectedClients is -1 if the command times out.
func (h *Hub) Stats() Stats {
	replyCh := make(chan Stats, 1)
	h.cmdCh <- statsCmd{replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case s := <-replyCh:
		return s
	case <-timer.Chan():
		slog.Warn("Stats command timed out", "timeout", commandTimeout)
		return Stats{ConnectedClients: -1}
	}
}

// Stop shuts down the hub, closing all client connections.
// Blocks until the hub goroutine has exited or the stop timeout is reached.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}

	timer := h.clock.NewTimer(h.stopTimeout)
	defer timer.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Hub stop timeout exceeded, forcing exit", "timeout", h.stopTimeout)
		metrics.HubStopTimeoutsTotal.Inc()
	}
}

// --- Actor loop ---

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c.connectionID, "")
		case subscribeCmd:
			h.handleSubscribe(c)
		case unsubscribeCmd:
			h.handleUnsubscribe(c)
		case sendCmd:
			h.handleSend(c)
		case broadcastAllCmd:
			h.handleBroadcastAll(c)
		case broadcastTopicCmd:
			h.handleBroadcastTopic(c)
		case statsCmd:
			c.replyChannel <- h.currentStats()
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	id := uuid.New()
	h.clients[id] = &client{
		id:            id,
		connection:    c.connection,
		writer:        newClientWriter(c.connection, h.clock),
		subscriptions: make(map[string]struct{}),
	}

	metrics.HubConnectedClients.Set(float64(len(h.clients)))

	slog.Info("Client connected", "connection_id", id.String(), "total_clients", len(h.clients))
	c.replyChannel <- id
}

func (h *Hub) handleUnregister(connectionID uuid.UUID, reason string) {
	cl, exists := h.clients[connectionID]
	if !exists {
		return
	}

	if reason == "" {
		cl.writer.stop()
	} else {
		cl.writer.stopGraceful(reason)
	}
	delete(h.clients, connectionID)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	metrics.HubSubscriptions.Sub(float64(len(cl.subscriptions)))

	slog.Info("Client disconnected", "connection_id", connectionID.String(), "total_clients", len(h.clients))
}

func (h *Hub) handleSubscribe(c subscribeCmd) {
	cl, exists := h.clients[c.connectionID]
	if !exists {
		// Connection closed concurrently with an in-flight message
		return
	}

	if _, already := cl.subscriptions[c.topic]; !already {
		cl.subscriptions[c.topic] = struct{}{}
		metrics.HubSubscriptions.Inc()
	}

	if h.onSubscribe != nil {
		h.onSubscribe(c.topic)
	}

	ack, err := h.encoder.Subscribed(c.topic)
	if err != nil {
		slog.Error("Failed to marshal subscribe ack", "error", err)
		return
	}
	h.trySend(cl, protocol.TypeSubscribed, ack)

	slog.Debug("Client subscribed", "connection_id", c.connectionID.String(), "topic", c.topic)
}

func (h *Hub) handleUnsubscribe(c unsubscribeCmd) {
	cl, exists := h.clients[c.connectionID]
	if !exists {
		return
	}
	if _, ok := cl.subscriptions[c.topic]; ok {
		delete(cl.subscriptions, c.topic)
		metrics.HubSubscriptions.Dec()
		slog.Debug("Client unsubscribed", "connection_id", c.connectionID.String(), "topic", c.topic)
	}
}

func (h *Hub) handleSend(c sendCmd) {
	cl, exists := h.clients[c.connectionID]
	if !exists {
		return
	}
	h.trySend(cl, c.messageType, c.payload)
}

func (h *Hub) handleBroadcastAll(c broadcastAllCmd) {
	var slow []uuid.UUID
	for id, cl := range h.clients {
		if !h.trySend(cl, c.messageType, c.payload) {
			slow = append(slow, id)
		}
	}
	h.evictSlow(slow)
}

func (h *Hub) handleBroadcastTopic(c broadcastTopicCmd) {
	var slow []uuid.UUID
	for id, cl := range h.clients {
		if _, subscribed := cl.subscriptions[c.topic]; !subscribed {
			continue
		}
		if !h.trySend(cl, c.messageType, c.payload) {
			slow = append(slow, id)
		}
	}
	h.evictSlow(slow)
}

// trySend queues the payload without blocking. Reports false when the client's
// send buffer is full.
func (h *Hub) trySend(cl *client, messageType string, payload []byte) bool {
	select {
	case cl.writer.sendChannel <- payload:
		metrics.HubMessagesSentTotal.WithLabelValues(messageType).Inc()
		return true
	default:
		return false
	}
}

func (h *Hub) evictSlow(ids []uuid.UUID) {
	for _, id := range ids {
		slog.Warn("Disconnecting slow client", "connection_id", id.String())
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(id, "")
	}
}

func (h *Hub) currentStats() Stats {
	subs := 0
	for _, cl := range h.clients {
		subs += len(cl.subscriptions)
	}
	return Stats{ConnectedClients: len(h.clients), Subscriptions: subs}
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "total_clients", len(h.clients))

	for id, cl := range h.clients {
		cl.writer.stopGraceful("Server shutting down")
		delete(h.clients, id)
	}
	metrics.HubConnectedClients.Set(0)
	metrics.HubSubscriptions.Set(0)

	slog.Info("Hub shutdown complete")
}
