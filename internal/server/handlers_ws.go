package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/kemetharvest/gool/internal/logging"
	"github.com/kemetharvest/gool/internal/metrics"
	"github.com/kemetharvest/gool/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the CORS layer for the REST API only
	},
}

func (s *Server) handleWebSocket(c echo.Context) error {
	ip := c.RealIP()
	ok, reason := s.limits.Acquire(ip)
	if !ok {
		metrics.ConnectionsRejectedTotal.WithLabelValues(string(reason)).Inc()
		slog.Warn("Rejecting connection", "ip", ip, "reason", reason)
		if reason == LimitReasonRate {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many connection attempts"})
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Connection limit reached"})
	}
	defer s.limits.Release(ip)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("Failed to upgrade WebSocket", "error", err)
		return nil
	}

	connectionID, err := s.hub.Register(conn)
	if err != nil {
		slog.Error("Failed to register connection", "error", err)
		_ = conn.Close()
		return nil
	}

	// Read pump - blocks until the connection closes
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		s.handleInbound(connectionID, raw)
	}

	s.hub.Unregister(connectionID)

	return nil
}

func (s *Server) handleInbound(connectionID uuid.UUID, raw []byte) {
	msg, err := protocol.ParseInbound(raw)
	switch {
	case errors.Is(err, protocol.ErrMalformed):
		metrics.WebSocketProtocolErrors.Inc()
		s.hub.Send(connectionID, protocol.TypeError, protocol.ErrorMessage("Invalid message format"))
		return
	case err != nil:
		// Unknown types and missing channels are dropped silently
		logging.WithConnection(connectionID.String()).Debug("Ignoring inbound message", "reason", err)
		return
	}

	switch msg.Type {
	case protocol.InboundSubscribe:
		s.hub.Subscribe(connectionID, msg.Channel)
	case protocol.InboundUnsubscribe:
		s.hub.Unsubscribe(connectionID, msg.Channel)
	}
}
