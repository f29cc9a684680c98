package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/protocol"
	"github.com/kemetharvest/gool/internal/version"
)

// handleAdminStats reports connection and scheduler counts.
// activeSubscriptions counts topics with a running update timer, not
// subscription edges.
func (s *Server) handleAdminStats(c echo.Context) error {
	stats := s.hub.Stats()
	return c.JSON(http.StatusOK, map[string]any{
		"connectedClients":    stats.ConnectedClients,
		"activeSubscriptions": s.scheduler.ScheduledTopics(),
		"timestamp":           s.clock.Now().Format("2006-01-02T15:04:05Z07:00"),
		"uptime":              s.uptimeSeconds(),
		"environment":         s.config.AppEnv,
	})
}

type postMatchEventRequest struct {
	Type          domain.MatchEventType `json:"type"`
	Minute        int                   `json:"minute"`
	Player        domain.EventPlayer    `json:"player"`
	AssistPlayer  *domain.EventPlayer   `json:"assistPlayer"`
	CardType      string                `json:"cardType"`
	Description   string                `json:"description"`
	DescriptionAr string                `json:"descriptionAr"`
}

// handlePostMatchEvent records a timeline event and fans it out to the
// match's subscribers.
func (s *Server) handlePostMatchEvent(c echo.Context) error {
	matchID := c.Param("id")

	var req postMatchEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	event := domain.MatchEvent{
		ID:            uuid.NewString(),
		MatchID:       matchID,
		Type:          req.Type,
		Minute:        req.Minute,
		Player:        req.Player,
		AssistPlayer:  req.AssistPlayer,
		CardType:      req.CardType,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
	}

	err := s.data.AddMatchEvent(c.Request().Context(), matchID, event)
	if errors.Is(err, domain.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Match not found"})
	}
	if err != nil {
		slog.Error("Failed to record match event", "match_id", matchID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record event"})
	}

	payload, err := s.encoder.MatchEvent(matchID, event)
	if err != nil {
		slog.Error("Failed to marshal match event", "match_id", matchID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to broadcast event"})
	}
	s.hub.BroadcastToSubscribers(matchID, protocol.TypeMatchEvent, payload)

	return c.JSON(http.StatusCreated, event)
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
