package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": s.uptimeSeconds(),
	})
}

// handleReadiness verifies the hub actor is responsive. Stats blocks on the
// command channel with a bounded timeout, so a wedged hub fails the check.
func (s *Server) handleReadiness(c echo.Context) error {
	stats := s.hub.Stats()
	if stats.ConnectedClients < 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "hub",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":           "ready",
		"connectedClients": stats.ConnectedClients,
	})
}
