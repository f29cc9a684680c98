package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Admin surface
	s.echo.GET("/admin/stats", s.handleAdminStats)
	s.echo.POST("/admin/matches/:id/events", s.handlePostMatchEvent)

	// Catalog API
	api := s.echo.Group("/api")
	api.GET("/health", s.handleAPIHealth)
	api.GET("/matches", s.handleListMatches)
	api.GET("/matches/:id", s.handleGetMatch)
	api.PUT("/matches/:id", s.handleUpdateMatch)
	api.GET("/matches/:id/events", s.handleMatchEvents)
	api.GET("/matches/:id/statistics", s.handleMatchStatistics)
	api.GET("/leagues", s.handleListLeagues)
	api.GET("/leagues/:id", s.handleGetLeague)
	api.POST("/leagues", s.handleCreateLeague)
	api.GET("/teams", s.handleListTeams)
	api.GET("/teams/:id", s.handleGetTeam)
	api.GET("/news", s.handleListNews)
	api.GET("/news/:id", s.handleGetNews)

	// WebSocket endpoint
	s.echo.GET("/ws", s.handleWebSocket)
}
