package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/kemetharvest/gool/internal/domain"
)

func (s *Server) handleAPIHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.clock.Now().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *Server) handleListMatches(c echo.Context) error {
	day := domain.Day(c.QueryParam("day"))
	if day == "" {
		day = domain.DayToday
	}
	if !day.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid day parameter"})
	}

	matches, err := s.data.MatchesByDay(c.Request().Context(), day)
	if err != nil {
		slog.Error("Failed to list matches", "day", day, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch matches"})
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return c.JSON(http.StatusOK, matches)
}

func (s *Server) handleGetMatch(c echo.Context) error {
	match, err := s.data.GetMatch(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Match not found"})
	}
	if err != nil {
		slog.Error("Failed to get match", "match_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch match"})
	}
	return c.JSON(http.StatusOK, match)
}

type updateMatchRequest struct {
	HomeScore *int                `json:"homeScore"`
	AwayScore *int                `json:"awayScore"`
	Status    *domain.MatchStatus `json:"status"`
	Minute    *int                `json:"minute"`
}

func (s *Server) handleUpdateMatch(c echo.Context) error {
	var req updateMatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Status != nil && !req.Status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status"})
	}

	match, err := s.data.UpdateMatch(c.Request().Context(), c.Param("id"), domain.MatchPatch{
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Status:    req.Status,
		Minute:    req.Minute,
	})
	if errors.Is(err, domain.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Match not found"})
	}
	if err != nil {
		slog.Error("Failed to update match", "match_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update match"})
	}
	return c.JSON(http.StatusOK, match)
}

func (s *Server) handleMatchEvents(c echo.Context) error {
	events, err := s.data.MatchEvents(c.Request().Context(), c.Param("id"))
	if err != nil {
		slog.Error("Failed to list match events", "match_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch match events"})
	}
	if events == nil {
		events = []domain.MatchEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

func (s *Server) handleMatchStatistics(c echo.Context) error {
	stats, err := s.data.MatchStatistics(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrMatchNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Match not found"})
	}
	if err != nil {
		slog.Error("Failed to build match statistics", "match_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch match statistics"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleListLeagues(c echo.Context) error {
	leagues, err := s.data.Leagues(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list leagues", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch leagues"})
	}
	return c.JSON(http.StatusOK, leagues)
}

func (s *Server) handleGetLeague(c echo.Context) error {
	league, err := s.data.League(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrLeagueNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "League not found"})
	}
	if err != nil {
		slog.Error("Failed to get league", "league_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch league"})
	}
	return c.JSON(http.StatusOK, league)
}

type createLeagueRequest struct {
	Name    string `json:"name"`
	NameAr  string `json:"nameAr"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Type    string `json:"type"`
}

func (s *Server) handleCreateLeague(c echo.Context) error {
	var req createLeagueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Name == "" || req.NameAr == "" || req.Country == "" || req.Logo == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}

	league, err := s.data.CreateLeague(c.Request().Context(), domain.League{
		Name:    req.Name,
		NameAr:  req.NameAr,
		Country: req.Country,
		Logo:    req.Logo,
		Season:  req.Season,
		Type:    req.Type,
	})
	if err != nil {
		slog.Error("Failed to create league", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create league"})
	}
	return c.JSON(http.StatusCreated, league)
}

func (s *Server) handleListTeams(c echo.Context) error {
	teams, err := s.data.Teams(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list teams", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch teams"})
	}
	return c.JSON(http.StatusOK, teams)
}

func (s *Server) handleGetTeam(c echo.Context) error {
	team, err := s.data.Team(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrTeamNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Team not found"})
	}
	if err != nil {
		slog.Error("Failed to get team", "team_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch team"})
	}
	return c.JSON(http.StatusOK, team)
}

func (s *Server) handleListNews(c echo.Context) error {
	news, err := s.data.News(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list news", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch news"})
	}
	return c.JSON(http.StatusOK, news)
}

func (s *Server) handleGetNews(c echo.Context) error {
	item, err := s.data.NewsItem(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNewsNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "News not found"})
	}
	if err != nil {
		slog.Error("Failed to get news item", "news_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch news item"})
	}
	return c.JSON(http.StatusOK, item)
}
