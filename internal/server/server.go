package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/kemetharvest/gool/internal/config"
	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/hub"
	"github.com/kemetharvest/gool/internal/protocol"
)

// DataService is the read/write surface the REST handlers use.
// Implemented by the in-memory store.
type DataService interface {
	domain.MatchCatalog
	GetMatch(ctx context.Context, id string) (domain.Match, error)
	UpdateMatch(ctx context.Context, id string, patch domain.MatchPatch) (domain.Match, error)
	MatchEvents(ctx context.Context, matchID string) ([]domain.MatchEvent, error)
	AddMatchEvent(ctx context.Context, matchID string, event domain.MatchEvent) error
	MatchStatistics(ctx context.Context, matchID string) (domain.MatchStatistics, error)
	Leagues(ctx context.Context) ([]domain.League, error)
	League(ctx context.Context, id string) (domain.League, error)
	CreateLeague(ctx context.Context, l domain.League) (domain.League, error)
	Teams(ctx context.Context) ([]domain.Team, error)
	Team(ctx context.Context, id string) (domain.Team, error)
	News(ctx context.Context) ([]domain.News, error)
	NewsItem(ctx context.Context, id string) (domain.News, error)
}

// Fanout is the subset of the hub the server drives.
type Fanout interface {
	Register(conn *websocket.Conn) (uuid.UUID, error)
	Unregister(connectionID uuid.UUID)
	Subscribe(connectionID uuid.UUID, topic string)
	Unsubscribe(connectionID uuid.UUID, topic string)
	Send(connectionID uuid.UUID, messageType string, payload []byte)
	BroadcastToSubscribers(topic, messageType string, payload []byte)
	Stats() hub.Stats
}

// Scheduler exposes the update scheduler's admin counters.
type Scheduler interface {
	ScheduledTopics() int
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	data      DataService
	hub       Fanout
	scheduler Scheduler
	encoder   *protocol.Encoder
	limits    *ConnectionLimits
	clock     clockwork.Clock
	started   int64
}

func NewServer(cfg *config.Config, data DataService, fanout Fanout, scheduler Scheduler, encoder *protocol.Encoder, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
	}))

	srv := &Server{
		echo:      e,
		config:    cfg,
		data:      data,
		hub:       fanout,
		scheduler: scheduler,
		encoder:   encoder,
		limits:    NewConnectionLimits(cfg.MaxConnections, cfg.MaxConnectionsPerIP, cfg.ConnectionRate, cfg.ConnectionBurst),
		clock:     clock,
		started:   clock.Now().Unix(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the echo engine for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) uptimeSeconds() float64 {
	return float64(s.clock.Now().Unix() - s.started)
}
