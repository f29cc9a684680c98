package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/config"
	"github.com/kemetharvest/gool/internal/hub"
	"github.com/kemetharvest/gool/internal/logging"
	"github.com/kemetharvest/gool/internal/protocol"
	"github.com/kemetharvest/gool/internal/server"
	"github.com/kemetharvest/gool/internal/simulate"
	"github.com/kemetharvest/gool/internal/store"
)

func setupConfig() *config.Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, h *hub.Hub, sim *simulate.Simulator, snapshots *simulate.SnapshotBroadcaster) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		snapshots.Stop()
		sim.Stop()
		h.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	// Separate generators: store and simulator draw under different locks
	storeRng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	simRng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	st := store.New(clock, storeRng)
	st.Seed()

	encoder := protocol.NewEncoder(clock)

	// The hub's subscribe callback ensures a timer exists for the topic; the
	// simulator is created right after, before the server accepts traffic.
	var sim *simulate.Simulator
	h := hub.New(clock, encoder, func(topic string) { sim.EnsureScheduled(topic) })
	sim = simulate.NewSimulator(st, h, encoder, clock, simRng, cfg.MatchUpdateInterval)

	snapshots := simulate.NewSnapshotBroadcaster(st, h, encoder, clock, cfg.SnapshotInterval)
	snapshots.Start()

	srv := server.NewServer(cfg, st, h, sim, encoder, clock)

	done := runGracefulShutdown(srv, h, sim, snapshots)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.WithError(err).Error("Server error")
		os.Exit(1)
	}

	<-done
}
