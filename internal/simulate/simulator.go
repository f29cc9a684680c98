package simulate

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/logging"
	"github.com/kemetharvest/gool/internal/metrics"
	"github.com/kemetharvest/gool/internal/protocol"
)

// Tick gate: only this fraction of ticks mutates state.
const triggerThreshold = 0.9

// Broadcaster is the fan-out surface the schedulers publish through.
type Broadcaster interface {
	BroadcastAll(messageType string, payload []byte)
	BroadcastToSubscribers(topic, messageType string, payload []byte)
}

// Simulator runs one recurring update timer per subscribed topic.
type Simulator struct {
	store    domain.MatchStore
	sink     Broadcaster
	encoder  *protocol.Encoder
	clock    clockwork.Clock
	interval time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	scheduled map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulator creates a simulator. No timers run until EnsureScheduled.
func NewSimulator(store domain.MatchStore, sink Broadcaster, encoder *protocol.Encoder, clock clockwork.Clock, rng *rand.Rand, interval time.Duration) *Simulator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Simulator{
		store:     store,
		sink:      sink,
		encoder:   encoder,
		clock:     clock,
		interval:  interval,
		rng:       rng,
		scheduled: make(map[string]struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// EnsureScheduled starts the update timer for topic if none exists yet.
// Idempotent: at most one timer per topic, and timers are never torn down on
// unsubscribe - they run until Stop.
func (s *Simulator) EnsureScheduled(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	if _, exists := s.scheduled[topic]; exists {
		return
	}
	s.scheduled[topic] = struct{}{}
	metrics.SimulatorScheduledTopics.Set(float64(len(s.scheduled)))

	s.wg.Add(1)
	go s.runTopic(topic)

	slog.Info("Match update timer started", "match_id", topic, "interval", s.interval)
}

// ScheduledTopics returns the number of topics with an active update timer.
func (s *Simulator) ScheduledTopics() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

// Stop cancels every topic timer and waits for their goroutines to exit.
// Idempotent.
func (s *Simulator) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Simulator) runTopic(topic string) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.Chan():
			s.tick(topic)
		}
	}
}

func (s *Simulator) tick(topic string) {
	trigger, homeScores, awayScores := s.draw()
	if !trigger {
		metrics.SimulatorTicksTotal.WithLabelValues("skipped").Inc()
		return
	}

	m, err := s.store.GetMatch(s.ctx, topic)
	if err != nil {
		if !errors.Is(err, domain.ErrMatchNotFound) {
			slog.Error("Failed to read match", "match_id", topic, "error", err)
		}
		metrics.SimulatorTicksTotal.WithLabelValues("noop").Inc()
		return
	}
	if !m.Live() {
		metrics.SimulatorTicksTotal.WithLabelValues("noop").Inc()
		return
	}

	upd := domain.ScoreUpdate{
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Minute:    min(m.Minute+1, domain.MaxMinute),
	}
	if homeScores {
		upd.HomeScore++
	}
	if awayScores {
		upd.AwayScore++
	}

	updated, err := s.store.ApplyScoreUpdate(s.ctx, topic, upd)
	if err != nil {
		slog.Error("Failed to apply score update", "match_id", topic, "error", err)
		metrics.SimulatorTicksTotal.WithLabelValues("noop").Inc()
		return
	}

	payload, err := s.encoder.MatchUpdate(topic, updated.HomeScore, updated.AwayScore, updated.Minute)
	if err != nil {
		slog.Error("Failed to marshal match update", "match_id", topic, "error", err)
		return
	}
	s.sink.BroadcastToSubscribers(topic, protocol.TypeMatchUpdate, payload)
	metrics.SimulatorTicksTotal.WithLabelValues("mutated").Inc()

	logging.WithMatch(topic).Debug("Match updated",
		"home_score", updated.HomeScore,
		"away_score", updated.AwayScore,
		"minute", updated.Minute,
	)
}

// draw takes the probabilistic gate and, when it passes, the two independent
// score coin flips. One lock hold per tick; rand.Rand is not goroutine safe.
func (s *Simulator) draw() (trigger, home, away bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() <= triggerThreshold {
		return false, false, false
	}
	return true, s.rng.Float64() > 0.5, s.rng.Float64() > 0.5
}
