package simulate

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/metrics"
	"github.com/kemetharvest/gool/internal/protocol"
)

// SnapshotBroadcaster pushes the full today+tomorrow match list to every
// connection on a fixed period, independent of subscriptions.
type SnapshotBroadcaster struct {
	catalog  domain.MatchCatalog
	sink     Broadcaster
	encoder  *protocol.Encoder
	clock    clockwork.Clock
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSnapshotBroadcaster(catalog domain.MatchCatalog, sink Broadcaster, encoder *protocol.Encoder, clock clockwork.Clock, interval time.Duration) *SnapshotBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())
	return &SnapshotBroadcaster{
		catalog:  catalog,
		sink:     sink,
		encoder:  encoder,
		clock:    clock,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the broadcast loop.
func (b *SnapshotBroadcaster) Start() {
	go b.run()
	slog.Info("Snapshot broadcaster started", "interval", b.interval)
}

// Stop cancels the loop and waits for it to exit. Idempotent.
func (b *SnapshotBroadcaster) Stop() {
	b.cancel()
	<-b.done
}

func (b *SnapshotBroadcaster) run() {
	defer close(b.done)

	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.Chan():
			b.tick()
		}
	}
}

func (b *SnapshotBroadcaster) tick() {
	today, err := b.catalog.MatchesByDay(b.ctx, domain.DayToday)
	if err != nil {
		slog.Error("Failed to load today's matches", "error", err)
		return
	}
	tomorrow, err := b.catalog.MatchesByDay(b.ctx, domain.DayTomorrow)
	if err != nil {
		slog.Error("Failed to load tomorrow's matches", "error", err)
		return
	}

	payload, err := b.encoder.MatchesBroadcast(append(today, tomorrow...))
	if err != nil {
		slog.Error("Failed to marshal matches broadcast", "error", err)
		return
	}

	b.sink.BroadcastAll(protocol.TypeMatchesBroadcast, payload)
	metrics.SnapshotBroadcastsTotal.Inc()
}
