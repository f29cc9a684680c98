package simulate

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/protocol"
	"github.com/kemetharvest/gool/internal/store"
)

type broadcastCall struct {
	topic       string
	messageType string
	payload     []byte
}

// captureSink records fan-out calls on channels so tests can wait for them.
type captureSink struct {
	all    chan broadcastCall
	topics chan broadcastCall
}

func newCaptureSink() *captureSink {
	return &captureSink{
		all:    make(chan broadcastCall, 64),
		topics: make(chan broadcastCall, 64),
	}
}

func (c *captureSink) BroadcastAll(messageType string, payload []byte) {
	c.all <- broadcastCall{messageType: messageType, payload: payload}
}

func (c *captureSink) BroadcastToSubscribers(topic, messageType string, payload []byte) {
	c.topics <- broadcastCall{topic: topic, messageType: messageType, payload: payload}
}

// constSource pins every random draw. The maximum value passes the update
// gate and both score coin flips; zero fails the gate.
type constSource struct{ v uint64 }

func (s constSource) Uint64() uint64 { return s.v }

const testInterval = 5 * time.Second

func newSimulatorFixture(t *testing.T, src rand.Source) (*Simulator, *store.Store, *captureSink, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	st := store.New(clock, rand.New(rand.NewPCG(1, 2)))
	st.Seed()

	sink := newCaptureSink()
	sim := NewSimulator(st, sink, protocol.NewEncoder(clock), clock, rand.New(src), testInterval)
	t.Cleanup(sim.Stop)

	return sim, st, sink, clock
}

func waitForTopicBroadcast(t *testing.T, sink *captureSink) broadcastCall {
	t.Helper()
	select {
	case call := <-sink.topics:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for topic broadcast")
		return broadcastCall{}
	}
}

func assertNoTopicBroadcast(t *testing.T, sink *captureSink) {
	t.Helper()
	select {
	case call := <-sink.topics:
		t.Fatalf("unexpected broadcast: %s", call.payload)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEnsureScheduled_Idempotent(t *testing.T) {
	sim, _, _, _ := newSimulatorFixture(t, constSource{0})

	sim.EnsureScheduled("match1")
	sim.EnsureScheduled("match1")
	assert.Equal(t, 1, sim.ScheduledTopics())

	sim.EnsureScheduled("match2")
	assert.Equal(t, 2, sim.ScheduledTopics())
}

func TestTick_MutatesAndBroadcasts(t *testing.T) {
	sim, st, sink, clock := newSimulatorFixture(t, constSource{^uint64(0)})

	sim.EnsureScheduled("match1")
	clock.BlockUntil(1)
	clock.Advance(testInterval)

	call := waitForTopicBroadcast(t, sink)
	assert.Equal(t, "match1", call.topic)
	assert.Equal(t, protocol.TypeMatchUpdate, call.messageType)

	var msg struct {
		Type string `json:"type"`
		Data struct {
			MatchID   string `json:"matchId"`
			HomeScore int    `json:"homeScore"`
			AwayScore int    `json:"awayScore"`
			Minute    int    `json:"minute"`
		} `json:"data"`
		Timestamp int64 `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(call.payload, &msg))
	assert.Equal(t, "match_update", msg.Type)
	assert.Equal(t, "match1", msg.Data.MatchID)
	assert.Equal(t, 2, msg.Data.HomeScore)
	assert.Equal(t, 2, msg.Data.AwayScore)
	assert.Equal(t, 68, msg.Data.Minute)
	assert.NotZero(t, msg.Timestamp)

	// The broadcast reflects the stored state
	m, err := st.GetMatch(context.Background(), "match1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.HomeScore)
	assert.Equal(t, 2, m.AwayScore)
	assert.Equal(t, 68, m.Minute)
}

func TestTick_GateHoldsStateSteady(t *testing.T) {
	sim, st, sink, clock := newSimulatorFixture(t, constSource{0})

	sim.EnsureScheduled("match1")
	clock.BlockUntil(1)
	for range 5 {
		clock.Advance(testInterval)
	}

	assertNoTopicBroadcast(t, sink)

	m, err := st.GetMatch(context.Background(), "match1")
	require.NoError(t, err)
	assert.Equal(t, 1, m.HomeScore)
	assert.Equal(t, 67, m.Minute)
}

func TestTick_ScheduledMatchIsNoop(t *testing.T) {
	sim, st, sink, clock := newSimulatorFixture(t, constSource{^uint64(0)})

	sim.EnsureScheduled("match3")
	clock.BlockUntil(1)
	clock.Advance(testInterval)

	assertNoTopicBroadcast(t, sink)

	m, err := st.GetMatch(context.Background(), "match3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, m.Status)
	assert.Equal(t, 0, m.Minute)
}

func TestTick_UnknownTopicIsNoop(t *testing.T) {
	sim, _, sink, clock := newSimulatorFixture(t, constSource{^uint64(0)})

	// Subscriptions to arbitrary channels still get a timer; ticks for
	// topics without a match do nothing.
	sim.EnsureScheduled("not-a-match")
	clock.BlockUntil(1)
	clock.Advance(testInterval)

	assertNoTopicBroadcast(t, sink)
	assert.Equal(t, 1, sim.ScheduledTopics())
}

func TestTick_StopsAtFullTime(t *testing.T) {
	sim, st, sink, clock := newSimulatorFixture(t, constSource{^uint64(0)})

	minute := 89
	_, err := st.UpdateMatch(context.Background(), "match1", domain.MatchPatch{Minute: &minute})
	require.NoError(t, err)

	sim.EnsureScheduled("match1")
	clock.BlockUntil(1)
	clock.Advance(testInterval)

	call := waitForTopicBroadcast(t, sink)
	var msg struct {
		Data struct {
			Minute int `json:"minute"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(call.payload, &msg))
	assert.Equal(t, domain.MaxMinute, msg.Data.Minute)

	// At the cap the match is no longer live, so further ticks go quiet
	clock.Advance(testInterval)
	assertNoTopicBroadcast(t, sink)
}

func TestStop_HaltsTimersAndNewSchedules(t *testing.T) {
	sim, _, sink, clock := newSimulatorFixture(t, constSource{^uint64(0)})

	sim.EnsureScheduled("match1")
	clock.BlockUntil(1)

	sim.Stop()
	sim.Stop()

	sim.EnsureScheduled("match2")
	assert.Equal(t, 1, sim.ScheduledTopics())
	assertNoTopicBroadcast(t, sink)
}
