package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemetharvest/gool/internal/config"
	"github.com/kemetharvest/gool/internal/domain"
	"github.com/kemetharvest/gool/internal/hub"
	"github.com/kemetharvest/gool/internal/protocol"
	"github.com/kemetharvest/gool/internal/store"
)

type recordedBroadcast struct {
	topic       string
	messageType string
	payload     []byte
}

// stubFanout satisfies Fanout for REST handler tests without a live hub.
type stubFanout struct {
	mu         sync.Mutex
	broadcasts []recordedBroadcast
	stats      hub.Stats
}

func (f *stubFanout) Register(*websocket.Conn) (uuid.UUID, error) { return uuid.New(), nil }
func (f *stubFanout) Unregister(uuid.UUID)                        {}
func (f *stubFanout) Subscribe(uuid.UUID, string)                 {}
func (f *stubFanout) Unsubscribe(uuid.UUID, string)               {}
func (f *stubFanout) Send(uuid.UUID, string, []byte)              {}

func (f *stubFanout) BroadcastToSubscribers(topic, messageType string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, recordedBroadcast{topic: topic, messageType: messageType, payload: payload})
}

func (f *stubFanout) Stats() hub.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *stubFanout) recorded() []recordedBroadcast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedBroadcast, len(f.broadcasts))
	copy(out, f.broadcasts)
	return out
}

type stubScheduler struct{ topics int }

func (s stubScheduler) ScheduledTopics() int { return s.topics }

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:              "test",
		Port:                "0",
		FrontendURL:         "http://localhost:5173",
		MatchUpdateInterval: time.Hour,
		SnapshotInterval:    time.Hour,
		MaxConnections:      100,
		MaxConnectionsPerIP: 100,
		ConnectionRate:      1000,
		ConnectionBurst:     1000,
	}
}

func newAPIFixture(t *testing.T) (*httptest.Server, *stubFanout) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	st := store.New(clock, rand.New(rand.NewPCG(1, 2)))
	st.Seed()

	fanout := &stubFanout{stats: hub.Stats{ConnectedClients: 3, Subscriptions: 2}}
	srv := NewServer(testConfig(), st, fanout, stubScheduler{topics: 2}, protocol.NewEncoder(clock), clock)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, fanout
}

func doJSON(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestAPIHealth(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/health", nil)
	assert.Equal(t, http.StatusOK, code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
	assert.NotEmpty(t, result["timestamp"])
}

func TestListMatches_DefaultsToToday(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches", nil)
	assert.Equal(t, http.StatusOK, code)

	var matches []domain.Match
	require.NoError(t, json.Unmarshal(body, &matches))
	require.Len(t, matches, 4)
	assert.Equal(t, "match1", matches[0].ID)
}

func TestListMatches_DayFilter(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches?day=tomorrow", nil)
	assert.Equal(t, http.StatusOK, code)

	var matches []domain.Match
	require.NoError(t, json.Unmarshal(body, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "match6", matches[0].ID)
}

func TestListMatches_InvalidDay(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches?day=someday", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "Invalid day parameter")
}

func TestGetMatch(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches/match1", nil)
	assert.Equal(t, http.StatusOK, code)

	var match domain.Match
	require.NoError(t, json.Unmarshal(body, &match))
	assert.Equal(t, "match1", match.ID)
	assert.Equal(t, "Al-Ahly", match.HomeTeam.Name)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/matches/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), "Match not found")
}

func TestUpdateMatch(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodPut, ts.URL+"/api/matches/match1", map[string]any{
		"homeScore": 3,
		"status":    "finished",
	})
	assert.Equal(t, http.StatusOK, code)

	var match domain.Match
	require.NoError(t, json.Unmarshal(body, &match))
	assert.Equal(t, 3, match.HomeScore)
	assert.Equal(t, domain.StatusFinished, match.Status)

	// The change is persisted
	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/matches/match1", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &match))
	assert.Equal(t, 3, match.HomeScore)
	assert.Equal(t, domain.StatusFinished, match.Status)
}

func TestUpdateMatch_InvalidStatus(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodPut, ts.URL+"/api/matches/match1", map[string]any{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "Invalid status")
}

func TestUpdateMatch_NotFound(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, _ := doJSON(t, http.MethodPut, ts.URL+"/api/matches/nope", map[string]any{"homeScore": 1})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMatchEvents_EmptyList(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches/match1/events", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", string(body))
}

func TestPostMatchEvent_RecordsAndBroadcasts(t *testing.T) {
	ts, fanout := newAPIFixture(t)

	code, body := doJSON(t, http.MethodPost, ts.URL+"/admin/matches/match1/events", map[string]any{
		"type":   "goal",
		"minute": 68,
		"player": map[string]any{"id": "p1", "name": "Player One", "team": "home"},
	})
	assert.Equal(t, http.StatusCreated, code)

	var event domain.MatchEvent
	require.NoError(t, json.Unmarshal(body, &event))
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "match1", event.MatchID)
	assert.Equal(t, domain.EventGoal, event.Type)

	broadcasts := fanout.recorded()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, "match1", broadcasts[0].topic)
	assert.Equal(t, protocol.TypeMatchEvent, broadcasts[0].messageType)
	assert.Contains(t, string(broadcasts[0].payload), `"match_event"`)

	// The event shows up on the public timeline
	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/matches/match1/events", nil)
	require.Equal(t, http.StatusOK, code)

	var events []domain.MatchEvent
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestPostMatchEvent_UnknownMatch(t *testing.T) {
	ts, fanout := newAPIFixture(t)

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/admin/matches/nope/events", map[string]any{"type": "goal"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, fanout.recorded())
}

func TestMatchStatistics(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/matches/match1/statistics", nil)
	assert.Equal(t, http.StatusOK, code)

	var stats domain.MatchStatistics
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, "match1", stats.MatchID)
	assert.InDelta(t, 100, stats.HomeTeam.Possession+stats.AwayTeam.Possession, 0.0001)

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/matches/nope/statistics", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLeagues(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/leagues", nil)
	assert.Equal(t, http.StatusOK, code)

	var leagues []domain.League
	require.NoError(t, json.Unmarshal(body, &leagues))
	assert.Len(t, leagues, 5)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/leagues/league2", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "La Liga")

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/leagues/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateLeague(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/leagues", map[string]any{
		"name":    "Bundesliga",
		"nameAr":  "الدوري الألماني",
		"country": "Germany",
		"logo":    "🇩🇪",
	})
	assert.Equal(t, http.StatusCreated, code)

	var league domain.League
	require.NoError(t, json.Unmarshal(body, &league))
	assert.NotEmpty(t, league.ID)
	assert.Equal(t, "Bundesliga", league.Name)
	assert.Equal(t, 2024, league.Season)
	assert.Equal(t, "domestic", league.Type)
}

func TestCreateLeague_MissingFields(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/leagues", map[string]any{"name": "Bundesliga"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "Missing required fields")
}

func TestTeams(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/teams", nil)
	assert.Equal(t, http.StatusOK, code)

	var teams []domain.Team
	require.NoError(t, json.Unmarshal(body, &teams))
	assert.Len(t, teams, 8)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/teams/team1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Al-Ahly")

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/teams/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNews(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/news", nil)
	assert.Equal(t, http.StatusOK, code)

	var news []domain.News
	require.NoError(t, json.Unmarshal(body, &news))
	require.Len(t, news, 3)
	assert.Equal(t, "news1", news[0].ID)

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/news/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminStats(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/admin/stats", nil)
	assert.Equal(t, http.StatusOK, code)

	var stats struct {
		ConnectedClients    int     `json:"connectedClients"`
		ActiveSubscriptions int     `json:"activeSubscriptions"`
		Timestamp           string  `json:"timestamp"`
		Uptime              float64 `json:"uptime"`
		Environment         string  `json:"environment"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 3, stats.ConnectedClients)
	assert.Equal(t, 2, stats.ActiveSubscriptions)
	assert.Equal(t, "test", stats.Environment)
	assert.NotEmpty(t, stats.Timestamp)
}

func TestVersionEndpoint(t *testing.T) {
	ts, _ := newAPIFixture(t)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/version", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "version")
}
