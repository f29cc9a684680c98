package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/domain"
)

// Store is the in-memory implementation of domain.MatchStore and
// domain.MatchCatalog, plus the read models the REST API serves.
type Store struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	rng     *rand.Rand
	matches map[string]domain.Match
	teams   map[string]domain.Team
	leagues map[string]domain.League
	news    map[string]domain.News
	events  map[string][]domain.MatchEvent
}

// New creates an empty store. Seed populates it with fixture data.
func New(clock clockwork.Clock, rng *rand.Rand) *Store {
	return &Store{
		clock:   clock,
		rng:     rng,
		matches: make(map[string]domain.Match),
		teams:   make(map[string]domain.Team),
		leagues: make(map[string]domain.League),
		news:    make(map[string]domain.News),
		events:  make(map[string][]domain.MatchEvent),
	}
}

// --- MatchStore ---

func (s *Store) GetMatch(_ context.Context, id string) (domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.Match{}, fmt.Errorf("get match %q: %w", id, domain.ErrMatchNotFound)
	}
	return m, nil
}

// ApplyScoreUpdate is the single mutation entry point for live match state.
// Matches that are not in progress, or whose clock already reached the cap,
// are returned unchanged. The minute never decreases and is clamped at 90;
// negative scores are ignored.
func (s *Store) ApplyScoreUpdate(_ context.Context, id string, upd domain.ScoreUpdate) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.Match{}, fmt.Errorf("apply score update %q: %w", id, domain.ErrMatchNotFound)
	}
	if !m.Live() {
		return m, nil
	}

	m = applyScore(m, upd)
	s.matches[id] = m
	return m, nil
}

// UpdateMatch applies an admin patch. Score and minute changes funnel through
// the same clamping rules as ApplyScoreUpdate; status may change freely.
func (s *Store) UpdateMatch(_ context.Context, id string, patch domain.MatchPatch) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.Match{}, fmt.Errorf("update match %q: %w", id, domain.ErrMatchNotFound)
	}

	if patch.Status != nil && patch.Status.Valid() {
		m.Status = *patch.Status
	}

	upd := domain.ScoreUpdate{HomeScore: m.HomeScore, AwayScore: m.AwayScore, Minute: m.Minute}
	if patch.HomeScore != nil {
		upd.HomeScore = *patch.HomeScore
	}
	if patch.AwayScore != nil {
		upd.AwayScore = *patch.AwayScore
	}
	if patch.Minute != nil {
		upd.Minute = *patch.Minute
	}
	m = applyScore(m, upd)

	s.matches[id] = m
	return m, nil
}

// applyScore clamps and writes score/minute fields onto m.
func applyScore(m domain.Match, upd domain.ScoreUpdate) domain.Match {
	if upd.HomeScore >= 0 {
		m.HomeScore = upd.HomeScore
	}
	if upd.AwayScore >= 0 {
		m.AwayScore = upd.AwayScore
	}
	if upd.Minute > m.Minute {
		m.Minute = min(upd.Minute, domain.MaxMinute)
	}
	return m
}

// --- MatchCatalog ---

func (s *Store) MatchesByDay(_ context.Context, day domain.Day) ([]domain.Match, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("matches by day: unknown day %q", day)
	}

	now := s.clock.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch day {
	case domain.DayYesterday:
		target = target.AddDate(0, 0, -1)
	case domain.DayTomorrow:
		target = target.AddDate(0, 0, 1)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Match
	for _, m := range s.matches {
		kickoff, err := time.Parse(time.RFC3339, m.KickoffTime)
		if err != nil {
			continue
		}
		kickoff = kickoff.In(now.Location())
		if kickoff.Year() == target.Year() && kickoff.Month() == target.Month() && kickoff.Day() == target.Day() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Read models for the REST API ---

func (s *Store) Leagues(_ context.Context) ([]domain.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.League, 0, len(s.leagues))
	for _, l := range s.leagues {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) League(_ context.Context, id string) (domain.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leagues[id]
	if !ok {
		return domain.League{}, fmt.Errorf("get league %q: %w", id, domain.ErrLeagueNotFound)
	}
	return l, nil
}

func (s *Store) CreateLeague(_ context.Context, l domain.League) (domain.League, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = fmt.Sprintf("league_%d", s.clock.Now().UnixMilli())
	}
	if l.Season == 0 {
		l.Season = s.clock.Now().Year()
	}
	if l.Type == "" {
		l.Type = "domestic"
	}
	s.leagues[l.ID] = l
	return l, nil
}

func (s *Store) Teams(_ context.Context) ([]domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Team(_ context.Context, id string) (domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return domain.Team{}, fmt.Errorf("get team %q: %w", id, domain.ErrTeamNotFound)
	}
	return t, nil
}

func (s *Store) News(_ context.Context) ([]domain.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.News, 0, len(s.news))
	for _, n := range s.news {
		out = append(out, n)
	}
	// RFC3339 sorts lexicographically, newest first
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })
	return out, nil
}

func (s *Store) NewsItem(_ context.Context, id string) (domain.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.news[id]
	if !ok {
		return domain.News{}, fmt.Errorf("get news %q: %w", id, domain.ErrNewsNotFound)
	}
	return n, nil
}

func (s *Store) MatchEvents(_ context.Context, matchID string) ([]domain.MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[matchID]
	out := make([]domain.MatchEvent, len(events))
	copy(out, events)
	return out, nil
}

func (s *Store) AddMatchEvent(_ context.Context, matchID string, event domain.MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[matchID]; !ok {
		return fmt.Errorf("add event for %q: %w", matchID, domain.ErrMatchNotFound)
	}
	event.MatchID = matchID
	s.events[matchID] = append(s.events[matchID], event)
	return nil
}

// MatchStatistics generates a statistics sheet for the match. Numbers are
// randomised per request with possession balanced to 100%.
func (s *Store) MatchStatistics(_ context.Context, matchID string) (domain.MatchStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return domain.MatchStatistics{}, fmt.Errorf("statistics for %q: %w", matchID, domain.ErrMatchNotFound)
	}

	stats := domain.MatchStatistics{
		MatchID:  matchID,
		HomeTeam: s.teamStatistics(m.HomeTeam.ID),
		AwayTeam: s.teamStatistics(m.AwayTeam.ID),
	}

	total := stats.HomeTeam.Possession + stats.AwayTeam.Possession
	stats.HomeTeam.Possession = stats.HomeTeam.Possession / total * 100
	stats.AwayTeam.Possession = 100 - stats.HomeTeam.Possession

	return stats, nil
}

// teamStatistics draws one side of a sheet. Caller holds mu (for rng).
func (s *Store) teamStatistics(teamID string) domain.TeamStatistics {
	return domain.TeamStatistics{
		TeamID:        teamID,
		Possession:    s.rng.Float64()*30 + 40,
		Shots:         s.rng.IntN(8) + 5,
		ShotsOnTarget: s.rng.IntN(4) + 2,
		Passes:        s.rng.IntN(150) + 300,
		PassAccuracy:  s.rng.Float64()*20 + 75,
		Fouls:         s.rng.IntN(8) + 4,
		Offsides:      s.rng.IntN(3),
		Corners:       s.rng.IntN(4) + 2,
		YellowCards:   s.rng.IntN(2),
		RedCards:      0,
		Saves:         s.rng.IntN(3) + 1,
		Tackles:       s.rng.IntN(6) + 8,
	}
}
