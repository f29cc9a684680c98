package domain

import "context"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled  MatchStatus = "scheduled"
	StatusInProgress MatchStatus = "inprogress"
	StatusFinished   MatchStatus = "finished"
	StatusPostponed  MatchStatus = "postponed"
)

// MaxMinute is the clamp ceiling for the match clock.
const MaxMinute = 90

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished, StatusPostponed:
		return true
	}
	return false
}

type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NameAr  string `json:"nameAr"`
	Logo    string `json:"logo"`
	Country string `json:"country,omitempty"`
	Founded int    `json:"founded,omitempty"`
}

type League struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NameAr  string `json:"nameAr"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Type    string `json:"type"`
}

// LeagueRef is the embedded league summary carried on a match.
type LeagueRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr"`
	Logo   string `json:"logo"`
}

type Venue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type Match struct {
	ID          string      `json:"id"`
	HomeTeam    Team        `json:"homeTeam"`
	AwayTeam    Team        `json:"awayTeam"`
	HomeScore   int         `json:"homeScore"`
	AwayScore   int         `json:"awayScore"`
	Status      MatchStatus `json:"status"`
	KickoffTime string      `json:"kickoffTime"`
	Minute      int         `json:"minute"`
	League      LeagueRef   `json:"league"`
	Venue       *Venue      `json:"venue,omitempty"`
	Channel     string      `json:"channel,omitempty"`
	Referee     string      `json:"referee,omitempty"`
}

// Live reports whether the match clock is still advancing.
func (m Match) Live() bool {
	return m.Status == StatusInProgress && m.Minute < MaxMinute
}

// ScoreUpdate is the payload of the store's single mutation entry point.
type ScoreUpdate struct {
	HomeScore int
	AwayScore int
	Minute    int
}

// MatchPatch carries optional field overrides for the admin update path.
// Nil fields are left untouched.
type MatchPatch struct {
	HomeScore *int
	AwayScore *int
	Status    *MatchStatus
	Minute    *int
}

// Day selects a catalog bucket relative to the current date.
type Day string

const (
	DayYesterday Day = "yesterday"
	DayToday     Day = "today"
	DayTomorrow  Day = "tomorrow"
)

// Valid reports whether d is a recognised day bucket.
func (d Day) Valid() bool {
	return d == DayYesterday || d == DayToday || d == DayTomorrow
}

// MatchStore holds the mutable per-match state the update scheduler works on.
type MatchStore interface {
	GetMatch(ctx context.Context, id string) (Match, error)
	// ApplyScoreUpdate is the single mutation entry point for live state.
	// It clamps the minute to MaxMinute and returns the stored result.
	ApplyScoreUpdate(ctx context.Context, id string, upd ScoreUpdate) (Match, error)
}

// MatchCatalog exposes day-bucketed match snapshots.
type MatchCatalog interface {
	MatchesByDay(ctx context.Context, day Day) ([]Match, error)
}
