package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/kemetharvest/gool/internal/domain"
)

// Outbound message type tags, also used as metrics labels.
const (
	TypeSubscribed       = "subscribed"
	TypeMatchUpdate      = "match_update"
	TypeMatchesBroadcast = "matches_broadcast"
	TypeMatchEvent       = "match_event"
	TypeError            = "error"
)

var (
	// ErrMalformed marks payloads that do not parse; the caller answers
	// with an error envelope and keeps the connection open.
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownType marks well-formed envelopes with an unrecognised type;
	// the caller drops them silently.
	ErrUnknownType = errors.New("unknown message type")
	// ErrMissingChannel marks subscribe/unsubscribe without a channel;
	// dropped silently, matching unknown types.
	ErrMissingChannel = errors.New("missing channel")
)

// InboundType enumerates the accepted client commands.
type InboundType string

const (
	InboundSubscribe   InboundType = "subscribe"
	InboundUnsubscribe InboundType = "unsubscribe"
)

// Inbound is a parsed client command.
type Inbound struct {
	Type    InboundType
	Channel string
}

type inboundEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Channel string `json:"channel"`
	} `json:"data"`
}

// ParseInbound validates a raw client payload against the closed command set.
func ParseInbound(raw []byte) (Inbound, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch InboundType(env.Type) {
	case InboundSubscribe, InboundUnsubscribe:
	default:
		return Inbound{}, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if env.Data.Channel == "" {
		return Inbound{}, fmt.Errorf("%w for %q", ErrMissingChannel, env.Type)
	}

	return Inbound{Type: InboundType(env.Type), Channel: env.Data.Channel}, nil
}

// --- Outbound envelopes ---

type subscribedEnvelope struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

type matchUpdatePayload struct {
	MatchID   string `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Minute    int    `json:"minute"`
}

type matchUpdateEnvelope struct {
	Type      string             `json:"type"`
	Data      matchUpdatePayload `json:"data"`
	Timestamp int64              `json:"timestamp"`
}

type matchesBroadcastEnvelope struct {
	Type      string         `json:"type"`
	Data      []domain.Match `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

type matchEventEnvelope struct {
	Type      string            `json:"type"`
	MatchID   string            `json:"matchId"`
	Event     domain.MatchEvent `json:"event"`
	Timestamp int64             `json:"timestamp"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Encoder builds outbound payloads, stamping emission time from the clock.
type Encoder struct {
	clock clockwork.Clock
}

func NewEncoder(clock clockwork.Clock) *Encoder {
	return &Encoder{clock: clock}
}

func (e *Encoder) now() int64 {
	return e.clock.Now().UnixMilli()
}

// Subscribed acknowledges a subscription. It carries no timestamp on the wire.
func (e *Encoder) Subscribed(channel string) ([]byte, error) {
	return json.Marshal(subscribedEnvelope{Type: TypeSubscribed, Channel: channel})
}

func (e *Encoder) MatchUpdate(matchID string, homeScore, awayScore, minute int) ([]byte, error) {
	return json.Marshal(matchUpdateEnvelope{
		Type: TypeMatchUpdate,
		Data: matchUpdatePayload{
			MatchID:   matchID,
			HomeScore: homeScore,
			AwayScore: awayScore,
			Minute:    minute,
		},
		Timestamp: e.now(),
	})
}

func (e *Encoder) MatchesBroadcast(matches []domain.Match) ([]byte, error) {
	if matches == nil {
		matches = []domain.Match{}
	}
	return json.Marshal(matchesBroadcastEnvelope{
		Type:      TypeMatchesBroadcast,
		Data:      matches,
		Timestamp: e.now(),
	})
}

func (e *Encoder) MatchEvent(matchID string, event domain.MatchEvent) ([]byte, error) {
	return json.Marshal(matchEventEnvelope{
		Type:      TypeMatchEvent,
		MatchID:   matchID,
		Event:     event,
		Timestamp: e.now(),
	})
}

// ErrorMessage is the reply for malformed payloads.
func ErrorMessage(msg string) []byte {
	data, err := json.Marshal(errorEnvelope{Error: msg})
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return data
}
