package domain

// MatchEventType classifies timeline events.
type MatchEventType string

const (
	EventGoal         MatchEventType = "goal"
	EventCard         MatchEventType = "card"
	EventSubstitution MatchEventType = "substitution"
	EventStart        MatchEventType = "start"
	EventEnd          MatchEventType = "end"
)

type EventPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr,omitempty"`
	Number int    `json:"number,omitempty"`
	Team   string `json:"team,omitempty"`
}

type MatchEvent struct {
	ID            string         `json:"id"`
	MatchID       string         `json:"matchId"`
	Type          MatchEventType `json:"type"`
	Minute        int            `json:"minute"`
	Player        EventPlayer    `json:"player"`
	AssistPlayer  *EventPlayer   `json:"assistPlayer,omitempty"`
	CardType      string         `json:"cardType,omitempty"`
	Description   string         `json:"description"`
	DescriptionAr string         `json:"descriptionAr,omitempty"`
}
