package engine

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventGameStart   EventType = "game_start"
	EventTurnStart   EventType = "turn_start"
	EventPhaseChange EventType = "phase_change"
	EventDecision    EventType = "decision"
	EventCardPlayed  EventType = "card_played"
	EventCardGained  EventType = "card_gained"
	EventCleanup     EventType = "cleanup"
	EventGameOver    EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type     EventType      `json:"type"`
	Turn     int            `json:"turn"`
	Player   string         `json:"player,omitempty"`
	Phase    Phase          `json:"phase,omitempty"`
	Decision *Decision      `json:"decision,omitempty"`
	Card     Card           `json:"card,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Observer receives every event in order. It runs on the engine's goroutine
// and must not block for long.
type Observer func(Event)

func (g *Game) emit(ev Event) {
	if g.observer == nil {
		return
	}
	ev.Turn = g.turn
	g.observer(ev)
}
