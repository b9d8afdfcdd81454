package protocol

import (
	"automation/internal/engine"
	"encoding/json"
)

// Message types: Server → Client. Spectators never send game input.
const (
	MsgHello    = "hello"
	MsgBacklog  = "backlog"
	MsgEvent    = "event"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// Hello is the first message on every spectator connection.
type Hello struct {
	GameID string     `json:"game_id"`
	Seats  []SeatInfo `json:"seats"`
}

type SeatInfo struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// Backlog carries the payloads of every event published before the
// spectator connected, oldest first.
type Backlog struct {
	Events []json.RawMessage `json:"events"`
}

// GameOver is sent once when the game finishes or aborts.
type GameOver struct {
	GameID string             `json:"game_id"`
	Result *engine.GameResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}

// RunRequest starts a bot-only game.
type RunRequest struct {
	Seats    string `json:"seats"`
	Seed     uint64 `json:"seed,omitempty"`
	MaxTurns int    `json:"max_turns,omitempty"`
}

// RunResponse tells the caller where to watch the game.
type RunResponse struct {
	GameID   string `json:"game_id"`
	Seed     uint64 `json:"seed"`
	WatchURL string `json:"watch_url"`
	QRURL    string `json:"qr_url"`
}
