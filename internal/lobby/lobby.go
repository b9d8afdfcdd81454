package lobby

import (
	"automation/internal/engine"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrStarted    = errors.New("game already started")
	ErrFull       = errors.New("table is full")
	ErrNameTaken  = errors.New("name already seated")
	ErrNotEnough  = errors.New("not enough players")
	ErrBadSeating = errors.New("invalid seat spec")
)

// DefaultStrategy is used for seats that do not name one.
const DefaultStrategy = "bigmoney"

// Seat is one participant slot at a table.
type Seat struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// Table collects seats until a game starts.
type Table struct {
	mu         sync.Mutex
	ID         string
	Seats      []*Seat
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewTable creates an empty table.
func NewTable(id string) *Table {
	return &Table{
		ID:         id,
		MaxPlayers: engine.MaxParticipants,
		MinPlayers: 1,
	}
}

// Join seats a participant. Joining again with a known id updates the seat.
func (t *Table) Join(id, name, strategy string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Started {
		return ErrStarted
	}
	if strategy == "" {
		strategy = DefaultStrategy
	}
	for _, s := range t.Seats {
		if s.Name == name && s.ID != id {
			return fmt.Errorf("%w: %q", ErrNameTaken, name)
		}
	}
	for _, s := range t.Seats {
		if s.ID == id {
			s.Name = name
			s.Strategy = strategy
			return nil
		}
	}
	if len(t.Seats) >= t.MaxPlayers {
		return ErrFull
	}
	t.Seats = append(t.Seats, &Seat{ID: id, Name: name, Strategy: strategy})
	return nil
}

// Leave removes a seat.
func (t *Table) Leave(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, s := range t.Seats {
		if s.ID == id {
			t.Seats = append(t.Seats[:i], t.Seats[i+1:]...)
			return
		}
	}
}

// CanStart returns true if enough seats are filled.
func (t *Table) CanStart() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.Started && len(t.Seats) >= t.MinPlayers
}

// Start marks the table as started.
func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Started {
		return ErrStarted
	}
	if len(t.Seats) < t.MinPlayers {
		return ErrNotEnough
	}
	t.Started = true
	return nil
}

// GetSeats returns a copy of the seats in join order.
func (t *Table) GetSeats() []Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Seat, len(t.Seats))
	for i, s := range t.Seats {
		out[i] = *s
	}
	return out
}

// ParseSeats reads a comma-separated "Name:strategy" list, for example
// "Alice:bigmoney,Bob:random". A missing strategy means DefaultStrategy.
// Seat ids are the names.
func ParseSeats(spec string) ([]Seat, error) {
	var seats []Seat
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, strategy, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		strategy = strings.ToLower(strings.TrimSpace(strategy))
		if name == "" {
			return nil, fmt.Errorf("%w: empty name in %q", ErrBadSeating, part)
		}
		if strategy == "" {
			strategy = DefaultStrategy
		}
		seats = append(seats, Seat{ID: name, Name: name, Strategy: strategy})
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: no seats", ErrBadSeating)
	}
	return seats, nil
}
