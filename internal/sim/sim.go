// Package sim runs complete games from a seat list and checks card
// conservation after every engine event.
package sim

import (
	"automation/internal/engine"
	"automation/internal/engine/strategies"
	"automation/internal/lobby"
	"errors"
	"fmt"
	"strings"
)

// ConsoleStrategy is the seat strategy that reads decisions from a terminal.
const ConsoleStrategy = "console"

var (
	ErrNoConsole = errors.New("console seat without a console")
	ErrInvariant = errors.New("invariant violated")
)

// Options controls a single run.
type Options struct {
	Seed      uint64
	MaxTurns  int
	Console   engine.DecisionMaker // serves ConsoleStrategy seats
	Observers []engine.Observer
}

// Participants builds engine participants from seats. Bot seat i is seeded
// with seed+i so equal seeds replay the same table.
func Participants(seats []lobby.Seat, seed uint64, console engine.DecisionMaker) ([]engine.Participant, error) {
	out := make([]engine.Participant, 0, len(seats))
	for i, s := range seats {
		var dm engine.DecisionMaker
		if s.Strategy == ConsoleStrategy {
			if console == nil {
				return nil, fmt.Errorf("seat %q: %w", s.Name, ErrNoConsole)
			}
			dm = console
		} else {
			var err error
			dm, err = strategies.New(s.Strategy, seed+uint64(i))
			if err != nil {
				return nil, fmt.Errorf("seat %q: %w", s.Name, err)
			}
		}
		out = append(out, engine.Participant{Name: s.Name, Strategy: dm})
	}
	return out, nil
}

// Run plays one game to completion.
func Run(seats []lobby.Seat, opts Options) (*engine.GameResult, error) {
	participants, err := Participants(seats, opts.Seed, opts.Console)
	if err != nil {
		return nil, err
	}

	var g *engine.Game
	check := &checker{seed: opts.Seed}
	config := engine.DefaultConfig()
	config.Seed = opts.Seed
	config.MaxTurns = opts.MaxTurns
	config.Observer = func(ev engine.Event) {
		check.observe(g, ev)
		for _, o := range opts.Observers {
			o(ev)
		}
	}

	g, err = engine.NewGame(participants, config)
	if err != nil {
		return nil, err
	}
	result, err := g.Play()
	if check.err != nil {
		return nil, check.err
	}
	return result, err
}

// RunBatch plays games with consecutive seeds starting at opts.Seed and
// stops at the first failure.
func RunBatch(seats []lobby.Seat, games int, opts Options) ([]*engine.GameResult, error) {
	results := make([]*engine.GameResult, 0, games)
	first := opts.Seed
	for i := 0; i < games; i++ {
		opts.Seed = first + uint64(i)
		r, err := Run(seats, opts)
		if err != nil {
			return results, fmt.Errorf("seed %d: %w", opts.Seed, err)
		}
		results = append(results, r)
	}
	return results, nil
}

const keepEvents = 20

type checker struct {
	seed   uint64
	totals map[engine.Card]int
	recent []engine.Event
	err    error
}

func (c *checker) observe(g *engine.Game, ev engine.Event) {
	if c.err != nil || g == nil {
		return
	}
	c.recent = append(c.recent, ev)
	if len(c.recent) > keepEvents {
		c.recent = c.recent[1:]
	}

	counts := countCards(g)
	if c.totals == nil {
		c.totals = counts
		return
	}
	for _, card := range engine.Cards() {
		if counts[card] != c.totals[card] {
			c.fail(ev, fmt.Sprintf("%s count %d, want %d", card, counts[card], c.totals[card]))
			return
		}
	}
	for _, p := range g.Players() {
		if p.Actions < 0 || p.Buys < 0 || p.Money < 0 {
			c.fail(ev, fmt.Sprintf("%s has negative counters: actions=%d buys=%d money=%d",
				p.Name, p.Actions, p.Buys, p.Money))
			return
		}
	}
}

func (c *checker) fail(ev engine.Event, reason string) {
	var b strings.Builder
	for _, r := range c.recent {
		fmt.Fprintf(&b, "[t%d %s %s] %s\n", r.Turn, r.Player, r.Phase, r.Type)
	}
	c.err = fmt.Errorf("%w: seed=%d turn=%d player=%s reason=%s\nlast events:\n%s",
		ErrInvariant, c.seed, ev.Turn, ev.Player, reason, b.String())
}

// countCards tallies every card in the supply and in every player's zones.
func countCards(g *engine.Game) map[engine.Card]int {
	counts := g.Supply().Counts()
	for _, p := range g.Players() {
		for _, card := range p.AllCards() {
			counts[card]++
		}
	}
	return counts
}
