package engine

import (
	"fmt"
	"math/rand/v2"
)

// Game drives participants through Action, Money, Buy and Cleanup, turn
// after turn, until the top automation tier is sold out.
type Game struct {
	participants []Participant
	players      []*Player
	supply       *Supply
	config       GameConfig
	observer     Observer

	turn   int
	played bool
}

// NewGame seats the participants in the given order and deals their
// starting decks. It fails with an ErrConfig error for an empty table, more
// than MaxParticipants, a repeated name or a missing strategy.
func NewGame(participants []Participant, config GameConfig) (*Game, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(participants) > MaxParticipants {
		return nil, ErrTooManyParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = true
		if p.Strategy == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoStrategy, p.Name)
		}
	}

	supply, err := NewSupply(len(participants))
	if err != nil {
		return nil, err
	}

	g := &Game{
		participants: append([]Participant(nil), participants...),
		supply:       supply,
		config:       config,
		observer:     config.Observer,
	}
	for i, p := range participants {
		rng := rand.New(rand.NewPCG(config.Seed, uint64(i)))
		g.players = append(g.players, NewPlayer(p.Name, rng))
	}
	return g, nil
}

// Play runs the game to completion. It returns a *ProtocolViolation when a
// participant's decision-maker misbehaves; no result is produced then.
func (g *Game) Play() (*GameResult, error) {
	if g.played {
		return nil, ErrAlreadyPlayed
	}
	g.played = true

	g.emit(Event{Type: EventGameStart, Data: map[string]any{
		"players": g.names(),
		"seed":    g.config.Seed,
	}})

	for !g.supply.IsExhausted() {
		for i := range g.players {
			if g.supply.IsExhausted() {
				break
			}
			if g.config.MaxTurns > 0 && g.turn >= g.config.MaxTurns {
				return nil, fmt.Errorf("%w: %d turns", ErrTurnLimit, g.turn)
			}
			if err := g.playTurn(i); err != nil {
				return nil, err
			}
		}
	}

	result := g.results()
	g.emit(Event{Type: EventGameOver, Data: map[string]any{
		"winner": result.Winner(),
		"turns":  result.Turns,
	}})
	return result, nil
}

func (g *Game) playTurn(i int) error {
	g.turn++
	p := g.players[i]
	p.StartTurn()
	g.emit(Event{Type: EventTurnStart, Player: p.Name})

	if err := g.actionPhase(i); err != nil {
		return err
	}
	if err := g.moneyPhase(i); err != nil {
		return err
	}
	if err := g.buyPhase(i); err != nil {
		return err
	}

	g.emit(Event{Type: EventPhaseChange, Player: p.Name, Phase: PhaseCleanup})
	p.Cleanup()
	g.emit(Event{Type: EventCleanup, Player: p.Name, Data: map[string]any{
		"hand": p.Hand(),
	}})
	return nil
}

func (g *Game) actionPhase(i int) error {
	p := g.players[i]
	g.emit(Event{Type: EventPhaseChange, Player: p.Name, Phase: PhaseAction})
	for p.Actions > 0 {
		d, err := g.decide(i, PhaseAction, ActionOptions(p))
		if err != nil {
			return err
		}
		switch d.Kind {
		case DecisionEndPhase:
			return nil
		case DecisionPlayCard:
			g.playAction(p, d.Card)
		default:
			return g.violation(i, PhaseAction, d, "decision kind not valid in this phase")
		}
	}
	return nil
}

// playAction spends an action and applies the card's bonuses. A card no
// longer in hand is a no-op.
func (g *Game) playAction(p *Player, c Card) {
	if !p.PlayCard(c) {
		return
	}
	def := c.Def()
	p.Actions--
	p.Actions += def.ExtraActions
	p.Buys += def.ExtraBuys
	p.Money += def.ExtraMoney
	p.Draw(def.ExtraCards)
	g.emit(Event{Type: EventCardPlayed, Player: p.Name, Phase: PhaseAction, Card: c})
}

func (g *Game) moneyPhase(i int) error {
	p := g.players[i]
	g.emit(Event{Type: EventPhaseChange, Player: p.Name, Phase: PhaseMoney})
	for {
		d, err := g.decide(i, PhaseMoney, MoneyOptions(p))
		if err != nil {
			return err
		}
		switch d.Kind {
		case DecisionEndPhase:
			return nil
		case DecisionPlayCard:
			if p.PlayCard(d.Card) {
				p.Money += d.Card.Def().Money
				g.emit(Event{Type: EventCardPlayed, Player: p.Name, Phase: PhaseMoney, Card: d.Card})
			}
		default:
			return g.violation(i, PhaseMoney, d, "decision kind not valid in this phase")
		}
	}
}

func (g *Game) buyPhase(i int) error {
	p := g.players[i]
	g.emit(Event{Type: EventPhaseChange, Player: p.Name, Phase: PhaseBuy})
	for p.Buys > 0 {
		d, err := g.decide(i, PhaseBuy, BuyOptions(p, g.supply))
		if err != nil {
			return err
		}
		switch d.Kind {
		case DecisionEndPhase:
			return nil
		case DecisionBuyCard:
			if g.supply.Take(d.Card) {
				p.GainCard(d.Card)
				p.Money -= d.Card.Def().Cost
				p.Buys--
				g.emit(Event{Type: EventCardGained, Player: p.Name, Phase: PhaseBuy, Card: d.Card})
			}
		default:
			return g.violation(i, PhaseBuy, d, "decision kind not valid in this phase")
		}
	}
	return nil
}

// GainPhase offers player i one free card costing at most maxCost. No
// catalog card triggers it; it exists for card effects layered on top of
// the engine. A seat index outside the table returns ErrNoSuchSeat.
func (g *Game) GainPhase(i int, maxCost int) error {
	if i < 0 || i >= len(g.players) {
		return fmt.Errorf("%w: %d", ErrNoSuchSeat, i)
	}
	p := g.players[i]
	g.emit(Event{Type: EventPhaseChange, Player: p.Name, Phase: PhaseGain})
	d, err := g.decide(i, PhaseGain, GainOptions(g.supply, maxCost))
	if err != nil {
		return err
	}
	switch d.Kind {
	case DecisionEndPhase:
		return nil
	case DecisionGainCard:
		if g.supply.Take(d.Card) {
			p.GainCard(d.Card)
			g.emit(Event{Type: EventCardGained, Player: p.Name, Phase: PhaseGain, Card: d.Card})
		}
		return nil
	default:
		return g.violation(i, PhaseGain, d, "decision kind not valid in this phase")
	}
}

// decide asks participant i to pick from options and enforces that the
// answer is one of them.
func (g *Game) decide(i int, phase Phase, options []Decision) (d Decision, err error) {
	p := g.players[i]
	state := g.snapshot(phase, p)
	offered := append([]Decision(nil), options...)

	d, err = g.ask(i, state, offered)
	if err != nil {
		return Decision{}, err
	}
	if d.IsZero() {
		return Decision{}, g.violation(i, phase, d, "no decision returned")
	}
	if !containsDecision(options, d) {
		return Decision{}, g.violation(i, phase, d, fmt.Sprintf("chose %s, which was not offered", d))
	}
	g.emit(Event{Type: EventDecision, Player: p.Name, Phase: phase, Decision: &d})
	return d, nil
}

func (g *Game) ask(i int, state GameState, options []Decision) (d Decision, err error) {
	name := g.players[i].Name
	defer func() {
		if r := recover(); r != nil {
			err = &ProtocolViolation{
				Participant: name,
				Phase:       state.Phase,
				Reason:      "decision maker panicked",
				Err:         fmt.Errorf("%v", r),
			}
		}
	}()
	d, err = g.participants[i].Strategy.Decide(state, options)
	if err != nil {
		return Decision{}, &ProtocolViolation{
			Participant: name,
			Phase:       state.Phase,
			Reason:      "decision maker failed",
			Err:         err,
		}
	}
	return d, nil
}

func (g *Game) violation(i int, phase Phase, d Decision, reason string) error {
	return &ProtocolViolation{
		Participant: g.players[i].Name,
		Phase:       phase,
		Reason:      reason,
		Decision:    d,
	}
}

// Supply returns the shared supply. Callers must not mutate it while Play
// is running.
func (g *Game) Supply() *Supply { return g.supply }

// Players returns the seated players in registration order.
func (g *Game) Players() []*Player { return append([]*Player(nil), g.players...) }

// GetPlayer finds a player by name.
func (g *Game) GetPlayer(name string) *Player {
	for _, p := range g.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Turn returns the number of turns started so far.
func (g *Game) Turn() int { return g.turn }

func (g *Game) names() []string {
	out := make([]string, len(g.players))
	for i, p := range g.players {
		out[i] = p.Name
	}
	return out
}
