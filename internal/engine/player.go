package engine

import "math/rand/v2"

// HandSize is the number of cards drawn at the start of the game and at
// every cleanup.
const HandSize = 5

// Player holds one participant's cards and per-turn counters. The four
// zones are disjoint and together hold every card the player owns.
type Player struct {
	Name string `json:"name"`

	// Per-turn state (reset by StartTurn)
	Actions int `json:"actions"`
	Buys    int `json:"buys"`
	Money   int `json:"money"`

	deck    *Deck
	hand    []Card
	discard []Card
	played  []Card
	rng     *rand.Rand
}

// NewPlayer deals the starting deck, shuffles it with rng and draws a hand.
func NewPlayer(name string, rng *rand.Rand) *Player {
	p := &Player{
		Name: name,
		deck: NewDeck(StartingDeck()),
		rng:  rng,
	}
	p.deck.Shuffle(rng)
	p.Draw(HandSize)
	return p
}

// StartTurn resets the turn counters. Zones are untouched.
func (p *Player) StartTurn() {
	p.Actions = 1
	p.Buys = 1
	p.Money = 0
}

// PlayCard moves one copy of c from hand to played. It reports false and
// changes nothing if c is not in hand.
func (p *Player) PlayCard(c Card) bool {
	for i, h := range p.hand {
		if h == c {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			p.played = append(p.played, c)
			return true
		}
	}
	return false
}

// GainCard puts c on the discard pile.
func (p *Player) GainCard(c Card) {
	p.discard = append(p.discard, c)
}

// Draw moves up to n cards from deck to hand. An empty deck is refilled by
// shuffling the discard pile; when both are empty the draw comes up short.
func (p *Player) Draw(n int) {
	for i := 0; i < n; i++ {
		if p.deck.Len() == 0 {
			if len(p.discard) == 0 {
				return
			}
			p.deck.Return(p.discard)
			p.discard = nil
			p.deck.Shuffle(p.rng)
		}
		p.hand = append(p.hand, p.deck.Draw(1)...)
	}
}

// Cleanup discards hand and played cards, then draws a fresh hand.
func (p *Player) Cleanup() {
	p.discard = append(p.discard, p.hand...)
	p.discard = append(p.discard, p.played...)
	p.hand = nil
	p.played = nil
	p.Draw(HandSize)
}

// Score sums point values over every card the player owns.
func (p *Player) Score() int {
	score := 0
	for _, c := range p.AllCards() {
		score += c.Def().Points
	}
	return score
}

// AllCards returns deck, hand, discard and played, in that order.
func (p *Player) AllCards() []Card {
	all := make([]Card, 0, p.deck.Len()+len(p.hand)+len(p.discard)+len(p.played))
	all = append(all, p.deck.Peek(p.deck.Len())...)
	all = append(all, p.hand...)
	all = append(all, p.discard...)
	all = append(all, p.played...)
	return all
}

// HandHas returns true if at least one copy of c is in hand.
func (p *Player) HandHas(c Card) bool {
	for _, h := range p.hand {
		if h == c {
			return true
		}
	}
	return false
}

func (p *Player) Hand() []Card    { return append([]Card(nil), p.hand...) }
func (p *Player) Discard() []Card { return append([]Card(nil), p.discard...) }
func (p *Player) Played() []Card  { return append([]Card(nil), p.played...) }
func (p *Player) Deck() []Card    { return p.deck.Peek(p.deck.Len()) }
