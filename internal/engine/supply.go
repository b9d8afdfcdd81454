package engine

// Supply holds the remaining purchasable count of every catalog card.
type Supply struct {
	counts []int // indexed by Card
}

// NewSupply seeds the supply for the given number of participants.
func NewSupply(participants int) (*Supply, error) {
	if participants < 1 {
		return nil, ErrNoParticipants
	}
	if participants > MaxParticipants {
		return nil, ErrTooManyParticipants
	}
	s := &Supply{counts: make([]int, len(catalog.defs))}
	for i := 1; i < len(catalog.seeds); i++ {
		seed := catalog.seeds[i]
		s.counts[i] = seed.Flat + seed.PerPlayer*participants
	}
	return s, nil
}

// Remaining returns how many copies of c are left.
func (s *Supply) Remaining(c Card) int {
	if !c.Valid() {
		return 0
	}
	return s.counts[c]
}

// Take removes one copy of c. It reports false, and changes nothing, when
// the stack is empty.
func (s *Supply) Take(c Card) bool {
	if s.Remaining(c) <= 0 {
		return false
	}
	s.counts[c]--
	return true
}

// IsExhausted reports whether the top automation tier is sold out, which
// ends the game.
func (s *Supply) IsExhausted() bool {
	return s.Remaining(catalog.topAutomation) == 0
}

// Available returns the cards with at least one copy left, in catalog order.
func (s *Supply) Available() []Card {
	var out []Card
	for i := 1; i < len(s.counts); i++ {
		if s.counts[i] > 0 {
			out = append(out, Card(i))
		}
	}
	return out
}

// Counts returns a copy of every stack, including empty ones.
func (s *Supply) Counts() map[Card]int {
	out := make(map[Card]int, len(s.counts)-1)
	for i := 1; i < len(s.counts); i++ {
		out[Card(i)] = s.counts[i]
	}
	return out
}
