package engine

// ActionOptions lists the action-phase moves: one PlayCard per action card
// in hand, in hand order, then EndPhase.
func ActionOptions(p *Player) []Decision {
	var options []Decision
	for _, c := range p.hand {
		if c.Def().Kind == KindAction {
			options = append(options, PlayCard(c))
		}
	}
	return append(options, EndPhase)
}

// MoneyOptions lists the money-phase moves: one PlayCard per distinct card
// in hand, whatever its kind, then EndPhase. A card without money value is
// still playable; it just adds nothing.
func MoneyOptions(p *Player) []Decision {
	var options []Decision
	seen := make(map[Card]bool)
	for _, c := range p.hand {
		if seen[c] {
			continue
		}
		seen[c] = true
		options = append(options, PlayCard(c))
	}
	return append(options, EndPhase)
}

// BuyOptions lists the buy-phase moves: one BuyCard per card left in the
// supply that costs no more than the player's money, then EndPhase.
func BuyOptions(p *Player, s *Supply) []Decision {
	var options []Decision
	for _, c := range s.Available() {
		if c.Def().Cost <= p.Money {
			options = append(options, BuyCard(c))
		}
	}
	return append(options, EndPhase)
}

// GainOptions lists the gain moves: one GainCard per card left in the
// supply costing at most maxCost, then EndPhase.
func GainOptions(s *Supply, maxCost int) []Decision {
	var options []Decision
	for _, c := range s.Available() {
		if c.Def().Cost <= maxCost {
			options = append(options, GainCard(c))
		}
	}
	return append(options, EndPhase)
}

func containsDecision(options []Decision, d Decision) bool {
	for _, o := range options {
		if o == d {
			return true
		}
	}
	return false
}
