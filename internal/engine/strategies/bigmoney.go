package strategies

import "automation/internal/engine"

// BigMoney plays every action card, plays its money cards and buys the
// most valuable card it can afford.
type BigMoney struct{}

// buyPriority ranks cards from least to most wanted.
var buyPriority = []engine.Card{
	engine.Bug,
	engine.Bitcoin,
	engine.Ethereum,
	engine.Refactor,
	engine.Method,
	engine.EvergreenTest,
	engine.CodeReview,
	engine.Dogecoin,
	engine.Module,
	engine.Framework,
}

func priority(c engine.Card) int {
	for i, p := range buyPriority {
		if p == c {
			return i + 1
		}
	}
	return 0
}

func (BigMoney) Decide(state engine.GameState, options []engine.Decision) (engine.Decision, error) {
	if len(options) == 1 {
		return options[0], nil
	}
	switch state.Phase {
	case engine.PhaseAction:
		return firstPlay(options, engine.KindAction), nil
	case engine.PhaseMoney:
		return firstPlay(options, engine.KindMoney), nil
	case engine.PhaseBuy:
		return best(options, engine.DecisionBuyCard), nil
	case engine.PhaseGain:
		return best(options, engine.DecisionGainCard), nil
	default:
		return options[0], nil
	}
}

func firstPlay(options []engine.Decision, kind engine.CardKind) engine.Decision {
	for _, o := range options {
		if o.Kind == engine.DecisionPlayCard && o.Card.Def().Kind == kind {
			return o
		}
	}
	return endPhase(options)
}

func best(options []engine.Decision, kind engine.DecisionKind) engine.Decision {
	var pick engine.Decision
	top := 0
	for _, o := range options {
		if o.Kind != kind {
			continue
		}
		if p := priority(o.Card); p > top {
			top = p
			pick = o
		}
	}
	if top == 0 {
		return endPhase(options)
	}
	return pick
}

func endPhase(options []engine.Decision) engine.Decision {
	for _, o := range options {
		if o == engine.EndPhase {
			return o
		}
	}
	return options[0]
}
