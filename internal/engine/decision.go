package engine

import "fmt"

// DecisionKind tags the variant held by a Decision.
type DecisionKind int

const (
	DecisionNone DecisionKind = iota // zero value, never a legal answer
	DecisionPlayCard
	DecisionBuyCard
	DecisionGainCard
	DecisionEndPhase
)

var decisionNames = map[DecisionKind]string{
	DecisionNone:     "none",
	DecisionPlayCard: "play_card",
	DecisionBuyCard:  "buy_card",
	DecisionGainCard: "gain_card",
	DecisionEndPhase: "end_phase",
}

func (k DecisionKind) String() string {
	if s, ok := decisionNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k DecisionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DecisionKind) UnmarshalText(b []byte) error {
	for kind, name := range decisionNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown decision kind %q", b)
}

// Decision is one move a participant can make. It is a comparable value:
// two decisions are the same move iff they are ==.
type Decision struct {
	Kind DecisionKind `json:"kind"`
	Card Card         `json:"card,omitempty"` // NoCard for EndPhase
}

// EndPhase ends the current phase. It is offered at every decision point.
var EndPhase = Decision{Kind: DecisionEndPhase}

func PlayCard(c Card) Decision { return Decision{Kind: DecisionPlayCard, Card: c} }
func BuyCard(c Card) Decision  { return Decision{Kind: DecisionBuyCard, Card: c} }
func GainCard(c Card) Decision { return Decision{Kind: DecisionGainCard, Card: c} }

// IsZero reports whether d is the absent decision.
func (d Decision) IsZero() bool { return d == (Decision{}) }

func (d Decision) String() string {
	switch d.Kind {
	case DecisionPlayCard:
		return "Play " + d.Card.String()
	case DecisionBuyCard:
		return "Buy " + d.Card.String()
	case DecisionGainCard:
		return "Gain " + d.Card.String()
	case DecisionEndPhase:
		return "End phase"
	default:
		return "No decision"
	}
}

// DecisionMaker picks one of the offered options. Implementations must
// return a value equal to one of options; anything else, an error, or a
// panic aborts the game with a ProtocolViolation.
type DecisionMaker interface {
	Decide(state GameState, options []Decision) (Decision, error)
}

// DecisionFunc adapts a plain function to DecisionMaker.
type DecisionFunc func(state GameState, options []Decision) (Decision, error)

func (f DecisionFunc) Decide(state GameState, options []Decision) (Decision, error) {
	return f(state, options)
}

// Participant is a named seat at the table and the strategy playing it.
type Participant struct {
	Name     string
	Strategy DecisionMaker
}
