package engine

import "fmt"

// Phase is one step of a turn. Every turn visits Action, Money, Buy and
// Cleanup in that order.
type Phase int

const (
	PhaseNone    Phase = iota
	PhaseAction        // play action cards
	PhaseMoney         // play cards for money
	PhaseBuy           // buy from the supply
	PhaseCleanup       // discard and redraw, no decision
	PhaseGain          // gain a card without paying
)

var phaseNames = map[Phase]string{
	PhaseNone:    "None",
	PhaseAction:  "Action",
	PhaseMoney:   "Money",
	PhaseBuy:     "Buy",
	PhaseCleanup: "Cleanup",
	PhaseGain:    "Gain",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for ph, name := range phaseNames {
		if name == string(b) {
			*p = ph
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}
