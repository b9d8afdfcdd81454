package engine

import "fmt"

// CardKind represents the four card categories.
type CardKind int

const (
	KindNone       CardKind = 0
	KindMoney      CardKind = 1 // spent during the money phase
	KindAutomation CardKind = 2 // worth points
	KindAction     CardKind = 3 // played during the action phase
	KindBug        CardKind = 4 // negative points
)

var kindNames = map[CardKind]string{
	KindNone:       "None",
	KindMoney:      "Money",
	KindAutomation: "Automation",
	KindAction:     "Action",
	KindBug:        "Bug",
}

func (k CardKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// CardDefinition describes one kind of card. Definitions are immutable and
// live in the catalog table; hold a Card handle instead of a copy.
type CardDefinition struct {
	Name   string   `json:"name"`
	Kind   CardKind `json:"kind"`
	Cost   int      `json:"cost"`
	Points int      `json:"points"`
	Money  int      `json:"money"`

	// Action bonuses, zero for every other kind.
	ExtraActions int `json:"extra_actions,omitempty"`
	ExtraBuys    int `json:"extra_buys,omitempty"`
	ExtraMoney   int `json:"extra_money,omitempty"`
	ExtraCards   int `json:"extra_cards,omitempty"`
}

// Card is an interned handle into the catalog. Two cards are the same card
// iff their handles are equal. The zero Card is not a card.
type Card uint8

// NoCard is the zero handle.
const NoCard Card = 0

// Def returns the catalog definition for c. It panics on a handle that did
// not come from the catalog.
func (c Card) Def() CardDefinition {
	if int(c) <= 0 || int(c) >= len(catalog.defs) {
		panic(fmt.Sprintf("engine: invalid card handle %d", c))
	}
	return catalog.defs[c]
}

// Valid reports whether c refers to a catalog entry.
func (c Card) Valid() bool {
	return int(c) > 0 && int(c) < len(catalog.defs)
}

func (c Card) Name() string { return c.Def().Name }

func (c Card) String() string {
	if !c.Valid() {
		return "<none>"
	}
	return catalog.defs[c].Name
}

// MarshalText encodes a card by name so transcripts stay readable.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return []byte{}, nil
	}
	return []byte(catalog.defs[c].Name), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = NoCard
		return nil
	}
	found, ok := Lookup(string(b))
	if !ok {
		return fmt.Errorf("unknown card %q", b)
	}
	*c = found
	return nil
}

// Lookup finds a card by name.
func Lookup(name string) (Card, bool) {
	c, ok := catalog.byName[name]
	return c, ok
}

// Cards returns every catalog card in catalog order.
func Cards() []Card {
	out := make([]Card, 0, len(catalog.defs)-1)
	for i := 1; i < len(catalog.defs); i++ {
		out = append(out, Card(i))
	}
	return out
}

// CountCards tallies a card collection by handle.
func CountCards(cards []Card) map[Card]int {
	counts := make(map[Card]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}
