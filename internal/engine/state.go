package engine

// GameState is the read-only view handed to a DecisionMaker. It is a value:
// every slice and map is a private copy.
type GameState struct {
	Phase   Phase        `json:"phase"`
	Turn    int          `json:"turn"`
	Player  string       `json:"player"`
	Hand    []Card       `json:"hand"`
	Actions int          `json:"actions"`
	Buys    int          `json:"buys"`
	Money   int          `json:"money"`
	Supply  map[Card]int `json:"supply"`
	Players []string     `json:"players"`
}

func (g *Game) snapshot(phase Phase, p *Player) GameState {
	return GameState{
		Phase:   phase,
		Turn:    g.turn,
		Player:  p.Name,
		Hand:    p.Hand(),
		Actions: p.Actions,
		Buys:    p.Buys,
		Money:   p.Money,
		Supply:  g.supply.Counts(),
		Players: g.names(),
	}
}

// HandCount returns how many copies of c are in the acting player's hand.
func (s GameState) HandCount(c Card) int {
	n := 0
	for _, h := range s.Hand {
		if h == c {
			n++
		}
	}
	return n
}
