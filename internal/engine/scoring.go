package engine

import "sort"

// PlayerResult is one participant's final standing.
type PlayerResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Cards []Card `json:"cards"`
}

// CardCounts tallies the ending collection by card.
func (r PlayerResult) CardCounts() map[Card]int {
	return CountCards(r.Cards)
}

// GameResult ranks participants by score, highest first. Equal scores keep
// registration order. Players lists the names in registration order.
type GameResult struct {
	Seed    uint64         `json:"seed"`
	Turns   int            `json:"turns"`
	Players []string       `json:"players"`
	Results []PlayerResult `json:"results"`
}

// Winner returns the top-ranked name, or "" for an empty result.
func (r *GameResult) Winner() string {
	if len(r.Results) == 0 {
		return ""
	}
	return r.Results[0].Name
}

// Tied reports whether the top two participants share a score.
func (r *GameResult) Tied() bool {
	return len(r.Results) > 1 && r.Results[0].Score == r.Results[1].Score
}

func (g *Game) results() *GameResult {
	entries := make([]PlayerResult, len(g.players))
	for i, p := range g.players {
		entries[i] = PlayerResult{
			Name:  p.Name,
			Score: p.Score(),
			Cards: p.AllCards(),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return &GameResult{
		Seed:    g.config.Seed,
		Turns:   g.turn,
		Players: g.names(),
		Results: entries,
	}
}
