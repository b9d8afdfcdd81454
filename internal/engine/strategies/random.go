package strategies

import (
	"automation/internal/engine"
	"math/rand/v2"
)

// Random picks uniformly among the offered options.
type Random struct {
	RNG *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{RNG: rand.New(rand.NewPCG(seed, 0x5eed))}
}

func (r *Random) Decide(state engine.GameState, options []engine.Decision) (engine.Decision, error) {
	return options[r.RNG.IntN(len(options))], nil
}
