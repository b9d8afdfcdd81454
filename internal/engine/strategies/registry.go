package strategies

import (
	"automation/internal/engine"
	"fmt"
	"sort"
)

// Factory builds a bot strategy from a seed.
type Factory func(seed uint64) engine.DecisionMaker

var factories = map[string]Factory{
	"bigmoney": func(uint64) engine.DecisionMaker { return BigMoney{} },
	"random":   func(seed uint64) engine.DecisionMaker { return NewRandom(seed) },
}

// New builds the named bot strategy.
func New(kind string, seed uint64) (engine.DecisionMaker, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", kind)
	}
	return f(seed), nil
}

// Kinds lists the registered bot strategies.
func Kinds() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
