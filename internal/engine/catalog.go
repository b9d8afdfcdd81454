package engine

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed catalog.schema.json
var catalogSchema string

const catalogSchemaURL = "catalog.schema.json"

type catalogFile struct {
	Roles struct {
		BaseMoney      string `yaml:"base_money"`
		BaseAutomation string `yaml:"base_automation"`
		TopAutomation  string `yaml:"top_automation"`
	} `yaml:"roles"`
	StartingDeck []struct {
		Card  string `yaml:"card"`
		Count int    `yaml:"count"`
	} `yaml:"starting_deck"`
	Cards []catalogEntry `yaml:"cards"`
}

type catalogEntry struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind"`
	Cost            int    `yaml:"cost"`
	Points          int    `yaml:"points"`
	Money           int    `yaml:"money"`
	Supply          int    `yaml:"supply"`
	SupplyPerPlayer int    `yaml:"supply_per_player"`
	Bonus           struct {
		Actions int `yaml:"actions"`
		Buys    int `yaml:"buys"`
		Money   int `yaml:"money"`
		Cards   int `yaml:"cards"`
	} `yaml:"bonus"`
}

var kindByName = map[string]CardKind{
	"money":      KindMoney,
	"automation": KindAutomation,
	"action":     KindAction,
	"bug":        KindBug,
}

// stackSeed is the supply size of one card: Flat + PerPlayer*participants.
type stackSeed struct {
	Flat      int
	PerPlayer int
}

type cardCatalog struct {
	defs   []CardDefinition // index 0 is the zero handle
	byName map[string]Card
	seeds  []stackSeed

	baseMoney      Card
	baseAutomation Card
	topAutomation  Card
	startingDeck   []Card
}

var catalog = mustLoadCatalog(catalogYAML)

// Well-known cards.
var (
	Bitcoin       = catalog.mustLookup("Bitcoin")
	Ethereum      = catalog.mustLookup("Ethereum")
	Dogecoin      = catalog.mustLookup("Dogecoin")
	Method        = catalog.mustLookup("Method")
	Module        = catalog.mustLookup("Module")
	Framework     = catalog.mustLookup("Framework")
	Bug           = catalog.mustLookup("Bug")
	Refactor      = catalog.mustLookup("Refactor")
	CodeReview    = catalog.mustLookup("Code Review")
	EvergreenTest = catalog.mustLookup("Evergreen Test")
)

// BaseMoney, BaseAutomation and TopAutomation are the catalog roles: the two
// starting-deck cards and the card whose exhaustion ends the game.
func BaseMoney() Card      { return catalog.baseMoney }
func BaseAutomation() Card { return catalog.baseAutomation }
func TopAutomation() Card  { return catalog.topAutomation }

// StartingDeck returns the unshuffled starting collection.
func StartingDeck() []Card {
	return append([]Card(nil), catalog.startingDeck...)
}

func mustLoadCatalog(raw []byte) *cardCatalog {
	c, err := loadCatalog(raw)
	if err != nil {
		panic(fmt.Sprintf("engine: catalog: %v", err))
	}
	return c
}

// ValidateCatalog checks catalog YAML against the embedded schema.
func ValidateCatalog(raw []byte) error {
	schema, err := jsonschema.CompileString(catalogSchemaURL, catalogSchema)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("catalog.yaml: %w", err)
	}
	// The validator wants JSON-shaped values.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog.yaml: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return schema.Validate(v)
}

func loadCatalog(raw []byte) (*cardCatalog, error) {
	if err := ValidateCatalog(raw); err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog.yaml: %w", err)
	}

	c := &cardCatalog{
		defs:   []CardDefinition{{}},
		seeds:  []stackSeed{{}},
		byName: make(map[string]Card, len(f.Cards)),
	}
	for _, e := range f.Cards {
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate card %q", e.Name)
		}
		kind := kindByName[e.Kind]
		def := CardDefinition{
			Name:   e.Name,
			Kind:   kind,
			Cost:   e.Cost,
			Points: e.Points,
			Money:  e.Money,
		}
		if kind == KindAction {
			def.ExtraActions = e.Bonus.Actions
			def.ExtraBuys = e.Bonus.Buys
			def.ExtraMoney = e.Bonus.Money
			def.ExtraCards = e.Bonus.Cards
		}
		c.byName[e.Name] = Card(len(c.defs))
		c.defs = append(c.defs, def)
		c.seeds = append(c.seeds, stackSeed{Flat: e.Supply, PerPlayer: e.SupplyPerPlayer})
	}

	var err error
	if c.baseMoney, err = c.lookup(f.Roles.BaseMoney); err != nil {
		return nil, err
	}
	if c.baseAutomation, err = c.lookup(f.Roles.BaseAutomation); err != nil {
		return nil, err
	}
	if c.topAutomation, err = c.lookup(f.Roles.TopAutomation); err != nil {
		return nil, err
	}
	for _, s := range f.StartingDeck {
		card, err := c.lookup(s.Card)
		if err != nil {
			return nil, err
		}
		for i := 0; i < s.Count; i++ {
			c.startingDeck = append(c.startingDeck, card)
		}
	}
	return c, nil
}

func (c *cardCatalog) lookup(name string) (Card, error) {
	card, ok := c.byName[name]
	if !ok {
		return NoCard, fmt.Errorf("unknown card %q", name)
	}
	return card, nil
}

func (c *cardCatalog) mustLookup(name string) Card {
	card, err := c.lookup(name)
	if err != nil {
		panic(fmt.Sprintf("engine: catalog: %v", err))
	}
	return card
}
