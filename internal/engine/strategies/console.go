package strategies

import (
	"automation/internal/engine"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned when the console input ends mid-game.
var ErrNoInput = errors.New("console input closed")

// Console asks a human at a terminal. It prints the state and the numbered
// options, then reads a choice; bad input re-prompts.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) Decide(state engine.GameState, options []engine.Decision) (engine.Decision, error) {
	fmt.Fprintf(c.out, "\nTurn %d, %s, %s phase\n", state.Turn, state.Player, state.Phase)
	fmt.Fprintf(c.out, "  actions %d  buys %d  money %d\n", state.Actions, state.Buys, state.Money)
	fmt.Fprintf(c.out, "  hand: %s\n", joinCards(state.Hand))
	fmt.Fprintln(c.out, "Available decisions:")
	for i, o := range options {
		fmt.Fprintf(c.out, "  %d: %s\n", i, describe(o))
	}
	for {
		fmt.Fprint(c.out, "Enter the number of your choice: ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return engine.Decision{}, err
			}
			return engine.Decision{}, ErrNoInput
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err != nil || n < 0 || n >= len(options) {
			fmt.Fprintln(c.out, "Invalid choice.")
			continue
		}
		return options[n], nil
	}
}

func describe(d engine.Decision) string {
	if d.Kind == engine.DecisionBuyCard || d.Kind == engine.DecisionGainCard {
		return fmt.Sprintf("%s (cost %d)", d, d.Card.Def().Cost)
	}
	return d.String()
}

func joinCards(cards []engine.Card) string {
	if len(cards) == 0 {
		return "(empty)"
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
