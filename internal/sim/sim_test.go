package sim_test

import (
	"automation/internal/engine"
	"automation/internal/engine/strategies"
	"automation/internal/lobby"
	"automation/internal/sim"
	"errors"
	"strings"
	"testing"
)

const turnGuard = 5000

func seats(t *testing.T, spec string) []lobby.Seat {
	t.Helper()
	s, err := lobby.ParseSeats(spec)
	if err != nil {
		t.Fatalf("parse seats: %v", err)
	}
	return s
}

func TestRunBatchManySeeds(t *testing.T) {
	table := seats(t, "Alice:bigmoney,Bob:random,Carol:bigmoney")
	results, err := sim.RunBatch(table, 50, sim.Options{Seed: 1, MaxTurns: turnGuard})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 50 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Seed != uint64(1+i) {
			t.Errorf("result %d seed %d", i, r.Seed)
		}
		if len(r.Results) != 3 {
			t.Fatalf("result %d has %d entries", i, len(r.Results))
		}
	}
}

func FuzzRun(f *testing.F) {
	f.Add(uint64(1))
	f.Add(uint64(42))
	f.Add(uint64(20261014))
	table := []lobby.Seat{
		{ID: "a", Name: "A", Strategy: "random"},
		{ID: "b", Name: "B", Strategy: "bigmoney"},
	}
	f.Fuzz(func(t *testing.T, seed uint64) {
		if _, err := sim.Run(table, sim.Options{Seed: seed, MaxTurns: turnGuard}); err != nil {
			t.Fatalf("run: %v", err)
		}
	})
}

func TestRunDeterministic(t *testing.T) {
	table := seats(t, "A:random,B:random,C:bigmoney,D:random")
	var first, second []engine.Event
	r1, err := sim.Run(table, sim.Options{Seed: 7, MaxTurns: turnGuard, Observers: []engine.Observer{
		func(ev engine.Event) { first = append(first, ev) },
	}})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := sim.Run(table, sim.Options{Seed: 7, MaxTurns: turnGuard, Observers: []engine.Observer{
		func(ev engine.Event) { second = append(second, ev) },
	}})
	if err != nil {
		t.Fatal(err)
	}
	if r1.Turns != r2.Turns || r1.Winner() != r2.Winner() {
		t.Fatalf("replay diverged: %d/%s vs %d/%s", r1.Turns, r1.Winner(), r2.Turns, r2.Winner())
	}
	if len(first) != len(second) {
		t.Fatalf("event counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Card != second[i].Card || first[i].Player != second[i].Player {
			t.Fatalf("event %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParticipantsErrors(t *testing.T) {
	_, err := sim.Participants([]lobby.Seat{{Name: "Me", Strategy: sim.ConsoleStrategy}}, 1, nil)
	if !errors.Is(err, sim.ErrNoConsole) {
		t.Fatalf("expected ErrNoConsole, got %v", err)
	}
	_, err = sim.Participants([]lobby.Seat{{Name: "X", Strategy: "oracle"}}, 1, nil)
	if err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unknown strategy error, got %v", err)
	}
}

func TestRunConsoleSeat(t *testing.T) {
	console := strategies.NewConsole(strings.NewReader(""), &strings.Builder{})
	table := []lobby.Seat{{Name: "Me", Strategy: sim.ConsoleStrategy}}
	_, err := sim.Run(table, sim.Options{Seed: 1, Console: console})
	if !errors.Is(err, engine.ErrProtocolViolation) || !errors.Is(err, strategies.ErrNoInput) {
		t.Fatalf("expected protocol violation wrapping ErrNoInput, got %v", err)
	}
}

func TestRunTurnLimit(t *testing.T) {
	_, err := sim.Run(seats(t, "A:bigmoney"), sim.Options{Seed: 3, MaxTurns: 1})
	if !errors.Is(err, engine.ErrTurnLimit) {
		t.Fatalf("expected ErrTurnLimit, got %v", err)
	}
}

func TestRunRejectsTable(t *testing.T) {
	_, err := sim.Run(seats(t, "A,B,C,D,E"), sim.Options{})
	if !errors.Is(err, engine.ErrTooManyParticipants) {
		t.Fatalf("expected ErrTooManyParticipants, got %v", err)
	}
}
