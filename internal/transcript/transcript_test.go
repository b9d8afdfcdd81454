package transcript_test

import (
	"automation/internal/engine"
	"automation/internal/lobby"
	"automation/internal/sim"
	"automation/internal/transcript"
	"path/filepath"
	"testing"
)

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	w, err := transcript.Create(dir, "g1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Path() != filepath.Join(dir, "g1.jsonl.zst") {
		t.Fatalf("path: %s", w.Path())
	}
	d := engine.BuyCard(engine.Module)
	in := []engine.Event{
		{Type: engine.EventTurnStart, Turn: 1, Player: "Alice"},
		{Type: engine.EventDecision, Turn: 1, Player: "Alice", Phase: engine.PhaseBuy, Decision: &d},
		{Type: engine.EventCardGained, Turn: 1, Player: "Alice", Phase: engine.PhaseBuy, Card: engine.Module},
	}
	for _, ev := range in {
		if err := w.Write(ev); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Write(in[0]); err == nil {
		t.Fatal("write after close should fail")
	}

	out, err := transcript.Read(w.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d events, want %d", len(out), len(in))
	}
	if out[1].Decision == nil || *out[1].Decision != d {
		t.Errorf("decision: %+v", out[1].Decision)
	}
	if out[2].Card != engine.Module || out[2].Phase != engine.PhaseBuy {
		t.Errorf("card event: %+v", out[2])
	}
}

func TestTranscriptOfFullGame(t *testing.T) {
	dir := t.TempDir()
	w, err := transcript.Create(dir, "full")
	if err != nil {
		t.Fatal(err)
	}
	seats := []lobby.Seat{{Name: "A", Strategy: "bigmoney"}, {Name: "B", Strategy: "random"}}
	var live int
	result, err := sim.Run(seats, sim.Options{Seed: 11, MaxTurns: 5000, Observers: []engine.Observer{
		w.Observer(),
		func(engine.Event) { live++ },
	}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	events, err := transcript.Read(w.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != live {
		t.Fatalf("transcript has %d events, observer saw %d", len(events), live)
	}
	if events[0].Type != engine.EventGameStart || events[len(events)-1].Type != engine.EventGameOver {
		t.Fatalf("transcript not bracketed: %s ... %s", events[0].Type, events[len(events)-1].Type)
	}
	if got := events[len(events)-1].Data["winner"]; got != result.Winner() {
		t.Errorf("winner in transcript: %v, want %s", got, result.Winner())
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := transcript.Read(filepath.Join(t.TempDir(), "nope.jsonl.zst")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
