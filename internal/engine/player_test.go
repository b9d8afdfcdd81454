package engine

import (
	"math/rand/v2"
	"testing"
)

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func emptyPlayer() *Player {
	return &Player{Name: "T", deck: NewDeck(nil), rng: testRNG()}
}

func TestNewPlayerStartingCollection(t *testing.T) {
	p := NewPlayer("Alice", testRNG())
	if len(p.hand) != HandSize {
		t.Fatalf("hand: got %d, want %d", len(p.hand), HandSize)
	}
	if p.deck.Len() != 5 {
		t.Fatalf("deck: got %d, want 5", p.deck.Len())
	}
	counts := CountCards(p.AllCards())
	if counts[Bitcoin] != 7 || counts[Method] != 3 {
		t.Fatalf("starting collection: %v", counts)
	}
	if p.Score() != 3 {
		t.Fatalf("score: got %d, want 3", p.Score())
	}
}

func TestSameSeedSameShuffle(t *testing.T) {
	a := NewPlayer("A", rand.New(rand.NewPCG(9, 0)))
	b := NewPlayer("B", rand.New(rand.NewPCG(9, 0)))
	ha, hb := a.Hand(), b.Hand()
	for i := range ha {
		if ha[i] != hb[i] {
			t.Fatalf("hands differ at %d: %v vs %v", i, ha, hb)
		}
	}
}

func TestStartTurnResetsCounters(t *testing.T) {
	p := NewPlayer("Alice", testRNG())
	p.Actions, p.Buys, p.Money = 0, 3, 9
	hand := len(p.hand)
	p.StartTurn()
	if p.Actions != 1 || p.Buys != 1 || p.Money != 0 {
		t.Fatalf("counters after StartTurn: %d/%d/%d", p.Actions, p.Buys, p.Money)
	}
	if len(p.hand) != hand {
		t.Fatal("StartTurn touched the hand")
	}
}

func TestPlayCard(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Bitcoin, Method, Bitcoin}
	if !p.PlayCard(Bitcoin) {
		t.Fatal("PlayCard(Bitcoin) failed")
	}
	if len(p.hand) != 2 || len(p.played) != 1 || p.played[0] != Bitcoin {
		t.Fatalf("after play: hand=%v played=%v", p.hand, p.played)
	}
	if p.hand[0] != Method || p.hand[1] != Bitcoin {
		t.Fatalf("play removed the wrong copy: %v", p.hand)
	}
}

func TestPlayCardNotInHand(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Bitcoin}
	if p.PlayCard(Framework) {
		t.Fatal("PlayCard succeeded for a card not in hand")
	}
	if len(p.hand) != 1 || len(p.played) != 0 {
		t.Fatalf("failed play changed state: hand=%v played=%v", p.hand, p.played)
	}
}

func TestDrawFromEmptyDeckAndDiscard(t *testing.T) {
	p := emptyPlayer()
	p.Draw(5)
	if len(p.hand) != 0 {
		t.Fatalf("drew %d cards from nothing", len(p.hand))
	}
}

func TestDrawShortWhenDiscardRunsOut(t *testing.T) {
	p := emptyPlayer()
	p.GainCard(Method)
	p.GainCard(Module)
	p.Draw(5)
	if len(p.hand) != 2 {
		t.Fatalf("hand: got %d, want 2", len(p.hand))
	}
	if len(p.discard) != 0 || p.deck.Len() != 0 {
		t.Fatalf("leftovers: discard=%v deck=%d", p.discard, p.deck.Len())
	}
}

func TestDrawReshufflesMidDraw(t *testing.T) {
	p := emptyPlayer()
	p.deck = NewDeck([]Card{Framework})
	p.discard = []Card{Bitcoin, Bitcoin, Bitcoin}
	p.Draw(3)
	if len(p.hand) != 3 {
		t.Fatalf("hand: got %d, want 3", len(p.hand))
	}
	if p.hand[0] != Framework {
		t.Fatalf("top of deck must be drawn before the reshuffle, got %v", p.hand)
	}
	if p.deck.Len() != 1 || len(p.discard) != 0 {
		t.Fatalf("after draw: deck=%d discard=%d", p.deck.Len(), len(p.discard))
	}
}

func TestDrawDoesNotReshuffleWhileDeckHasCards(t *testing.T) {
	p := emptyPlayer()
	p.deck = NewDeck([]Card{Method, Module, Framework})
	p.discard = []Card{Bug}
	p.Draw(2)
	if p.hand[0] != Method || p.hand[1] != Module {
		t.Fatalf("draw order: %v", p.hand)
	}
	if len(p.discard) != 1 {
		t.Fatal("discard reshuffled too early")
	}
}

func TestCleanup(t *testing.T) {
	p := NewPlayer("Alice", testRNG())
	before := len(p.AllCards())
	p.StartTurn()
	p.PlayCard(p.hand[0])
	p.PlayCard(p.hand[0])
	p.GainCard(Module)
	p.Cleanup()
	if len(p.played) != 0 {
		t.Fatalf("played not cleared: %v", p.played)
	}
	if len(p.hand) != HandSize {
		t.Fatalf("hand after cleanup: got %d, want %d", len(p.hand), HandSize)
	}
	if got := len(p.AllCards()); got != before+1 {
		t.Fatalf("collection: got %d, want %d", got, before+1)
	}
}

func TestScoreCountsBugs(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Framework}
	p.played = []Card{Module}
	p.discard = []Card{Bug, Bug}
	p.deck = NewDeck([]Card{Method, Bitcoin})
	if got := p.Score(); got != 6+3-2+1 {
		t.Fatalf("score: got %d, want 8", got)
	}
}

func TestConservationUnderRandomOps(t *testing.T) {
	p := NewPlayer("Alice", testRNG())
	ops := rand.New(rand.NewPCG(3, 4))
	owned := CountCards(p.AllCards())
	for step := 0; step < 2000; step++ {
		switch ops.IntN(5) {
		case 0:
			p.StartTurn()
		case 1:
			if len(p.hand) > 0 {
				p.PlayCard(p.hand[ops.IntN(len(p.hand))])
			}
		case 2:
			c := Cards()[ops.IntN(len(Cards()))]
			p.GainCard(c)
			owned[c]++
		case 3:
			p.Draw(ops.IntN(4))
		case 4:
			p.Cleanup()
		}
		got := CountCards(p.AllCards())
		for _, c := range Cards() {
			if got[c] != owned[c] {
				t.Fatalf("step %d: %s count %d, want %d", step, c, got[c], owned[c])
			}
		}
	}
}
