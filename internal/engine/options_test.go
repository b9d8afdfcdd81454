package engine

import "testing"

func sameDecisions(t *testing.T, got, want []Decision) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("option %d: got %s, want %s (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestActionOptionsWithoutActions(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Bitcoin, Method}
	sameDecisions(t, ActionOptions(p), []Decision{EndPhase})

	p.hand = nil
	sameDecisions(t, ActionOptions(p), []Decision{EndPhase})
}

func TestActionOptionsListsEveryActionCard(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Refactor, Bitcoin, EvergreenTest, Refactor}
	sameDecisions(t, ActionOptions(p), []Decision{
		PlayCard(Refactor), PlayCard(EvergreenTest), PlayCard(Refactor), EndPhase,
	})
}

func TestMoneyOptionsDistinctAnyKind(t *testing.T) {
	p := emptyPlayer()
	p.hand = []Card{Bitcoin, Method, Bitcoin, Refactor}
	sameDecisions(t, MoneyOptions(p), []Decision{
		PlayCard(Bitcoin), PlayCard(Method), PlayCard(Refactor), EndPhase,
	})
}

func TestBuyOptionsFilterByMoney(t *testing.T) {
	s, _ := NewSupply(1)
	p := emptyPlayer()
	p.Money = 0
	sameDecisions(t, BuyOptions(p, s), []Decision{BuyCard(Bitcoin), BuyCard(Bug), EndPhase})

	p.Money = 2
	sameDecisions(t, BuyOptions(p, s), []Decision{
		BuyCard(Bitcoin), BuyCard(Method), BuyCard(Bug), BuyCard(Refactor), EndPhase,
	})
}

func TestBuyOptionsSkipEmptyStacks(t *testing.T) {
	s, _ := NewSupply(1)
	for s.Take(Bitcoin) {
	}
	p := emptyPlayer()
	sameDecisions(t, BuyOptions(p, s), []Decision{BuyCard(Bug), EndPhase})
}

func TestGainOptions(t *testing.T) {
	s, _ := NewSupply(1)
	got := GainOptions(s, 3)
	for _, d := range got[:len(got)-1] {
		if d.Kind != DecisionGainCard || d.Card.Def().Cost > 3 {
			t.Fatalf("bad gain option %s", d)
		}
	}
	if got[len(got)-1] != EndPhase {
		t.Fatal("EndPhase missing from gain options")
	}
}

func TestDecisionEquality(t *testing.T) {
	if PlayCard(Bitcoin) != PlayCard(Bitcoin) {
		t.Error("equal decisions compare unequal")
	}
	if PlayCard(Bitcoin) == BuyCard(Bitcoin) {
		t.Error("different kinds compare equal")
	}
	if !(Decision{}).IsZero() || EndPhase.IsZero() {
		t.Error("IsZero")
	}
	if !containsDecision([]Decision{BuyCard(Module), EndPhase}, EndPhase) {
		t.Error("containsDecision missed EndPhase")
	}
}
