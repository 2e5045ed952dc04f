package grammar

import "testing"

// buildAugmentedExprGrammar builds E → E + T | T ; T → id, augments it,
// and returns the Grammar plus its symbols for the LR(0)/LALR(1) tests.
func buildAugmentedExprGrammar(t *testing.T) (*Grammar, map[string]Symbol) {
	t.Helper()

	g := NewGrammar()
	id := g.InternTerminal("id", TokenKind(1))
	plus := g.InternTerminal("+", TokenKind(2))
	e := g.InternNonterminal("E")
	tn := g.InternNonterminal("T")

	if _, err := g.AddProduction(e, []Symbol{e, plus, tn}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddProduction(e, []Symbol{tn}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddProduction(tn, []Symbol{id}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetStart(e); err != nil {
		t.Fatal(err)
	}
	if err := g.Augment(); err != nil {
		t.Fatal(err)
	}

	return g, map[string]Symbol{"id": id, "+": plus, "E": e, "T": tn}
}

func TestBuildLR0AutomatonStateCount(t *testing.T) {
	g, _ := buildAugmentedExprGrammar(t)

	lr0, err := buildLR0Automaton(g.prods, g.augStart)
	if err != nil {
		t.Fatal(err)
	}

	// E' → E, E → E+T|T, T → id has the textbook 6-state LR(0)
	// automaton: the initial state, goto(E), goto(T), goto(id),
	// goto(E,+), and the state after E+T.
	if got := lr0.stateCount(); got != 6 {
		t.Errorf("stateCount() = %d, want 6", got)
	}

	if lr0.stateByNum(InitialStateNum).kernel.items[0].initial != true {
		t.Error("the initial state's kernel item should be the augmenting item S'→·S")
	}
}

func TestBuildLR0AutomatonRejectsMissingAugmentingProduction(t *testing.T) {
	g := NewGrammar()
	e := g.InternNonterminal("E")
	if err := g.SetStart(e); err != nil {
		t.Fatal(err)
	}
	// Deliberately skip Augment() so prods has no S'→S production.

	if _, err := buildLR0Automaton(g.prods, g.augStart); err == nil {
		t.Fatal("expected an error building the LR(0) automaton for a grammar with no augmenting production")
	}
}

func TestClosureOfAddsEveryProductionOfTheDottedNonterminal(t *testing.T) {
	g, sym := buildAugmentedExprGrammar(t)

	augProds := g.prods.findByLHS(g.augStart)
	initial := newLR0Item(augProds[0], 0)
	closure := closureOf([]*lr0Item{initial}, g.prods)

	wantLHS := map[Symbol]int{sym["E"]: 0, sym["T"]: 0}
	for _, it := range closure {
		if it.dot != 0 {
			continue
		}
		p, ok := g.prods.findByID(it.prod)
		if !ok {
			t.Fatal("closure produced an item referencing an unknown production")
		}
		if p.LHS == sym["E"] || p.LHS == sym["T"] {
			wantLHS[p.LHS]++
		}
	}
	if wantLHS[sym["E"]] != 2 {
		t.Errorf("closure should contain both E-productions at dot 0, found %d", wantLHS[sym["E"]])
	}
	if wantLHS[sym["T"]] != 1 {
		t.Errorf("closure should contain the T-production at dot 0, found %d", wantLHS[sym["T"]])
	}
}
