package grammar

import "testing"

// buildTestGrammar constructs S → A B ; A → a | ε ; B → b, a small
// grammar with one nullable nonterminal, used across the nullable/
// FIRST/FOLLOW tests below.
func buildTestGrammar(t *testing.T) (*Grammar, map[string]Symbol) {
	t.Helper()

	g := NewGrammar()
	a := g.InternTerminal("a", TokenKind(1))
	b := g.InternTerminal("b", TokenKind(2))
	A := g.InternNonterminal("A")
	B := g.InternNonterminal("B")
	S := g.InternNonterminal("S")

	if _, err := g.AddProduction(S, []Symbol{A, B}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddProduction(A, []Symbol{a}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddProduction(A, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddProduction(B, []Symbol{b}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetStart(S); err != nil {
		t.Fatal(err)
	}

	return g, map[string]Symbol{"a": a, "b": b, "A": A, "B": B, "S": S}
}

func TestNullable(t *testing.T) {
	g, sym := buildTestGrammar(t)

	tests := []struct {
		caption  string
		sym      Symbol
		nullable bool
	}{
		{caption: "A has an epsilon production", sym: sym["A"], nullable: true},
		{caption: "B has no epsilon production", sym: sym["B"], nullable: false},
		{caption: "S is not nullable because B isn't", sym: sym["S"], nullable: false},
		{caption: "a terminal is never nullable", sym: sym["a"], nullable: false},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := g.IsNullable(tt.sym); got != tt.nullable {
				t.Errorf("IsNullable() = %v, want %v", got, tt.nullable)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	g, sym := buildTestGrammar(t)

	terms, hasEps := g.First(sym["S"])
	if hasEps {
		t.Error("FIRST(S) should not contain epsilon")
	}
	if !containsExactly(terms, sym["a"], sym["b"]) {
		t.Errorf("FIRST(S) = %v, want {a, b}", terms)
	}

	terms, hasEps = g.First(sym["A"])
	if !hasEps {
		t.Error("FIRST(A) should contain epsilon")
	}
	if !containsExactly(terms, sym["a"]) {
		t.Errorf("FIRST(A) = %v, want {a}", terms)
	}
}

func TestFollow(t *testing.T) {
	g, sym := buildTestGrammar(t)

	terms, hasEOF := g.Follow(sym["S"])
	if !hasEOF {
		t.Error("FOLLOW(S) should contain $ since S is the start symbol")
	}
	if len(terms) != 0 {
		t.Errorf("FOLLOW(S) = %v, want empty", terms)
	}

	terms, hasEOF = g.Follow(sym["A"])
	if hasEOF {
		t.Error("FOLLOW(A) should not contain $")
	}
	if !containsExactly(terms, sym["b"]) {
		t.Errorf("FOLLOW(A) = %v, want {b}", terms)
	}
}

func TestFirstOfSequence(t *testing.T) {
	g, sym := buildTestGrammar(t)

	terms, hasEps := g.FirstOfSequence([]Symbol{sym["A"], sym["B"]})
	if hasEps {
		t.Error("FIRST(A B) should not contain epsilon because B is not nullable")
	}
	if !containsExactly(terms, sym["a"], sym["b"]) {
		t.Errorf("FIRST(A B) = %v, want {a, b}", terms)
	}

	terms, hasEps = g.FirstOfSequence(nil)
	if !hasEps {
		t.Error("FIRST of an empty sequence should contain epsilon")
	}
	if len(terms) != 0 {
		t.Errorf("FIRST of an empty sequence = %v, want empty", terms)
	}
}

func TestSetsAreCachedUntilNextMutation(t *testing.T) {
	g, sym := buildTestGrammar(t)

	_ = g.IsNullable(sym["S"])
	if g.sets == nil {
		t.Fatal("ensureSets should have populated the cache on first read")
	}
	cached := g.sets

	if _, err := g.AddProduction(sym["B"], []Symbol{sym["b"], sym["b"]}); err != nil {
		t.Fatal(err)
	}
	if g.sets != nil {
		t.Fatal("AddProduction should invalidate the cached sets")
	}

	_ = g.IsNullable(sym["S"])
	if g.sets == cached {
		t.Fatal("sets should have been recomputed, not reused, after a mutation")
	}
}

func containsExactly(got []Symbol, want ...Symbol) bool {
	if len(got) != len(want) {
		return false
	}
	set := map[Symbol]struct{}{}
	for _, s := range got {
		set[s] = struct{}{}
	}
	for _, s := range want {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
