package grammar

import "testing"

func TestAddProductionRejectsInvalidLHS(t *testing.T) {
	g := NewGrammar()
	term := g.InternTerminal("id", TokenKind(1))

	if _, err := g.AddProduction(term, nil); err == nil {
		t.Fatal("expected an error adding a production whose LHS is a terminal")
	}
	if _, err := g.AddProduction(SymbolNil, nil); err == nil {
		t.Fatal("expected an error adding a production whose LHS is the nil symbol")
	}
}

func TestAddProductionRejectsInvalidRHS(t *testing.T) {
	g := NewGrammar()
	s := g.InternNonterminal("S")

	if _, err := g.AddProduction(s, []Symbol{SymbolNil}); err == nil {
		t.Fatal("expected an error adding a production with a nil RHS symbol")
	}
	if _, err := g.AddProduction(s, []Symbol{g.EndOfInput()}); err == nil {
		t.Fatal("expected an error adding a production whose RHS contains $")
	}
}

func TestAugmentIsIdempotentAndFreezesTheGrammar(t *testing.T) {
	g := NewGrammar()
	s := g.InternNonterminal("S")
	id := g.InternTerminal("id", TokenKind(1))
	if _, err := g.AddProduction(s, []Symbol{id}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetStart(s); err != nil {
		t.Fatal(err)
	}

	if err := g.Augment(); err != nil {
		t.Fatal(err)
	}
	if !g.IsFrozen() {
		t.Fatal("Augment should freeze the grammar")
	}
	aug1 := g.AugmentedStartSymbol()

	if err := g.Augment(); err != nil {
		t.Fatalf("a second Augment call should be a no-op, got error: %v", err)
	}
	if g.AugmentedStartSymbol() != aug1 {
		t.Fatal("a second Augment call should not replace the augmented start symbol")
	}

	if _, err := g.AddProduction(s, []Symbol{id, id}); err == nil {
		t.Fatal("expected AddProduction to reject mutation of a frozen grammar")
	}
	if err := g.SetStart(s); err == nil {
		t.Fatal("expected SetStart to reject mutation of a frozen grammar")
	}
}

func TestAugmentRejectsAMissingStartSymbol(t *testing.T) {
	g := NewGrammar()
	g.InternNonterminal("S")

	if err := g.Augment(); err == nil {
		t.Fatal("expected Augment to fail when no start symbol has been set")
	}
}

func TestValidateReportsStructuralIssues(t *testing.T) {
	t.Run("no start symbol and no productions", func(t *testing.T) {
		g := NewGrammar()
		if issues := g.Validate(); len(issues) != 2 {
			t.Fatalf("Validate() returned %d issue(s), want 2: %v", len(issues), issues)
		}
	})

	t.Run("undefined nonterminal on some RHS", func(t *testing.T) {
		g := NewGrammar()
		s := g.InternNonterminal("S")
		undefined := g.InternNonterminal("Undefined")
		if _, err := g.AddProduction(s, []Symbol{undefined}); err != nil {
			t.Fatal(err)
		}
		if err := g.SetStart(s); err != nil {
			t.Fatal(err)
		}

		issues := g.Validate()
		if len(issues) != 1 {
			t.Fatalf("Validate() returned %d issue(s), want 1: %v", len(issues), issues)
		}
	})

	t.Run("a complete grammar has no issues", func(t *testing.T) {
		g := NewGrammar()
		s := g.InternNonterminal("S")
		id := g.InternTerminal("id", TokenKind(1))
		if _, err := g.AddProduction(s, []Symbol{id}); err != nil {
			t.Fatal(err)
		}
		if err := g.SetStart(s); err != nil {
			t.Fatal(err)
		}

		if issues := g.Validate(); len(issues) != 0 {
			t.Fatalf("Validate() returned %d issue(s), want 0: %v", len(issues), issues)
		}
	})
}

func TestProductionByNum(t *testing.T) {
	g := NewGrammar()
	s := g.InternNonterminal("S")
	id := g.InternTerminal("id", TokenKind(1))
	num, err := g.AddProduction(s, []Symbol{id})
	if err != nil {
		t.Fatal(err)
	}

	prod, ok := g.ProductionByNum(num)
	if !ok {
		t.Fatal("ProductionByNum did not find a production that was just added")
	}
	if prod.LHS != s {
		t.Errorf("ProductionByNum(%d).LHS = %v, want %v", num, prod.LHS, s)
	}
}
