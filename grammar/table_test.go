package grammar

import "testing"

func TestBuildTableInitialStateHasAShiftOnEveryLeadingTerminal(t *testing.T) {
	g, sym := buildAugmentedExprGrammar(t)
	table, err := BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}

	act := table.Action(table.InitialState, sym["id"])
	if act.Kind != ActionShift {
		t.Fatalf("Action(initial, id) = %v, want a shift", act)
	}

	if act := table.Action(table.InitialState, sym["+"]); act.Kind != ActionError {
		t.Fatalf("Action(initial, +) = %v, want error (nothing starts with +)", act)
	}
}

func TestBuildTableRejectsAnIncompleteGrammar(t *testing.T) {
	g := NewGrammar()
	// No start symbol, no productions: Validate should reject this
	// before table construction ever touches the LR(0)/LALR(1) layers.
	table, err := BuildTable(g)
	if err == nil {
		t.Fatal("expected BuildTable to fail for a grammar with no start symbol and no productions")
	}
	if table != nil {
		t.Fatal("BuildTable should return a nil table for a GrammarIncomplete failure")
	}
}

func TestExpectedTerminalsMatchesWhatActionAccepts(t *testing.T) {
	g, sym := buildAugmentedExprGrammar(t)
	table, err := BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}

	expected := table.ExpectedTerminals(table.InitialState)
	if !containsExactly(expected, sym["id"]) {
		t.Fatalf("ExpectedTerminals(initial) = %v, want {id}", expected)
	}
}

func TestGotoIsAbsentWhereNoTransitionExists(t *testing.T) {
	g, sym := buildAugmentedExprGrammar(t)
	table, err := BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := table.Goto(table.InitialState, sym["T"]); !ok {
		t.Fatal("expected a goto on T from the initial state")
	}
	// There is no state reachable from the initial state by T alone
	// that then has a further goto on T again.
	target, _ := table.Goto(table.InitialState, sym["T"])
	if _, ok := table.Goto(target, sym["T"]); ok {
		t.Fatal("did not expect a goto on T from a state reached by reducing to T")
	}
}
