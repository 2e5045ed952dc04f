package grammar

import (
	"fmt"
	"sort"

	errs "github.com/kalbhor/golalr/errors"
)

// ActionKind discriminates a table cell's Action, per spec.md §3.
type ActionKind string

const (
	ActionError  = ActionKind("")
	ActionShift  = ActionKind("shift")
	ActionReduce = ActionKind("reduce")
	ActionAccept = ActionKind("accept")
)

// Action is a single action/goto table cell's content. The zero value
// is ActionError, the default for any (state, terminal) pair not
// otherwise populated, per spec.md §3.
type Action struct {
	Kind       ActionKind
	NextState  StateNum // valid when Kind == ActionShift
	Production int      // valid when Kind == ActionReduce: production Num
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("s%d", a.NextState)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Production)
	case ActionAccept:
		return "acc"
	default:
		return "err"
	}
}

// Table is the immutable action/goto table built from an augmented
// Grammar, plus the list of conflicts found while building it
// (non-empty iff the grammar is not LALR(1)), per spec.md §3.
type Table struct {
	g *Grammar

	stateCount int

	// action and goto are dense, row-major: action[s*termWidth+col],
	// goto_[s*ntWidth+col], where col is the symbol's position in the
	// sorted Terminals()/Nonterminals() list (termCols/ntCols).
	action   []Action
	goto_    []int // -1 means absent
	termCols map[Symbol]int
	ntCols   map[Symbol]int
	termWidth, ntWidth int

	InitialState StateNum

	Conflicts []Conflict
}

// HasConflicts reports whether the grammar that produced t is not
// LALR(1).
func (t *Table) HasConflicts() bool {
	return len(t.Conflicts) > 0
}

// Action returns the table cell for (state, terminal).
func (t *Table) Action(state StateNum, terminal Symbol) Action {
	col, ok := t.termCols[terminal]
	if !ok {
		return Action{Kind: ActionError}
	}
	return t.action[int(state)*t.termWidth+col]
}

// Goto returns goto[state, nonterminal] and whether it is present.
func (t *Table) Goto(state StateNum, nonterminal Symbol) (StateNum, bool) {
	col, ok := t.ntCols[nonterminal]
	if !ok {
		return 0, false
	}
	v := t.goto_[int(state)*t.ntWidth+col]
	if v < 0 {
		return 0, false
	}
	return StateNum(v), true
}

func (t *Table) setAction(state StateNum, terminal Symbol, a Action) (existing Action, had bool) {
	col := t.termCols[terminal]
	idx := int(state)*t.termWidth + col
	existing = t.action[idx]
	if existing.Kind != ActionError {
		return existing, true
	}
	t.action[idx] = a
	return Action{}, false
}

func (t *Table) setGoto(state StateNum, nonterminal Symbol, target StateNum) {
	col := t.ntCols[nonterminal]
	t.goto_[int(state)*t.ntWidth+col] = int(target)
}

// ExpectedTerminals returns, sorted by Symbol value, every terminal for
// which action[state, ·] is not ActionError — used both
// by diagnostics and by the driver's UnexpectedToken report.
func (t *Table) ExpectedTerminals(state StateNum) []Symbol {
	var out []Symbol
	for term, col := range t.termCols {
		if t.action[int(state)*t.termWidth+col].Kind != ActionError {
			out = append(out, term)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StateCount returns the number of states in the automaton the table
// was built from.
func (t *Table) StateCount() int {
	return t.stateCount
}

// Grammar returns the augmented Grammar the table was built from, so a
// driver or diagnostics routine can look up Productions/Symbol names.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// BuildTable constructs the action/goto table for g, per spec.md §4.4.
// If g has not been augmented yet, BuildTable calls g.Augment first. If g is
// incomplete (no start symbol, no productions, or an undefined
// nonterminal referenced on some RHS), BuildTable fails with a
// GrammarIncomplete error rather than returning a table. If the grammar
// is not LALR(1), BuildTable still returns a usable table along with a
// non-empty conflict list and a GrammarHasConflicts error; callers that
// want to treat conflicts as fatal can check the returned error's Kind.
func BuildTable(g *Grammar) (*Table, error) {
	if !g.IsFrozen() {
		if err := g.Augment(); err != nil {
			return nil, errs.Wrap(errs.GrammarIncomplete, err, "cannot build a table for an incomplete grammar")
		}
	}
	if issues := g.Validate(); len(issues) > 0 {
		return nil, errs.Wrap(errs.GrammarIncomplete, issues[0], "grammar is incomplete (%d issue(s))", len(issues))
	}

	lr0, err := buildLR0Automaton(g.prods, g.augStart)
	if err != nil {
		return nil, errs.Wrap(errs.GrammarIncomplete, err, "failed to build the LR(0) automaton")
	}

	lalr1 := buildLALR1Automaton(lr0, g.prods, g)

	t := newTable(g, lr0)

	for _, kID := range lr0.order {
		state := lr0.states[kID]

		emitShiftAndGoto(t, g, lr0, state)
		emitReduceAndAccept(t, g, lr0, lalr1, state)
	}

	if t.HasConflicts() {
		return t, errs.New(errs.GrammarHasConflicts, "grammar has %d conflict(s)", len(t.Conflicts))
	}
	return t, nil
}

func newTable(g *Grammar, lr0 *lr0Automaton) *Table {
	terms := g.Terminals()
	nts := g.Nonterminals()

	termCols := make(map[Symbol]int, len(terms))
	for i, s := range terms {
		termCols[s] = i
	}
	ntCols := make(map[Symbol]int, len(nts))
	for i, s := range nts {
		ntCols[s] = i
	}

	n := lr0.stateCount()
	goto_ := make([]int, n*len(nts))
	for i := range goto_ {
		goto_[i] = -1
	}

	return &Table{
		g:            g,
		stateCount:   n,
		action:       make([]Action, n*len(terms)),
		goto_:        goto_,
		termCols:     termCols,
		ntCols:       ntCols,
		termWidth:    len(terms),
		ntWidth:      len(nts),
		InitialState: lr0.states[lr0.initialState].num,
	}
}

func emitShiftAndGoto(t *Table, g *Grammar, lr0 *lr0Automaton, state *lr0State) {
	syms := make([]Symbol, 0, len(state.next))
	for sym := range state.next {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

	for _, sym := range syms {
		targetK := state.next[sym]
		target := lr0.states[targetK]
		if sym.IsTerminal() {
			existing, had := t.setAction(state.num, sym, Action{Kind: ActionShift, NextState: target.num})
			if had {
				recordConflict(t, state.num, sym, existing, Action{Kind: ActionShift, NextState: target.num})
			}
		} else {
			t.setGoto(state.num, sym, target.num)
		}
	}
}

func emitReduceAndAccept(t *Table, g *Grammar, lr0 *lr0Automaton, lalr1 *lalr1Automaton, state *lr0State) {
	prodIDs := make([]productionID, 0, len(state.reducible))
	for pid := range state.reducible {
		prodIDs = append(prodIDs, pid)
	}
	sort.Slice(prodIDs, func(i, j int) bool { return string(prodIDs[i][:]) < string(prodIDs[j][:]) })

	for _, pid := range prodIDs {
		prod, ok := g.prods.findByID(pid)
		if !ok {
			continue
		}

		if prod.LHS == g.augStart {
			existing, had := t.setAction(state.num, symbolEOF, Action{Kind: ActionAccept})
			if had {
				recordConflict(t, state.num, symbolEOF, existing, Action{Kind: ActionAccept})
			}
			continue
		}

		redItemID := genLR0ItemID(prod.id, len(prod.RHS))
		lookahead := lalr1.lookaheadOf(state.id, redItemID)

		terms := make([]Symbol, 0, len(lookahead))
		for s := range lookahead {
			terms = append(terms, s)
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })

		for _, a := range terms {
			act := Action{Kind: ActionReduce, Production: prod.Num}
			existing, had := t.setAction(state.num, a, act)
			if had {
				recordConflict(t, state.num, a, existing, act)
			}
		}
	}
}

func recordConflict(t *Table, state StateNum, sym Symbol, existing, new_ Action) {
	kind := ConflictShiftReduce
	if existing.Kind == ActionReduce && new_.Kind == ActionReduce {
		kind = ConflictReduceReduce
	}
	t.Conflicts = append(t.Conflicts, Conflict{
		Kind:     kind,
		State:    state,
		Terminal: sym,
		Existing: existing,
		New:      new_,
	})
}
