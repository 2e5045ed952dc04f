// Package grammar implements the grammar-analysis and LALR(1) table-
// construction engine: symbol interning, FIRST/FOLLOW computation, the
// LR(0) automaton, and DeRemer/Pennello-style LALR(1) lookahead
// propagation.
package grammar

import (
	"fmt"
)

// Grammar is a set of Symbols, an ordered list of Productions, and a
// designated start symbol, per spec.md §3. A Grammar is not safe for
// concurrent use while under construction; after Augment it must not be
// mutated further (AddProduction and SetStart return an error once
// frozen; a further Augment call is a no-op).
type Grammar struct {
	symTab   *symbolTable
	prods    *productionSet
	start    Symbol
	augStart Symbol
	frozen   bool

	sets *symbolSets // lazily (re)computed; nil after a mutation
}

// NewGrammar returns an empty Grammar with no start symbol and no
// productions.
func NewGrammar() *Grammar {
	return &Grammar{
		symTab: newSymbolTable(),
		prods:  newProductionSet(),
	}
}

// InternTerminal interns a Terminal symbol tagged with kind. Interning
// is by name: calling it twice with the same name returns the same
// Symbol regardless of kind given the second time.
func (g *Grammar) InternTerminal(name string, kind TokenKind) Symbol {
	return g.symTab.internTerminal(name, kind)
}

// InternNonterminal interns a Nonterminal symbol by name.
func (g *Grammar) InternNonterminal(name string) Symbol {
	return g.symTab.internNonterminal(name)
}

// Epsilon returns the grammar's unique ε symbol.
func (g *Grammar) Epsilon() Symbol {
	return symbolEpsilon
}

// EndOfInput returns the grammar's unique $ sentinel.
func (g *Grammar) EndOfInput() Symbol {
	return symbolEOF
}

// SymbolName returns the display name interned for sym, if any.
func (g *Grammar) SymbolName(sym Symbol) (string, bool) {
	return g.symTab.toName(sym)
}

// SymbolByName looks up a previously interned Symbol by its name.
func (g *Grammar) SymbolByName(name string) (Symbol, bool) {
	return g.symTab.toSymbol(name)
}

// TerminalForTokenKind returns the Terminal interned for kind, if any.
func (g *Grammar) TerminalForTokenKind(kind TokenKind) (Symbol, bool) {
	return g.symTab.symbolForTokenKind(kind)
}

// Terminals returns every interned Terminal, sorted by Symbol value.
// The result excludes ε but includes $.
func (g *Grammar) Terminals() []Symbol {
	return g.symTab.terminals()
}

// Nonterminals returns every interned Nonterminal, sorted by Symbol
// value.
func (g *Grammar) Nonterminals() []Symbol {
	return g.symTab.nonTerminals()
}

// AddProduction appends a production lhs → rhs, assigning it the next
// insertion-order index. A nil or empty rhs slice denotes an
// ε-production. It invalidates the FIRST/FOLLOW/nullable caches. A
// production structurally identical to one already added is not added
// again; the existing production's index is returned.
func (g *Grammar) AddProduction(lhs Symbol, rhs []Symbol) (int, error) {
	if g.frozen {
		return 0, fmt.Errorf("grammar: cannot add a production to a frozen (augmented) grammar")
	}
	if lhs.IsNil() || !lhs.IsNonterminal() {
		return 0, fmt.Errorf("grammar: LHS must be a non-nil nonterminal symbol, got %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return 0, fmt.Errorf("grammar: RHS symbol must be non-nil; LHS: %v", lhs)
		}
		if sym.IsEndOfInput() {
			return 0, fmt.Errorf("grammar: RHS must not contain the end-of-input symbol; LHS: %v", lhs)
		}
	}
	prod := newProduction(lhs, rhs)
	if !g.prods.append(prod) {
		existing, _ := g.prods.findByID(prod.id)
		return existing.Num, nil
	}
	g.sets = nil
	return prod.Num, nil
}

// SetStart designates s as the grammar's start symbol.
func (g *Grammar) SetStart(s Symbol) error {
	if g.frozen {
		return fmt.Errorf("grammar: cannot change the start symbol of a frozen (augmented) grammar")
	}
	if s.IsNil() || !s.IsNonterminal() {
		return fmt.Errorf("grammar: start symbol must be a non-nil nonterminal, got %v", s)
	}
	g.start = s
	g.sets = nil
	return nil
}

// StartSymbol returns the grammar's current start symbol: S before
// Augment, and S′ once Augment has replaced it.
func (g *Grammar) StartSymbol() Symbol {
	return g.start
}

// AugmentedStartSymbol returns S′, the fresh nonterminal Augment
// prepended S′ → S under, or SymbolNil if the grammar has not been
// augmented yet.
func (g *Grammar) AugmentedStartSymbol() Symbol {
	return g.augStart
}

// IsFrozen reports whether Augment has run; a frozen Grammar rejects
// further mutation.
func (g *Grammar) IsFrozen() bool {
	return g.frozen
}

// Augment creates a fresh nonterminal S′, prepends the production
// S′ → S as production index 0, and replaces the start symbol with S′.
// It is idempotent: calling it again once already augmented is a no-op.
// After Augment succeeds the Grammar is frozen (spec.md §9's "explicit
// frozen state").
func (g *Grammar) Augment() error {
	if g.frozen {
		return nil
	}
	if g.start.IsNil() {
		return fmt.Errorf("grammar: cannot augment a grammar with no start symbol")
	}

	augStart := g.symTab.registerStart(augmentedName(g, g.start))
	augProd := newProduction(augStart, []Symbol{g.start})

	// The augmenting production must occupy index 0: rebuild the
	// productionSet with augProd first, then the caller's productions
	// in their original relative order.
	rebuilt := newProductionSet()
	rebuilt.append(augProd)
	for _, p := range g.prods.list() {
		rebuilt.append(p)
	}

	g.prods = rebuilt
	g.augStart = augStart
	g.start = augStart
	g.frozen = true
	g.sets = nil
	return nil
}

func augmentedName(g *Grammar, start Symbol) string {
	name, _ := g.symTab.toName(start)
	return name + "'"
}

// Validate reports structural issues that would make table construction
// meaningless: a missing start symbol, no productions, or a nonterminal
// referenced on some RHS that is the LHS of no production. It does not
// mutate the grammar and may be called before or after Augment.
func (g *Grammar) Validate() []error {
	var issues []error

	if g.start.IsNil() {
		issues = append(issues, fmt.Errorf("grammar: no start symbol set"))
	}
	if len(g.prods.list()) == 0 {
		issues = append(issues, fmt.Errorf("grammar: no productions defined"))
	}

	defined := map[Symbol]struct{}{}
	for _, p := range g.prods.list() {
		defined[p.LHS] = struct{}{}
	}
	seen := map[Symbol]struct{}{}
	for _, p := range g.prods.list() {
		for _, sym := range p.RHS {
			if !sym.IsNonterminal() {
				continue
			}
			if _, ok := defined[sym]; ok {
				continue
			}
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			name, _ := g.symTab.toName(sym)
			issues = append(issues, fmt.Errorf("grammar: nonterminal %q is used but has no production", name))
		}
	}

	return issues
}

// ensureSets lazily (re)computes nullability/FIRST/FOLLOW, per
// spec.md §4.2's "recomputed lazily on first read after any production
// addition".
func (g *Grammar) ensureSets() *symbolSets {
	if g.sets == nil {
		start := g.start
		if start.IsNil() {
			start = g.augStart
		}
		g.sets = computeSymbolSets(g.prods, start)
	}
	return g.sets
}

// IsNullable reports whether sym ⇒* ε.
func (g *Grammar) IsNullable(sym Symbol) bool {
	return g.ensureSets().isNullable(sym)
}

// First returns FIRST(sym): the terminals (and possibly ε) that can
// begin a string derived from sym.
func (g *Grammar) First(sym Symbol) (terminals []Symbol, hasEpsilon bool) {
	e := g.ensureSets().first[sym]
	if e == nil {
		return nil, false
	}
	return setToSlice(e.syms), e.empty
}

// FirstOfSequence returns FIRST(X1...Xk) for a symbol sequence.
func (g *Grammar) FirstOfSequence(seq []Symbol) (terminals []Symbol, hasEpsilon bool) {
	e := g.ensureSets().firstOfSeq(seq)
	return setToSlice(e.syms), e.empty
}

// Follow returns FOLLOW(sym): the terminals (plus possibly $) that can
// immediately follow sym in some sentential form.
func (g *Grammar) Follow(sym Symbol) (terminals []Symbol, hasEOF bool) {
	e := g.ensureSets().follow[sym]
	if e == nil {
		return nil, false
	}
	return setToSlice(e.syms), e.eof
}

func setToSlice(m map[Symbol]struct{}) []Symbol {
	out := make([]Symbol, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out
}

// Productions returns every production in insertion order (index i has
// Num == i).
func (g *Grammar) Productions() []*Production {
	return g.prods.list()
}

// ProductionsFor returns the productions whose LHS is lhs.
func (g *Grammar) ProductionsFor(lhs Symbol) []*Production {
	return g.prods.findByLHS(lhs)
}

// ProductionByNum looks up a production by its stable insertion index.
func (g *Grammar) ProductionByNum(num int) (*Production, bool) {
	return g.prods.byNum(num)
}
