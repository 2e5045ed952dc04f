package grammar

// This file computes nullability, FIRST and FOLLOW as monotone
// fixed points over a productionSet, following the structure of the
// teacher's grammar/first.go and grammar/follow.go: an accumulator
// type per symbol, and an outer "iterate until a pass adds nothing"
// loop. The three fixed points run one after another in
// computeSymbolSets because golalr's Grammar recomputes them together,
// lazily, on first read after a mutation (spec.md §4.2).

// firstEntry is FIRST(X) plus whether ε ∈ FIRST(X).
type firstEntry struct {
	syms  map[Symbol]struct{}
	empty bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{syms: map[Symbol]struct{}{}}
}

func (e *firstEntry) add(sym Symbol) bool {
	if _, ok := e.syms[sym]; ok {
		return false
	}
	e.syms[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *firstEntry) mergeExceptEmpty(o *firstEntry) bool {
	changed := false
	for sym := range o.syms {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// followEntry is FOLLOW(A) plus whether $ ∈ FOLLOW(A).
type followEntry struct {
	syms map[Symbol]struct{}
	eof  bool
}

func newFollowEntry() *followEntry {
	return &followEntry{syms: map[Symbol]struct{}{}}
}

func (e *followEntry) add(sym Symbol) bool {
	if _, ok := e.syms[sym]; ok {
		return false
	}
	e.syms[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if e.eof {
		return false
	}
	e.eof = true
	return true
}

func (e *followEntry) mergeFirst(f *firstEntry) bool {
	changed := false
	for sym := range f.syms {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

func (e *followEntry) mergeFollow(o *followEntry) bool {
	changed := false
	for sym := range o.syms {
		if e.add(sym) {
			changed = true
		}
	}
	if o.eof && e.addEOF() {
		changed = true
	}
	return changed
}

// symbolSets bundles the nullable set with FIRST and FOLLOW, computed
// together over a frozen productionSet and start symbol.
type symbolSets struct {
	nullable map[Symbol]struct{}
	first    map[Symbol]*firstEntry
	follow   map[Symbol]*followEntry
}

func (s *symbolSets) isNullable(sym Symbol) bool {
	if sym.IsEpsilon() {
		return true
	}
	_, ok := s.nullable[sym]
	return ok
}

// firstOfSeq computes FIRST(X1...Xk) for a symbol sequence, per
// spec.md §4.2: the longest nullable prefix contributes its FIRST sets
// minus ε, plus FIRST of the first non-nullable symbol (if any), plus
// ε itself if the whole sequence is nullable. An empty sequence yields
// {ε}.
func (s *symbolSets) firstOfSeq(seq []Symbol) *firstEntry {
	e := newFirstEntry()
	for _, sym := range seq {
		if sym.IsTerminal() {
			e.add(sym)
			return e
		}
		fe := s.first[sym]
		if fe == nil {
			// sym is a nonterminal with no production at all; treat its
			// FIRST set as empty rather than panicking on a nil lookup.
			return e
		}
		e.mergeExceptEmpty(fe)
		if !fe.empty {
			return e
		}
	}
	e.addEmpty()
	return e
}

func computeSymbolSets(prods *productionSet, start Symbol) *symbolSets {
	nullable := computeNullable(prods)
	first := computeFirst(prods, nullable)
	follow := computeFollow(prods, first, start)
	return &symbolSets{nullable: nullable, first: first, follow: follow}
}

// computeNullable finds the smallest set N of nonterminals such that
// A ∈ N whenever some production A → X1...Xk has every Xi ∈ N (base
// case k = 0, i.e. A → ε).
func computeNullable(prods *productionSet) map[Symbol]struct{} {
	nullable := map[Symbol]struct{}{}
	for {
		changed := false
		for _, p := range prods.list() {
			if _, ok := nullable[p.LHS]; ok {
				continue
			}
			allNullable := true
			for _, sym := range p.RHS {
				if sym.IsTerminal() {
					allNullable = false
					break
				}
				if _, ok := nullable[sym]; !ok {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable[p.LHS] = struct{}{}
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return nullable
}

// referencedNonterminals collects every nonterminal that appears as a
// production's LHS or anywhere on some RHS, so a nonterminal that is
// used but never defined (grammar.Validate's job to reject, not this
// file's) still gets an allocated, empty entry instead of a nil map
// lookup further down.
func referencedNonterminals(prods *productionSet) map[Symbol]struct{} {
	nts := map[Symbol]struct{}{}
	for _, p := range prods.list() {
		nts[p.LHS] = struct{}{}
		for _, sym := range p.RHS {
			if sym.IsNonterminal() {
				nts[sym] = struct{}{}
			}
		}
	}
	return nts
}

func computeFirst(prods *productionSet, nullable map[Symbol]struct{}) map[Symbol]*firstEntry {
	first := map[Symbol]*firstEntry{}
	for nt := range referencedNonterminals(prods) {
		first[nt] = newFirstEntry()
	}

	for {
		changed := false
		for _, p := range prods.list() {
			e := first[p.LHS]
			if genProdFirst(first, nullable, e, p) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return first
}

func genProdFirst(first map[Symbol]*firstEntry, nullable map[Symbol]struct{}, acc *firstEntry, p *Production) bool {
	if p.IsEmpty() {
		return acc.addEmpty()
	}
	changed := false
	for _, sym := range p.RHS {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}
		if acc.mergeExceptEmpty(first[sym]) {
			changed = true
		}
		if _, ok := nullable[sym]; !ok {
			return changed
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed
}

func computeFollow(prods *productionSet, first map[Symbol]*firstEntry, start Symbol) map[Symbol]*followEntry {
	follow := map[Symbol]*followEntry{}
	for nt := range referencedNonterminals(prods) {
		follow[nt] = newFollowEntry()
	}
	if _, ok := follow[start]; !ok {
		follow[start] = newFollowEntry()
	}
	follow[start].addEOF()

	sets := &symbolSets{first: first}

	for {
		changed := false
		for _, p := range prods.list() {
			for i, sym := range p.RHS {
				if !sym.IsNonterminal() {
					continue
				}
				e := follow[sym]
				beta := p.RHS[i+1:]
				fb := sets.firstOfSeq(beta)
				if e.mergeFirst(fb) {
					changed = true
				}
				if fb.empty {
					if e.mergeFollow(follow[p.LHS]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	return follow
}
