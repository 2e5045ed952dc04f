package grammar

// This file implements the DeRemer/Pennello-style LALR(1) lookahead
// construction spec.md §4.4 names as the preferred approach, grounded
// on the teacher's grammar/lalr1.go: kernel items are closed with a
// placeholder lookahead, every closure step that would hand a
// lookahead on to another (state, item) pair is instead recorded as a
// propagation link, and lookaheads are propagated to a fixed point
// over those links afterward. This is a full LALR(1) construction, not
// the FOLLOW-based SLR(1) approximation spec.md §4.4 also permits; see
// DESIGN.md's Open Question log.

// lrItem extends lr0Item with a per-(state) lookahead set. Unlike the
// teacher's lrItem, propagation links are tracked out-of-band in
// lalr1Builder rather than as a field, since Go value semantics make an
// item-owned back-pointer awkward; the link records carry the
// (kernelID, lr0ItemID) pair needed to find the item again.
type lrItem struct {
	*lr0Item
	lookahead map[Symbol]struct{}
}

type stateItem struct {
	state kernelID
	item  lr0ItemID
}

// lalr1Automaton augments an lr0Automaton with lookahead sets, indexed
// by (state, item).
type lalr1Automaton struct {
	*lr0Automaton
	lookaheads map[stateItem]map[Symbol]struct{}
}

func (a *lalr1Automaton) lookaheadOf(state kernelID, item lr0ItemID) map[Symbol]struct{} {
	return a.lookaheads[stateItem{state, item}]
}

func (a *lalr1Automaton) addLookahead(state kernelID, item lr0ItemID, syms map[Symbol]struct{}) bool {
	key := stateItem{state, item}
	set, ok := a.lookaheads[key]
	if !ok {
		set = map[Symbol]struct{}{}
		a.lookaheads[key] = set
	}
	changed := false
	for s := range syms {
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			changed = true
		}
	}
	return changed
}

type propagation struct {
	src  stateItem
	dest []stateItem
}

// buildLALR1Automaton assigns lookahead sets to every LR(0) item in the
// automaton, per spec.md §4.4.
func buildLALR1Automaton(lr0 *lr0Automaton, prods *productionSet, g *Grammar) *lalr1Automaton {
	automaton := &lalr1Automaton{
		lr0Automaton: lr0,
		lookaheads:   map[stateItem]map[Symbol]struct{}{},
	}

	initialState := lr0.states[lr0.initialState]
	initialItem := initialState.kernel.items[0] // the sole kernel item: S′ → •S
	automaton.addLookahead(initialState.id, initialItem.id, map[Symbol]struct{}{symbolEOF: {}})

	var props []*propagation
	for _, kID := range lr0.order {
		state := lr0.states[kID]
		for _, kItem := range state.kernel.items {
			items := closeWithLookahead(kItem, prods, g)

			var dests []stateItem
			for _, it := range items {
				if it.item.reducible {
					// A reducible item generated directly by this
					// closure contributes its concrete lookahead
					// symbols (if any were attached rather than
					// propagation-marked) straight onto the matching
					// item in this same state. If it IS the seed item
					// itself, this is a harmless self-loop.
					if len(it.lookahead) > 0 {
						automaton.addLookahead(state.id, it.item.id, it.lookahead)
					}
					if it.propagate {
						dests = append(dests, stateItem{state.id, it.item.id})
					}
					continue
				}

				nextKID, ok := state.next[it.item.dottedSymbol]
				if !ok {
					continue
				}
				nextState := lr0.states[nextKID]
				nextItemID := succItemID(prods, it.item)
				if nextItemID == (lr0ItemID{}) {
					continue
				}

				// Mirror the reducible branch above: a closed item can
				// carry concrete lookahead symbols (spontaneous, from
				// FIRST(β)) and be propagation-marked at the same time,
				// when β is nullable with a non-empty FIRST — apply both
				// independently rather than picking one.
				if len(it.lookahead) > 0 {
					automaton.addLookahead(nextState.id, nextItemID, it.lookahead)
				}
				if it.propagate {
					dests = append(dests, stateItem{nextKID, nextItemID})
				}
			}

			if len(dests) > 0 {
				props = append(props, &propagation{
					src:  stateItem{state.id, kItem.id},
					dest: dests,
				})
			}
		}
	}

	propagateLookaheads(automaton, props)

	return automaton
}

// closedItem is an item discovered while closing a kernel item with a
// placeholder lookahead: it carries concrete lookahead symbols
// (derived from FIRST of what follows the dot), or it is
// propagation-marked (it also receives the seed item's lookahead), or
// both at once.
type closedItem struct {
	item      *lr0Item
	lookahead map[Symbol]struct{}
	propagate bool
}

// closeWithLookahead computes, for a single kernel item, the closure
// that generates other items' lookaheads or marks them for
// propagation — the per-item half of DeRemer/Pennello's algorithm.
func closeWithLookahead(seed *lr0Item, prods *productionSet, g *Grammar) []*closedItem {
	results := []*closedItem{{item: seed, propagate: true}}
	type pending struct {
		item      *lr0Item
		lookahead map[Symbol]struct{}
		propagate bool
	}
	seen := map[lr0ItemID]map[Symbol]struct{}{}
	seenProp := map[lr0ItemID]struct{}{}

	queue := []pending{{item: seed, propagate: true}}
	for len(queue) > 0 {
		var next []pending
		for _, cur := range queue {
			if cur.item.dottedSymbol.IsNil() || cur.item.dottedSymbol.IsTerminal() {
				continue
			}
			p, ok := prods.findByID(cur.item.prod)
			if !ok {
				continue
			}

			beta := p.RHS[cur.item.dot+1:]
			fst, nullable := firstOfBetaWithLookahead(g, beta, cur.lookahead, cur.propagate)

			for _, prod := range prods.findByLHS(cur.item.dottedSymbol) {
				newItem := newLR0Item(prod, 0)

				if len(fst) > 0 {
					already := seen[newItem.id]
					fresh := map[Symbol]struct{}{}
					for s := range fst {
						if already == nil || !has(already, s) {
							fresh[s] = struct{}{}
						}
					}
					if len(fresh) > 0 {
						if seen[newItem.id] == nil {
							seen[newItem.id] = map[Symbol]struct{}{}
						}
						for s := range fresh {
							seen[newItem.id][s] = struct{}{}
						}
						results = append(results, &closedItem{item: newItem, lookahead: fresh})
						next = append(next, pending{item: newItem, lookahead: fresh})
					}
				}

				if nullable {
					if _, ok := seenProp[newItem.id]; !ok {
						seenProp[newItem.id] = struct{}{}
						results = append(results, &closedItem{item: newItem, propagate: true})
						next = append(next, pending{item: newItem, propagate: true})
					}
				}
			}
		}
		queue = next
	}

	return dedupeClosed(results)
}

func has(m map[Symbol]struct{}, s Symbol) bool {
	_, ok := m[s]
	return ok
}

// firstOfBetaWithLookahead computes FIRST(β) where β is what follows
// the dot in a production, folding in the seed's own lookahead symbols
// when β is nullable (fst.empty) — this is what turns
// "CLOSURE with a placeholder lookahead" into concrete terminal sets.
func firstOfBetaWithLookahead(g *Grammar, beta []Symbol, seedLookahead map[Symbol]struct{}, seedPropagates bool) (fst map[Symbol]struct{}, nullable bool) {
	terms, hasEps := g.FirstOfSequence(beta)
	fst = map[Symbol]struct{}{}
	for _, t := range terms {
		fst[t] = struct{}{}
	}
	if !hasEps {
		return fst, false
	}
	// β is nullable: whatever can follow the seed item also follows
	// here. If the seed itself only propagates (no concrete lookahead
	// yet), this item must propagate too.
	for s := range seedLookahead {
		fst[s] = struct{}{}
	}
	return fst, seedPropagates
}

func dedupeClosed(items []*closedItem) []*closedItem {
	byID := map[lr0ItemID]*closedItem{}
	var order []lr0ItemID
	for _, it := range items {
		existing, ok := byID[it.item.id]
		if !ok {
			copyItem := &closedItem{item: it.item, propagate: it.propagate, lookahead: map[Symbol]struct{}{}}
			for s := range it.lookahead {
				copyItem.lookahead[s] = struct{}{}
			}
			byID[it.item.id] = copyItem
			order = append(order, it.item.id)
			continue
		}
		for s := range it.lookahead {
			existing.lookahead[s] = struct{}{}
		}
		if it.propagate {
			existing.propagate = true
		}
	}
	out := make([]*closedItem, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

func succItemID(prods *productionSet, it *lr0Item) lr0ItemID {
	p, ok := prods.findByID(it.prod)
	if !ok {
		return lr0ItemID{}
	}
	succ := newLR0Item(p, it.dot+1)
	return succ.id
}

func propagateLookaheads(automaton *lalr1Automaton, props []*propagation) {
	for {
		changed := false
		for _, prop := range props {
			src := automaton.lookaheadOf(prop.src.state, prop.src.item)
			if len(src) == 0 {
				continue
			}
			for _, dest := range prop.dest {
				if automaton.addLookahead(dest.state, dest.item, src) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}
