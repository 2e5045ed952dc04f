package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/kalbhor/golalr/errors"
)

// lr0ItemID is a structural identity for an LR(0) item: the hash of its
// (production, dot) pair. Grounded on the teacher's
// grammar/lr0_item.go, which hashes the same pair for the same reason:
// sets of items need to dedupe and compare by value, not by pointer.
type lr0ItemID [32]byte

func genLR0ItemID(prod productionID, dot int) lr0ItemID {
	b := make([]byte, 0, 40)
	b = append(b, prod[:]...)
	var dotBytes [8]byte
	binary.LittleEndian.PutUint64(dotBytes[:], uint64(dot))
	b = append(b, dotBytes[:]...)
	return lr0ItemID(sha256.Sum256(b))
}

// lr0Item is a (production-index, dot) pair per spec.md §3. dot ranges
// over [0, len(RHS)]; the item is complete (reducible) iff dot ==
// len(RHS).
type lr0Item struct {
	id   lr0ItemID
	prod productionID

	dot          int
	dottedSymbol Symbol // Symbol at RHS[dot], or SymbolNil if complete

	initial   bool // the augmented item S′ → •S
	reducible bool // dot == len(RHS)
	kernel    bool // initial, or dot > 0
}

func newLR0Item(p *Production, dot int) *lr0Item {
	dottedSymbol := SymbolNil
	if dot < len(p.RHS) {
		dottedSymbol = p.RHS[dot]
	}
	return &lr0Item{
		id:           genLR0ItemID(p.id, dot),
		prod:         p.id,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		initial:      p.LHS.IsStart() && dot == 0,
		reducible:    dot == len(p.RHS),
		kernel:       (p.LHS.IsStart() && dot == 0) || dot > 0,
	}
}

// kernelID is a structural identity for a kernel (a deduplicated,
// sorted set of kernel items).
type kernelID [32]byte

type kernel struct {
	id    kernelID
	items []*lr0Item
}

func newKernel(items []*lr0Item) *kernel {
	dedup := map[lr0ItemID]*lr0Item{}
	for _, it := range items {
		dedup[it.id] = it
	}
	sorted := make([]*lr0Item, 0, len(dedup))
	for _, it := range dedup {
		sorted = append(sorted, it)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return string(sorted[i].id[:]) < string(sorted[j].id[:])
	})

	b := make([]byte, 0, 32*len(sorted))
	for _, it := range sorted {
		b = append(b, it.id[:]...)
	}
	return &kernel{
		id:    kernelID(sha256.Sum256(b)),
		items: sorted,
	}
}

// StateNum is a stable, BFS-assigned integer id for an LR(0)/LALR(1)
// state, per spec.md §3.
type StateNum int

// InitialStateNum is the id of the LR(0) automaton's initial state.
const InitialStateNum = StateNum(0)

type lr0State struct {
	*kernel
	num       StateNum
	next      map[Symbol]kernelID
	reducible map[productionID]struct{}
	// closureItems holds the full closure over the kernel (kernel
	// items plus every item the closure rule adds). LALR(1)
	// construction does not read it; closeWithLookahead recomputes
	// each kernel item's closure itself.
	closureItems []*lr0Item
}

type lr0Automaton struct {
	initialState kernelID
	states       map[kernelID]*lr0State
	// order lists kernelIDs in the BFS discovery order states were
	// assigned, so iteration by StateNum is deterministic without a
	// second sort (spec.md §4.3's "ids are deterministic across runs").
	order []kernelID
}

func (a *lr0Automaton) stateByNum(n StateNum) *lr0State {
	return a.states[a.order[n]]
}

func (a *lr0Automaton) stateCount() int {
	return len(a.order)
}

// buildLR0Automaton constructs the canonical collection of LR(0) item
// sets for an augmented grammar, by BFS from the closure of
// {(augmented-production, 0)}, per spec.md §4.3.
func buildLR0Automaton(prods *productionSet, augStart Symbol) (*lr0Automaton, error) {
	startProds := prods.findByLHS(augStart)
	if len(startProds) != 1 {
		return nil, errs.New(errs.GrammarIncomplete, "grammar must have exactly one augmenting production for its start symbol")
	}
	initialItem := newLR0Item(startProds[0], 0)
	initialKernel := newKernel([]*lr0Item{initialItem})

	automaton := &lr0Automaton{
		initialState: initialKernel.id,
		states:       map[kernelID]*lr0State{},
	}

	known := map[kernelID]struct{}{initialKernel.id: {}}
	queue := []*kernel{initialKernel}

	for len(queue) > 0 {
		var next []*kernel
		for _, k := range queue {
			state, neighbours := genStateAndNeighbours(k, prods)
			state.num = StateNum(len(automaton.order))
			automaton.states[state.id] = state
			automaton.order = append(automaton.order, state.id)

			for _, nk := range neighbours {
				if _, ok := known[nk.id]; ok {
					continue
				}
				known[nk.id] = struct{}{}
				next = append(next, nk)
			}
		}
		queue = next
	}

	return automaton, nil
}

func genStateAndNeighbours(k *kernel, prods *productionSet) (*lr0State, []*kernel) {
	closure := closureOf(k.items, prods)

	next := map[Symbol]kernelID{}
	byNext := map[Symbol][]*lr0Item{}
	for _, it := range closure {
		if it.dottedSymbol.IsNil() {
			continue
		}
		p, _ := prods.findByID(it.prod)
		succ := newLR0Item(p, it.dot+1)
		byNext[it.dottedSymbol] = append(byNext[it.dottedSymbol], succ)
	}

	syms := make([]Symbol, 0, len(byNext))
	for sym := range byNext {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

	var neighbours []*kernel
	for _, sym := range syms {
		nk := newKernel(byNext[sym])
		next[sym] = nk.id
		neighbours = append(neighbours, nk)
	}

	reducible := map[productionID]struct{}{}
	for _, it := range closure {
		if it.reducible {
			reducible[it.prod] = struct{}{}
		}
	}

	return &lr0State{
		kernel:       k,
		next:         next,
		reducible:    reducible,
		closureItems: closure,
	}, neighbours
}

// closureOf computes Closure(I) per spec.md §4.3: the smallest
// superset of I such that, for every item with the dot before a
// nonterminal B, every production B → γ contributes (B→γ, 0).
func closureOf(items []*lr0Item, prods *productionSet) []*lr0Item {
	all := append([]*lr0Item{}, items...)
	known := map[lr0ItemID]struct{}{}
	for _, it := range items {
		known[it.id] = struct{}{}
	}

	queue := append([]*lr0Item{}, items...)
	for len(queue) > 0 {
		var next []*lr0Item
		for _, it := range queue {
			if it.dottedSymbol.IsNil() || it.dottedSymbol.IsTerminal() {
				continue
			}
			for _, p := range prods.findByLHS(it.dottedSymbol) {
				newItem := newLR0Item(p, 0)
				if _, ok := known[newItem.id]; ok {
					continue
				}
				known[newItem.id] = struct{}{}
				all = append(all, newItem)
				next = append(next, newItem)
			}
		}
		queue = next
	}
	return all
}
