package grammar

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/emirpasic/gods/sets/treeset"
)

// symbolComparator gives treeset a total, deterministic order over
// Symbols so every diagnostic routine iterates states/terminals/
// nonterminals in the same order on every run, per spec.md §4.4's
// "iteration orders over sets must be stabilized" and §8's
// determinism property. Grounded on npillmayer-gorgo's lr/tables.go,
// which reaches for the same gods treeset for LR table bookkeeping.
func symbolComparator(a, b any) int {
	sa, sb := a.(Symbol), b.(Symbol)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func sortedSymbolSet(syms []Symbol) []Symbol {
	set := treeset.NewWith(symbolComparator)
	for _, s := range syms {
		set.Add(s)
	}
	out := make([]Symbol, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(Symbol))
	}
	return out
}

// FormatAction renders an Action the way the teacher's diagnostics do:
// s<n>, r<n>, acc, err.
func FormatAction(a Action) string {
	return a.String()
}

// FormatSymbol renders sym using its interned display name, falling
// back to a raw numeric form for an unrecognized symbol.
func FormatSymbol(g *Grammar, sym Symbol) string {
	if name, ok := g.SymbolName(sym); ok {
		return name
	}
	return fmt.Sprintf("<%d>", uint16(sym))
}

const tableTemplate = `# States: {{ .StateCount }}
# Conflicts: {{ .ConflictCount }}

{{ range .Rows }}## State {{ .State }}
{{ range .Actions }}  on {{ .Terminal }}: {{ .Action }}
{{ end }}{{ range .Gotos }}  goto {{ .Nonterminal }}: {{ .Target }}
{{ end }}
{{ end }}`

type actionRow struct {
	Terminal string
	Action   string
}

type gotoRow struct {
	Nonterminal string
	Target      StateNum
}

type stateRow struct {
	State   StateNum
	Actions []actionRow
	Gotos   []gotoRow
}

type tableView struct {
	StateCount    int
	ConflictCount int
	Rows          []stateRow
}

// PrintTable writes a deterministic, human-readable rendering of t to
// w: one section per state, action cells before goto cells, columns in
// sorted symbol order — matching spec.md §4.6's "rows per state,
// terminal columns then nonterminal columns, deterministic column
// order", rendered through text/template in the style of the
// teacher's cmd/vartan/show.go report templates.
func PrintTable(w io.Writer, t *Table) error {
	terminals := sortedSymbolSet(t.g.Terminals())
	nonterminals := sortedSymbolSet(t.g.Nonterminals())

	view := tableView{
		StateCount:    t.stateCount,
		ConflictCount: len(t.Conflicts),
	}
	for s := 0; s < t.stateCount; s++ {
		state := StateNum(s)
		row := stateRow{State: state}
		for _, term := range terminals {
			act := t.Action(state, term)
			if act.Kind == ActionError {
				continue
			}
			row.Actions = append(row.Actions, actionRow{
				Terminal: FormatSymbol(t.g, term),
				Action:   FormatAction(act),
			})
		}
		for _, nt := range nonterminals {
			target, ok := t.Goto(state, nt)
			if !ok {
				continue
			}
			row.Gotos = append(row.Gotos, gotoRow{
				Nonterminal: FormatSymbol(t.g, nt),
				Target:      target,
			})
		}
		view.Rows = append(view.Rows, row)
	}

	tmpl := template.Must(template.New("table").Parse(tableTemplate))
	return tmpl.Execute(w, view)
}

// PrintConflicts writes one line per conflict, in the
// "state N on terminal X: existing=…, new=…" format spec.md §4.6
// specifies, sorted by (state, terminal) for determinism.
func PrintConflicts(w io.Writer, t *Table) error {
	conflicts := append([]Conflict{}, t.Conflicts...)
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].State != conflicts[j].State {
			return conflicts[i].State < conflicts[j].State
		}
		return conflicts[i].Terminal < conflicts[j].Terminal
	})

	var b strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&b, "state %d on terminal %s: existing=%s, new=%s (%s)\n",
			c.State, FormatSymbol(t.g, c.Terminal), FormatAction(c.Existing), FormatAction(c.New), c.Kind)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ExpectedTerminalNames returns the sorted display names of the
// terminals action[state, ·] accepts — used by UnexpectedToken reports.
func ExpectedTerminalNames(g *Grammar, t *Table, state StateNum) []string {
	syms := t.ExpectedTerminals(state)
	names := make([]string, 0, len(syms))
	for _, s := range syms {
		names = append(names, FormatSymbol(g, s))
	}
	return names
}
