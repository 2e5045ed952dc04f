package grammar

// ConflictKind classifies a Conflict per spec.md §4.4.
type ConflictKind string

const (
	ConflictShiftReduce  = ConflictKind("shift/reduce")
	ConflictReduceReduce = ConflictKind("reduce/reduce")
)

// Conflict describes two incompatible Actions assigned to the same
// (state, terminal) cell. The first assignment is kept in the table;
// New records what was discarded. Grounded on the shape of the
// original C++ generator's conflict records (parse_table.cpp) per
// SPEC_FULL.md §11: state, symbol, both competing actions.
type Conflict struct {
	Kind     ConflictKind
	State    StateNum
	Terminal Symbol
	Existing Action
	New      Action
}
