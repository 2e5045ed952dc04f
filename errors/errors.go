// Package errs is the typed error taxonomy of spec.md §7: a small set
// of error Kinds returned as data from build_table and the parser
// driver, never raised as panics or compared against sentinel strings.
// Grounded on the teacher's error/error.go, which wraps a cause and
// carries positional detail behind a single Error() string.
package errs

import "fmt"

// Kind discriminates the error taxonomy of spec.md §7.
type Kind string

const (
	// GrammarIncomplete: missing start symbol, no productions, or an
	// undefined nonterminal referenced on some RHS. Fatal to table
	// construction.
	GrammarIncomplete = Kind("grammar_incomplete")
	// GrammarHasConflicts: build succeeded but the table has
	// shift/reduce or reduce/reduce conflicts. Non-fatal: the table is
	// still returned alongside this error.
	GrammarHasConflicts = Kind("grammar_has_conflicts")
	// UnknownToken: the current token's kind matches no Terminal.
	UnknownToken = Kind("unknown_token")
	// UnexpectedToken: action lookup returned Error for (state, terminal).
	UnexpectedToken = Kind("unexpected_token")
	// StackUnderflow: a Reduce needed more frames than the stack held.
	StackUnderflow = Kind("stack_underflow")
	// MissingGoto: goto[state, nonterminal] was absent after a reduce.
	MissingGoto = Kind("missing_goto")
	// InvalidAccept: the stack layout at Accept was not exactly
	// [initial, (_, S, tree)].
	InvalidAccept = Kind("invalid_accept")
)

// Error is a Kind plus positional and descriptive detail. It
// implements the standard error interface and supports errors.Is/As
// via Unwrap when Cause is set.
type Error struct {
	Kind    Kind
	Message string
	Line    int // 1-based; 0 if not applicable
	Column  int // 1-based; 0 if not applicable
	Cause   error
}

func (e *Error) Error() string {
	if e.Line > 0 || e.Column > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, errs.New(errs.GrammarIncomplete, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At is New with source coordinates attached, for driver-surfaced
// errors that must report "line L, column C" per spec.md §7.
func At(kind Kind, line, column int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind to an underlying cause, preserving it for
// errors.Unwrap/errors.As.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
