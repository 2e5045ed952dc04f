package errs

import (
	"errors"
	"testing"
)

func TestErrorFormatsWithoutPosition(t *testing.T) {
	e := New(GrammarIncomplete, "no start symbol")
	want := "grammar_incomplete: no start symbol"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorFormatsWithPosition(t *testing.T) {
	e := At(UnexpectedToken, 3, 7, "unexpected token %q", "+")
	want := `unexpected_token at line 3, column 7: unexpected token "+"`
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsMatchesBySameKindOnly(t *testing.T) {
	a := New(StackUnderflow, "needed 2 frames, had 1")
	b := New(StackUnderflow, "a different message entirely")
	c := New(MissingGoto, "no goto for nonterminal")

	if !errors.Is(a, b) {
		t.Error("two *Error values of the same Kind should satisfy errors.Is regardless of message")
	}
	if errors.Is(a, c) {
		t.Error("*Error values of different Kinds should not satisfy errors.Is")
	}
}

func TestWrapPreservesTheCauseForUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(GrammarIncomplete, cause, "cannot build a table")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should see through Wrap to the underlying cause")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Error("Unwrap should return the exact cause passed to Wrap")
	}
}
