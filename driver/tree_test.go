package driver

import (
	"strings"
	"testing"

	"github.com/kalbhor/golalr/grammar"
)

func TestParseNodeYieldReturnsLeftToRightLexemes(t *testing.T) {
	g := grammar.NewGrammar()
	id := g.InternTerminal("id", grammar.TokenKind(1))
	plus := g.InternTerminal("+", grammar.TokenKind(2))
	e := g.InternNonterminal("E")

	leaf := func(sym grammar.Symbol, lexeme string) *ParseNode {
		return &ParseNode{Symbol: sym, Lexeme: lexeme}
	}

	tree := newNonterminalNode(e, []*ParseNode{
		leaf(id, "a"),
		leaf(plus, "+"),
		leaf(id, "b"),
	})

	got := tree.Yield()
	want := []string{"a", "+", "b"}
	if len(got) != len(want) {
		t.Fatalf("Yield() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Yield()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseNodeIsTerminal(t *testing.T) {
	g := grammar.NewGrammar()
	id := g.InternTerminal("id", grammar.TokenKind(1))
	e := g.InternNonterminal("E")

	leaf := &ParseNode{Symbol: id, Lexeme: "a"}
	branch := &ParseNode{Symbol: e, Children: []*ParseNode{leaf}}

	if !leaf.IsTerminal() {
		t.Error("a leaf node with a terminal symbol should report IsTerminal() == true")
	}
	if branch.IsTerminal() {
		t.Error("a node with children should report IsTerminal() == false")
	}
}

func TestPrintTreeRendersAllLeaves(t *testing.T) {
	g := grammar.NewGrammar()
	id := g.InternTerminal("id", grammar.TokenKind(1))
	plus := g.InternTerminal("+", grammar.TokenKind(2))
	e := g.InternNonterminal("E")

	tree := newNonterminalNode(e, []*ParseNode{
		{Symbol: id, Lexeme: "a"},
		{Symbol: plus, Lexeme: "+"},
		{Symbol: id, Lexeme: "b"},
	})

	var b strings.Builder
	PrintTree(&b, g, tree)

	out := b.String()
	for _, want := range []string{"E", `"a"`, `"+"`, `"b"`} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintTree output missing %q\noutput:\n%s", want, out)
		}
	}
}
