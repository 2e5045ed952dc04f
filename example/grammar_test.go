package example

import (
	"testing"

	"github.com/kalbhor/golalr/driver"
	"github.com/kalbhor/golalr/grammar"
)

func TestExpressionGrammarBuildsWithoutConflicts(t *testing.T) {
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}

	table, err := grammar.BuildTable(g)
	if err != nil {
		t.Fatalf("BuildTable reported an error for the bundled grammar: %v", err)
	}
	if table.HasConflicts() {
		t.Fatalf("the bundled expression grammar should be LALR(1); got %d conflict(s)", len(table.Conflicts))
	}
}

func TestTokenizeAndParseEndToEnd(t *testing.T) {
	g, err := ExpressionGrammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := grammar.BuildTable(g)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		src     string
		want    []string
	}{
		{caption: "a single number", src: "42", want: []string{"42"}},
		{caption: "addition", src: "1 + 2", want: []string{"1", "+", "2"}},
		{caption: "precedence of * over +", src: "1 + 2 * 3", want: []string{"1", "+", "2", "*", "3"}},
		{caption: "parenthesization", src: "(1 + 2) * 3", want: []string{"(", "1", "+", "2", ")", "*", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ts := driver.NewTokenSlice(Tokenize(tt.src))
			result := driver.Parse(table, g, ts)
			if result.Err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.src, result.Err)
			}
			got := result.Tree.Yield()
			if len(got) != len(tt.want) {
				t.Fatalf("Yield() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Yield()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeRejectsNothingButProducesEOF(t *testing.T) {
	toks := Tokenize("")
	if len(toks) != 1 || !toks[0].EOF {
		t.Fatalf("Tokenize(\"\") = %+v, want a single EOF token", toks)
	}
}
