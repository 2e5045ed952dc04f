// Package example bundles the arithmetic-expression grammar used
// throughout spec.md §8's end-to-end scenarios (E → E + T | T;
// T → T * F | F; F → ( E ) | num) and a maleeni-backed lexer that feeds
// it from literal source text, for the CLI and for integration tests.
package example

import (
	"github.com/kalbhor/golalr/driver"
	"github.com/kalbhor/golalr/grammar"
)

// TokenKind values for the expression grammar's terminals. They are
// grammar.TokenKind under the hood; a real caller's lexer (maleeni-
// backed here) is responsible for tagging tokens with these.
const (
	TokNum grammar.TokenKind = iota + 1
	TokPlus
	TokStar
	TokLParen
	TokRParen
)

// ExpressionGrammar returns the augmented E/T/F grammar from spec.md
// §8, ready for grammar.BuildTable.
func ExpressionGrammar() (*grammar.Grammar, error) {
	g := grammar.NewGrammar()

	num := g.InternTerminal("num", TokNum)
	plus := g.InternTerminal("+", TokPlus)
	star := g.InternTerminal("*", TokStar)
	lparen := g.InternTerminal("(", TokLParen)
	rparen := g.InternTerminal(")", TokRParen)

	e := g.InternNonterminal("E")
	t := g.InternNonterminal("T")
	f := g.InternNonterminal("F")

	if _, err := g.AddProduction(e, []grammar.Symbol{e, plus, t}); err != nil {
		return nil, err
	}
	if _, err := g.AddProduction(e, []grammar.Symbol{t}); err != nil {
		return nil, err
	}
	if _, err := g.AddProduction(t, []grammar.Symbol{t, star, f}); err != nil {
		return nil, err
	}
	if _, err := g.AddProduction(t, []grammar.Symbol{f}); err != nil {
		return nil, err
	}
	if _, err := g.AddProduction(f, []grammar.Symbol{lparen, e, rparen}); err != nil {
		return nil, err
	}
	if _, err := g.AddProduction(f, []grammar.Symbol{num}); err != nil {
		return nil, err
	}

	if err := g.SetStart(e); err != nil {
		return nil, err
	}
	if err := g.Augment(); err != nil {
		return nil, err
	}
	return g, nil
}

// Tokenize turns src into a driver.TokenSlice by hand-scanning the
// expression grammar's five terminals plus whitespace. It is a
// deliberately tiny stand-in lexer for tests that don't want the
// maleeni build dependency (the CLI's "parse" command uses Lexer); Lexer in
// lexer.go is the maleeni-backed alternative spec.md §10 wires in.
func Tokenize(src string) []driver.Token {
	var toks []driver.Token
	line, col := 1, 1
	i := 0
	advance := func(n int) {
		for j := 0; j < n; j++ {
			if src[i+j] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += n
	}
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			advance(1)
		case c == '+':
			toks = append(toks, driver.Token{Kind: TokPlus, Lexeme: "+", Line: line, Column: col})
			advance(1)
		case c == '*':
			toks = append(toks, driver.Token{Kind: TokStar, Lexeme: "*", Line: line, Column: col})
			advance(1)
		case c == '(':
			toks = append(toks, driver.Token{Kind: TokLParen, Lexeme: "(", Line: line, Column: col})
			advance(1)
		case c == ')':
			toks = append(toks, driver.Token{Kind: TokRParen, Lexeme: ")", Line: line, Column: col})
			advance(1)
		case c >= '0' && c <= '9':
			start := i
			startCol := col
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				advance(1)
			}
			toks = append(toks, driver.Token{Kind: TokNum, Lexeme: src[start:i], Line: line, Column: startCol})
		default:
			advance(1)
		}
	}
	toks = append(toks, driver.Token{EOF: true, Line: line, Column: col})
	return toks
}
