// Package driver implements the table-driven shift/reduce parser: the
// token-stream input contract and the stack machine that consumes it
// against a *grammar.Table to produce a parse tree, per spec.md §4.5.
package driver

import "github.com/kalbhor/golalr/grammar"

// Token is one unit of input, per spec.md §6. Kind must compare equal
// (with ==) to the grammar.TokenKind a Terminal was interned with for
// the driver to recognize it.
type Token struct {
	Kind   grammar.TokenKind
	Lexeme string
	Line   int // 1-based
	Column int // 1-based

	// EOF marks the end-of-input sentinel token. A TokenStream must
	// yield EOF tokens idempotently after the last real token, per
	// spec.md §6.
	EOF bool
}

// TokenStream is the abstraction the driver consumes, per spec.md §6.
// The core treats it as an opaque external collaborator; lexical
// analysis is out of scope (spec.md §1).
type TokenStream interface {
	NextToken() (Token, error)
}

// TokenSlice adapts a fixed slice of Tokens into a TokenStream, useful
// for tests and for any caller that has already tokenized its input.
// It yields an EOF token (positioned just past the last real token, or
// at 1/1 if the slice was empty) indefinitely once exhausted.
type TokenSlice struct {
	tokens []Token
	pos    int
	eof    Token
}

// NewTokenSlice wraps tokens in a TokenStream. If the last element of
// tokens is not already EOF, the stream ends with a synthesized EOF
// token on that element's line, at its column plus its lexeme length
// (or line 1, column 1 if tokens is empty).
func NewTokenSlice(tokens []Token) *TokenSlice {
	eof := Token{EOF: true, Line: 1, Column: 1}
	if n := len(tokens); n > 0 && !tokens[n-1].EOF {
		last := tokens[n-1]
		eof = Token{EOF: true, Line: last.Line, Column: last.Column + len(last.Lexeme)}
	} else if n > 0 {
		eof = tokens[n-1]
	}
	return &TokenSlice{tokens: tokens, eof: eof}
}

// NextToken implements TokenStream.
func (ts *TokenSlice) NextToken() (Token, error) {
	for ts.pos < len(ts.tokens) {
		tok := ts.tokens[ts.pos]
		ts.pos++
		if tok.EOF {
			ts.pos = len(ts.tokens) // idempotent EOF from here on
			return tok, nil
		}
		return tok, nil
	}
	return ts.eof, nil
}
