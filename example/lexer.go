package example

import (
	"fmt"
	"io"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/kalbhor/golalr/driver"
	"github.com/kalbhor/golalr/grammar"
)

// lexEntries is the maleeni lexical specification for the expression
// grammar's five terminals, in the same Kind/Pattern shape the
// teacher's own .vartan front end builds before calling mlcompiler.
var lexEntries = []*mlspec.LexEntry{
	{Kind: mlspec.LexKindName("num"), Pattern: mlspec.LexPattern(`[0-9]+`)},
	{Kind: mlspec.LexKindName("plus"), Pattern: mlspec.LexPattern(`\+`)},
	{Kind: mlspec.LexKindName("star"), Pattern: mlspec.LexPattern(`\*`)},
	{Kind: mlspec.LexKindName("lparen"), Pattern: mlspec.LexPattern(`\(`)},
	{Kind: mlspec.LexKindName("rparen"), Pattern: mlspec.LexPattern(`\)`)},
	{Kind: mlspec.LexKindName("ws"), Pattern: mlspec.LexPattern("[ \t\r\n]+")},
}

// kindToToken maps a maleeni lex kind name to the example package's
// grammar.TokenKind. It is written out by hand, so adding a terminal
// means editing both lexEntries above and this map.
var kindToToken = map[string]grammar.TokenKind{
	"num":    TokNum,
	"plus":   TokPlus,
	"star":   TokStar,
	"lparen": TokLParen,
	"rparen": TokRParen,
}

// Lexer is a driver.TokenStream backed by a compiled maleeni DFA lexer,
// the domain-stack wiring spec.md's ambient lexing boundary calls for:
// spec.md §1 puts lexical analysis out of scope for the core, but an
// example front end still needs a real one to drive end-to-end
// scenarios from literal source text rather than pre-built token
// slices. Grounded on the teacher's top-level driver/parser.go, which
// wraps maleeni's mldriver.Lexer the same way.
type Lexer struct {
	lx        *mldriver.Lexer
	kindNames []mlspec.LexKindName
}

// NewLexer compiles the bundled lexical specification and wraps src for
// reading. The lexical spec is compiled once per call; callers that
// tokenize many inputs should cache a *mlspec.CompiledLexSpec instead of
// calling NewLexer repeatedly with the same grammar.
func NewLexer(src io.Reader) (*Lexer, error) {
	compiled, err, cerrs := mlcompiler.Compile(&mlspec.LexSpec{Name: "golalr_example", Entries: lexEntries}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		return nil, fmt.Errorf("compiling example lexical spec: %w (%v)", err, cerrs)
	}

	lx, err := mldriver.NewLexer(mldriver.NewLexSpec(compiled), src)
	if err != nil {
		return nil, fmt.Errorf("constructing maleeni lexer: %w", err)
	}
	return &Lexer{lx: lx, kindNames: compiled.KindNames}, nil
}

// NextToken implements driver.TokenStream, translating maleeni's raw
// Token into the driver's Token shape and skipping whitespace. A kind
// ID of 0 marks an invalid token, per maleeni's convention (the
// teacher's own driver/parser.go relies on the same fact rather than
// an explicit Invalid field).
func (l *Lexer) NextToken() (driver.Token, error) {
	for {
		tok, err := l.lx.Next()
		if err != nil {
			return driver.Token{}, fmt.Errorf("lexing: %w", err)
		}
		if tok.EOF {
			return driver.Token{EOF: true, Line: tok.Row + 1, Column: tok.Col + 1}, nil
		}
		if tok.KindID == 0 {
			return driver.Token{}, fmt.Errorf("lexing: invalid token %q at line %d, column %d", string(tok.Lexeme), tok.Row+1, tok.Col+1)
		}

		name := string(l.kindNames[tok.KindID])
		kind, ok := kindToToken[name]
		if !ok {
			// The whitespace kind has no entry in kindToToken; any
			// other unmapped kind is a lexEntries bug.
			if name == "ws" {
				continue
			}
			return driver.Token{}, fmt.Errorf("lexing: unmapped token kind %q", name)
		}

		return driver.Token{
			Kind:   kind,
			Lexeme: string(tok.Lexeme),
			Line:   tok.Row + 1,
			Column: tok.Col + 1,
		}, nil
	}
}
