package grammar

import (
	"fmt"
	"sort"
)

// TokenKind is the tag a token source uses to identify which Terminal a
// token matches. It is opaque to the core: any comparable value the
// token stream's collaborator (a lexer) chooses to produce works, as
// long as it interns the same TokenKind for the same lexical category
// every time.
type TokenKind int

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (k symbolKind) String() string {
	return string(k)
}

// symbolNum is the dense per-kind ordinal used to index action/goto table
// columns. It is distinct from the Symbol handle itself.
type symbolNum uint16

func (n symbolNum) Int() int {
	return int(n)
}

// Symbol is an interned grammar symbol: a Terminal (carrying a
// TokenKind), a Nonterminal, the unique Epsilon, or the unique
// EndOfInput sentinel ($). Symbol values are bit-packed handles; two
// Symbols from the same symbol table compare equal with == iff they
// were interned under the same name.
type Symbol uint16

const (
	symMaskKind       = uint16(0x8000) // terminal vs non-terminal
	symMaskTerminal   = uint16(0x8000)
	symMaskSpecial    = uint16(0x4000) // start symbol / eof
	symMaskEpsilon    = uint16(0x2000)
	symMaskNumberPart = uint16(0x1fff)

	symNumStart = symbolNum(1)
	symNumEOF   = symbolNum(1)

	nonTerminalNumMin = symbolNum(2)
	terminalNumMin    = symbolNum(2)
	symbolNumMax      = symbolNum(0x1fff)

	symbolNameEOF     = "$"
	symbolNameEpsilon = "ε"
)

// SymbolNil is the zero value of Symbol; it denotes "no symbol" and is
// never a member of a Grammar's symbol set.
const SymbolNil = Symbol(0)

// symbolEOF and symbolEpsilon are process-wide singletons: every Grammar
// shares the same bit pattern for $ and ε, matching spec.md §3 ("Epsilon
// and EndOfInput are unique singletons per grammar").
const (
	symbolEOF     = Symbol(symMaskTerminal | symMaskSpecial | uint16(symNumEOF))
	symbolEpsilon = Symbol(symMaskTerminal | symMaskEpsilon | 1)
)

func newSymbol(kind symbolKind, isStart bool, num symbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("grammar: symbol number %v exceeds limit %v", num, symbolNumMax)
	}
	kindMask := uint16(0)
	if kind == symbolKindTerminal {
		kindMask = symMaskTerminal
	}
	specialMask := uint16(0)
	if isStart {
		specialMask = symMaskSpecial
	}
	return Symbol(kindMask | specialMask | uint16(num)), nil
}

func (s Symbol) describe() (kind symbolKind, isStartOrEOF bool, num symbolNum) {
	kind = symbolKindNonTerminal
	if uint16(s)&symMaskKind != 0 {
		kind = symbolKindTerminal
	}
	isStartOrEOF = uint16(s)&symMaskSpecial != 0
	num = symbolNum(uint16(s) & symMaskNumberPart)
	return
}

// IsNil reports whether s is the zero Symbol.
func (s Symbol) IsNil() bool {
	return s == SymbolNil
}

// IsTerminal reports whether s is a Terminal, EndOfInput, or Epsilon —
// i.e. anything that is not a Nonterminal.
func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindTerminal
}

// IsNonterminal reports whether s is a Nonterminal symbol.
func (s Symbol) IsNonterminal() bool {
	return !s.IsNil() && !s.IsTerminal()
}

// IsStart reports whether s is a grammar's augmented start symbol S′
// (the one registerStart creates); the original start symbol S does
// not carry this mark.
func (s Symbol) IsStart() bool {
	if s.IsNil() || s.IsTerminal() {
		return false
	}
	_, special, _ := s.describe()
	return special
}

// IsEndOfInput reports whether s is the $ sentinel.
func (s Symbol) IsEndOfInput() bool {
	return s == symbolEOF
}

// IsEpsilon reports whether s is the ε symbol.
func (s Symbol) IsEpsilon() bool {
	return s == symbolEpsilon
}

func (s Symbol) num() symbolNum {
	_, _, num := s.describe()
	return num
}

// symbolTable interns Symbols by name alone (terminals and nonterminals
// share one namespace; a repeated name returns the first Symbol, with
// its original kind and TokenKind) and tracks display names and
// token-kind tags.
type symbolTable struct {
	text2Sym map[string]Symbol
	sym2Text map[Symbol]string
	sym2Tok  map[Symbol]TokenKind
	tok2Sym  map[TokenKind]Symbol

	nonTermNames []string // indexed by symbolNum
	termNames    []string // indexed by symbolNum

	nonTermNum symbolNum
	termNum    symbolNum

	startSym Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		text2Sym: map[string]Symbol{
			symbolNameEOF:     symbolEOF,
			symbolNameEpsilon: symbolEpsilon,
		},
		sym2Text: map[Symbol]string{
			symbolEOF:     symbolNameEOF,
			symbolEpsilon: symbolNameEpsilon,
		},
		sym2Tok: map[Symbol]TokenKind{},
		tok2Sym: map[TokenKind]Symbol{},
		termNames: []string{
			"",            // nil
			symbolNameEOF, // eof occupies num 1
		},
		nonTermNames: []string{
			"", // nil
			"", // start symbol occupies num 1, filled in by registerStart
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *symbolTable) internNonterminal(name string) Symbol {
	if sym, ok := t.text2Sym[name]; ok {
		return sym
	}
	sym, err := newSymbol(symbolKindNonTerminal, false, t.nonTermNum)
	if err != nil {
		panic(err) // exceeding symbolNumMax nonterminals is a pathological grammar, not a runtime condition.
	}
	t.nonTermNum++
	t.text2Sym[name] = sym
	t.sym2Text[sym] = name
	t.nonTermNames = append(t.nonTermNames, name)
	return sym
}

func (t *symbolTable) internTerminal(name string, kind TokenKind) Symbol {
	if sym, ok := t.text2Sym[name]; ok {
		return sym
	}
	sym, err := newSymbol(symbolKindTerminal, false, t.termNum)
	if err != nil {
		panic(err)
	}
	t.termNum++
	t.text2Sym[name] = sym
	t.sym2Text[sym] = name
	t.sym2Tok[sym] = kind
	t.tok2Sym[kind] = sym
	t.termNames = append(t.termNames, name)
	return sym
}

// registerStart assigns the distinguished start-symbol number to name,
// registering it as a nonterminal if it has not been interned yet.
func (t *symbolTable) registerStart(name string) Symbol {
	if sym, ok := t.text2Sym[name]; ok && sym.IsStart() {
		return sym
	}
	sym, err := newSymbol(symbolKindNonTerminal, true, symNumStart)
	if err != nil {
		panic(err)
	}
	t.text2Sym[name] = sym
	t.sym2Text[sym] = name
	t.nonTermNames[symNumStart] = name
	t.startSym = sym
	return sym
}

func (t *symbolTable) toSymbol(name string) (Symbol, bool) {
	sym, ok := t.text2Sym[name]
	return sym, ok
}

func (t *symbolTable) toName(sym Symbol) (string, bool) {
	name, ok := t.sym2Text[sym]
	return name, ok
}

func (t *symbolTable) symbolForTokenKind(kind TokenKind) (Symbol, bool) {
	sym, ok := t.tok2Sym[kind]
	return sym, ok
}

func (t *symbolTable) terminals() []Symbol {
	syms := make([]Symbol, 0, len(t.termNames))
	for sym := range t.sym2Text {
		if sym.IsTerminal() && !sym.IsEpsilon() {
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func (t *symbolTable) nonTerminals() []Symbol {
	syms := make([]Symbol, 0, len(t.nonTermNames))
	for sym := range t.sym2Text {
		if sym.IsNonterminal() {
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
