package driver

import (
	errs "github.com/kalbhor/golalr/errors"
	"github.com/kalbhor/golalr/grammar"
)

// frame is one entry of the driver's runtime stack, per spec.md §4.5:
// a state id plus the Symbol and ParseNode shifted or reduced onto it
// (both nil/zero for the initial frame).
type frame struct {
	state grammar.StateNum
	sym   grammar.Symbol
	node  *ParseNode
}

// ParseResult is the outcome of a Parse call, per spec.md §6: either a
// Tree on success, or an Err describing the failure.
type ParseResult struct {
	Tree *ParseNode
	Err  error
}

// Parse drives table against ts to recognize a token stream and
// produce a parse tree, per spec.md §4.5. gram is the augmented
// Grammar table was built from; it is used for production lookup and
// parse-tree labeling. Parse is single-shot: it performs no retries and
// discards its partial tree on failure.
func Parse(table *grammar.Table, gram *grammar.Grammar, ts TokenStream) ParseResult {
	stack := []frame{{state: table.InitialState}}

	tok, err := ts.NextToken()
	if err != nil {
		return ParseResult{Err: err}
	}

	for {
		top := stack[len(stack)-1]

		term, ok := terminalFor(gram, tok)
		if !ok {
			return ParseResult{Err: errs.At(errs.UnknownToken, tok.Line, tok.Column,
				"no terminal matches token kind %v (lexeme %q)", tok.Kind, tok.Lexeme)}
		}

		act := table.Action(top.state, term)

		switch act.Kind {
		case grammar.ActionShift:
			node := newTerminalNode(term, tok)
			stack = append(stack, frame{state: act.NextState, sym: term, node: node})

			tok, err = ts.NextToken()
			if err != nil {
				return ParseResult{Err: err}
			}

		case grammar.ActionReduce:
			prod, ok := gram.ProductionByNum(act.Production)
			if !ok {
				return ParseResult{Err: errs.New(errs.MissingGoto, "reduce refers to unknown production %d", act.Production)}
			}

			k := len(prod.RHS)
			if len(stack) < k+1 {
				return ParseResult{Err: errs.New(errs.StackUnderflow,
					"state %v: reduce by production %d needs %d frame(s), stack has %d", top.state, act.Production, k, len(stack)-1)}
			}

			children := make([]*ParseNode, k)
			for i := 0; i < k; i++ {
				children[i] = stack[len(stack)-k+i].node
			}
			stack = stack[:len(stack)-k]

			newTop := stack[len(stack)-1]
			g, ok := table.Goto(newTop.state, prod.LHS)
			if !ok {
				return ParseResult{Err: errs.New(errs.MissingGoto,
					"state %v: no goto for nonterminal after reducing production %d", newTop.state, act.Production)}
			}

			node := newNonterminalNode(prod.LHS, children)
			stack = append(stack, frame{state: g, sym: prod.LHS, node: node})

		case grammar.ActionAccept:
			if len(stack) != 2 {
				return ParseResult{Err: errs.New(errs.InvalidAccept,
					"accept with stack depth %d, expected exactly [initial, (_, S, tree)]", len(stack))}
			}
			acceptFrame := stack[1]
			if acceptFrame.sym != unaugmentedStart(gram) {
				return ParseResult{Err: errs.New(errs.InvalidAccept,
					"accept frame labeled %v, expected the grammar's start symbol", acceptFrame.sym)}
			}
			return ParseResult{Tree: acceptFrame.node}

		default: // ActionError
			expected := ExpectedTerminalNamesForError(gram, table, top.state)
			return ParseResult{Err: errs.At(errs.UnexpectedToken, tok.Line, tok.Column,
				"unexpected token %q; expected: %s", tok.Lexeme, joinNames(expected))}
		}
	}
}

// terminalFor finds the Terminal Symbol matching tok's kind, or $ if
// tok is the EOF sentinel.
func terminalFor(gram *grammar.Grammar, tok Token) (grammar.Symbol, bool) {
	if tok.EOF {
		return gram.EndOfInput(), true
	}
	return gram.TerminalForTokenKind(tok.Kind)
}

// unaugmentedStart returns the grammar's original start symbol S, even
// though StartSymbol() returns S′ after Augment replaced it — the
// accept frame must be labeled S, not S′, per spec.md §4.5.
func unaugmentedStart(gram *grammar.Grammar) grammar.Symbol {
	aug := gram.AugmentedStartSymbol()
	for _, prod := range gram.Productions() {
		if prod.LHS == aug && len(prod.RHS) == 1 {
			return prod.RHS[0]
		}
	}
	return grammar.SymbolNil
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

// ExpectedTerminalNamesForError is the grammar.ExpectedTerminalNames
// helper re-exposed here so the driver doesn't need diagnostics.go's
// full import surface just to report "expected" sets.
func ExpectedTerminalNamesForError(gram *grammar.Grammar, table *grammar.Table, state grammar.StateNum) []string {
	return grammar.ExpectedTerminalNames(gram, table, state)
}
