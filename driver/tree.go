package driver

import (
	"fmt"
	"io"

	"github.com/kalbhor/golalr/grammar"
)

// ParseNode is a node of a parse tree, per spec.md §3: a Symbol, an
// optional literal lexeme (terminal nodes only), and an ordered list of
// children (nonterminal nodes only, left-to-right source order).
type ParseNode struct {
	Symbol   grammar.Symbol
	Lexeme   string // set only on terminal nodes
	Line     int    // set only on terminal nodes
	Column   int
	Children []*ParseNode
}

func newTerminalNode(sym grammar.Symbol, tok Token) *ParseNode {
	return &ParseNode{Symbol: sym, Lexeme: tok.Lexeme, Line: tok.Line, Column: tok.Column}
}

func newNonterminalNode(sym grammar.Symbol, children []*ParseNode) *ParseNode {
	return &ParseNode{Symbol: sym, Children: children}
}

// IsTerminal reports whether n is a terminal (leaf) node.
func (n *ParseNode) IsTerminal() bool {
	return len(n.Children) == 0 && n.Symbol.IsTerminal()
}

// Yield returns the left-to-right sequence of terminal lexemes in the
// subtree rooted at n — spec.md §8's "pre-order terminal sequence".
func (n *ParseNode) Yield() []string {
	var out []string
	var walk func(*ParseNode)
	walk = func(node *ParseNode) {
		if node == nil {
			return
		}
		if node.IsTerminal() {
			out = append(out, node.Lexeme)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// PrintTree writes an indented rendering of the subtree rooted at node,
// in the ASCII-art box-drawing style of the teacher's driver.PrintTree.
func PrintTree(w io.Writer, g *grammar.Grammar, node *ParseNode) {
	printTree(w, g, node, "", "")
}

func printTree(w io.Writer, g *grammar.Grammar, node *ParseNode, ruledLine, childPrefix string) {
	if node == nil {
		return
	}
	name, _ := g.SymbolName(node.Symbol)
	if node.IsTerminal() {
		fmt.Fprintf(w, "%s%s %q\n", ruledLine, name, node.Lexeme)
	} else {
		fmt.Fprintf(w, "%s%s\n", ruledLine, name)
	}

	n := len(node.Children)
	for i, child := range node.Children {
		var line, prefix string
		if i < n-1 {
			line, prefix = "├─ ", "│  "
		} else {
			line, prefix = "└─ ", "   "
		}
		printTree(w, g, child, childPrefix+line, childPrefix+prefix)
	}
}
