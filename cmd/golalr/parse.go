package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalbhor/golalr/driver"
	"github.com/kalbhor/golalr/example"
	"github.com/kalbhor/golalr/grammar"
)

var parseFlags = struct {
	text *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse an arithmetic expression against the bundled grammar and print the parse tree",
		Example: `  echo '1 + 2 * 3' | golalr parse`,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}
	parseFlags.text = cmd.Flags().StringP("text", "t", "", "expression text (default: read stdin)")
	rootCmd.AddCommand(cmd)
}

// runParse is grounded on the teacher's cmd/vartan/parse.go: build the
// table, drive it over a lexer-backed TokenStream, and render whatever
// comes back (tree on success, error on failure).
func runParse(cmd *cobra.Command, args []string) error {
	src, err := inputText(*parseFlags.text)
	if err != nil {
		return err
	}

	g, err := example.ExpressionGrammar()
	if err != nil {
		return fmt.Errorf("building bundled grammar: %w", err)
	}

	table, err := grammar.BuildTable(g)
	if table == nil {
		return fmt.Errorf("building table: %w", err)
	}

	lx, err := example.NewLexer(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("constructing lexer: %w", err)
	}

	result := driver.Parse(table, g, lx)
	if result.Err != nil {
		return result.Err
	}

	driver.PrintTree(os.Stdout, g, result.Tree)
	return nil
}

func inputText(flagText string) (string, error) {
	if flagText != "" {
		return flagText, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
