package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalbhor/golalr/example"
	"github.com/kalbhor/golalr/grammar"
)

var buildFlags = struct {
	conflictsOnly *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Build the LALR(1) table for the bundled expression grammar and print a report",
		Example: `  golalr build`,
		Args:    cobra.NoArgs,
		RunE:    runBuild,
	}
	buildFlags.conflictsOnly = cmd.Flags().Bool("conflicts-only", false, "print only the conflicts section")
	rootCmd.AddCommand(cmd)
}

// runBuild is grounded on the teacher's cmd/vartan/compile.go: build
// the table, report conflicts as a non-fatal condition, and exit
// nonzero only for a structural GrammarIncomplete error.
func runBuild(cmd *cobra.Command, args []string) error {
	g, err := example.ExpressionGrammar()
	if err != nil {
		return fmt.Errorf("building bundled grammar: %w", err)
	}

	table, err := grammar.BuildTable(g)
	if table == nil {
		return fmt.Errorf("building table: %w", err)
	}

	if *buildFlags.conflictsOnly {
		return grammar.PrintConflicts(os.Stdout, table)
	}

	if perr := grammar.PrintTable(os.Stdout, table); perr != nil {
		return perr
	}
	if table.HasConflicts() {
		fmt.Fprintln(os.Stdout)
		if cerr := grammar.PrintConflicts(os.Stdout, table); cerr != nil {
			return cerr
		}
	}

	return nil
}
