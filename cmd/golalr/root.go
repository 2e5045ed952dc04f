package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golalr",
	Short: "Build and drive an LALR(1) parsing table for the bundled expression grammar",
	Long: `golalr provides two features over the expression grammar bundled in
the example package:
- Builds the LALR(1) action/goto table and prints a readable report.
- Drives the table over stdin and prints the resulting parse tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Grounded on the teacher's
// cmd/vartan/root.go, down to the SilenceErrors/SilenceUsage settings.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
