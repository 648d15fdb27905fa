// Package main implements the envdiff CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"envdiff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "envdiff",
	Short: "Semantic diff between two symbol-database snapshots",
	Long:  `envdiff compares two snapshots of a compiled program's symbol database and reports what changed: additions, removals, renames, moves, type/value changes, metadata and import-graph changes.`,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("trace", "", "trace output path ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
}

func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
