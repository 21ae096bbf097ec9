// Package main provides the entry point for the charfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charfang/charfang/cmd/charfang/commands"
	"github.com/charfang/charfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "charfang",
		Short: "Charfang - character-level git authorship statistics",
		Long: `Charfang attributes repository history to authors at character
granularity: modified lines are paired positionally within each hunk and
scored by Levenshtein edit distance, so a one-character fix no longer
weighs as much as a rewritten file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "charfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
