// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pr-stats",
	Short: "A CLI tool to report monthly pull request statistics.",
	Long: `pr-stats is a CLI tool that aggregates merged pull requests into monthly
windows and prints counts, averages and medians (size, lead time, time to merge)
for each month as CSV. Pull requests come from a GitHub search query or from a
local JSON log file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
