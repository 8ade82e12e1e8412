// Command budgetctl calculates event budgets from a TOML file without a server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "budgetctl",
	Short:         "Event budget calculator",
	Long:          "Calculate per-participant budgets, totals and per-payer shares for an event described in TOML.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
