package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "league",
	Short: "Studio League - fantasy movie league scoring backend",
	Long: `Studio League Unified CLI

Weekly box office scoring for fantasy movie leagues: ownership ledger,
revenue aggregation, rankings and award bonuses.

Usage:
  go run ./cmd/league [command]

Examples:
  go run ./cmd/league api
  go run ./cmd/league migrate
  go run ./cmd/league compute --season 1 --week 0
  go run ./cmd/league scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
