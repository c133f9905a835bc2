package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyDir string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trader",
	Short: "Regime-aware equity trading pipeline",
	Long: `Automated equity trading decision pipeline.

Scans a candidate universe, filters on liquidity, momentum, earnings
surprise and news sentiment, ranks the survivors, gates them by the
macro regime and submits sized orders to the brokerage.

Examples:
  go run ./cmd/trader api
  go run ./cmd/trader run momentum-spike
  go run ./cmd/trader sell
  go run ./cmd/trader regime`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyDir, "strategies", "config/strategies", "directory with strategy YAML files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
