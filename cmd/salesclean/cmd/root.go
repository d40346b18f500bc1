package cmd

import (
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "salesclean",
	Short: "Clean and audit sales order exports",
	Long: `salesclean validates a sales order export, repairs what can be repaired
and writes a cleaned, projected table together with a diagnostics report.

Stages:
  deduplicate   - drop repeated order lines
  numeric       - count zero or negative amounts
  integrity     - recompute SALES from QUANTITYORDERED x PRICEEACH
  temporal      - parse ORDERDATE and cross-check YEAR_ID, MONTH_ID, QTR_ID
  completeness  - count missing values per column
  project       - normalize STATUS and keep the output columns

Settings come from environment variables (or a .env file); flags override them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")
}
