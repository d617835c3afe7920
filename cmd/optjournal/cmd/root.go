package cmd

import (
	"github.com/spf13/cobra"

	"optjournal/config"
	"optjournal/journal"
)

var (
	cfgPath string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "optjournal",
	Short: "A personal journal for option and equity trades",
	Long: `Optjournal records option and equity trades into a relational store and
retrieves open positions and closed-trade history for review.

Write commands:
  open              - Open a new options position
  close             - Close an open position
  adjust            - Record a structural adjustment to an open position
  trade-underlying  - Record an outright equity trade

Read commands:
  list              - Show open positions
  closed            - Show closed-trade history
  history           - Show one position and its adjustments
  export            - Export closed trades to CSV

The store is selected by the DATABASE_URL connection string: a postgres://
URL uses Postgres, anything else is a SQLite file path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default ./.env when present)")
}

// openStore resolves configuration and opens the record store for the
// duration of one command. Callers defer Close.
func openStore(cmd *cobra.Command) (journal.Store, error) {
	cfg, err := config.Load(cfgPath, envFile)
	if err != nil {
		return nil, err
	}
	return journal.Open(cmd.Context(), cfg.DatabaseURL)
}
