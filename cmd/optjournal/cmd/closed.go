package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optjournal/journal"
	"optjournal/render"
)

var closedCmd = &cobra.Command{
	Use:   "closed",
	Short: "Show closed-trade history",
	Long: `Show the closed-trade history: one row per closing trade, joined with
its originating position. With --org, each trade is emitted as an Org-mode
block with a PROPERTIES drawer and review placeholders.`,
	Args: cobra.NoArgs,
	RunE: runClosed,
}

var (
	closedPlain bool
	closedOrg   bool
)

func init() {
	rootCmd.AddCommand(closedCmd)

	closedCmd.Flags().BoolVar(&closedPlain, "plain", false, "print raw markdown without terminal styling")
	closedCmd.Flags().BoolVar(&closedOrg, "org", false, "emit Org-mode blocks instead of a table")
}

func runClosed(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := store.ClosedTrades(cmd.Context())
	if err != nil {
		return err
	}

	if closedOrg {
		fmt.Println(journal.FormatClosedTradesOrg(trades))
		return nil
	}
	return printMarkdown(render.ClosedTradesMarkdown(trades), closedPlain)
}
