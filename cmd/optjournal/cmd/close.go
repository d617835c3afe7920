package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"optjournal/journal"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close an open position",
	Long: `Record the closing trade for an open position. Closing is terminal:
a position that already carries a closing trade is rejected.

  optjournal close --position 1 --underlying-price 438 --iv-rank 25 --premium 0.40`,
	Args: cobra.NoArgs,
	RunE: runClose,
}

var (
	closePositionID      int64
	closeUnderlyingPrice float64
	closeIVRank          float64
	closePremium         float64
	closeTimestamp       string
	closeNotes           string
)

func init() {
	rootCmd.AddCommand(closeCmd)

	closeCmd.Flags().Int64Var(&closePositionID, "position", 0, "id of the position to close")
	closeCmd.Flags().Float64Var(&closeUnderlyingPrice, "underlying-price", 0, "underlying price at close")
	closeCmd.Flags().Float64Var(&closeIVRank, "iv-rank", 0, "IV rank at close")
	closeCmd.Flags().Float64Var(&closePremium, "premium", 0, "closing premium")
	closeCmd.Flags().StringVar(&closeTimestamp, "timestamp", "", "exit time, format 2021-08-16 17:30:50 (default now)")
	closeCmd.Flags().StringVar(&closeNotes, "notes", "", "free-form notes")

	for _, flag := range []string{"position", "underlying-price", "iv-rank", "premium"} {
		_ = closeCmd.MarkFlagRequired(flag)
	}
}

func runClose(cmd *cobra.Command, args []string) error {
	timestamp, err := timestampOrNow(closeTimestamp)
	if err != nil {
		return err
	}

	t := journal.ClosingTrade{
		PositionID:      closePositionID,
		Timestamp:       timestamp,
		UnderlyingPrice: closeUnderlyingPrice,
		IVRank:          closeIVRank,
		Premium:         closePremium,
		Notes:           closeNotes,
	}
	if err := t.Validate(); err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.CloseTrade(cmd.Context(), t); err != nil {
		return err
	}

	fmt.Printf("Trade %d has been closed, thank you!\n", closePositionID)
	return nil
}

// timestampOrNow applies the "now at command invocation" default.
func timestampOrNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return journal.ParseTimestamp("timestamp", s)
}
