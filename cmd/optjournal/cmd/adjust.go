package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"optjournal/journal"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Record a structural adjustment to an open position",
	Long: `Append an adjustment to an open position: rolled strikes, changed
expiration, resized legs. The snapshot fields are always recorded; at least
one structural field must change.

  optjournal adjust --position 1 --underlying-price 445 --iv-rank 35 \
    --premium 0.60 --strikes 410/420/440/450`,
	Args: cobra.NoArgs,
	RunE: runAdjust,
}

var (
	adjustPositionID       int64
	adjustUnderlyingPrice  float64
	adjustIVRank           float64
	adjustPremium          float64
	adjustStrikes          string
	adjustTimestamp        string
	adjustMargin           float64
	adjustExpiration       string
	adjustSecondExpiration string
	adjustOptionTypes      string
	adjustQuantities       string
	adjustNotes            string
)

func init() {
	rootCmd.AddCommand(adjustCmd)

	adjustCmd.Flags().Int64Var(&adjustPositionID, "position", 0, "id of the position to adjust")
	adjustCmd.Flags().Float64Var(&adjustUnderlyingPrice, "underlying-price", 0, "underlying price at adjustment")
	adjustCmd.Flags().Float64Var(&adjustIVRank, "iv-rank", 0, "IV rank at adjustment")
	adjustCmd.Flags().Float64Var(&adjustPremium, "premium", 0, "credit or debit from the adjustment trade")
	adjustCmd.Flags().StringVar(&adjustStrikes, "strikes", "", "new strikes, format 70/80")
	adjustCmd.Flags().StringVar(&adjustTimestamp, "timestamp", "", "adjustment time, format 2021-08-16 17:30:50 (default now)")
	adjustCmd.Flags().Float64Var(&adjustMargin, "margin", 0, "new margin requirement")
	adjustCmd.Flags().StringVar(&adjustExpiration, "expiration", "", "new expiration date, format 2021-09-17")
	adjustCmd.Flags().StringVar(&adjustSecondExpiration, "second-expiration", "", "new second expiration, format 2021-09-17")
	adjustCmd.Flags().StringVar(&adjustOptionTypes, "option-types", "", "new per-leg option types, format P/C")
	adjustCmd.Flags().StringVar(&adjustQuantities, "quantities", "", "new per-leg quantities, format -1/-1")
	adjustCmd.Flags().StringVar(&adjustNotes, "notes", "", "free-form notes")

	for _, flag := range []string{"position", "underlying-price", "iv-rank", "premium", "strikes"} {
		_ = adjustCmd.MarkFlagRequired(flag)
	}
}

func runAdjust(cmd *cobra.Command, args []string) error {
	timestamp, err := timestampOrNow(adjustTimestamp)
	if err != nil {
		return err
	}
	strikes, err := journal.ParseStrikes("strikes", adjustStrikes)
	if err != nil {
		return err
	}

	var expiration, secondExpiration *time.Time
	if adjustExpiration != "" {
		d, err := journal.ParseDate("expiration", adjustExpiration)
		if err != nil {
			return err
		}
		expiration = &d
	}
	if adjustSecondExpiration != "" {
		d, err := journal.ParseDate("second_expiration", adjustSecondExpiration)
		if err != nil {
			return err
		}
		secondExpiration = &d
	}
	var optionTypes []string
	if adjustOptionTypes != "" {
		if optionTypes, err = journal.ParseOptionTypes("option_types", adjustOptionTypes); err != nil {
			return err
		}
	}
	var quantities []int
	if adjustQuantities != "" {
		if quantities, err = journal.ParseQuantities("quantities", adjustQuantities); err != nil {
			return err
		}
	}
	var margin *float64
	if cmd.Flags().Changed("margin") {
		m := adjustMargin
		margin = &m
	}

	a := journal.Adjustment{
		PositionID:       adjustPositionID,
		Timestamp:        timestamp,
		UnderlyingPrice:  adjustUnderlyingPrice,
		IVRank:           adjustIVRank,
		OptionTypes:      optionTypes,
		Quantities:       quantities,
		Strikes:          strikes,
		Expiration:       expiration,
		SecondExpiration: secondExpiration,
		Margin:           margin,
		Premium:          adjustPremium,
		Notes:            adjustNotes,
	}
	if err := a.Validate(); err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.AdjustTrade(cmd.Context(), a); err != nil {
		return err
	}

	fmt.Printf("Position %d has been adjusted, thank you!\n", adjustPositionID)
	return nil
}
