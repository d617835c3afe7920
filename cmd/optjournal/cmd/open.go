package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"optjournal/journal"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a new options position",
	Long: `Record the opening of an options position with a market snapshot.

Strikes and the optional option_types/quantities are slash-delimited and
parallel, one entry per leg:

  optjournal open --underlying spy --underlying-price 440 --iv-rank 30 \
    --strategy "iron condor" --quantity -1 --expiration 2021-09-17 \
    --strikes 400/410/440/450 --option-types P/P/C/C --premium 1.25 --margin 500`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

var (
	openUnderlying       string
	openUnderlyingPrice  float64
	openIVRank           float64
	openStrategy         string
	openQuantity         int
	openExpiration       string
	openStrikes          string
	openPremium          float64
	openMargin           float64
	openTimestamp        string
	openSecondExpiration string
	openOptionTypes      string
	openQuantities       string
	openNotes            string
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVar(&openUnderlying, "underlying", "", "underlying symbol (upper-cased, max 5 characters)")
	openCmd.Flags().Float64Var(&openUnderlyingPrice, "underlying-price", 0, "underlying price at open")
	openCmd.Flags().Float64Var(&openIVRank, "iv-rank", 0, "IV rank at open")
	openCmd.Flags().StringVar(&openStrategy, "strategy", "", "strategy name (upper-cased)")
	openCmd.Flags().IntVar(&openQuantity, "quantity", 0, "signed quantity; negative for short")
	openCmd.Flags().StringVar(&openExpiration, "expiration", "", "expiration date, format 2021-09-17")
	openCmd.Flags().StringVar(&openStrikes, "strikes", "", "strikes, format 70/80 or 400/410/440/450")
	openCmd.Flags().Float64Var(&openPremium, "premium", 0, "premium received (positive) or paid (negative)")
	openCmd.Flags().Float64Var(&openMargin, "margin", 0, "margin requirement")
	openCmd.Flags().StringVar(&openTimestamp, "timestamp", "", "entry time, format 2021-08-16 17:30:50 (default now)")
	openCmd.Flags().StringVar(&openSecondExpiration, "second-expiration", "", "second expiration for calendars/diagonals, format 2021-09-17")
	openCmd.Flags().StringVar(&openOptionTypes, "option-types", "", "per-leg option types, format P/C")
	openCmd.Flags().StringVar(&openQuantities, "quantities", "", "per-leg signed quantities, format -1/-1 or +1/-1/-1/+1")
	openCmd.Flags().StringVar(&openNotes, "notes", "", "free-form notes")

	for _, flag := range []string{
		"underlying", "underlying-price", "iv-rank", "strategy", "quantity",
		"expiration", "strikes", "premium", "margin",
	} {
		_ = openCmd.MarkFlagRequired(flag)
	}
}

func runOpen(cmd *cobra.Command, args []string) error {
	underlying, err := journal.NormalizeSymbol("underlying", openUnderlying)
	if err != nil {
		return err
	}
	expiration, err := journal.ParseDate("expiration", openExpiration)
	if err != nil {
		return err
	}
	strikes, err := journal.ParseStrikes("strikes", openStrikes)
	if err != nil {
		return err
	}
	timestamp, err := timestampOrNow(openTimestamp)
	if err != nil {
		return err
	}

	var secondExpiration *time.Time
	if openSecondExpiration != "" {
		d, err := journal.ParseDate("second_expiration", openSecondExpiration)
		if err != nil {
			return err
		}
		secondExpiration = &d
	}
	var optionTypes []string
	if openOptionTypes != "" {
		if optionTypes, err = journal.ParseOptionTypes("option_types", openOptionTypes); err != nil {
			return err
		}
	}
	var quantities []int
	if openQuantities != "" {
		if quantities, err = journal.ParseQuantities("quantities", openQuantities); err != nil {
			return err
		}
	}

	margin := openMargin
	p := journal.Position{
		Timestamp:        timestamp,
		Underlying:       underlying,
		UnderlyingPrice:  openUnderlyingPrice,
		IVRank:           openIVRank,
		Strategy:         journal.NormalizeStrategy(openStrategy),
		Quantity:         openQuantity,
		Expiration:       expiration,
		Strikes:          strikes,
		Premium:          openPremium,
		Margin:           &margin,
		SecondExpiration: secondExpiration,
		OptionTypes:      optionTypes,
		Quantities:       quantities,
		Notes:            openNotes,
	}
	if err := p.Validate(); err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.OpenPosition(cmd.Context(), p)
	if err != nil {
		return err
	}

	fmt.Printf("Position on %s has been added, thank you! (id %d)\n", underlying, id)
	return nil
}
