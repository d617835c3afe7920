package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optjournal/journal"
)

var equityCmd = &cobra.Command{
	Use:   "trade-underlying",
	Short: "Record an outright equity trade",
	Long: `Record buying or selling an underlying outright, with no relationship
to any options position.

  optjournal trade-underlying --symbol spy --direction long --quantity 100 \
    --price 438.50 --margin 21925`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var (
	equitySymbol    string
	equityDirection string
	equityQuantity  int
	equityPrice     float64
	equityMargin    float64
	equityTimestamp string
	equityNotes     string
)

func init() {
	rootCmd.AddCommand(equityCmd)

	equityCmd.Flags().StringVar(&equitySymbol, "symbol", "", "symbol (upper-cased, max 5 characters)")
	equityCmd.Flags().StringVar(&equityDirection, "direction", "", "LONG or SHORT (case-insensitive)")
	equityCmd.Flags().IntVar(&equityQuantity, "quantity", 0, "number of shares")
	equityCmd.Flags().Float64Var(&equityPrice, "price", 0, "fill price")
	equityCmd.Flags().Float64Var(&equityMargin, "margin", 0, "margin requirement")
	equityCmd.Flags().StringVar(&equityTimestamp, "timestamp", "", "trade time, format 2021-08-16 17:30:50 (default now)")
	equityCmd.Flags().StringVar(&equityNotes, "notes", "", "free-form notes")

	for _, flag := range []string{"symbol", "direction", "quantity", "price", "margin"} {
		_ = equityCmd.MarkFlagRequired(flag)
	}
}

func runEquity(cmd *cobra.Command, args []string) error {
	symbol, err := journal.NormalizeSymbol("symbol", equitySymbol)
	if err != nil {
		return err
	}
	direction, err := journal.ParseDirection("direction", equityDirection)
	if err != nil {
		return err
	}
	timestamp, err := timestampOrNow(equityTimestamp)
	if err != nil {
		return err
	}

	margin := equityMargin
	e := journal.EquityTrade{
		Timestamp: timestamp,
		Symbol:    symbol,
		Direction: direction,
		Quantity:  equityQuantity,
		Price:     equityPrice,
		Margin:    &margin,
		Notes:     equityNotes,
	}
	if err := e.Validate(); err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordEquityTrade(cmd.Context(), e); err != nil {
		return err
	}

	fmt.Printf("Trade on underlying: %s has been added, thank you!\n", symbol)
	return nil
}
