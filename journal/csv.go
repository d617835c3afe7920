// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var closedTradeHeader = []string{
	"trade_id", "position_id", "strategy", "quantity", "expiration", "strikes",
	"entry_time", "exit_time", "entry_price", "exit_price", "entry_ivr", "exit_ivr",
	"entry_premium", "exit_premium", "margin", "second_expiration",
	"option_types", "quantities", "entry_notes", "exit_notes",
}

// WriteClosedTradesCSV writes the closed-trade history as CSV, one row per
// closing trade. Leg arrays use the slash-delimited wire shape.
func WriteClosedTradesCSV(w io.Writer, trades []ClosedTrade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(closedTradeHeader); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			strconv.FormatInt(t.TradeID, 10),
			strconv.FormatInt(t.PositionID, 10),
			t.Strategy,
			strconv.Itoa(t.Quantity),
			t.Expiration.Format(DateFormat),
			FormatStrikes(t.Strikes),
			t.EntryTime.UTC().Format(time.RFC3339),
			t.ExitTime.UTC().Format(time.RFC3339),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.EntryIVRank),
			f(t.ExitIVRank),
			f(t.EntryPremium),
			f(t.ExitPremium),
			floatOrBlank(t.Margin),
			dateOrBlank(t.SecondExpiration),
			FormatOptionTypes(t.OptionTypes),
			FormatQuantities(t.Quantities),
			t.EntryNotes,
			t.ExitNotes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func floatOrBlank(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}

func dateOrBlank(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}
