// journal/org.go
package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatClosedTradeOrg renders a closed trade as an Org-mode block suitable
// for pasting into a review journal. Structured facts go in a PROPERTIES
// drawer; the narrative placeholders are left for the trader to fill in.
func FormatClosedTradeOrg(t ClosedTrade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade #%d: %s\n", t.TradeID, t.Strategy)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %d\n", t.TradeID)
	fmt.Fprintf(&b, ":POSITION_ID: %d\n", t.PositionID)
	fmt.Fprintf(&b, ":STRATEGY: %s\n", t.Strategy)
	fmt.Fprintf(&b, ":QUANTITY: %d\n", t.Quantity)
	fmt.Fprintf(&b, ":EXPIRATION: %s\n", t.Expiration.Format(DateFormat))
	fmt.Fprintf(&b, ":STRIKES: %s\n", FormatStrikes(t.Strikes))
	if len(t.OptionTypes) > 0 {
		fmt.Fprintf(&b, ":OPTION_TYPES: %s\n", FormatOptionTypes(t.OptionTypes))
	}
	if len(t.Quantities) > 0 {
		fmt.Fprintf(&b, ":QUANTITIES: %s\n", FormatQuantities(t.Quantities))
	}
	fmt.Fprintf(&b, ":ENTRY_TIME: %s\n", t.EntryTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":EXIT_TIME: %s\n", t.ExitTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.2f\n", t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %.2f\n", t.ExitPrice)
	fmt.Fprintf(&b, ":ENTRY_IVR: %.2f\n", t.EntryIVRank)
	fmt.Fprintf(&b, ":EXIT_IVR: %.2f\n", t.ExitIVRank)
	fmt.Fprintf(&b, ":ENTRY_PREMIUM: %.2f\n", t.EntryPremium)
	fmt.Fprintf(&b, ":EXIT_PREMIUM: %.2f\n", t.ExitPremium)
	if t.Margin != nil {
		fmt.Fprintf(&b, ":MARGIN: %.2f\n", *t.Margin)
	}
	if t.SecondExpiration != nil {
		fmt.Fprintf(&b, ":SECOND_EXPIRATION: %s\n", t.SecondExpiration.Format(DateFormat))
	}
	b.WriteString(":END:\n")

	if t.EntryNotes != "" {
		fmt.Fprintf(&b, "\n*** Entry Notes\n- %s\n", t.EntryNotes)
	}
	if t.ExitNotes != "" {
		fmt.Fprintf(&b, "\n*** Exit Notes\n- %s\n", t.ExitNotes)
	}
	b.WriteString("\n*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatClosedTradesOrg renders multiple trades separated by blank lines.
func FormatClosedTradesOrg(trades []ClosedTrade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatClosedTradeOrg(t))
	}
	return b.String()
}
