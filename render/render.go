// Package render builds markdown views of journal query results and renders
// them for the terminal.
package render

import (
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"

	"optjournal/journal"
)

var funcs = template.FuncMap{
	"date":      func(t time.Time) string { return t.Format(journal.DateFormat) },
	"ts":        func(t time.Time) string { return t.UTC().Format(journal.TimestampFormat) },
	"strikes":   journal.FormatStrikes,
	"opttypes":  journal.FormatOptionTypes,
	"legquans":  journal.FormatQuantities,
	"dateOrNil": func(t *time.Time) string { return orBlankDate(t) },
}

const openPositionsTemplate = `# Open Positions
{{if not .}}
No open positions.
{{else}}
| ID | Underlying | Strategy | Qty | Expiration | Strikes | Premium |
|---:|---|---|---:|---|---|---:|
{{- range .}}
| {{.ID}} | {{.Underlying}} | {{.Strategy}} | {{.Quantity}} | {{date .Expiration}} | {{strikes .Strikes}} | {{printf "%.2f" .Premium}} |
{{- end}}
{{end}}`

const closedTradesTemplate = `# Closed Trades
{{if not .}}
No closed trades.
{{else}}
| Trade | Position | Strategy | Qty | Expiration | Strikes | Entry | Exit | Entry Prem | Exit Prem |
|---:|---:|---|---:|---|---|---|---|---:|---:|
{{- range .}}
| {{.TradeID}} | {{.PositionID}} | {{.Strategy}} | {{.Quantity}} | {{date .Expiration}} | {{strikes .Strikes}} | {{ts .EntryTime}} | {{ts .ExitTime}} | {{printf "%.2f" .EntryPremium}} | {{printf "%.2f" .ExitPremium}} |
{{- end}}
{{end}}`

const positionDetailTemplate = `# Position {{.Position.ID}}: {{.Position.Underlying}} {{.Position.Strategy}}

| Field | Value |
|---|---|
| Opened | {{ts .Position.Timestamp}} |
| Underlying price | {{printf "%.2f" .Position.UnderlyingPrice}} |
| IV rank | {{printf "%.2f" .Position.IVRank}} |
| Quantity | {{.Position.Quantity}} |
| Expiration | {{date .Position.Expiration}} |
| Strikes | {{strikes .Position.Strikes}} |
| Premium | {{printf "%.2f" .Position.Premium}} |
{{- if .Position.OptionTypes}}
| Option types | {{opttypes .Position.OptionTypes}} |
{{- end}}
{{- if .Position.Quantities}}
| Leg quantities | {{legquans .Position.Quantities}} |
{{- end}}
{{- if .Position.Notes}}
| Notes | {{.Position.Notes}} |
{{- end}}
{{if not .Adjustments}}
No adjustments recorded.
{{else}}
## Adjustments

| ID | When | Price | IVR | Premium | Strikes | Option Types | Quantities | Expiration |
|---:|---|---:|---:|---:|---|---|---|---|
{{- range .Adjustments}}
| {{.ID}} | {{ts .Timestamp}} | {{printf "%.2f" .UnderlyingPrice}} | {{printf "%.2f" .IVRank}} | {{printf "%.2f" .Premium}} | {{strikes .Strikes}} | {{opttypes .OptionTypes}} | {{legquans .Quantities}} | {{dateOrNil .Expiration}} |
{{- end}}
{{end}}`

var (
	openPositionsTmpl  = template.Must(template.New("open").Funcs(funcs).Parse(openPositionsTemplate))
	closedTradesTmpl   = template.Must(template.New("closed").Funcs(funcs).Parse(closedTradesTemplate))
	positionDetailTmpl = template.Must(template.New("detail").Funcs(funcs).Parse(positionDetailTemplate))
)

// OpenPositionsMarkdown renders the open-position table as markdown.
func OpenPositionsMarkdown(positions []journal.Position) string {
	return execute(openPositionsTmpl, positions)
}

// ClosedTradesMarkdown renders the closed-trade history as markdown.
func ClosedTradesMarkdown(trades []journal.ClosedTrade) string {
	return execute(closedTradesTmpl, trades)
}

// PositionDetail carries a position and its adjustment chain for rendering.
type PositionDetail struct {
	Position    journal.Position
	Adjustments []journal.Adjustment
}

// PositionDetailMarkdown renders one position with its adjustment history.
func PositionDetailMarkdown(d PositionDetail) string {
	return execute(positionDetailTmpl, d)
}

// Terminal renders markdown with ANSI styling for interactive display.
func Terminal(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func execute(t *template.Template, data any) string {
	var b strings.Builder
	// Templates are static and the data is plain structs; an execute error
	// here is a bug, not user input.
	if err := t.Execute(&b, data); err != nil {
		return "render error: " + err.Error()
	}
	return b.String()
}

func orBlankDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(journal.DateFormat)
}
