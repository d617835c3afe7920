package journal

import (
	"strconv"
	"strings"
	"time"
)

// Wire formats for user-entered dates and timestamps.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// MaxSymbolLen bounds underlying/symbol length after upper-casing.
const MaxSymbolLen = 5

// ParseDate parses a YYYY-MM-DD value. The field name is reported back in
// the error so the user knows what to fix.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, invalidf(field, "%q is not a date in format %s", s, DateFormat)
	}
	return t, nil
}

// ParseTimestamp parses a YYYY-MM-DD HH:MM:SS value.
func ParseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, s)
	if err != nil {
		return time.Time{}, invalidf(field, "%q is not a timestamp in format %s", s, TimestampFormat)
	}
	return t, nil
}

// ParseStrikes splits a slash-delimited strike list ("70/80",
// "400/410/440/450") into ordered numeric strikes. Order and duplicates are
// preserved.
func ParseStrikes(field, s string) ([]float64, error) {
	if s == "" {
		return nil, invalidf(field, "at least one strike is required")
	}
	parts := strings.Split(s, "/")
	strikes := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, invalidf(field, "%q is not a numeric strike", part)
		}
		strikes[i] = v
	}
	return strikes, nil
}

// ParseOptionTypes splits a slash-delimited list of P/C tags ("P/C",
// "p/p/c/c"), normalized to upper-case.
func ParseOptionTypes(field, s string) ([]string, error) {
	if s == "" {
		return nil, invalidf(field, "at least one option type is required")
	}
	parts := strings.Split(s, "/")
	types := make([]string, len(parts))
	for i, part := range parts {
		tag := strings.ToUpper(strings.TrimSpace(part))
		if tag != "P" && tag != "C" {
			return nil, invalidf(field, "%q is not an option type (want P or C)", part)
		}
		types[i] = tag
	}
	return types, nil
}

// ParseQuantities splits a slash-delimited list of signed per-leg quantities
// ("-1/-1", "+1/-1/-1/+1").
func ParseQuantities(field, s string) ([]int, error) {
	if s == "" {
		return nil, invalidf(field, "at least one quantity is required")
	}
	parts := strings.Split(s, "/")
	quantities := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, invalidf(field, "%q is not a signed integer quantity", part)
		}
		quantities[i] = v
	}
	return quantities, nil
}

// NormalizeSymbol upper-cases an underlying/equity symbol and enforces the
// length bound.
func NormalizeSymbol(field, s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" {
		return "", invalidf(field, "a symbol is required")
	}
	if len(sym) > MaxSymbolLen {
		return "", invalidf(field, "%q is longer than %d characters", sym, MaxSymbolLen)
	}
	return sym, nil
}

// NormalizeStrategy upper-cases a strategy name. No length limit.
func NormalizeStrategy(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseDirection normalizes a case-insensitive LONG/SHORT token.
func ParseDirection(field, s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	}
	return "", invalidf(field, "%q is not a direction (want LONG or SHORT)", s)
}

// FormatStrikes renders strikes back to the slash-delimited wire shape.
func FormatStrikes(strikes []float64) string {
	parts := make([]string, len(strikes))
	for i, v := range strikes {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, "/")
}

// FormatOptionTypes renders option-type tags to the slash-delimited shape.
func FormatOptionTypes(types []string) string {
	return strings.Join(types, "/")
}

// FormatQuantities renders per-leg quantities to the slash-delimited shape.
func FormatQuantities(quantities []int) string {
	parts := make([]string, len(quantities))
	for i, v := range quantities {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}
