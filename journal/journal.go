// journal/journal.go
package journal

import (
	"context"
	"time"
)

// Direction of an outright equity trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Position is a single options strategy opened at a point in time. The id is
// assigned by the store on insert. Strikes, OptionTypes and Quantities are
// parallel sequences describing the legs; OptionTypes and Quantities may be
// nil when the strategy name makes them obvious.
type Position struct {
	ID         int64
	Timestamp  time.Time
	Underlying string

	// Snapshot at opening time
	UnderlyingPrice float64
	IVRank          float64

	// Position details
	Strategy   string
	Quantity   int
	Expiration time.Time
	Strikes    []float64
	Premium    float64
	Margin     *float64

	// Mostly nil, used by calendar/diagonal structures
	SecondExpiration *time.Time
	OptionTypes      []string
	Quantities       []int

	Notes string
}

// Leg is one strike/option-type/quantity triple of a multi-leg strategy.
// OptionType is empty and Quantity zero when the position was recorded
// without the per-leg arrays.
type Leg struct {
	Strike     float64
	OptionType string
	Quantity   int
}

// Legs zips the parallel arrays into per-leg records, one per strike.
func (p *Position) Legs() []Leg {
	legs := make([]Leg, len(p.Strikes))
	for i, strike := range p.Strikes {
		legs[i].Strike = strike
		if i < len(p.OptionTypes) {
			legs[i].OptionType = p.OptionTypes[i]
		}
		if i < len(p.Quantities) {
			legs[i].Quantity = p.Quantities[i]
		}
	}
	return legs
}

// ClosingTrade terminates a Position. At most one may exist per position.
type ClosingTrade struct {
	ID         int64
	PositionID int64
	Timestamp  time.Time

	// Snapshot at closing time
	UnderlyingPrice float64
	IVRank          float64

	// Closing price
	Premium float64

	Notes string
}

// Adjustment is a structural change applied to an open Position. At least one
// of OptionTypes, Quantities, Strikes, Expiration or SecondExpiration must be
// set; adjustments are append-only history, never in-place mutation.
type Adjustment struct {
	ID         int64
	PositionID int64
	Timestamp  time.Time

	// Market snapshot
	UnderlyingPrice float64
	IVRank          float64

	// Changed fields, all optional
	OptionTypes      []string
	Quantities       []int
	Strikes          []float64
	Expiration       *time.Time
	SecondExpiration *time.Time
	Margin           *float64

	// Credit or debit from the adjustment trade
	Premium float64

	Notes string
}

// EquityTrade records buying or selling an underlying outright. It has no
// relationship to positions and no generated id.
type EquityTrade struct {
	Timestamp time.Time
	Symbol    string
	Direction Direction
	Quantity  int
	Price     float64
	Margin    *float64
	Notes     string
}

// ClosedTrade is the joined view of a ClosingTrade and its originating
// Position, one row per closed position.
type ClosedTrade struct {
	TradeID    int64
	PositionID int64

	Strategy   string
	Quantity   int
	Expiration time.Time
	Strikes    []float64

	EntryTime time.Time
	ExitTime  time.Time

	EntryPrice float64
	ExitPrice  float64

	EntryIVRank float64
	ExitIVRank  float64

	EntryPremium float64
	ExitPremium  float64

	Margin           *float64
	SecondExpiration *time.Time
	OptionTypes      []string
	Quantities       []int

	EntryNotes string
	ExitNotes  string
}

// Store is the append-only record store behind the journal. Writes validate
// their record before touching the backing store and append exactly one row
// or nothing. There are no update or delete operations.
type Store interface {
	// OpenPosition appends a new position and returns its assigned id.
	OpenPosition(ctx context.Context, p Position) (int64, error)

	// CloseTrade appends the closing trade for a position. It fails with
	// ErrPositionNotFound when the position does not exist and with
	// ErrPositionClosed when a closing trade already exists.
	CloseTrade(ctx context.Context, t ClosingTrade) (int64, error)

	// AdjustTrade appends an adjustment against an existing, still-open
	// position, under the same reference checks as CloseTrade.
	AdjustTrade(ctx context.Context, a Adjustment) (int64, error)

	// RecordEquityTrade appends an outright underlying trade.
	RecordEquityTrade(ctx context.Context, e EquityTrade) error

	// OpenPositions returns positions with no closing trade, ordered by id
	// ascending.
	OpenPositions(ctx context.Context) ([]Position, error)

	// ClosedTrades returns one joined row per closing trade, ordered by
	// trade id ascending.
	ClosedTrades(ctx context.Context) ([]ClosedTrade, error)

	// Position returns a single position by id, open or closed.
	Position(ctx context.Context, id int64) (Position, error)

	// Adjustments returns the adjustment history of a position, oldest
	// first.
	Adjustments(ctx context.Context, positionID int64) ([]Adjustment, error)

	Close() error
}
