package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'
		AND name IN ('positions','trades','adjustments','equities')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["positions"])
	assert.True(t, found["trades"])
	assert.True(t, found["adjustments"])
	assert.True(t, found["equities"])

	// Reopening must be non-destructive.
	require.NoError(t, db.Close())
	s2, err := NewSQLite(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestOpenPositionRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	margin := 500.0
	secondExp := time.Date(2021, 10, 15, 0, 0, 0, 0, time.UTC)
	p := validPosition()
	p.Margin = &margin
	p.SecondExpiration = &secondExp
	p.OptionTypes = []string{"P", "P", "C", "C"}
	p.Quantities = []int{1, -1, -1, 1}
	p.Notes = "earnings play"

	id, err := s.OpenPosition(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	open, err := s.OpenPositions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	got := open[0]
	assert.Equal(t, int64(1), got.ID)
	assert.True(t, got.Timestamp.Equal(p.Timestamp))
	assert.Equal(t, "SPY", got.Underlying)
	assert.InDelta(t, 440, got.UnderlyingPrice, 1e-9)
	assert.InDelta(t, 30, got.IVRank, 1e-9)
	assert.Equal(t, "IRON CONDOR", got.Strategy)
	assert.Equal(t, -1, got.Quantity)
	assert.True(t, got.Expiration.Equal(p.Expiration))
	assert.Equal(t, []float64{400, 410, 440, 450}, got.Strikes)
	assert.InDelta(t, 1.25, got.Premium, 1e-9)
	require.NotNil(t, got.Margin)
	assert.InDelta(t, 500, *got.Margin, 1e-9)
	require.NotNil(t, got.SecondExpiration)
	assert.True(t, got.SecondExpiration.Equal(secondExp))
	assert.Equal(t, []string{"P", "P", "C", "C"}, got.OptionTypes)
	assert.Equal(t, []int{1, -1, -1, 1}, got.Quantities)
	assert.Equal(t, "earnings play", got.Notes)
}

func TestOpenPositionNullableFields(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)

	got, err := s.Position(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Margin)
	assert.Nil(t, got.SecondExpiration)
	assert.Nil(t, got.OptionTypes)
	assert.Nil(t, got.Quantities)
	assert.Empty(t, got.Notes)
}

func TestOpenPositionRejectedBeforeWrite(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	p := validPosition()
	p.Underlying = "TOOLONGSYM"
	_, err := s.OpenPosition(ctx, p)
	assert.True(t, IsValidation(err))

	open, err := s.OpenPositions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestCloseTradeLifecycle(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	margin := 500.0
	p := validPosition()
	p.Margin = &margin

	id, err := s.OpenPosition(ctx, p)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	exit := time.Date(2021, 9, 10, 14, 5, 0, 0, time.UTC)
	tradeID, err := s.CloseTrade(ctx, ClosingTrade{
		PositionID:      id,
		Timestamp:       exit,
		UnderlyingPrice: 438,
		IVRank:          25,
		Premium:         0.40,
		Notes:           "took profit at 2/3 max",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tradeID)

	open, err := s.OpenPositions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	closed, err := s.ClosedTrades(ctx)
	require.NoError(t, err)
	require.Len(t, closed, 1)

	ct := closed[0]
	assert.Equal(t, int64(1), ct.TradeID)
	assert.Equal(t, id, ct.PositionID)
	assert.Equal(t, "IRON CONDOR", ct.Strategy)
	assert.Equal(t, -1, ct.Quantity)
	assert.True(t, ct.Expiration.Equal(p.Expiration))
	assert.Equal(t, []float64{400, 410, 440, 450}, ct.Strikes)
	assert.True(t, ct.EntryTime.Equal(p.Timestamp))
	assert.True(t, ct.ExitTime.Equal(exit))
	assert.InDelta(t, 440, ct.EntryPrice, 1e-9)
	assert.InDelta(t, 438, ct.ExitPrice, 1e-9)
	assert.InDelta(t, 30, ct.EntryIVRank, 1e-9)
	assert.InDelta(t, 25, ct.ExitIVRank, 1e-9)
	assert.InDelta(t, 1.25, ct.EntryPremium, 1e-9)
	assert.InDelta(t, 0.40, ct.ExitPremium, 1e-9)
	require.NotNil(t, ct.Margin)
	assert.InDelta(t, 500, *ct.Margin, 1e-9)
	assert.Equal(t, "took profit at 2/3 max", ct.ExitNotes)
}

func TestCloseTwiceRejected(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)

	closing := ClosingTrade{PositionID: id, Timestamp: time.Now(), UnderlyingPrice: 438, IVRank: 25, Premium: 0.40}
	_, err = s.CloseTrade(ctx, closing)
	require.NoError(t, err)

	_, err = s.CloseTrade(ctx, closing)
	assert.ErrorIs(t, err, ErrPositionClosed)

	closed, err := s.ClosedTrades(ctx)
	require.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestCloseUnknownPosition(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CloseTrade(ctx, ClosingTrade{PositionID: 42, Timestamp: time.Now(), UnderlyingPrice: 438, IVRank: 25, Premium: 0.40})
	assert.ErrorIs(t, err, ErrPositionNotFound)
}

func TestAdjustTradeLifecycle(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)

	when := time.Date(2021, 9, 1, 10, 0, 0, 0, time.UTC)
	adjID, err := s.AdjustTrade(ctx, Adjustment{
		PositionID:      id,
		Timestamp:       when,
		UnderlyingPrice: 445,
		IVRank:          35,
		Strikes:         []float64{410, 420, 440, 450},
		Premium:         0.60,
		Notes:           "rolled put spread up",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), adjID)

	// Adjustments accumulate; a second one is expected.
	exp := time.Date(2021, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err = s.AdjustTrade(ctx, Adjustment{
		PositionID:      id,
		Timestamp:       when.Add(48 * time.Hour),
		UnderlyingPrice: 450,
		IVRank:          40,
		Expiration:      &exp,
		Premium:         -0.35,
	})
	require.NoError(t, err)

	history, err := s.Adjustments(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)

	first := history[0]
	assert.True(t, first.Timestamp.Equal(when))
	assert.InDelta(t, 445, first.UnderlyingPrice, 1e-9)
	assert.Equal(t, []float64{410, 420, 440, 450}, first.Strikes)
	assert.Nil(t, first.Expiration)
	assert.Equal(t, "rolled put spread up", first.Notes)

	second := history[1]
	assert.Nil(t, second.Strikes)
	require.NotNil(t, second.Expiration)
	assert.True(t, second.Expiration.Equal(exp))
	assert.InDelta(t, -0.35, second.Premium, 1e-9)

	// Adjusting keeps the position open.
	open, err := s.OpenPositions(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestAdjustRequiresChange(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)

	_, err = s.AdjustTrade(ctx, Adjustment{
		PositionID:      id,
		Timestamp:       time.Now(),
		UnderlyingPrice: 445,
		IVRank:          35,
		Premium:         0.60,
	})
	assert.True(t, IsValidation(err))

	history, err := s.Adjustments(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAdjustClosedPositionRejected(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)
	_, err = s.CloseTrade(ctx, ClosingTrade{PositionID: id, Timestamp: time.Now(), UnderlyingPrice: 438, IVRank: 25, Premium: 0.40})
	require.NoError(t, err)

	_, err = s.AdjustTrade(ctx, Adjustment{
		PositionID:      id,
		Timestamp:       time.Now(),
		UnderlyingPrice: 445,
		IVRank:          35,
		Strikes:         []float64{410, 420},
		Premium:         0.60,
	})
	assert.ErrorIs(t, err, ErrPositionClosed)

	_, err = s.AdjustTrade(ctx, Adjustment{
		PositionID:      99,
		Timestamp:       time.Now(),
		UnderlyingPrice: 445,
		IVRank:          35,
		Strikes:         []float64{410, 420},
		Premium:         0.60,
	})
	assert.ErrorIs(t, err, ErrPositionNotFound)
}

func TestRecordEquityTrade(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	ctx := context.Background()

	when := time.Date(2021, 8, 16, 17, 30, 50, 0, time.UTC)
	margin := 21925.0
	err := s.RecordEquityTrade(ctx, EquityTrade{
		Timestamp: when,
		Symbol:    "SPY",
		Direction: Long,
		Quantity:  100,
		Price:     438.50,
		Margin:    &margin,
		Notes:     "covered call stock leg",
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		gotTime   time.Time
		symbol    string
		direction string
		quantity  int
		price     float64
		gotMargin sql.NullFloat64
		notes     sql.NullString
	)
	err = db.QueryRow(`SELECT timestamp, symbol, direction, quantity, price, margin, notes
		FROM equities LIMIT 1`).Scan(&gotTime, &symbol, &direction, &quantity, &price, &gotMargin, &notes)
	require.NoError(t, err)

	assert.True(t, gotTime.Equal(when))
	assert.Equal(t, "SPY", symbol)
	assert.Equal(t, "LONG", direction)
	assert.Equal(t, 100, quantity)
	assert.InDelta(t, 438.50, price, 1e-9)
	assert.True(t, gotMargin.Valid)
	assert.InDelta(t, 21925, gotMargin.Float64, 1e-9)
	assert.Equal(t, "covered call stock leg", notes.String)
}

func TestPositionByID(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.OpenPosition(ctx, validPosition())
	require.NoError(t, err)

	got, err := s.Position(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SPY", got.Underlying)

	_, err = s.Position(ctx, 99)
	assert.ErrorIs(t, err, ErrPositionNotFound)
}

func TestOpenPositionsOrderedByID(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, underlying := range []string{"SPY", "QQQ", "IWM"} {
		p := validPosition()
		p.Underlying = underlying
		_, err := s.OpenPosition(ctx, p)
		require.NoError(t, err)
	}

	// Closing the middle position must not disturb the order of the rest.
	_, err := s.CloseTrade(ctx, ClosingTrade{PositionID: 2, Timestamp: time.Now(), UnderlyingPrice: 370, IVRank: 20, Premium: 0.10})
	require.NoError(t, err)

	open, err := s.OpenPositions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, int64(1), open[0].ID)
	assert.Equal(t, "SPY", open[0].Underlying)
	assert.Equal(t, int64(3), open[1].ID)
	assert.Equal(t, "IWM", open[1].Underlying)
}
