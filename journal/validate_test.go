package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPosition() Position {
	return Position{
		Timestamp:       time.Date(2021, 8, 16, 17, 30, 50, 0, time.UTC),
		Underlying:      "SPY",
		UnderlyingPrice: 440,
		IVRank:          30,
		Strategy:        "IRON CONDOR",
		Quantity:        -1,
		Expiration:      time.Date(2021, 9, 17, 0, 0, 0, 0, time.UTC),
		Strikes:         []float64{400, 410, 440, 450},
		Premium:         1.25,
	}
}

func TestPositionValidate(t *testing.T) {
	t.Parallel()

	p := validPosition()
	assert.NoError(t, p.Validate())

	p = validPosition()
	p.Underlying = "TOOLONGSYM"
	assert.True(t, IsValidation(p.Validate()))

	p = validPosition()
	p.Strikes = nil
	assert.True(t, IsValidation(p.Validate()))

	p = validPosition()
	p.OptionTypes = []string{"P", "C"} // four strikes
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option_types")

	p = validPosition()
	p.Quantities = []int{-1}
	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantities")

	p = validPosition()
	p.OptionTypes = []string{"P", "P", "C", "X"}
	assert.True(t, IsValidation(p.Validate()))

	p = validPosition()
	p.OptionTypes = []string{"P", "P", "C", "C"}
	p.Quantities = []int{1, -1, -1, 1}
	assert.NoError(t, p.Validate())
}

func TestPositionLegs(t *testing.T) {
	t.Parallel()

	p := validPosition()
	p.OptionTypes = []string{"P", "P", "C", "C"}
	p.Quantities = []int{1, -1, -1, 1}

	legs := p.Legs()
	require.Len(t, legs, 4)
	assert.Equal(t, Leg{Strike: 400, OptionType: "P", Quantity: 1}, legs[0])
	assert.Equal(t, Leg{Strike: 450, OptionType: "C", Quantity: 1}, legs[3])

	// Without the per-leg arrays the legs carry strikes only.
	p = validPosition()
	legs = p.Legs()
	require.Len(t, legs, 4)
	assert.Equal(t, Leg{Strike: 410}, legs[1])
}

func TestAdjustmentValidate(t *testing.T) {
	t.Parallel()

	a := Adjustment{PositionID: 1, UnderlyingPrice: 440, IVRank: 30, Premium: 0.5}
	err := a.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// A margin-only or snapshot-only record is not a structural change.
	m := 750.0
	a.Margin = &m
	assert.Error(t, a.Validate())

	a.Strikes = []float64{410, 420}
	assert.NoError(t, a.Validate())

	a.OptionTypes = []string{"P"}
	err = a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option_types")

	exp := time.Date(2021, 10, 15, 0, 0, 0, 0, time.UTC)
	b := Adjustment{PositionID: 1, Expiration: &exp}
	assert.NoError(t, b.Validate())

	b.PositionID = 0
	assert.True(t, IsValidation(b.Validate()))
}

func TestClosingTradeValidate(t *testing.T) {
	t.Parallel()

	tr := ClosingTrade{PositionID: 1}
	assert.NoError(t, tr.Validate())

	tr.PositionID = 0
	assert.True(t, IsValidation(tr.Validate()))
}

func TestEquityTradeValidate(t *testing.T) {
	t.Parallel()

	e := EquityTrade{Symbol: "SPY", Direction: Long, Quantity: 100, Price: 438.5}
	assert.NoError(t, e.Validate())

	e.Direction = "BUY"
	assert.True(t, IsValidation(e.Validate()))

	e.Direction = Short
	e.Quantity = 0
	assert.True(t, IsValidation(e.Validate()))

	e.Quantity = 100
	e.Symbol = "TOOLONGSYM"
	assert.True(t, IsValidation(e.Validate()))
}
