package metrics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestEquityCurveSingleTrade(t *testing.T) {
	t.Parallel()

	trades := []Trade{{Date: day(3), NetPL: 50}}
	curve := BuildEquityCurve(trades, 2200)

	require.Len(t, curve, 2)
	assert.Equal(t, EquityPoint{Date: day(3), Equity: 2200}, curve[0])
	assert.Equal(t, EquityPoint{Date: day(3), Equity: 2250}, curve[1])
}

func TestEquityCurveDefaultBalance(t *testing.T) {
	t.Parallel()

	curve := EquityCurve([]Trade{{Date: day(1), NetPL: -200}})
	require.Len(t, curve, 2)
	assert.Equal(t, DefaultStartingBalance, curve[0].Equity)
	assert.Equal(t, 2000.0, curve[1].Equity)
}

func TestEquityCurveEmptyUsesToday(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	curve := BuildEquityCurveAt(nil, 1000, today)

	require.Len(t, curve, 1)
	assert.Equal(t, today, curve[0].Date)
	assert.Equal(t, 1000.0, curve[0].Equity)

	live := BuildEquityCurve(nil, 500)
	require.Len(t, live, 1)
	assert.WithinDuration(t, time.Now(), live[0].Date, time.Minute)
}

func TestEquityCurveSortsCopy(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{ID: "c", Date: day(9), NetPL: 30},
		{ID: "a", Date: day(2), NetPL: 10},
		{ID: "b1", Date: day(5), NetPL: -5},
		{ID: "b2", Date: day(5), NetPL: 7},
	}
	before := make([]Trade, len(trades))
	copy(before, trades)

	curve := BuildEquityCurve(trades, 100)

	assert.Equal(t, before, trades, "input must not be reordered")
	require.Len(t, curve, len(trades)+1)

	want := []EquityPoint{
		{Date: day(2), Equity: 100},
		{Date: day(2), Equity: 110},
		{Date: day(5), Equity: 105},
		{Date: day(5), Equity: 112},
		{Date: day(9), Equity: 142},
	}
	assert.Equal(t, want, curve)
}

func TestEquityCurveFinalEquity(t *testing.T) {
	t.Parallel()

	var trades []Trade
	sum := 0.0
	for i := 1; i <= 20; i++ {
		net := float64(i%7) - 3.25
		trades = append(trades, Trade{Date: day(21 - i), NetPL: net})
		sum += net
	}

	curve := BuildEquityCurve(trades, 2200)
	require.Len(t, curve, len(trades)+1)
	assert.Equal(t, 2200.0, curve[0].Equity)
	assert.InDelta(t, 2200+sum, curve[len(curve)-1].Equity, 1e-9)

	for i := 1; i < len(curve); i++ {
		assert.False(t, curve[i].Date.Before(curve[i-1].Date))
	}
}

func TestEquityPointJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(EquityPoint{Date: time.Date(2024, 1, 9, 15, 4, 5, 0, time.UTC), Equity: 2250.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-09","equity":2250.5}`, string(b))
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	curve := []EquityPoint{
		{Equity: 1000},
		{Equity: 1100},
		{Equity: 990},
		{Equity: 1200},
		{Equity: 900},
		{Equity: 950},
	}
	amount, pct := MaxDrawdown(curve)
	assert.InDelta(t, 300.0, amount, 1e-9)
	assert.InDelta(t, 25.0, pct, 1e-9)

	amount, pct = MaxDrawdown([]EquityPoint{{Equity: 10}, {Equity: 20}})
	assert.Zero(t, amount)
	assert.Zero(t, pct)

	amount, pct = MaxDrawdown(nil)
	assert.Zero(t, amount)
	assert.Zero(t, pct)
}
