package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dir        Direction
		entry      float64
		exit       float64
		size       float64
		commission float64
		want       Metrics
	}{
		{
			name: "long_win", dir: Long, entry: 100, exit: 110, size: 10, commission: 5,
			want: Metrics{GrossPL: 100, NetPL: 95, ReturnPercent: 10, IsWin: true},
		},
		{
			name: "short_loss", dir: Short, entry: 100, exit: 110, size: 10, commission: 5,
			want: Metrics{GrossPL: -100, NetPL: -105, ReturnPercent: -10, IsWin: false},
		},
		{
			name: "short_win", dir: Short, entry: 50, exit: 40, size: 2, commission: 1,
			want: Metrics{GrossPL: 20, NetPL: 19, ReturnPercent: 20, IsWin: true},
		},
		{
			name: "long_no_commission", dir: Long, entry: 20, exit: 25, size: 4, commission: 0,
			want: Metrics{GrossPL: 20, NetPL: 20, ReturnPercent: 25, IsWin: true},
		},
		{
			name: "commission_eats_profit", dir: Long, entry: 100, exit: 101, size: 1, commission: 3,
			want: Metrics{GrossPL: 1, NetPL: -2, ReturnPercent: 1, IsWin: false},
		},
		{
			name: "breakeven_is_not_a_win", dir: Long, entry: 100, exit: 105, size: 2, commission: 10,
			want: Metrics{GrossPL: 10, NetPL: 0, ReturnPercent: 5, IsWin: false},
		},
		{
			name: "flat_trade", dir: Short, entry: 10, exit: 10, size: 100, commission: 0,
			want: Metrics{GrossPL: 0, NetPL: 0, ReturnPercent: 0, IsWin: false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Derive(tt.dir, tt.entry, tt.exit, tt.size, tt.commission)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.GrossPL, got.GrossPL, 1e-9)
			assert.InDelta(t, tt.want.NetPL, got.NetPL, 1e-9)
			assert.InDelta(t, tt.want.ReturnPercent, got.ReturnPercent, 1e-9)
			assert.Equal(t, tt.want.IsWin, got.IsWin)
		})
	}
}

func TestDeriveFormulas(t *testing.T) {
	t.Parallel()

	inputs := []struct{ entry, exit, size, commission float64 }{
		{1.2345, 1.3456, 1000, 2.5},
		{250, 199.75, 3, 0},
		{0.0001, 0.00015, 1e6, 1},
		{42, 42, 7, 0.5},
	}

	for _, in := range inputs {
		long, err := Derive(Long, in.entry, in.exit, in.size, in.commission)
		require.NoError(t, err)
		short, err := Derive(Short, in.entry, in.exit, in.size, in.commission)
		require.NoError(t, err)

		assert.Equal(t, (in.exit-in.entry)*in.size, long.GrossPL)
		assert.Equal(t, (in.entry-in.exit)*in.size, short.GrossPL)
		assert.Equal(t, long.GrossPL-in.commission, long.NetPL)
		assert.Equal(t, short.GrossPL-in.commission, short.NetPL)
		assert.Equal(t, long.NetPL > 0, long.IsWin)
		assert.Equal(t, short.NetPL > 0, short.IsWin)

		// Same trade seen from the other side: swap prices and direction.
		swapped, err := Derive(Short, in.exit, in.entry, in.size, in.commission)
		require.NoError(t, err)
		assert.Equal(t, long.GrossPL, swapped.GrossPL)

		// Return follows the gross move, never the commission.
		if long.GrossPL != 0 {
			assert.Equal(t, long.GrossPL > 0, long.ReturnPercent > 0)
		}
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Derive(Short, 1.08493, 1.07911, 12500, 3.2)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := Derive(Short, 1.08493, 1.07911, 12500, 3.2)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(first.GrossPL), math.Float64bits(again.GrossPL))
		assert.Equal(t, math.Float64bits(first.NetPL), math.Float64bits(again.NetPL))
		assert.Equal(t, math.Float64bits(first.ReturnPercent), math.Float64bits(again.ReturnPercent))
	}
}

func TestDeriveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dir        Direction
		entry      float64
		exit       float64
		size       float64
		commission float64
		want       error
	}{
		{"bad_direction", Direction("FLAT"), 100, 110, 1, 0, ErrInvalidDirection},
		{"empty_direction", "", 100, 110, 1, 0, ErrInvalidDirection},
		{"lowercase_direction", Direction("long"), 100, 110, 1, 0, ErrInvalidDirection},
		{"nan_entry", Long, math.NaN(), 110, 1, 0, ErrInvalidNumericField},
		{"inf_exit", Long, 100, math.Inf(1), 1, 0, ErrInvalidNumericField},
		{"neg_inf_size", Short, 100, 110, math.Inf(-1), 0, ErrInvalidNumericField},
		{"nan_commission", Short, 100, 110, 1, math.NaN(), ErrInvalidNumericField},
		{"zero_entry_long", Long, 0, 110, 1, 0, ErrDivisionByZero},
		{"zero_entry_short", Short, 0, 110, 1, 0, ErrDivisionByZero},
		{"negative_entry", Long, -1, 110, 1, 0, ErrInvalidNumericField},
		{"zero_exit", Long, 100, 0, 1, 0, ErrInvalidNumericField},
		{"zero_size", Long, 100, 110, 0, 0, ErrInvalidNumericField},
		{"negative_size", Short, 100, 110, -5, 0, ErrInvalidNumericField},
		{"negative_commission", Long, 100, 110, 1, -0.01, ErrInvalidNumericField},
		{"gross_overflow_long", Long, 1, 1e308, 1e10, 0, ErrInvalidNumericField},
		{"gross_overflow_short", Short, 1e308, 1, 1e10, 0, ErrInvalidNumericField},
		{"net_overflow", Long, 1e308, 1, 1.5, math.MaxFloat64, ErrInvalidNumericField},
		{"subnormal_entry_return", Long, 1e-320, 1, 1, 0, ErrInvalidNumericField},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Derive(tt.dir, tt.entry, tt.exit, tt.size, tt.commission)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, Metrics{}, got)
		})
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection(" long ")
	require.NoError(t, err)
	assert.Equal(t, Long, d)

	d, err = ParseDirection("SHORT")
	require.NoError(t, err)
	assert.Equal(t, Short, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestTradeRefresh(t *testing.T) {
	t.Parallel()

	tr := Trade{Direction: Long, EntryPrice: 100, ExitPrice: 110, PositionSize: 10, Commission: 5}
	require.NoError(t, tr.Refresh())
	assert.Equal(t, 100.0, tr.GrossPL)
	assert.Equal(t, 95.0, tr.NetPL)
	assert.InDelta(t, 10.0, tr.ReturnPercent, 1e-9)
	assert.True(t, tr.IsWin)

	// A failed refresh keeps the previous, consistent metrics.
	tr.EntryPrice = 0
	assert.ErrorIs(t, tr.Refresh(), ErrDivisionByZero)
	assert.Equal(t, 95.0, tr.NetPL)
	assert.True(t, tr.IsWin)

	tr.EntryPrice = 100
	tr.Direction = Short
	require.NoError(t, tr.Refresh())
	m := tr.Metrics()
	assert.Equal(t, -100.0, m.GrossPL)
	assert.Equal(t, -105.0, m.NetPL)
	assert.InDelta(t, -10.0, m.ReturnPercent, 1e-9)
	assert.False(t, m.IsWin)
}
