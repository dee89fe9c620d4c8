package metrics

import (
	"encoding/json"
	"sort"
	"time"
)

// DefaultStartingBalance seeds the equity curve when no balance is configured.
const DefaultStartingBalance = 2200.0

const dateLayout = "2006-01-02"

// EquityPoint is the running account balance after the trade closed on Date.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

func (p EquityPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string  `json:"date"`
		Equity float64 `json:"equity"`
	}{p.Date.Format(dateLayout), p.Equity})
}

// EquityCurve is BuildEquityCurve seeded with DefaultStartingBalance.
func EquityCurve(trades []Trade) []EquityPoint {
	return BuildEquityCurve(trades, DefaultStartingBalance)
}

// BuildEquityCurve walks trades in date order and returns the running balance
// after each one, preceded by a seed point at startingBalance. The result
// always has len(trades)+1 points. With no trades the seed is dated today.
func BuildEquityCurve(trades []Trade, startingBalance float64) []EquityPoint {
	return BuildEquityCurveAt(trades, startingBalance, time.Now())
}

// BuildEquityCurveAt is BuildEquityCurve with an explicit "today" for the
// empty-journal seed point.
func BuildEquityCurveAt(trades []Trade, startingBalance float64, today time.Time) []EquityPoint {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	// Trades sharing a date keep their input order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	seed := today
	if len(sorted) > 0 {
		seed = sorted[0].Date
	}

	points := make([]EquityPoint, 0, len(sorted)+1)
	points = append(points, EquityPoint{Date: seed, Equity: startingBalance})

	equity := startingBalance
	for _, t := range sorted {
		equity += t.NetPL
		points = append(points, EquityPoint{Date: t.Date, Equity: equity})
	}
	return points
}

// MaxDrawdown returns the largest peak-to-trough fall along the curve, both as
// an amount and as a percentage of the peak it fell from. A curve that never
// falls reports zeros.
func MaxDrawdown(curve []EquityPoint) (amount, percent float64) {
	if len(curve) == 0 {
		return 0, 0
	}
	peak := curve[0].Equity
	for _, p := range curve[1:] {
		if p.Equity > peak {
			peak = p.Equity
			continue
		}
		if dd := peak - p.Equity; dd > amount {
			amount = dd
			percent = 0
			if peak > 0 {
				percent = dd / peak * 100
			}
		}
	}
	return amount, percent
}
