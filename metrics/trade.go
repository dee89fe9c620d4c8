// Package metrics turns raw trade records into per-trade P/L figures,
// aggregate period statistics and an equity curve.
//
// Everything in this package is a pure function of its arguments. Nothing is
// cached, nothing is logged and no I/O is performed, so callers may share it
// freely between goroutines.
package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Valid reports whether d is LONG or SHORT.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// ParseDirection accepts "long"/"short" in any case, surrounding spaces ignored.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidDirection)
	}
	return d, nil
}

// Metrics are the four values derived from a trade's raw fields.
type Metrics struct {
	GrossPL       float64 `json:"grossPL"`
	NetPL         float64 `json:"netPL"`
	ReturnPercent float64 `json:"returnPercent"`
	IsWin         bool    `json:"isWin"`
}

// Trade is one closed round trip in the journal.
type Trade struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Date         time.Time `json:"date"`
	Asset        string    `json:"asset"`
	Direction    Direction `json:"direction"`
	EntryPrice   float64   `json:"entryPrice"`
	ExitPrice    float64   `json:"exitPrice"`
	PositionSize float64   `json:"positionSize"`
	Commission   float64   `json:"commission"`
	Notes        *string   `json:"notes"`

	// Derived, see Refresh.
	GrossPL       float64 `json:"grossPL"`
	NetPL         float64 `json:"netPL"`
	ReturnPercent float64 `json:"returnPercent"`
	IsWin         bool    `json:"isWin"`
}

// Metrics returns the derived fields currently stored on t.
func (t Trade) Metrics() Metrics {
	return Metrics{
		GrossPL:       t.GrossPL,
		NetPL:         t.NetPL,
		ReturnPercent: t.ReturnPercent,
		IsWin:         t.IsWin,
	}
}

// Refresh recomputes the derived fields from the raw ones. On error t is left
// untouched, so a trade never carries metrics from a different set of inputs.
func (t *Trade) Refresh() error {
	m, err := Derive(t.Direction, t.EntryPrice, t.ExitPrice, t.PositionSize, t.Commission)
	if err != nil {
		return err
	}
	t.GrossPL = m.GrossPL
	t.NetPL = m.NetPL
	t.ReturnPercent = m.ReturnPercent
	t.IsWin = m.IsWin
	return nil
}

// Derive computes gross P/L, net P/L, return percentage and the win flag.
//
// Return percentage is based on the gross price move only; neither size nor
// commission affect it. A net P/L of exactly zero is not a win.
func Derive(dir Direction, entryPrice, exitPrice, positionSize, commission float64) (Metrics, error) {
	if err := validate(dir, entryPrice, exitPrice, positionSize, commission); err != nil {
		return Metrics{}, err
	}

	var move float64
	if dir == Long {
		move = exitPrice - entryPrice
	} else {
		move = entryPrice - exitPrice
	}

	gross := move * positionSize
	net := gross - commission
	ret := move / entryPrice * 100

	for _, v := range []float64{gross, net, ret} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Metrics{}, fmt.Errorf("derived value overflows: %w", ErrInvalidNumericField)
		}
	}

	return Metrics{
		GrossPL:       gross,
		NetPL:         net,
		ReturnPercent: ret,
		IsWin:         net > 0,
	}, nil
}

func validate(dir Direction, entryPrice, exitPrice, positionSize, commission float64) error {
	if !dir.Valid() {
		return fmt.Errorf("%q: %w", string(dir), ErrInvalidDirection)
	}

	fields := []struct {
		name string
		v    float64
	}{
		{"entryPrice", entryPrice},
		{"exitPrice", exitPrice},
		{"positionSize", positionSize},
		{"commission", commission},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s is not finite: %w", f.name, ErrInvalidNumericField)
		}
	}

	if entryPrice == 0 {
		return ErrDivisionByZero
	}

	switch {
	case entryPrice < 0:
		return fmt.Errorf("entryPrice must be positive: %w", ErrInvalidNumericField)
	case exitPrice <= 0:
		return fmt.Errorf("exitPrice must be positive: %w", ErrInvalidNumericField)
	case positionSize <= 0:
		return fmt.Errorf("positionSize must be positive: %w", ErrInvalidNumericField)
	case commission < 0:
		return fmt.Errorf("commission must not be negative: %w", ErrInvalidNumericField)
	}
	return nil
}
