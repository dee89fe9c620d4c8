// Package journal persists trades and serves the snapshots the analytics in
// package metrics are computed from.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/metrics"
)

var (
	ErrNotFound = errors.New("trade not found")

	ErrInvalidDate  = fmt.Errorf("%w: trade date is required", metrics.ErrInvalidInput)
	ErrInvalidAsset = fmt.Errorf("%w: asset is required", metrics.ErrInvalidInput)
)

// TradeInput carries the raw, user-editable fields of a trade. The derived
// fields are never accepted from callers; the journal computes them.
type TradeInput struct {
	Date         time.Time
	Asset        string
	Direction    metrics.Direction
	EntryPrice   float64
	ExitPrice    float64
	PositionSize float64
	Commission   float64
	Notes        *string
}

// Trade validates the input and returns the trade it describes, metrics
// included. ID and timestamps are left for the journal to assign.
func (in TradeInput) Trade() (metrics.Trade, error) {
	if in.Date.IsZero() {
		return metrics.Trade{}, ErrInvalidDate
	}
	if strings.TrimSpace(in.Asset) == "" {
		return metrics.Trade{}, ErrInvalidAsset
	}

	t := metrics.Trade{
		Date:         in.Date.UTC(),
		Asset:        strings.TrimSpace(in.Asset),
		Direction:    in.Direction,
		EntryPrice:   in.EntryPrice,
		ExitPrice:    in.ExitPrice,
		PositionSize: in.PositionSize,
		Commission:   in.Commission,
		Notes:        cleanNotes(in.Notes),
	}
	if err := t.Refresh(); err != nil {
		return metrics.Trade{}, err
	}
	return t, nil
}

func cleanNotes(n *string) *string {
	if n == nil {
		return nil
	}
	s := strings.TrimSpace(*n)
	if s == "" {
		return nil
	}
	return &s
}

// Query selects a slice of the journal. Zero Start or End leaves that side
// open. Results are newest first unless Ascending is set.
type Query struct {
	Start     time.Time
	End       time.Time
	Ascending bool
}

// Journal is the trade store used by the server and the CLI.
type Journal interface {
	Create(ctx context.Context, in TradeInput) (metrics.Trade, error)
	Update(ctx context.Context, id string, in TradeInput) (metrics.Trade, error)
	Get(ctx context.Context, id string) (metrics.Trade, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q Query) ([]metrics.Trade, error)
	Close() error
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the time in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or RFC3339", metrics.ErrInvalidInput, s)
}
