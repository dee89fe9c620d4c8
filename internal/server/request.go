package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

// number accepts a JSON number or a numeric string, since HTML forms post
// every field as text.
type number struct {
	value float64
	set   bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value, n.set = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: expected a number, got %s", metrics.ErrInvalidNumericField, b)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", metrics.ErrInvalidNumericField, s)
	}
	n.value, n.set = f, true
	return nil
}

// tradeRequest is the body of POST and PUT /api/trades.
type tradeRequest struct {
	Date         string  `json:"date"`
	Asset        string  `json:"asset"`
	Direction    string  `json:"direction"`
	EntryPrice   number  `json:"entryPrice"`
	ExitPrice    number  `json:"exitPrice"`
	PositionSize number  `json:"positionSize"`
	Commission   number  `json:"commission"`
	Notes        *string `json:"notes"`
}

func (req tradeRequest) input() (journal.TradeInput, error) {
	date, err := journal.ParseDate(req.Date)
	if err != nil {
		return journal.TradeInput{}, err
	}
	dir, err := metrics.ParseDirection(req.Direction)
	if err != nil {
		return journal.TradeInput{}, err
	}

	required := []struct {
		name string
		n    number
	}{
		{"entryPrice", req.EntryPrice},
		{"exitPrice", req.ExitPrice},
		{"positionSize", req.PositionSize},
	}
	for _, r := range required {
		if !r.n.set {
			return journal.TradeInput{}, fmt.Errorf("%w: %s is required", metrics.ErrInvalidNumericField, r.name)
		}
	}

	return journal.TradeInput{
		Date:         date,
		Asset:        req.Asset,
		Direction:    dir,
		EntryPrice:   req.EntryPrice.value,
		ExitPrice:    req.ExitPrice.value,
		PositionSize: req.PositionSize.value,
		Commission:   req.Commission.value,
		Notes:        req.Notes,
	}, nil
}
