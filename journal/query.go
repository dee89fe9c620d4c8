package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradejournal/metrics"
)

type scanner interface {
	Scan(dest ...any) error
}

// Get returns a single trade by ID.
func (j *SQLite) Get(ctx context.Context, tradeID string) (metrics.Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return metrics.Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return metrics.Trade{}, err
	}
	return t, nil
}

// Find returns the trades whose date falls in [q.Start, q.End).
func (j *SQLite) Find(ctx context.Context, q Query) ([]metrics.Trade, error) {
	var (
		where []string
		args  []any
	)
	if !q.Start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, q.Start.UTC())
	}
	if !q.End.IsZero() {
		where = append(where, "date < ?")
		args = append(args, q.End.UTC())
	}

	stmt := "SELECT " + tradeColumns + " FROM trades"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	// IDs are ULIDs, so they break date ties in insertion order.
	if q.Ascending {
		stmt += " ORDER BY date ASC, id ASC"
	} else {
		stmt += " ORDER BY date DESC, id DESC"
	}

	rows, err := j.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []metrics.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	j.log.Debug().
		Time("start", q.Start).
		Time("end", q.End).
		Int("count", len(out)).
		Msg("Trades loaded")

	return out, nil
}

func scanTrade(s scanner) (metrics.Trade, error) {
	var (
		t         metrics.Trade
		direction string
		notes     sql.NullString
	)
	err := s.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Date,
		&t.Asset,
		&direction,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.PositionSize,
		&t.Commission,
		&notes,
		&t.GrossPL,
		&t.NetPL,
		&t.ReturnPercent,
		&t.IsWin,
	)
	if err != nil {
		return metrics.Trade{}, err
	}
	t.Direction = metrics.Direction(direction)
	if notes.Valid {
		n := notes.String
		t.Notes = &n
	}
	return t, nil
}
