package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradejournal/metrics"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// SQLite is a Journal backed by a single SQLite file.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

var _ Journal = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the journal at path and applies the schema.
func NewSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{
		db:  db,
		log: log.With().Str("component", "journal").Logger(),
		now: time.Now,
	}, nil
}

// Create derives the trade's metrics and stores raw and derived fields in a
// single insert. Invalid input is rejected before anything is written.
func (j *SQLite) Create(ctx context.Context, in TradeInput) (metrics.Trade, error) {
	t, err := in.Trade()
	if err != nil {
		return metrics.Trade{}, err
	}

	now := j.now().UTC()
	t.ID = id.NewAt(now)
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CreatedAt, t.UpdatedAt, t.Date, t.Asset, string(t.Direction),
		t.EntryPrice, t.ExitPrice, t.PositionSize, t.Commission, nullString(t.Notes),
		t.GrossPL, t.NetPL, t.ReturnPercent, t.IsWin,
	)
	if err != nil {
		return metrics.Trade{}, fmt.Errorf("insert trade: %w", err)
	}

	j.log.Info().
		Str("id", t.ID).
		Str("asset", t.Asset).
		Str("direction", string(t.Direction)).
		Float64("net_pl", t.NetPL).
		Msg("Trade created")

	return t, nil
}

// Update replaces every raw field of trade id and recomputes the derived ones
// in the same statement, so the stored row is never half updated.
func (j *SQLite) Update(ctx context.Context, tradeID string, in TradeInput) (metrics.Trade, error) {
	t, err := in.Trade()
	if err != nil {
		return metrics.Trade{}, err
	}

	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			updated_at = ?, date = ?, asset = ?, direction = ?,
			entry_price = ?, exit_price = ?, position_size = ?, commission = ?, notes = ?,
			gross_pl = ?, net_pl = ?, return_pct = ?, is_win = ?
		WHERE id = ?`,
		j.now().UTC(), t.Date, t.Asset, string(t.Direction),
		t.EntryPrice, t.ExitPrice, t.PositionSize, t.Commission, nullString(t.Notes),
		t.GrossPL, t.NetPL, t.ReturnPercent, t.IsWin,
		tradeID,
	)
	if err != nil {
		return metrics.Trade{}, fmt.Errorf("update trade: %w", err)
	}
	if err := expectOne(res, tradeID); err != nil {
		return metrics.Trade{}, err
	}

	j.log.Info().Str("id", tradeID).Float64("net_pl", t.NetPL).Msg("Trade updated")

	return j.Get(ctx, tradeID)
}

// Delete removes trade id.
func (j *SQLite) Delete(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if err := expectOne(res, tradeID); err != nil {
		return err
	}

	j.log.Info().Str("id", tradeID).Msg("Trade deleted")
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func expectOne(res sql.Result, tradeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
