package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

// run executes the root command with fresh flag state and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func onlyTrade(t *testing.T, db string) metrics.Trade {
	t.Helper()

	j, err := journal.NewSQLite(db, zerolog.Nop())
	require.NoError(t, err)
	defer j.Close()

	trades, err := j.Find(context.Background(), journal.Query{})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	return trades[0]
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tradejournal version "+version)
}

func TestTradeLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")

	out, err := run(t, "--db", db, "add",
		"--date", "2024-01-15", "--asset", "AAPL", "--dir", "long",
		"--entry", "100", "--exit", "110", "--size", "10", "--commission", "5",
		"--notes", "opening range breakout")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Recorded trade")
	assert.Contains(t, out, "Gross +$100.00  Net +$95.00  Return +10.00%")

	tr := onlyTrade(t, db)
	assert.Contains(t, out, tr.ID)

	out, err = run(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "+$95.00")

	out, err = run(t, "--db", db, "show", tr.ID)
	require.NoError(t, err)
	assert.Contains(t, out, ":NET_PL: 95.00")
	assert.Contains(t, out, "opening range breakout")

	out, err = run(t, "--db", db, "edit", tr.ID, "--exit", "90")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Updated trade "+tr.ID)
	assert.Contains(t, out, "Net $-105.00")

	edited := onlyTrade(t, db)
	assert.Equal(t, "AAPL", edited.Asset)
	assert.Equal(t, 5.0, edited.Commission)
	require.NotNil(t, edited.Notes)
	assert.False(t, edited.IsWin)

	out, err = run(t, "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "All Time")
	assert.Contains(t, out, "Trades:        1")
	assert.Contains(t, out, "Net P/L:       $-105.00")
	assert.Contains(t, out, "End Balance:   2095.00")

	out, err = run(t, "--db", db, "stats", "--org")
	require.NoError(t, err)
	assert.Contains(t, out, "* PERFORMANCE: All Time")

	out, err = run(t, "--db", db, "equity", "--start", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "895.00")

	csvPath := filepath.Join(t.TempDir(), "trades.csv")
	out, err = run(t, "--db", db, "export", "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 trades")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, tr.ID, rows[1][0])

	out, err = run(t, "--db", db, "rm", tr.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted trade")

	_, err = run(t, "--db", db, "show", tr.ID)
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestAddRejectsInvalid(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")

	_, err := run(t, "--db", db, "add", "--asset", "AAPL", "--dir", "long",
		"--entry", "0", "--exit", "110", "--size", "10")
	assert.ErrorIs(t, err, metrics.ErrDivisionByZero)

	_, err = run(t, "--db", db, "add", "--asset", "AAPL", "--dir", "sideways",
		"--entry", "100", "--exit", "110", "--size", "10")
	assert.ErrorIs(t, err, metrics.ErrInvalidDirection)

	_, err = run(t, "--db", db, "add", "--asset", "AAPL", "--dir", "long", "--entry", "100")
	assert.Error(t, err)

	_, err = run(t, "--db", db, "list", "--window", "decade")
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tj.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, ":3001")

	out, err = run(t, "--config", path, "--db", filepath.Join(t.TempDir(), "j.db"), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Start Balance: 2200.00")
}

func TestExportReportsWriteFailure(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	_, err := run(t, "--db", db, "add", "--date", "2024-01-15", "--asset", "AAPL",
		"--dir", "long", "--entry", "100", "--exit", "110", "--size", "10")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "export", "-o", filepath.Join(t.TempDir(), "missing", "trades.csv"))
	assert.Error(t, err)
	assert.NotContains(t, out, "Exported")

	if _, statErr := os.Stat("/dev/full"); statErr == nil {
		out, err = run(t, "--db", db, "export", "-o", "/dev/full")
		assert.Error(t, err)
		assert.NotContains(t, out, "Exported")
	}

	out, err = run(t, "--db", db, "export", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.NotContains(t, out, "Exported")
}
