package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize performance for a period",
	Long: `Compute win rate, average win/loss, risk/reward, extremes and the
account balance for a reporting window.

Examples:
  tradejournal stats --window month
  tradejournal stats --window week --org >> journal.org`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the equity curve",
	Long: `Print the running account balance after each trade, oldest first,
starting from the configured balance.

Example:
  tradejournal equity --start 10000`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades to CSV",
	Long: `Write trades, oldest first, as CSV.

Examples:
  tradejournal export -o trades.csv
  tradejournal export --window year -o -`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	statsWindow string
	statsOrg    bool

	equityWindow string
	equityStart  float64

	exportWindow string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(exportCmd)

	statsCmd.Flags().StringVarP(&statsWindow, "window", "w", "all", "all, week, month or year")
	statsCmd.Flags().BoolVar(&statsOrg, "org", false, "render as an Org-mode section")

	equityCmd.Flags().StringVarP(&equityWindow, "window", "w", "all", "all, week, month or year")
	equityCmd.Flags().Float64Var(&equityStart, "start", 0, "starting balance (default from config)")

	exportCmd.Flags().StringVarP(&exportWindow, "window", "w", "all", "all, week, month or year")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "trades.csv", "output CSV file, - for stdout")
}

// findWindow loads the trades of a window in date order.
func findWindow(cmd *cobra.Command, window string, now time.Time) (journal.Window, []metrics.Trade, error) {
	w, err := journal.ParseWindow(window)
	if err != nil {
		return "", nil, err
	}

	j, err := openJournal()
	if err != nil {
		return "", nil, err
	}
	defer j.Close()

	q := w.Query(now)
	q.Ascending = true
	trades, err := j.Find(cmd.Context(), q)
	if err != nil {
		return "", nil, fmt.Errorf("query trades: %w", err)
	}
	return w, trades, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	w, trades, err := findWindow(cmd, statsWindow, now)
	if err != nil {
		return err
	}

	r := journal.NewPeriodReport(w.Label(), w, now, trades, cfg.Journal.StartingBalance)
	if !statsOrg {
		journal.PrintPeriodReport(cmd.OutOrStdout(), r)
		return nil
	}

	out, err := journal.FormatPeriodOrg(r)
	if err != nil {
		return fmt.Errorf("render org: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runEquity(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	_, trades, err := findWindow(cmd, equityWindow, now)
	if err != nil {
		return err
	}

	start := cfg.Journal.StartingBalance
	if cmd.Flags().Changed("start") {
		start = equityStart
	}

	curve := metrics.BuildEquityCurveAt(trades, start, now)
	return journal.PrintEquityCurve(cmd.OutOrStdout(), curve)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, trades, err := findWindow(cmd, exportWindow, time.Now().UTC())
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		if err := journal.WriteCSV(cmd.OutOrStdout(), trades); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	}

	if err := exportFile(exportOutput, trades); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(trades), exportOutput)
	return nil
}

func exportFile(path string, trades []metrics.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := journal.WriteCSV(f, trades); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
