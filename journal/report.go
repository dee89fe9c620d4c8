package journal

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradejournal/metrics"
)

// PrintPeriodReport writes a plain-text summary of r.
func PrintPeriodReport(w io.Writer, r PeriodReport) {
	s := r.Stats

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", r.Title)
	fmt.Fprintln(w, "==================================================")
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Period:        %s .. %s\n", r.Start.Format("2006-01-02"), r.End.Add(-time.Nanosecond).Format("2006-01-02"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", s.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Average Win:   %s\n", metrics.FormatCurrency(s.AverageWin))
	fmt.Fprintf(w, "Average Loss:  $%.2f\n", s.AverageLoss)
	fmt.Fprintf(w, "Risk/Reward:   %.2f\n", s.RiskRewardRatio)
	fmt.Fprintf(w, "Largest Win:   %s\n", metrics.FormatCurrency(s.LargestWin))
	fmt.Fprintf(w, "Largest Loss:  %s\n", metrics.FormatCurrency(s.LargestLoss))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %.2f\n", r.StartBalance)
	fmt.Fprintf(w, "End Balance:   %.2f\n", r.EndBalance)
	fmt.Fprintf(w, "Gross P/L:     %s\n", metrics.FormatCurrency(s.TotalGrossProfit))
	fmt.Fprintf(w, "Commission:    $%.2f\n", s.TotalCommission)
	fmt.Fprintf(w, "Net P/L:       %s\n", metrics.FormatCurrency(s.TotalNetPL))
	if r.MaxDD > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f (%.2f%%)\n", r.MaxDD, r.MaxDDPct)
	}

	fmt.Fprintln(w)
}

// PrintTrades writes trades as an aligned table.
func PrintTrades(w io.Writer, trades []metrics.Trade) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "DATE\tASSET\tDIR\tENTRY\tEXIT\tSIZE\tNET P/L\tRETURN\tID\n")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\t%s\t%s\t%s\n",
			t.Date.Format("2006-01-02"),
			t.Asset,
			t.Direction,
			t.EntryPrice,
			t.ExitPrice,
			t.PositionSize,
			metrics.FormatCurrency(t.NetPL),
			metrics.FormatPercent(t.ReturnPercent),
			t.ID,
		)
	}
	return tw.Flush()
}

// PrintEquityCurve writes one line per equity point.
func PrintEquityCurve(w io.Writer, curve []metrics.EquityPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "DATE\tEQUITY\t\n")
	for _, p := range curve {
		fmt.Fprintf(tw, "%s\t%.2f\t\n", p.Date.Format("2006-01-02"), p.Equity)
	}
	return tw.Flush()
}
