package journal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/metrics"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting
// into a journal: structured facts in a PROPERTIES drawer, then the notes and
// empty review headings.
func FormatTradeOrg(t metrics.Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Asset, t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf(":ASSET: %s\n", t.Asset))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":SIZE: %g\n", t.PositionSize))
	b.WriteString(fmt.Sprintf(":COMMISSION: %.2f\n", t.Commission))
	b.WriteString(fmt.Sprintf(":GROSS_PL: %.2f\n", t.GrossPL))
	b.WriteString(fmt.Sprintf(":NET_PL: %.2f\n", t.NetPL))
	b.WriteString(fmt.Sprintf(":RETURN_PCT: %.2f\n", t.ReturnPercent))
	b.WriteString(fmt.Sprintf(":WIN: %t\n", t.IsWin))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if t.Notes != nil {
		b.WriteString(*t.Notes)
		b.WriteString("\n")
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []metrics.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}

// PeriodReport is everything the period summaries print.
type PeriodReport struct {
	Title     string
	Generated time.Time
	Start     time.Time
	End       time.Time

	Stats metrics.PeriodStats
	Days  []metrics.DailyStats

	StartBalance float64
	EndBalance   float64
	MaxDD        float64
	MaxDDPct     float64
}

// NewPeriodReport computes stats, the daily rollup and the equity curve for
// trades in one pass over the snapshot.
func NewPeriodReport(title string, w Window, now time.Time, trades []metrics.Trade, startBalance float64) PeriodReport {
	curve := metrics.BuildEquityCurveAt(trades, startBalance, now)
	dd, ddPct := metrics.MaxDrawdown(curve)
	start, end := w.Bounds(now)

	return PeriodReport{
		Title:        title,
		Generated:    now,
		Start:        start,
		End:          end,
		Stats:        metrics.Aggregate(trades),
		Days:         metrics.Daily(trades),
		StartBalance: startBalance,
		EndBalance:   curve[len(curve)-1].Equity,
		MaxDD:        dd,
		MaxDDPct:     ddPct,
	}
}

var periodOrgFuncs = template.FuncMap{
	"money": metrics.FormatCurrency,
	"pct":   metrics.FormatPercent,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "(open)"
		}
		return t.Format("2006-01-02")
	},
}

var periodOrgTmpl = template.Must(template.New("period").Funcs(periodOrgFuncs).Parse(PeriodOrgTemplate))

// FormatPeriodOrg renders a PeriodReport as an Org-mode section.
func FormatPeriodOrg(r PeriodReport) (string, error) {
	buf := new(bytes.Buffer)
	if err := periodOrgTmpl.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const PeriodOrgTemplate = `* PERFORMANCE: {{.Title}}
:PROPERTIES:
:START_DATE:  {{date .Start}}
:END_DATE:    {{date .End}}
:START_BAL:   {{printf "%.2f" .StartBalance}}
:END_BAL:     {{printf "%.2f" .EndBalance}}
:NET_PL:      {{printf "%.2f" .Stats.TotalNetPL}}
:TRADES:      {{.Stats.TotalTrades}}
:WINS:        {{.Stats.WinningTrades}}
:LOSSES:      {{.Stats.LosingTrades}}
:WIN_RATE:    {{printf "%.2f" .Stats.WinRate}}
:RR:          {{printf "%.2f" .Stats.RiskRewardRatio}}
:MAX_DD:      {{printf "%.2f" .MaxDD}}
:CREATED:     [{{.Generated.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Stats.TotalNetPL}}*
- Gross P/L:        *{{money .Stats.TotalGrossProfit}}*
- Commission:       *{{printf "$%.2f" .Stats.TotalCommission}}*
- Win Rate:         *{{printf "%.1f" .Stats.WinRate}}%*
- Average Win:      *{{money .Stats.AverageWin}}*
- Average Loss:     *{{printf "$%.2f" .Stats.AverageLoss}}*
- Risk/Reward:      *{{printf "%.2f" .Stats.RiskRewardRatio}}*
- Largest Win:      *{{money .Stats.LargestWin}}*
- Largest Loss:     *{{money .Stats.LargestLoss}}*
- Max Drawdown:     *{{printf "%.2f" .MaxDD}} ({{pct .MaxDDPct}})*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Stats.WinningTrades}} |
| Losses  | {{.Stats.LosingTrades}} |
| Total   | {{.Stats.TotalTrades}} |

{{- if .Days }}

** Daily
| Date | Trades | W | L | Net P/L | Win % |
|------+--------+---+---+---------+-------|
{{- range .Days }}
| {{.Date}} | {{.TotalTrades}} | {{.WinningTrades}} | {{.LosingTrades}} | {{printf "%.2f" .NetPL}} | {{printf "%.1f" .WinRate}} |
{{- end }}
{{- end }}
`
