package journal

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/tradejournal/metrics"
)

var csvHeader = []string{
	"id", "date", "asset", "direction",
	"entry_price", "exit_price", "position_size", "commission",
	"gross_pl", "net_pl", "return_pct", "is_win", "notes",
}

// WriteCSV writes trades, header first, in the order given.
func WriteCSV(w io.Writer, trades []metrics.Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		notes := ""
		if t.Notes != nil {
			notes = *t.Notes
		}
		err := cw.Write([]string{
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Asset,
			string(t.Direction),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.PositionSize),
			f(t.Commission),
			f(t.GrossPL),
			f(t.NetPL),
			f(t.ReturnPercent),
			strconv.FormatBool(t.IsWin),
			notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
