package metrics

import "sort"

// DailyStats rolls up the trades closed on one calendar day.
type DailyStats struct {
	Date            string  `json:"date"` // YYYY-MM-DD in the trade's location
	TotalTrades     int     `json:"totalTrades"`
	WinningTrades   int     `json:"winningTrades"`
	LosingTrades    int     `json:"losingTrades"`
	GrossProfit     float64 `json:"grossProfit"`
	TotalCommission float64 `json:"totalCommission"`
	NetPL           float64 `json:"netPL"`
	WinRate         float64 `json:"winRate"`
}

// Daily groups trades by date and returns one DailyStats per day with at
// least one trade, oldest first.
func Daily(trades []Trade) []DailyStats {
	byDay := make(map[string]*DailyStats)
	for _, t := range trades {
		key := t.Date.Format(dateLayout)
		d, ok := byDay[key]
		if !ok {
			d = &DailyStats{Date: key}
			byDay[key] = d
		}
		d.TotalTrades++
		if t.IsWin {
			d.WinningTrades++
		} else {
			d.LosingTrades++
		}
		d.GrossProfit += t.GrossPL
		d.TotalCommission += t.Commission
		d.NetPL += t.NetPL
	}

	out := make([]DailyStats, 0, len(byDay))
	for _, d := range byDay {
		d.WinRate = float64(d.WinningTrades) / float64(d.TotalTrades) * 100
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

