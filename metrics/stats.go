package metrics

import "math"

// PeriodStats summarises an arbitrary set of trades. It is rebuilt from the
// trade list on every call and never stored.
type PeriodStats struct {
	TotalTrades   int `json:"totalTrades"`
	WinningTrades int `json:"winningTrades"`
	LosingTrades  int `json:"losingTrades"`

	TotalGrossProfit float64 `json:"totalGrossProfit"`
	TotalCommission  float64 `json:"totalCommission"`
	TotalNetPL       float64 `json:"totalNetPL"`

	WinRate         float64 `json:"winRate"`     // percent, 0..100
	AverageWin      float64 `json:"averageWin"`  // mean net P/L of winners
	AverageLoss     float64 `json:"averageLoss"` // magnitude, never negative
	RiskRewardRatio float64 `json:"riskRewardRatio"`

	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"` // most negative net P/L, or 0
}

// Aggregate reduces trades into PeriodStats. The trades must already carry
// their derived metrics. Winners and losers are split on IsWin, so a trade
// that netted exactly zero counts as a loss. An empty slice yields zero stats.
//
// RiskRewardRatio is 0 when there are no losses to compare against.
func Aggregate(trades []Trade) PeriodStats {
	var s PeriodStats
	if len(trades) == 0 {
		return s
	}

	var winSum, lossSum float64
	for _, t := range trades {
		s.TotalGrossProfit += t.GrossPL
		s.TotalCommission += t.Commission
		s.TotalNetPL += t.NetPL

		if t.IsWin {
			if s.WinningTrades == 0 || t.NetPL > s.LargestWin {
				s.LargestWin = t.NetPL
			}
			s.WinningTrades++
			winSum += t.NetPL
			continue
		}

		if s.LosingTrades == 0 || t.NetPL < s.LargestLoss {
			s.LargestLoss = t.NetPL
		}
		s.LosingTrades++
		lossSum += t.NetPL
	}

	s.TotalTrades = len(trades)
	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100

	if s.WinningTrades > 0 {
		s.AverageWin = winSum / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = math.Abs(lossSum / float64(s.LosingTrades))
	}
	if s.AverageLoss > 0 {
		s.RiskRewardRatio = s.AverageWin / s.AverageLoss
	}
	return s
}
