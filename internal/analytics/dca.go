package analytics

import (
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// DCASummary summarizes a contribution-based run against total capital invested
type DCASummary struct {
	TotalInvested    float64 `json:"total_invested"`
	FinalValue       float64 `json:"final_value"`
	TotalReturn      float64 `json:"total_return"`
	TotalReturnPct   float64 `json:"total_return_pct"`
	BestReturnPct    float64 `json:"best_return_pct"`
	WorstReturnPct   float64 `json:"worst_return_pct"`
	CurrentReturnPct float64 `json:"current_return_pct"`
}

// SummarizeDCA relates the value series to invested capital. Each day's
// return is measured against the capital deployed up to that day, so early
// days are not compared with contributions that had not happened yet.
func SummarizeDCA(series []types.TimePoint, totalInvested float64) DCASummary {
	summary := DCASummary{TotalInvested: totalInvested}
	if len(series) == 0 || totalInvested <= 0 {
		return summary
	}

	summary.FinalValue = series[len(series)-1].Value
	summary.TotalReturn = summary.FinalValue - totalInvested
	summary.TotalReturnPct = summary.TotalReturn / totalInvested * 100

	first := true
	var best, worst float64
	for _, p := range series {
		invested := p.Invested
		if invested <= 0 {
			// Series without invested tracking compare against the
			// run total.
			invested = totalInvested
		}
		returnPct := (p.Value - invested) / invested * 100
		if first || returnPct > best {
			best = returnPct
		}
		if first || returnPct < worst {
			worst = returnPct
		}
		first = false
	}
	summary.BestReturnPct = best
	summary.WorstReturnPct = worst
	summary.CurrentReturnPct = summary.TotalReturnPct

	return summary
}
