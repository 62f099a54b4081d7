package analytics

import (
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// AnnualReturn is one calendar year's performance slice
type AnnualReturn struct {
	Year         int     `json:"year"`
	StartValue   float64 `json:"start_value"`
	EndValue     float64 `json:"end_value"`
	AnnualReturn float64 `json:"annual_return"`
	Volatility   float64 `json:"volatility"`
}

// AnnualReturns groups the value series by calendar year and computes each
// year's total return and intra-year annualized volatility
func AnnualReturns(series []types.TimePoint) []AnnualReturn {
	if len(series) == 0 {
		return nil
	}

	var annual []AnnualReturn
	yearStart := 0
	for i := 1; i <= len(series); i++ {
		if i < len(series) && series[i].Date.Year() == series[yearStart].Date.Year() {
			continue
		}

		yearSeries := series[yearStart:i]
		values := make([]float64, len(yearSeries))
		for j, p := range yearSeries {
			values[j] = p.Value
		}

		annual = append(annual, AnnualReturn{
			Year:         yearSeries[0].Date.Year(),
			StartValue:   values[0],
			EndValue:     values[len(values)-1],
			AnnualReturn: TotalReturn(values[0], values[len(values)-1]),
			Volatility:   AnnualizedVolatility(DailyReturns(values)),
		})

		yearStart = i
	}

	return annual
}
