// Package analytics computes performance and risk metrics from a simulated
// portfolio value series. All results are derived values; nothing here is
// persisted independently of its source series.
package analytics

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// TradingDaysPerYear is the annualization base for volatility and ratios
const TradingDaysPerYear = 252.0

// RiskMetrics summarizes return and risk over a value series
type RiskMetrics struct {
	TotalReturnPct        float64   `json:"total_return_pct"`
	AnnualizedReturnPct   float64   `json:"annualized_return_pct"`
	VolatilityPct         float64   `json:"volatility_pct"`
	MaxDrawdownPct        float64   `json:"max_drawdown_pct"`
	MaxDrawdownPeakDate   time.Time `json:"max_drawdown_peak_date"`
	MaxDrawdownTroughDate time.Time `json:"max_drawdown_trough_date"`
	SharpeRatio           float64   `json:"sharpe_ratio"`
	SortinoRatio          float64   `json:"sortino_ratio"`
	PositiveRatePct       float64   `json:"positive_rate_pct"`
}

// Compute derives the full metric set from an ordered value series.
// Degenerate cases (zero deviation, empty series, zero start value) resolve
// to 0 rather than propagating a division fault.
func Compute(series []types.TimePoint) RiskMetrics {
	return ComputeWithRates(series, 0, 0)
}

// ComputeWithRates derives the metric set using the given annualized
// risk-free rate (Sharpe) and target return (Sortino), both as fractions.
func ComputeWithRates(series []types.TimePoint, riskFreeRate, targetReturn float64) RiskMetrics {
	var metrics RiskMetrics
	if len(series) == 0 {
		return metrics
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}
	returns := DailyReturns(values)

	start := values[0]
	end := values[len(values)-1]

	metrics.TotalReturnPct = TotalReturn(start, end)
	metrics.AnnualizedReturnPct = AnnualizedReturn(start, end, len(values))
	metrics.VolatilityPct = AnnualizedVolatility(returns)

	maxDD, peakIdx, troughIdx := MaxDrawdown(values)
	metrics.MaxDrawdownPct = maxDD
	metrics.MaxDrawdownPeakDate = series[peakIdx].Date
	metrics.MaxDrawdownTroughDate = series[troughIdx].Date

	metrics.SharpeRatio = SharpeRatio(returns, riskFreeRate)
	metrics.SortinoRatio = SortinoRatio(returns, riskFreeRate, targetReturn)
	metrics.PositiveRatePct = PositiveRate(returns)

	return metrics
}

// DailyReturns computes day-over-day fractional returns; days following a
// zero value contribute a zero return.
func DailyReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	return returns
}

// TotalReturn computes the percentage return between start and end values
func TotalReturn(start, end float64) float64 {
	if start <= 0 {
		return 0
	}
	return (end/start - 1) * 100
}

// AnnualizedReturn computes the CAGR in percent, annualized over the
// trading-day count rather than calendar years
func AnnualizedReturn(start, end float64, tradingDays int) float64 {
	if start <= 0 || end <= 0 || tradingDays <= 0 {
		return 0
	}
	return (math.Pow(end/start, TradingDaysPerYear/float64(tradingDays)) - 1) * 100
}

// AnnualizedVolatility computes the annualized sample standard deviation of
// daily returns, in percent
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear) * 100
}

// MaxDrawdown scans the series once with a running peak and returns the
// largest peak-to-subsequent-trough decline as a negative percentage, plus
// the peak and trough indices. A non-decreasing series yields exactly 0.
func MaxDrawdown(values []float64) (drawdownPct float64, peakIdx, troughIdx int) {
	if len(values) < 2 {
		return 0, 0, 0
	}

	peak := values[0]
	currentPeakIdx := 0
	maxDD := 0.0

	for i, value := range values {
		if value > peak {
			peak = value
			currentPeakIdx = i
		}

		dd := 0.0
		if peak > 0 {
			dd = (peak - value) / peak * 100
		}
		if dd > maxDD {
			maxDD = dd
			peakIdx = currentPeakIdx
			troughIdx = i
		}
	}

	return -maxDD, peakIdx, troughIdx
}

// SharpeRatio computes the annualized Sharpe ratio from daily returns and an
// annualized risk-free rate. Returns 0 when the deviation is 0.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - riskFreeRate/TradingDaysPerYear
	}

	mean := stat.Mean(excess, nil)
	stdDev := stat.StdDev(excess, nil)
	if stdDev == 0 {
		return 0
	}

	return mean / stdDev * math.Sqrt(TradingDaysPerYear)
}

// SortinoRatio computes the annualized Sortino ratio: mean excess return over
// the root-mean-square of below-target returns. Returns 0 when the downside
// deviation is 0.
func SortinoRatio(returns []float64, riskFreeRate, targetReturn float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - riskFreeRate/TradingDaysPerYear
	}
	meanExcess := stat.Mean(excess, nil)

	downsideSquares := 0.0
	for _, r := range returns {
		if downside := math.Min(0, r-targetReturn/TradingDaysPerYear); downside < 0 {
			downsideSquares += downside * downside
		}
	}
	downsideDev := math.Sqrt(downsideSquares / float64(len(returns)))
	if downsideDev == 0 {
		return 0
	}

	return meanExcess / downsideDev * math.Sqrt(TradingDaysPerYear)
}

// PositiveRate computes the percentage of days with strictly positive return
func PositiveRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	positive := 0
	for _, r := range returns {
		if r > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(returns)) * 100
}
