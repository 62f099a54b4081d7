package indicators

import "math"

// RSI calculates the Relative Strength Index over a rolling window
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Period returns the configured lookback period
func (r *RSI) Period() int {
	return r.period
}

// Series computes the RSI for every index of the price series. Values before
// the warm-up window (period deltas) are NaN. An all-gain window yields 100.
func (r *RSI) Series(prices []float64) []float64 {
	series := nanSeries(len(prices))
	if len(prices) < r.period+1 {
		return series
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = math.Abs(change)
		}
	}

	for i := r.period; i < len(prices); i++ {
		avgGain := sma(gains[i-r.period+1 : i+1])
		avgLoss := sma(losses[i-r.period+1 : i+1])

		if avgLoss == 0 {
			series[i] = 100
			continue
		}

		rs := avgGain / avgLoss
		series[i] = 100 - (100 / (1 + rs))
	}

	return series
}
