// Package indicators computes technical indicators from daily price series.
// All transforms are pure: one aligned output series per indicator, with
// math.NaN() marking values inside the warm-up window. Downstream consumers
// must check IsValid before using a value.
package indicators

import "math"

// IsValid reports whether an indicator value is defined (outside warm-up)
func IsValid(v float64) bool {
	return !math.IsNaN(v)
}

// sma computes the simple moving average of the given values
func sma(values []float64) float64 {
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

// sampleStdDev computes the sample standard deviation around the given mean
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)-1))
}

// nanSeries returns a series of the given length filled with NaN
func nanSeries(n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = math.NaN()
	}
	return series
}

// EMASeries computes the exponential moving average over the whole series,
// seeded with the first value (alpha = 2/(period+1)).
func EMASeries(prices []float64, period int) []float64 {
	if len(prices) == 0 {
		return nil
	}

	alpha := 2.0 / (float64(period) + 1.0)
	series := make([]float64, len(prices))
	series[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		series[i] = alpha*prices[i] + (1-alpha)*series[i-1]
	}
	return series
}

// DailyReturnSeries computes day-over-day fractional returns.
// The first value is undefined.
func DailyReturnSeries(prices []float64) []float64 {
	series := nanSeries(len(prices))
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			series[i] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return series
}

// DrawdownSeries computes the fractional drawdown from the running peak:
// (close - runningMax) / runningMax. Always <= 0.
func DrawdownSeries(prices []float64) []float64 {
	series := make([]float64, len(prices))
	peak := math.Inf(-1)
	for i, price := range prices {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			series[i] = (price - peak) / peak
		}
	}
	return series
}
