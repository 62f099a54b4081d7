package indicators

// BollingerBands represents the Bollinger Bands indicator
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands instance with the given
// period and standard deviation multiplier
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Series computes the upper, middle, and lower bands for every index.
// Values before one full rolling window are NaN.
func (bb *BollingerBands) Series(prices []float64) (upper, middle, lower []float64) {
	upper = nanSeries(len(prices))
	middle = nanSeries(len(prices))
	lower = nanSeries(len(prices))

	if len(prices) < bb.period {
		return upper, middle, lower
	}

	for i := bb.period - 1; i < len(prices); i++ {
		window := prices[i-bb.period+1 : i+1]
		mean := sma(window)
		stdDev := sampleStdDev(window, mean)

		middle[i] = mean
		upper[i] = mean + bb.stdDevMultiple*stdDev
		lower[i] = mean - bb.stdDevMultiple*stdDev
	}

	return upper, middle, lower
}
