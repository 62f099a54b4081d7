package indicators

// MACD calculates the moving-average-convergence-divergence indicator
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with specified fast, slow, and signal periods
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Series computes the MACD line, signal line, and histogram for every index.
// The lines are EMA-seeded from the first price, so values exist from index 0
// but stabilize only after the slow period.
func (m *MACD) Series(prices []float64) (macdLine, signalLine, histogram []float64) {
	if len(prices) == 0 {
		return nil, nil, nil
	}

	fastEMA := EMASeries(prices, m.fastPeriod)
	slowEMA := EMASeries(prices, m.slowPeriod)

	macdLine = make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine = EMASeries(macdLine, m.signalPeriod)

	histogram = make([]float64, len(prices))
	for i := range prices {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return macdLine, signalLine, histogram
}

// IsGoldenCross reports a bullish crossover: the MACD line crossing the
// signal line from below between the previous and current bar.
func (m *MACD) IsGoldenCross(prevMACD, prevSignal, currMACD, currSignal float64) bool {
	return prevMACD <= prevSignal && currMACD > currSignal
}
