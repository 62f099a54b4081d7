package indicators

import "github.com/ducminhle1904/portfolio-backtest/pkg/types"

// SupportResistance computes rolling support and resistance levels from the
// daily lows and highs.
type SupportResistance struct {
	period int
}

// NewSupportResistance creates a new support/resistance calculator with the
// given rolling window
func NewSupportResistance(period int) *SupportResistance {
	return &SupportResistance{period: period}
}

// Series computes the rolling min of lows (support) and rolling max of highs
// (resistance) for every bar. Values before one full window are NaN.
func (sr *SupportResistance) Series(bars []types.PriceBar) (support, resistance []float64) {
	support = nanSeries(len(bars))
	resistance = nanSeries(len(bars))

	if len(bars) < sr.period {
		return support, resistance
	}

	for i := sr.period - 1; i < len(bars); i++ {
		low := bars[i].Low
		high := bars[i].High
		for j := i - sr.period + 1; j < i; j++ {
			if bars[j].Low < low {
				low = bars[j].Low
			}
			if bars[j].High > high {
				high = bars[j].High
			}
		}
		support[i] = low
		resistance[i] = high
	}

	return support, resistance
}
