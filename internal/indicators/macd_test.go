package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMACD_Series_Lengths(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100.0 + math.Sin(float64(i)/5.0)*10.0
	}

	macdLine, signalLine, histogram := macd.Series(prices)
	assert.Len(t, macdLine, len(prices))
	assert.Len(t, signalLine, len(prices))
	assert.Len(t, histogram, len(prices))

	for i := range prices {
		assert.InDelta(t, macdLine[i]-signalLine[i], histogram[i], 1e-9)
	}
}

func TestMACD_Series_SeededFromFirstPrice(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := []float64{100, 101, 102, 103}
	macdLine, signalLine, _ := macd.Series(prices)

	// Both EMAs start at the first price, so the MACD line starts at zero.
	assert.Equal(t, 0.0, macdLine[0])
	assert.Equal(t, 0.0, signalLine[0])
}

func TestMACD_Series_Empty(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	macdLine, signalLine, histogram := macd.Series(nil)
	assert.Nil(t, macdLine)
	assert.Nil(t, signalLine)
	assert.Nil(t, histogram)
}

func TestMACD_Series_UptrendPositive(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 80)
	for i := range prices {
		prices[i] = 100.0 + float64(i)*2.0
	}

	macdLine, _, _ := macd.Series(prices)

	// In a sustained uptrend the fast EMA stays above the slow EMA.
	assert.Greater(t, macdLine[len(macdLine)-1], 0.0)
}

func TestMACD_IsGoldenCross(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	assert.True(t, macd.IsGoldenCross(-0.5, 0.0, 0.5, 0.0))
	assert.True(t, macd.IsGoldenCross(0.0, 0.0, 0.5, 0.0))

	// Already above: no cross.
	assert.False(t, macd.IsGoldenCross(0.5, 0.0, 0.6, 0.0))

	// Crossing downward: no cross.
	assert.False(t, macd.IsGoldenCross(0.5, 0.0, -0.5, 0.0))

	// Touching from above without crossing.
	assert.False(t, macd.IsGoldenCross(-0.5, 0.0, 0.0, 0.0))
}
