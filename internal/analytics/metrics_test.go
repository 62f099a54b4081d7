package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

func makeSeries(startDate time.Time, values []float64) []types.TimePoint {
	series := make([]types.TimePoint, len(values))
	for i, v := range values {
		series[i] = types.TimePoint{
			Date:          startDate.AddDate(0, 0, i),
			Value:         v,
			HoldingsValue: v,
		}
	}
	return series
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})
	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestDailyReturns_ZeroValue(t *testing.T) {
	returns := DailyReturns([]float64{100, 0, 50})
	assert.InDelta(t, -1.0, returns[0], 1e-9)
	assert.Equal(t, 0.0, returns[1])
}

func TestDailyReturns_TooShort(t *testing.T) {
	assert.Nil(t, DailyReturns([]float64{100}))
	assert.Nil(t, DailyReturns(nil))
}

func TestTotalReturn(t *testing.T) {
	assert.InDelta(t, 50.0, TotalReturn(100, 150), 1e-9)
	assert.InDelta(t, -25.0, TotalReturn(100, 75), 1e-9)
	assert.Equal(t, 0.0, TotalReturn(0, 150))
}

func TestAnnualizedReturn_OneYear(t *testing.T) {
	// Over exactly 252 trading days the annualized return equals the total.
	got := AnnualizedReturn(100, 121, 252)
	assert.InDelta(t, 21.0, got, 1e-9)
}

func TestAnnualizedReturn_TwoYears(t *testing.T) {
	// 21% over 504 trading days compounds to 10% per year.
	got := AnnualizedReturn(100, 121, 504)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestAnnualizedReturn_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, AnnualizedReturn(0, 100, 252))
	assert.Equal(t, 0.0, AnnualizedReturn(100, 0, 252))
	assert.Equal(t, 0.0, AnnualizedReturn(100, 110, 0))
}

func TestAnnualizedVolatility_ConstantReturns(t *testing.T) {
	returns := []float64{0.01, 0.01, 0.01, 0.01}
	assert.Equal(t, 0.0, AnnualizedVolatility(returns))
}

func TestAnnualizedVolatility_KnownValue(t *testing.T) {
	// Sample stdev of {0.01, -0.01} is ~0.0141421.
	returns := []float64{0.01, -0.01}
	expected := math.Sqrt(0.0002) * math.Sqrt(252) * 100
	assert.InDelta(t, expected, AnnualizedVolatility(returns), 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	values := []float64{100, 120, 90, 110, 80, 130}

	dd, peakIdx, troughIdx := MaxDrawdown(values)
	assert.InDelta(t, -(120.0-80.0)/120.0*100, dd, 1e-9)
	assert.Equal(t, 1, peakIdx)
	assert.Equal(t, 4, troughIdx)
}

func TestMaxDrawdown_NonDecreasing(t *testing.T) {
	dd, _, _ := MaxDrawdown([]float64{100, 100, 105, 110})
	assert.Equal(t, 0.0, dd)
}

func TestSharpeRatio_ZeroDeviation(t *testing.T) {
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0))
}

func TestSharpeRatio_Sign(t *testing.T) {
	gains := []float64{0.01, 0.02, 0.01, 0.015}
	losses := []float64{-0.01, -0.02, -0.01, -0.015}

	assert.Greater(t, SharpeRatio(gains, 0), 0.0)
	assert.Less(t, SharpeRatio(losses, 0), 0.0)
}

func TestSortinoRatio_NoDownside(t *testing.T) {
	// Without below-target returns the downside deviation is zero.
	assert.Equal(t, 0.0, SortinoRatio([]float64{0.01, 0.02, 0.01}, 0, 0))
}

func TestSortinoRatio_WithDownside(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, -0.02}
	sortino := SortinoRatio(returns, 0, 0)
	assert.Greater(t, sortino, 0.0)

	// Sortino penalizes only downside, so it exceeds Sharpe here.
	assert.Greater(t, sortino, SharpeRatio(returns, 0))
}

func TestPositiveRate(t *testing.T) {
	assert.InDelta(t, 50.0, PositiveRate([]float64{0.01, -0.01, 0.02, 0.0}), 1e-9)
	assert.Equal(t, 0.0, PositiveRate(nil))
}

func TestCompute_EmptySeries(t *testing.T) {
	metrics := Compute(nil)
	assert.Equal(t, 0.0, metrics.TotalReturnPct)
	assert.Equal(t, 0.0, metrics.SharpeRatio)
}

func TestCompute_FullSeries(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	series := makeSeries(start, []float64{10000, 10100, 9900, 10200, 10500})

	metrics := Compute(series)
	assert.InDelta(t, 5.0, metrics.TotalReturnPct, 1e-9)
	assert.LessOrEqual(t, metrics.MaxDrawdownPct, 0.0)
	assert.Greater(t, metrics.VolatilityPct, 0.0)
	assert.Equal(t, start.AddDate(0, 0, 1), metrics.MaxDrawdownPeakDate)
	assert.Equal(t, start.AddDate(0, 0, 2), metrics.MaxDrawdownTroughDate)
}

func TestAnnualReturns_GroupsByYear(t *testing.T) {
	series := []types.TimePoint{
		{Date: time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC), Value: 10000},
		{Date: time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), Value: 11000},
		{Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Value: 11500},
		{Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Value: 10350},
	}

	annual := AnnualReturns(series)
	assert.Len(t, annual, 2)

	assert.Equal(t, 2022, annual[0].Year)
	assert.InDelta(t, 10.0, annual[0].AnnualReturn, 1e-9)

	assert.Equal(t, 2023, annual[1].Year)
	assert.InDelta(t, -10.0, annual[1].AnnualReturn, 1e-9)
}

func TestSummarizeDCA(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	series := makeSeries(start, []float64{10000, 12000, 9000, 11000})

	summary := SummarizeDCA(series, 10000)
	assert.Equal(t, 11000.0, summary.FinalValue)
	assert.InDelta(t, 10.0, summary.TotalReturnPct, 1e-9)
	assert.InDelta(t, 20.0, summary.BestReturnPct, 1e-9)
	assert.InDelta(t, -10.0, summary.WorstReturnPct, 1e-9)
}

func TestSummarizeDCA_InvestedToDate(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	// Flat prices with monthly contributions: value always equals the
	// capital deployed so far, so no day shows a gain or a loss.
	var series []types.TimePoint
	for i := 0; i < 6; i++ {
		invested := 10000.0 + float64(i)*1000
		series = append(series, types.TimePoint{
			Date:     start.AddDate(0, i, 0),
			Value:    invested,
			Invested: invested,
		})
	}

	summary := SummarizeDCA(series, 15000)
	assert.InDelta(t, 0.0, summary.TotalReturnPct, 1e-9)
	assert.InDelta(t, 0.0, summary.BestReturnPct, 1e-9)
	assert.InDelta(t, 0.0, summary.WorstReturnPct, 1e-9)
}

func TestSummarizeDCA_PerDayReturns(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	series := []types.TimePoint{
		{Date: start, Value: 10000, Invested: 10000},
		{Date: start.AddDate(0, 0, 1), Value: 10500, Invested: 10000},
		{Date: start.AddDate(0, 0, 2), Value: 10800, Invested: 11000},
		{Date: start.AddDate(0, 0, 3), Value: 11550, Invested: 11000},
	}

	summary := SummarizeDCA(series, 11000)
	// Day two is +5% on 10000 invested; day three is -1.82% on 11000.
	assert.InDelta(t, 5.0, summary.BestReturnPct, 1e-9)
	assert.InDelta(t, (10800.0-11000.0)/11000.0*100, summary.WorstReturnPct, 1e-9)
	assert.InDelta(t, 5.0, summary.TotalReturnPct, 1e-9)
}

func TestSummarizeDCA_Degenerate(t *testing.T) {
	summary := SummarizeDCA(nil, 10000)
	assert.Equal(t, 0.0, summary.FinalValue)

	summary = SummarizeDCA(makeSeries(time.Now(), []float64{100}), 0)
	assert.Equal(t, 0.0, summary.TotalReturnPct)
}
