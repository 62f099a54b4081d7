package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// BenchmarkComparison relates a portfolio series to a buy-and-hold benchmark
type BenchmarkComparison struct {
	BenchmarkSymbol         string  `json:"benchmark_symbol"`
	BenchmarkReturnPct      float64 `json:"benchmark_return_pct"`
	BenchmarkAnnualizedPct  float64 `json:"benchmark_annualized_return_pct"`
	BenchmarkVolatilityPct  float64 `json:"benchmark_volatility_pct"`
	BenchmarkSharpeRatio    float64 `json:"benchmark_sharpe_ratio"`
	BenchmarkMaxDrawdownPct float64 `json:"benchmark_max_drawdown_pct"`
	ExcessReturnPct         float64 `json:"excess_return_pct"`
	TrackingErrorPct        float64 `json:"tracking_error_pct"`
	InformationRatio        float64 `json:"information_ratio"`
	Correlation             float64 `json:"correlation"`
}

// BenchmarkSeries converts a benchmark price series into a buy-and-hold value
// curve starting from initialAmount
func BenchmarkSeries(bars []types.PriceBar, initialAmount float64) []types.TimePoint {
	if len(bars) == 0 || bars[0].Close <= 0 {
		return nil
	}

	shares := initialAmount / bars[0].Close
	series := make([]types.TimePoint, len(bars))
	for i, bar := range bars {
		value := shares * bar.Close
		series[i] = types.TimePoint{
			Date:          bar.Date,
			Value:         value,
			HoldingsValue: value,
		}
	}
	return series
}

// CompareBenchmark computes the relative performance of the portfolio series
// against a benchmark value curve. Degenerate denominators (zero tracking
// error, too few points) resolve to 0.
func CompareBenchmark(symbol string, portfolio, benchmark []types.TimePoint) *BenchmarkComparison {
	if len(portfolio) < 2 || len(benchmark) < 2 {
		return nil
	}

	benchmarkMetrics := Compute(benchmark)

	portfolioReturn := TotalReturn(portfolio[0].Value, portfolio[len(portfolio)-1].Value)
	excessReturn := portfolioReturn - benchmarkMetrics.TotalReturnPct

	portfolioReturns, benchmarkReturns := alignedReturns(portfolio, benchmark)
	trackingError := TrackingError(portfolioReturns, benchmarkReturns)

	informationRatio := 0.0
	if trackingError != 0 {
		informationRatio = excessReturn / trackingError
	}

	correlation := 0.0
	if len(portfolioReturns) >= 2 {
		correlation = stat.Correlation(portfolioReturns, benchmarkReturns, nil)
		if math.IsNaN(correlation) {
			correlation = 0
		}
	}

	return &BenchmarkComparison{
		BenchmarkSymbol:         symbol,
		BenchmarkReturnPct:      benchmarkMetrics.TotalReturnPct,
		BenchmarkAnnualizedPct:  benchmarkMetrics.AnnualizedReturnPct,
		BenchmarkVolatilityPct:  benchmarkMetrics.VolatilityPct,
		BenchmarkSharpeRatio:    benchmarkMetrics.SharpeRatio,
		BenchmarkMaxDrawdownPct: benchmarkMetrics.MaxDrawdownPct,
		ExcessReturnPct:         excessReturn,
		TrackingErrorPct:        trackingError,
		InformationRatio:        informationRatio,
		Correlation:             correlation,
	}
}

// TrackingError computes the annualized standard deviation of the return
// differences, in percent
func TrackingError(portfolioReturns, benchmarkReturns []float64) float64 {
	n := len(portfolioReturns)
	if len(benchmarkReturns) < n {
		n = len(benchmarkReturns)
	}
	if n < 2 {
		return 0
	}

	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = portfolioReturns[i] - benchmarkReturns[i]
	}

	return stat.StdDev(diffs, nil) * math.Sqrt(TradingDaysPerYear) * 100
}

// alignedReturns truncates both series to their common length and computes
// daily returns for each
func alignedReturns(portfolio, benchmark []types.TimePoint) ([]float64, []float64) {
	n := len(portfolio)
	if len(benchmark) < n {
		n = len(benchmark)
	}

	portfolioValues := make([]float64, n)
	benchmarkValues := make([]float64, n)
	for i := 0; i < n; i++ {
		portfolioValues[i] = portfolio[i].Value
		benchmarkValues[i] = benchmark[i].Value
	}

	return DailyReturns(portfolioValues), DailyReturns(benchmarkValues)
}
