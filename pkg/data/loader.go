package data

import (
	"log"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// SeriesResult is the per-symbol outcome of a multi-symbol load. A failed
// symbol carries its error and an empty series; callers decide whether the
// run can proceed with partial data.
type SeriesResult struct {
	Symbol string
	Bars   []types.PriceBar
	Err    error
}

// OK reports whether the symbol loaded successfully
func (r SeriesResult) OK() bool {
	return r.Err == nil
}

// LoadAll loads the series for every symbol, collecting per-symbol results
// instead of failing on the first error. The returned map contains only the
// symbols that loaded successfully.
func LoadAll(provider Provider, symbols []string, start, end time.Time) (map[string][]types.PriceBar, []SeriesResult) {
	seriesBySymbol := make(map[string][]types.PriceBar, len(symbols))
	results := make([]SeriesResult, 0, len(symbols))

	for _, symbol := range symbols {
		bars, err := provider.GetSeries(symbol, start, end)
		if err != nil {
			log.Printf("⚠️ No data for %s, continuing without it: %v", symbol, err)
			results = append(results, SeriesResult{Symbol: symbol, Err: err})
			continue
		}

		seriesBySymbol[symbol] = bars
		results = append(results, SeriesResult{Symbol: symbol, Bars: bars})
	}

	return seriesBySymbol, results
}
