package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// countingProvider records how many times each symbol was loaded
type countingProvider struct {
	bars  map[string][]types.PriceBar
	calls map[string]int
}

func newCountingProvider() *countingProvider {
	return &countingProvider{
		bars:  make(map[string][]types.PriceBar),
		calls: make(map[string]int),
	}
}

func (p *countingProvider) GetName() string { return "Counting Provider" }

func (p *countingProvider) GetSeries(symbol string, start, end time.Time) ([]types.PriceBar, error) {
	p.calls[symbol]++
	bars, ok := p.bars[symbol]
	if !ok {
		return nil, ErrNoData
	}
	return bars, nil
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	assert.Equal(t, 0, cache.Size())

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	bars := []types.PriceBar{{Date: date(2023, 1, 3), Close: 101}}
	cache.Set("AAPL|2023-01-01|2023-01-31", bars)
	assert.Equal(t, 1, cache.Size())

	got, ok := cache.Get("AAPL|2023-01-01|2023-01-31")
	require.True(t, ok)
	require.Len(t, got, 1)

	// The cache hands out copies, not its internal slice.
	got[0].Close = 0
	again, _ := cache.Get("AAPL|2023-01-01|2023-01-31")
	assert.Equal(t, 101.0, again[0].Close)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestCachedProvider_LoadsOnce(t *testing.T) {
	inner := newCountingProvider()
	inner.bars["AAPL"] = []types.PriceBar{{Date: date(2023, 1, 3), Close: 101}}

	provider := NewCachedProvider(inner)

	start, end := date(2023, 1, 1), date(2023, 1, 31)
	for i := 0; i < 3; i++ {
		bars, err := provider.GetSeries("AAPL", start, end)
		require.NoError(t, err)
		require.Len(t, bars, 1)
	}
	assert.Equal(t, 1, inner.calls["AAPL"])

	// A different range is a different cache key.
	_, err := provider.GetSeries("AAPL", start, date(2023, 2, 28))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["AAPL"])
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := newCountingProvider()
	provider := NewCachedProvider(inner)

	start, end := date(2023, 1, 1), date(2023, 1, 31)
	_, err := provider.GetSeries("NOPE", start, end)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = provider.GetSeries("NOPE", start, end)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 2, inner.calls["NOPE"])
}

func TestCachedProvider_GetName(t *testing.T) {
	provider := NewCachedProvider(newCountingProvider())
	assert.Equal(t, "Counting Provider (cached)", provider.GetName())
}
