package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

func TestFilterByDateRange(t *testing.T) {
	bars := []types.PriceBar{
		{Date: date(2023, 1, 3), Close: 100},
		{Date: date(2023, 1, 4), Close: 101},
		{Date: date(2023, 1, 5), Close: 102},
	}

	// Boundaries are inclusive.
	filtered := FilterByDateRange(bars, date(2023, 1, 3), date(2023, 1, 4))
	require.Len(t, filtered, 2)
	assert.Equal(t, 100.0, filtered[0].Close)
	assert.Equal(t, 101.0, filtered[1].Close)

	assert.Empty(t, FilterByDateRange(bars, date(2024, 1, 1), date(2024, 12, 31)))
	assert.Empty(t, FilterByDateRange(nil, date(2023, 1, 1), date(2023, 1, 31)))
}

func TestValidateTimeSequence(t *testing.T) {
	ordered := []types.PriceBar{
		{Date: date(2023, 1, 3)},
		{Date: date(2023, 1, 4)},
	}
	assert.NoError(t, ValidateTimeSequence(ordered))
	assert.NoError(t, ValidateTimeSequence(nil))
	assert.NoError(t, ValidateTimeSequence(ordered[:1]))

	outOfOrder := []types.PriceBar{
		{Date: date(2023, 1, 4)},
		{Date: date(2023, 1, 3)},
	}
	err := ValidateTimeSequence(outOfOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chronological order")

	duplicate := []types.PriceBar{
		{Date: date(2023, 1, 3)},
		{Date: date(2023, 1, 3)},
	}
	err = ValidateTimeSequence(duplicate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate date")
}

func TestCloses(t *testing.T) {
	bars := []types.PriceBar{
		{Date: date(2023, 1, 3), Close: 100},
		{Date: date(2023, 1, 4), Close: 102.5},
	}
	assert.Equal(t, []float64{100, 102.5}, Closes(bars))
	assert.Empty(t, Closes(nil))
}

func TestLoadAll_PartialResults(t *testing.T) {
	inner := newCountingProvider()
	inner.bars["AAPL"] = []types.PriceBar{{Date: date(2023, 1, 3), Close: 101}}

	series, results := LoadAll(inner, []string{"AAPL", "NOPE"}, date(2023, 1, 1), date(2023, 1, 31))

	require.Len(t, series, 1)
	assert.Contains(t, series, "AAPL")

	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.False(t, results[1].OK())
	assert.Equal(t, "NOPE", results[1].Symbol)
	assert.ErrorIs(t, results[1].Err, ErrNoData)
}

func TestLoadAll_AllFail(t *testing.T) {
	series, results := LoadAll(newCountingProvider(), []string{"A", "B"}, date(2023, 1, 1), date(2023, 1, 31))
	assert.Empty(t, series)
	assert.Len(t, results, 2)
}
