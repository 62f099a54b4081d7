package data

import (
	"fmt"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// FilterByDateRange filters bars to a specific date range (inclusive)
func FilterByDateRange(bars []types.PriceBar, start, end time.Time) []types.PriceBar {
	if len(bars) == 0 {
		return bars
	}

	var filtered []types.PriceBar

	for _, bar := range bars {
		if (bar.Date.After(start) || bar.Date.Equal(start)) &&
			(bar.Date.Before(end) || bar.Date.Equal(end)) {
			filtered = append(filtered, bar)
		}
	}

	return filtered
}

// ValidateTimeSequence ensures bars are in chronological order without duplicates
func ValidateTimeSequence(bars []types.PriceBar) error {
	if len(bars) <= 1 {
		return nil
	}

	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			return fmt.Errorf("bars not in chronological order at index %d: %s comes after %s",
				i, bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}

		if bars[i].Date.Equal(bars[i-1].Date) {
			return fmt.Errorf("duplicate date at index %d: %s",
				i, bars[i].Date.Format("2006-01-02"))
		}
	}

	return nil
}

// Closes extracts the close price series from a slice of bars
func Closes(bars []types.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
