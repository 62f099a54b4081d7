package data

import (
	"errors"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// ErrNoData is returned when a provider has no bars for a symbol in the
// requested date range.
var ErrNoData = errors.New("no price data available")

// Provider supplies ordered daily price bars per symbol for a date range.
// Implementations must return bars sorted by date ascending.
type Provider interface {
	// GetSeries loads the price series for one symbol within [start, end].
	// Returns ErrNoData (possibly wrapped) if no bars exist in range.
	GetSeries(symbol string, start, end time.Time) ([]types.PriceBar, error)

	// GetName returns the name of the data provider
	GetName() string
}

// Cache stores loaded price series keyed by symbol and range.
type Cache interface {
	// Get retrieves a series from cache if available
	Get(key string) ([]types.PriceBar, bool)

	// Set stores a series in cache
	Set(key string, bars []types.PriceBar)

	// Clear removes all cached series
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// CSVColumnMapping defines the column positions for CSV price files
type CSVColumnMapping struct {
	DateCol    int
	OpenCol    int
	HighCol    int
	LowCol     int
	CloseCol   int
	VolumeCol  int
	MinColumns int
	DateFormat string
}

// DefaultCSVFormat matches files exported as Date,Open,High,Low,Close,Volume
// with ISO dates.
var DefaultCSVFormat = CSVColumnMapping{
	DateCol:    0,
	OpenCol:    1,
	HighCol:    2,
	LowCol:     3,
	CloseCol:   4,
	VolumeCol:  5,
	MinColumns: 6,
	DateFormat: "2006-01-02",
}
