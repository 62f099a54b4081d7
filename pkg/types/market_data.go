package types

import "time"

// PriceBar is one symbol's OHLCV data for a single trading day.
// Bars are immutable once loaded.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// AssetWeight is a portfolio allocation target for one symbol.
// Weight is a percentage; a portfolio's weights must sum to 100.
type AssetWeight struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight_percent"`
}

// TimePoint is one entry of the simulated portfolio value series.
type TimePoint struct {
	Date          time.Time `json:"date"`
	Value         float64   `json:"value"`
	Cash          float64   `json:"cash"`
	HoldingsValue float64   `json:"holdings_value"`

	// Invested is the external capital deployed up to and including this
	// date (initial amount plus contributions).
	Invested float64 `json:"invested,omitempty"`
}

// PricePoint is a single dated price, used for synthetic portfolio
// price series and benchmark curves.
type PricePoint struct {
	Date  time.Time
	Price float64
}
