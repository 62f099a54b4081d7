package indicators

import (
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// Default indicator parameters
const (
	DefaultRSIPeriod    = 14
	DefaultMACDFast     = 12
	DefaultMACDSlow     = 26
	DefaultMACDSignal   = 9
	DefaultBBPeriod     = 20
	DefaultBBStdDev     = 2.0
	DefaultLevelsPeriod = 20
)

// Snapshot bundles the computed indicator values for one symbol on one date.
// Undefined (warm-up) values are NaN; recompute the whole bundle if the
// underlying series changes.
type Snapshot struct {
	Date        time.Time
	Close       float64
	RSI         float64
	MACD        float64
	MACDSignal  float64
	MACDHist    float64
	BBUpper     float64
	BBMiddle    float64
	BBLower     float64
	Support     float64
	Resistance  float64
	Drawdown    float64
	DailyReturn float64
}

// Engine computes indicator snapshots for a full price series
type Engine struct {
	rsi    *RSI
	macd   *MACD
	bands  *BollingerBands
	levels *SupportResistance
}

// NewEngine creates an indicator engine with the default parameters
func NewEngine() *Engine {
	return &Engine{
		rsi:    NewRSI(DefaultRSIPeriod),
		macd:   NewMACD(DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal),
		bands:  NewBollingerBands(DefaultBBPeriod, DefaultBBStdDev),
		levels: NewSupportResistance(DefaultLevelsPeriod),
	}
}

// NewEngineWithParams creates an indicator engine with custom parameters
func NewEngineWithParams(rsiPeriod, macdFast, macdSlow, macdSignal, bbPeriod int, bbStdDev float64, levelsPeriod int) *Engine {
	return &Engine{
		rsi:    NewRSI(rsiPeriod),
		macd:   NewMACD(macdFast, macdSlow, macdSignal),
		bands:  NewBollingerBands(bbPeriod, bbStdDev),
		levels: NewSupportResistance(levelsPeriod),
	}
}

// Snapshots computes one aligned snapshot per bar for the given series
func (e *Engine) Snapshots(bars []types.PriceBar) []Snapshot {
	if len(bars) == 0 {
		return nil
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	rsi := e.rsi.Series(closes)
	macdLine, signalLine, histogram := e.macd.Series(closes)
	bbUpper, bbMiddle, bbLower := e.bands.Series(closes)
	support, resistance := e.levels.Series(bars)
	drawdown := DrawdownSeries(closes)
	dailyReturn := DailyReturnSeries(closes)

	snapshots := make([]Snapshot, len(bars))
	for i, bar := range bars {
		snapshots[i] = Snapshot{
			Date:        bar.Date,
			Close:       bar.Close,
			RSI:         rsi[i],
			MACD:        macdLine[i],
			MACDSignal:  signalLine[i],
			MACDHist:    histogram[i],
			BBUpper:     bbUpper[i],
			BBMiddle:    bbMiddle[i],
			BBLower:     bbLower[i],
			Support:     support[i],
			Resistance:  resistance[i],
			Drawdown:    drawdown[i],
			DailyReturn: dailyReturn[i],
		}
	}

	return snapshots
}
