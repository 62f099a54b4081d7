// Package signal evaluates buy-trigger rules against price and indicator
// state. Rules run in fixed priority order and the first match wins; a single
// evaluation never combines reasons.
package signal

import (
	"fmt"

	"github.com/ducminhle1904/portfolio-backtest/internal/indicators"
	"github.com/ducminhle1904/portfolio-backtest/internal/ledger"
)

// Default rule thresholds
const (
	DefaultDailyDropThreshold = -0.05
	DefaultDrawdownThreshold  = -0.10
	DefaultVIXThreshold       = 30.0
	DefaultRSIOversold        = 30.0

	// A close within 2% above the support level counts as touching it
	supportProximity = 1.02
)

// Config holds the threshold overrides for the buy rules. Zero-valued
// thresholds and nil enable flags fall back to the defaults, so a partial
// JSON override leaves the remaining rules at their standard settings.
type Config struct {
	DailyDropThreshold float64 `json:"daily_drop_threshold,omitempty"`
	DrawdownThreshold  float64 `json:"drawdown_threshold,omitempty"`
	VIXThreshold       float64 `json:"vix_threshold,omitempty"`
	RSIOversold        float64 `json:"rsi_oversold,omitempty"`
	EnableMACD         *bool   `json:"enable_macd,omitempty"`
	EnableSupport      *bool   `json:"enable_support,omitempty"`
}

// DefaultConfig returns the default rule configuration with all rules enabled
func DefaultConfig() Config {
	return Config{
		DailyDropThreshold: DefaultDailyDropThreshold,
		DrawdownThreshold:  DefaultDrawdownThreshold,
		VIXThreshold:       DefaultVIXThreshold,
		RSIOversold:        DefaultRSIOversold,
	}
}

// resolved is the fully-populated rule configuration after defaulting
type resolved struct {
	dailyDropThreshold float64
	drawdownThreshold  float64
	vixThreshold       float64
	rsiOversold        float64
	enableMACD         bool
	enableSupport      bool
}

// normalize applies defaults for unset fields
func normalize(c Config) resolved {
	r := resolved{
		dailyDropThreshold: c.DailyDropThreshold,
		drawdownThreshold:  c.DrawdownThreshold,
		vixThreshold:       c.VIXThreshold,
		rsiOversold:        c.RSIOversold,
		enableMACD:         c.EnableMACD == nil || *c.EnableMACD,
		enableSupport:      c.EnableSupport == nil || *c.EnableSupport,
	}
	if r.dailyDropThreshold == 0 {
		r.dailyDropThreshold = DefaultDailyDropThreshold
	}
	if r.drawdownThreshold == 0 {
		r.drawdownThreshold = DefaultDrawdownThreshold
	}
	if r.vixThreshold == 0 {
		r.vixThreshold = DefaultVIXThreshold
	}
	if r.rsiOversold == 0 {
		r.rsiOversold = DefaultRSIOversold
	}
	return r
}

// Input is the per-symbol, per-date evaluation context
type Input struct {
	Price       float64
	Current     indicators.Snapshot
	Previous    indicators.Snapshot
	HasPrevious bool
	VIX         float64
	HasVIX      bool
}

// Result describes a triggered rule
type Result struct {
	Reason     string
	ReasonCode ledger.Reason
	Details    map[string]interface{}
}

// Detector evaluates the ordered rule set
type Detector struct {
	config resolved
	rules  []rule
}

// rule pairs a reason code with its predicate; predicates return a Result
// only when the rule fires.
type rule struct {
	code ledger.Reason
	eval func(in Input) (Result, bool)
}

// NewDetector creates a detector with the given configuration
func NewDetector(config Config) *Detector {
	d := &Detector{config: normalize(config)}
	d.rules = []rule{
		{ledger.ReasonPriceDrop, d.checkDailyDrop},
		{ledger.ReasonDrawdown, d.checkDrawdown},
		{ledger.ReasonVIXHigh, d.checkVIX},
		{ledger.ReasonRSIOversold, d.checkRSI},
		{ledger.ReasonMACDGoldenCross, d.checkMACDCross},
		{ledger.ReasonSupportLevel, d.checkSupport},
	}
	return d
}

// CheckBuySignal evaluates the rules in priority order and returns the first
// match. The boolean is false when no rule fires.
func (d *Detector) CheckBuySignal(in Input) (Result, bool) {
	for _, r := range d.rules {
		if result, ok := r.eval(in); ok {
			result.ReasonCode = r.code
			return result, true
		}
	}
	return Result{}, false
}

func (d *Detector) checkDailyDrop(in Input) (Result, bool) {
	ret := in.Current.DailyReturn
	if !indicators.IsValid(ret) || ret > d.config.dailyDropThreshold {
		return Result{}, false
	}
	return Result{
		Reason: fmt.Sprintf("daily return %.2f%% breached %.1f%% drop threshold", ret*100, d.config.dailyDropThreshold*100),
		Details: map[string]interface{}{
			"daily_return":      ret,
			"trigger_threshold": d.config.dailyDropThreshold,
		},
	}, true
}

func (d *Detector) checkDrawdown(in Input) (Result, bool) {
	dd := in.Current.Drawdown
	if !indicators.IsValid(dd) || dd > d.config.drawdownThreshold {
		return Result{}, false
	}
	return Result{
		Reason: fmt.Sprintf("drawdown %.2f%% breached %.1f%% threshold", dd*100, d.config.drawdownThreshold*100),
		Details: map[string]interface{}{
			"drawdown":          dd,
			"trigger_threshold": d.config.drawdownThreshold,
		},
	}, true
}

func (d *Detector) checkVIX(in Input) (Result, bool) {
	if !in.HasVIX || in.VIX <= d.config.vixThreshold {
		return Result{}, false
	}
	return Result{
		Reason: fmt.Sprintf("volatility index %.2f above threshold %.0f", in.VIX, d.config.vixThreshold),
		Details: map[string]interface{}{
			"vix":               in.VIX,
			"trigger_threshold": d.config.vixThreshold,
		},
	}, true
}

func (d *Detector) checkRSI(in Input) (Result, bool) {
	rsi := in.Current.RSI
	if !indicators.IsValid(rsi) || rsi >= d.config.rsiOversold {
		return Result{}, false
	}
	return Result{
		Reason: fmt.Sprintf("RSI %.2f below oversold threshold %.0f", rsi, d.config.rsiOversold),
		Details: map[string]interface{}{
			"rsi":               rsi,
			"trigger_threshold": d.config.rsiOversold,
		},
	}, true
}

func (d *Detector) checkMACDCross(in Input) (Result, bool) {
	if !d.config.enableMACD || !in.HasPrevious {
		return Result{}, false
	}
	if !indicators.IsValid(in.Current.MACD) || !indicators.IsValid(in.Previous.MACD) {
		return Result{}, false
	}
	if !(in.Previous.MACD <= in.Previous.MACDSignal && in.Current.MACD > in.Current.MACDSignal) {
		return Result{}, false
	}
	return Result{
		Reason: "MACD golden cross",
		Details: map[string]interface{}{
			"macd":   in.Current.MACD,
			"signal": in.Current.MACDSignal,
		},
	}, true
}

func (d *Detector) checkSupport(in Input) (Result, bool) {
	support := in.Current.Support
	if !d.config.enableSupport || !indicators.IsValid(support) || support <= 0 {
		return Result{}, false
	}
	if in.Price > support*supportProximity {
		return Result{}, false
	}
	return Result{
		Reason: fmt.Sprintf("price %.2f near support level %.2f", in.Price, support),
		Details: map[string]interface{}{
			"price":         in.Price,
			"support_level": support,
		},
	}, true
}
