// Package simulator advances a multi-asset portfolio one trading day at a
// time under a rebalancing policy, contribution policy, or a combination.
// A run is a pure function of (price series, weights, configuration); all
// state lives in local variables and the caller-supplied ledger.
package simulator

import (
	"fmt"
	"sort"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/internal/indicators"
	"github.com/ducminhle1904/portfolio-backtest/internal/ledger"
	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/internal/signal"
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

const (
	// Signal-gated buys deploy at most this fraction of cash per trigger
	signalBuyFraction = 0.20

	// and only while at least this much cash remains
	minCashForSignalBuy = 100.0
)

// Result is the outcome of one simulation run
type Result struct {
	TimeSeries    []types.TimePoint
	FinalHoldings map[string]float64
	TotalInvested float64
}

// Simulator owns no cross-run state; one instance may serve many runs
// sequentially, or each run may use its own.
type Simulator struct {
	engine *indicators.Engine
}

// New creates a simulator with the default indicator engine
func New() *Simulator {
	return &Simulator{engine: indicators.NewEngine()}
}

// NewWithEngine creates a simulator using a custom indicator engine
func NewWithEngine(engine *indicators.Engine) *Simulator {
	return &Simulator{engine: engine}
}

// symbolSeries is the per-symbol lookup state built before the day loop
type symbolSeries struct {
	bars        []types.PriceBar
	indexByDate map[time.Time]int
	snapshots   []indicators.Snapshot
}

// Simulate runs the day loop over the sorted union of all symbols' trading
// dates. Transactions are appended to led; the ledger is never reset here so
// callers must pass a fresh one per run.
//
// Symbols missing a price bar on a date are skipped for that date's
// valuation and contributions; their share counts are untouched.
func (s *Simulator) Simulate(
	seriesBySymbol map[string][]types.PriceBar,
	weights []types.AssetWeight,
	initialAmount float64,
	policy Policy,
	led *ledger.Ledger,
) *Result {
	result := &Result{
		TimeSeries:    make([]types.TimePoint, 0),
		FinalHoldings: make(map[string]float64),
		TotalInvested: initialAmount,
	}

	symbols, series := s.prepare(seriesBySymbol, policy.Signals != nil)
	dates := dateUnion(seriesBySymbol)
	if len(dates) == 0 || len(symbols) == 0 {
		return result
	}

	weightBySymbol := make(map[string]float64, len(weights))
	for _, w := range weights {
		weightBySymbol[w.Symbol] = w.Weight
	}

	periodicDates := map[time.Time]bool{}
	triggerByDate := map[time.Time]ledgerTrigger{}
	switch dca := policy.DCA.(type) {
	case PeriodicDCA:
		for _, d := range dca.Dates {
			periodicDates[d] = true
		}
	case ConditionalDCA:
		for _, t := range dca.Triggers {
			triggerByDate[t.Date] = ledgerTrigger{
				amount: t.Amount,
				reason: triggerReason(t),
				code:   triggerReasonCode(t),
			}
		}
	}

	cash := initialAmount
	holdings := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		holdings[symbol] = 0
	}

	// Initial allocation at the first date's closes. Symbols without a bar
	// on the first date keep their allocation as cash.
	firstDate := dates[0]
	for _, symbol := range symbols {
		weight := weightBySymbol[symbol]
		if weight == 0 {
			continue
		}
		price, ok := priceAt(series[symbol], firstDate)
		if !ok {
			continue
		}
		investment := initialAmount * weight / 100.0
		shares := investment / price
		holdings[symbol] = shares
		cash -= investment

		led.Record(ledger.Transaction{
			Date:       firstDate,
			Symbol:     symbol,
			Type:       ledger.TransactionBuy,
			Shares:     shares,
			Price:      price,
			Amount:     investment,
			Reason:     "initial allocation",
			ReasonCode: ledger.ReasonInitial,
			Details: map[string]interface{}{
				"initial_weight": weight,
			},
			PortfolioValueBefore: initialAmount,
			PortfolioValueAfter:  initialAmount,
		})
	}

	lastRebalance := firstDate

	for _, date := range dates {
		// (a) mark-to-market over the symbols priced today
		value := cash + holdingsValue(symbols, series, holdings, date)

		// (b) periodic rebalance on period boundary crossings
		if policy.Rebalance != RebalanceNone && shouldRebalance(date, lastRebalance, policy.Rebalance) {
			s.rebalance(symbols, series, holdings, weightBySymbol, date, value, led)
			lastRebalance = date
		}

		// (c) signal-gated buys from remaining cash
		if policy.Signals != nil {
			cash = s.applySignalBuys(symbols, series, holdings, cash, date, value, policy.Signals, led)
		}

		// (d) scheduled or triggered contributions of external capital
		if periodicDates[date] {
			dca := policy.DCA.(PeriodicDCA)
			s.contribute(symbols, series, holdings, weightBySymbol, date, value, dca.Amount,
				"scheduled contribution", ledger.ReasonDCAPeriodic, led)
			result.TotalInvested += dca.Amount
		} else if trig, ok := triggerByDate[date]; ok {
			s.contribute(symbols, series, holdings, weightBySymbol, date, value, trig.amount,
				trig.reason, trig.code, led)
			result.TotalInvested += trig.amount
		}

		value = cash + holdingsValue(symbols, series, holdings, date)
		result.TimeSeries = append(result.TimeSeries, types.TimePoint{
			Date:          date,
			Value:         value,
			Cash:          cash,
			HoldingsValue: value - cash,
			Invested:      result.TotalInvested,
		})
	}

	for symbol, shares := range holdings {
		result.FinalHoldings[symbol] = shares
	}

	return result
}

// ledgerTrigger is the per-date contribution derived from a schedule trigger
type ledgerTrigger struct {
	amount float64
	reason string
	code   ledger.Reason
}

// prepare builds sorted symbol order and per-symbol lookup state. Snapshots
// are computed only when signal evaluation needs them.
func (s *Simulator) prepare(seriesBySymbol map[string][]types.PriceBar, withSnapshots bool) ([]string, map[string]*symbolSeries) {
	symbols := make([]string, 0, len(seriesBySymbol))
	series := make(map[string]*symbolSeries, len(seriesBySymbol))

	for symbol, bars := range seriesBySymbol {
		if len(bars) == 0 {
			continue
		}
		symbols = append(symbols, symbol)

		ss := &symbolSeries{
			bars:        bars,
			indexByDate: make(map[time.Time]int, len(bars)),
		}
		for i, bar := range bars {
			ss.indexByDate[bar.Date] = i
		}
		if withSnapshots {
			ss.snapshots = s.engine.Snapshots(bars)
		}
		series[symbol] = ss
	}

	sort.Strings(symbols)
	return symbols, series
}

// rebalance re-derives target share counts from the holdings value and target
// weights. Only symbols priced today participate; their weights are
// normalized so the redistributed value equals the value being redistributed.
func (s *Simulator) rebalance(
	symbols []string,
	series map[string]*symbolSeries,
	holdings map[string]float64,
	weightBySymbol map[string]float64,
	date time.Time,
	totalValue float64,
	led *ledger.Ledger,
) {
	pricedValue := holdingsValue(symbols, series, holdings, date)
	if pricedValue <= 0 {
		return
	}

	weightSum := 0.0
	for _, symbol := range symbols {
		if _, ok := priceAt(series[symbol], date); ok {
			weightSum += weightBySymbol[symbol]
		}
	}
	if weightSum <= 0 {
		return
	}

	for _, symbol := range symbols {
		price, ok := priceAt(series[symbol], date)
		if !ok {
			continue
		}
		targetValue := pricedValue * weightBySymbol[symbol] / weightSum
		targetShares := targetValue / price
		delta := targetShares - holdings[symbol]
		if delta == 0 {
			continue
		}

		led.Record(ledger.Transaction{
			Date:       date,
			Symbol:     symbol,
			Type:       ledger.TransactionRebalance,
			Shares:     delta,
			Price:      price,
			Amount:     delta * price,
			Reason:     "periodic rebalance to target weights",
			ReasonCode: ledger.ReasonRebalance,
			Details: map[string]interface{}{
				"target_weight": weightBySymbol[symbol],
			},
			PortfolioValueBefore: totalValue,
			PortfolioValueAfter:  totalValue,
		})
		holdings[symbol] = targetShares
	}
}

// contribute splits an external capital contribution across the symbols
// priced today by target weight. The full amount counts toward total
// invested even when some symbols are skipped for missing bars.
func (s *Simulator) contribute(
	symbols []string,
	series map[string]*symbolSeries,
	holdings map[string]float64,
	weightBySymbol map[string]float64,
	date time.Time,
	valueBefore float64,
	amount float64,
	reason string,
	code ledger.Reason,
	led *ledger.Ledger,
) {
	for _, symbol := range symbols {
		weight := weightBySymbol[symbol]
		if weight == 0 {
			continue
		}
		price, ok := priceAt(series[symbol], date)
		if !ok {
			continue
		}
		investment := amount * weight / 100.0
		shares := investment / price
		holdings[symbol] += shares

		led.Record(ledger.Transaction{
			Date:                 date,
			Symbol:               symbol,
			Type:                 ledger.TransactionDCA,
			Shares:               shares,
			Price:                price,
			Amount:               investment,
			Reason:               reason,
			ReasonCode:           code,
			PortfolioValueBefore: valueBefore,
			PortfolioValueAfter:  valueBefore + investment,
		})
	}
}

// applySignalBuys evaluates the buy rules per symbol and deploys a capped
// fraction of remaining cash on each trigger. Returns the updated cash.
func (s *Simulator) applySignalBuys(
	symbols []string,
	series map[string]*symbolSeries,
	holdings map[string]float64,
	cash float64,
	date time.Time,
	value float64,
	detector *signal.Detector,
	led *ledger.Ledger,
) float64 {
	for _, symbol := range symbols {
		if cash <= minCashForSignalBuy {
			break
		}

		ss := series[symbol]
		idx, ok := ss.indexByDate[date]
		if !ok {
			continue
		}

		in := signal.Input{
			Price:   ss.bars[idx].Close,
			Current: ss.snapshots[idx],
		}
		if idx > 0 {
			in.Previous = ss.snapshots[idx-1]
			in.HasPrevious = true
		}

		result, triggered := detector.CheckBuySignal(in)
		if !triggered {
			continue
		}

		buyAmount := cash * signalBuyFraction
		if buyAmount > cash {
			buyAmount = cash
		}
		price := ss.bars[idx].Close
		shares := buyAmount / price
		holdings[symbol] += shares
		cash -= buyAmount

		led.Record(ledger.Transaction{
			Date:                 date,
			Symbol:               symbol,
			Type:                 ledger.TransactionBuy,
			Shares:               shares,
			Price:                price,
			Amount:               buyAmount,
			Reason:               result.Reason,
			ReasonCode:           result.ReasonCode,
			Details:              result.Details,
			PortfolioValueBefore: value,
			PortfolioValueAfter:  value,
		})
	}

	return cash
}

// holdingsValue sums shares * close over the symbols priced on date
func holdingsValue(symbols []string, series map[string]*symbolSeries, holdings map[string]float64, date time.Time) float64 {
	total := 0.0
	for _, symbol := range symbols {
		if price, ok := priceAt(series[symbol], date); ok {
			total += holdings[symbol] * price
		}
	}
	return total
}

// priceAt returns the close price for date, if the symbol has a bar that day
func priceAt(ss *symbolSeries, date time.Time) (float64, bool) {
	idx, ok := ss.indexByDate[date]
	if !ok {
		return 0, false
	}
	return ss.bars[idx].Close, true
}

// dateUnion builds the sorted union of all trading dates across symbols;
// this union is the simulation clock.
func dateUnion(seriesBySymbol map[string][]types.PriceBar) []time.Time {
	seen := make(map[time.Time]bool)
	for _, bars := range seriesBySymbol {
		for _, bar := range bars {
			seen[bar.Date] = true
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// triggerReason builds the human-readable reason for a contribution trigger
func triggerReason(t schedule.Trigger) string {
	switch t.Type {
	case schedule.ConditionPriceDrop:
		return fmt.Sprintf("portfolio dropped %.2f%% (threshold %.1f%%)", t.TriggerValue, t.Threshold)
	default:
		return fmt.Sprintf("portfolio drawdown %.2f%% (threshold %.1f%%)", t.TriggerValue, t.Threshold)
	}
}

// triggerReasonCode maps a trigger type to its ledger reason code
func triggerReasonCode(t schedule.Trigger) ledger.Reason {
	switch t.Type {
	case schedule.ConditionPriceDrop:
		return ledger.ReasonPriceDrop
	default:
		return ledger.ReasonDrawdown
	}
}
