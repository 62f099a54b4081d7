package schedule

import (
	"sort"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// ConditionType identifies a conditional contribution rule
type ConditionType string

const (
	ConditionPriceDrop ConditionType = "price_drop"
	ConditionDrawdown  ConditionType = "drawdown"
)

// Condition configuration defaults. The cooldown default applies to
// drawdown conditions only; price drops fire on every qualifying day unless
// cooldown_days is set.
const (
	DefaultCooldownDays  = 7
	DefaultLookbackDays  = 252
	DefaultTriggerAmount = 1000.0
)

// Condition is one conditional contribution rule
type Condition struct {
	Type ConditionType `json:"type"`

	// DropPercentage is the single-day drop (in percent) that fires a
	// price_drop condition.
	DropPercentage float64 `json:"drop_percentage,omitempty"`

	// DrawdownThreshold is the decline from the lookback peak (in percent)
	// that fires a drawdown condition.
	DrawdownThreshold float64 `json:"drawdown_threshold,omitempty"`

	// LookbackDays bounds the peak search for drawdown conditions.
	LookbackDays int `json:"lookback_days,omitempty"`

	// Amount is the contribution made when the condition fires.
	Amount float64 `json:"amount"`

	// CooldownDays is the minimum number of calendar days between triggers.
	CooldownDays int `json:"cooldown_days,omitempty"`
}

// Trigger is one fired condition; it is consumed once to generate a
// contribution on its date.
type Trigger struct {
	Date         time.Time     `json:"date"`
	Type         ConditionType `json:"type"`
	TriggerValue float64       `json:"trigger_value"`
	Threshold    float64       `json:"threshold"`
	Amount       float64       `json:"amount"`
}

// EqualWeightSeries builds a synthetic portfolio price series as the mean
// close across the symbols present on each date. Dates are the sorted union
// of all symbols' trading dates.
func EqualWeightSeries(seriesBySymbol map[string][]types.PriceBar) []types.PricePoint {
	closeByDate := make(map[time.Time][]float64)
	for _, bars := range seriesBySymbol {
		for _, bar := range bars {
			closeByDate[bar.Date] = append(closeByDate[bar.Date], bar.Close)
		}
	}

	dates := make([]time.Time, 0, len(closeByDate))
	for date := range closeByDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]types.PricePoint, 0, len(dates))
	for _, date := range dates {
		closes := closeByDate[date]
		sum := 0.0
		for _, c := range closes {
			sum += c
		}
		points = append(points, types.PricePoint{
			Date:  date,
			Price: sum / float64(len(closes)),
		})
	}

	return points
}

// DetectTriggers scans the synthetic portfolio price series and returns the
// ordered triggers for the given conditions. A trigger fires only when no
// prior trigger exists or the cooldown (calendar days between trigger dates)
// has elapsed.
func DetectTriggers(prices []types.PricePoint, conditions []Condition) []Trigger {
	var triggers []Trigger

	for i := 1; i < len(prices); i++ {
		date := prices[i].Date
		current := prices[i].Price
		prev := prices[i-1].Price

		for _, condition := range conditions {
			switch condition.Type {
			case ConditionPriceDrop:
				if prev <= 0 {
					continue
				}
				dropPct := (prev - current) / prev * 100
				if dropPct < condition.DropPercentage {
					continue
				}
				if !cooldownElapsed(triggers, date, condition.cooldown()) {
					continue
				}
				triggers = append(triggers, Trigger{
					Date:         date,
					Type:         ConditionPriceDrop,
					TriggerValue: dropPct,
					Threshold:    condition.DropPercentage,
					Amount:       condition.amount(),
				})

			case ConditionDrawdown:
				maxPrice := lookbackMax(prices, i, condition.lookback())
				if maxPrice <= 0 {
					continue
				}
				drawdownPct := (maxPrice - current) / maxPrice * 100
				if drawdownPct < condition.DrawdownThreshold {
					continue
				}
				if !cooldownElapsed(triggers, date, condition.cooldown()) {
					continue
				}
				triggers = append(triggers, Trigger{
					Date:         date,
					Type:         ConditionDrawdown,
					TriggerValue: drawdownPct,
					Threshold:    condition.DrawdownThreshold,
					Amount:       condition.amount(),
				})
			}
		}
	}

	return triggers
}

// cooldown returns the effective cooldown: explicit when set, otherwise 7
// days for drawdown conditions and none for price drops.
func (c Condition) cooldown() int {
	if c.CooldownDays > 0 {
		return c.CooldownDays
	}
	if c.Type == ConditionDrawdown {
		return DefaultCooldownDays
	}
	return 0
}

func (c Condition) lookback() int {
	if c.LookbackDays > 0 {
		return c.LookbackDays
	}
	return DefaultLookbackDays
}

func (c Condition) amount() float64 {
	if c.Amount > 0 {
		return c.Amount
	}
	return DefaultTriggerAmount
}

// cooldownElapsed checks the calendar-day gap against the last trigger of any
// condition; trigger dates, not trading days, define the gap.
func cooldownElapsed(triggers []Trigger, date time.Time, cooldownDays int) bool {
	if len(triggers) == 0 {
		return true
	}
	last := triggers[len(triggers)-1].Date
	return int(date.Sub(last).Hours()/24) >= cooldownDays
}

// lookbackMax returns the highest price within the lookback window ending at
// index i (inclusive)
func lookbackMax(prices []types.PricePoint, i, lookbackDays int) float64 {
	start := i - lookbackDays
	if start < 0 {
		start = 0
	}
	maxPrice := 0.0
	for j := start; j <= i; j++ {
		if prices[j].Price > maxPrice {
			maxPrice = prices[j].Price
		}
	}
	return maxPrice
}
