package simulator

import (
	"fmt"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/internal/signal"
)

// RebalanceFrequency determines when holdings are traded back to target weights
type RebalanceFrequency string

const (
	RebalanceNone      RebalanceFrequency = "none"
	RebalanceMonthly   RebalanceFrequency = "monthly"
	RebalanceQuarterly RebalanceFrequency = "quarterly"
	RebalanceYearly    RebalanceFrequency = "yearly"
)

// ParseRebalanceFrequency converts a config string into a RebalanceFrequency.
// An empty string means no rebalancing.
func ParseRebalanceFrequency(s string) (RebalanceFrequency, error) {
	switch RebalanceFrequency(s) {
	case RebalanceNone, RebalanceMonthly, RebalanceQuarterly, RebalanceYearly:
		return RebalanceFrequency(s), nil
	case "":
		return RebalanceNone, nil
	default:
		return "", fmt.Errorf("unknown rebalance frequency: %q", s)
	}
}

// DCAPolicy is the tagged contribution policy variant. Exactly one concrete
// type is active per run; nil disables contributions.
type DCAPolicy interface {
	isDCAPolicy()
}

// PeriodicDCA contributes a fixed amount on each scheduled date
type PeriodicDCA struct {
	Amount float64
	Dates  []time.Time
}

func (PeriodicDCA) isDCAPolicy() {}

// ConditionalDCA contributes the trigger amount on each trigger date
type ConditionalDCA struct {
	Triggers []schedule.Trigger
}

func (ConditionalDCA) isDCAPolicy() {}

// Policy bundles the active policies for one run. Rebalancing composes with
// either DCA variant; signal-gated buys are enabled by a non-nil detector.
type Policy struct {
	Rebalance RebalanceFrequency
	DCA       DCAPolicy
	Signals   *signal.Detector
}

// shouldRebalance reports whether current crosses a period boundary relative
// to the previous rebalance date. The comparison is on calendar fields, not
// elapsed days: the first trading day of a new period rebalances even when
// the prior period was short.
func shouldRebalance(current, lastRebalance time.Time, frequency RebalanceFrequency) bool {
	switch frequency {
	case RebalanceYearly:
		return current.Year() > lastRebalance.Year()
	case RebalanceQuarterly:
		currentQuarter := (int(current.Month()) - 1) / 3
		lastQuarter := (int(lastRebalance.Month()) - 1) / 3
		return current.Year() > lastRebalance.Year() ||
			(current.Year() == lastRebalance.Year() && currentQuarter > lastQuarter)
	case RebalanceMonthly:
		return current.Year() > lastRebalance.Year() ||
			(current.Year() == lastRebalance.Year() && current.Month() > lastRebalance.Month())
	default:
		return false
	}
}
