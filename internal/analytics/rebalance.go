package analytics

import (
	"time"

	"github.com/ducminhle1904/portfolio-backtest/internal/ledger"
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// RebalancingImpact compares a run's outcome against the same strategy
// without periodic rebalancing
type RebalancingImpact struct {
	WithRebalancingPct    float64 `json:"with_rebalancing_return_pct"`
	WithoutRebalancingPct float64 `json:"without_rebalancing_return_pct"`
	BenefitPct            float64 `json:"rebalancing_benefit_pct"`
	RebalanceCount        int     `json:"rebalance_count"`
}

// CompareRebalancing relates the rebalanced value series to a drift-only
// series produced under the same contributions. Returns nil when either
// series is empty or starts at zero.
func CompareRebalancing(rebalanced, driftOnly []types.TimePoint, transactions []ledger.Transaction) *RebalancingImpact {
	if len(rebalanced) == 0 || len(driftOnly) == 0 {
		return nil
	}
	if rebalanced[0].Value <= 0 || driftOnly[0].Value <= 0 {
		return nil
	}

	withPct := TotalReturn(rebalanced[0].Value, rebalanced[len(rebalanced)-1].Value)
	withoutPct := TotalReturn(driftOnly[0].Value, driftOnly[len(driftOnly)-1].Value)

	return &RebalancingImpact{
		WithRebalancingPct:    withPct,
		WithoutRebalancingPct: withoutPct,
		BenefitPct:            withPct - withoutPct,
		RebalanceCount:        countRebalanceEvents(transactions),
	}
}

// countRebalanceEvents counts distinct rebalance dates; one event touches
// several symbols but is a single portfolio adjustment.
func countRebalanceEvents(transactions []ledger.Transaction) int {
	seen := make(map[time.Time]bool)
	for _, tx := range transactions {
		if tx.ReasonCode == ledger.ReasonRebalance {
			seen[tx.Date] = true
		}
	}
	return len(seen)
}
