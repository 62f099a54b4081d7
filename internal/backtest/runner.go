// Package backtest orchestrates simulation runs: it validates the
// configuration, loads price data, assembles the contribution and rebalance
// policies, and packages the simulator output with its analytics.
package backtest

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ducminhle1904/portfolio-backtest/internal/analytics"
	simerrors "github.com/ducminhle1904/portfolio-backtest/internal/errors"
	"github.com/ducminhle1904/portfolio-backtest/internal/ledger"
	"github.com/ducminhle1904/portfolio-backtest/internal/monitoring"
	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/internal/signal"
	"github.com/ducminhle1904/portfolio-backtest/internal/simulator"
	"github.com/ducminhle1904/portfolio-backtest/pkg/config"
	"github.com/ducminhle1904/portfolio-backtest/pkg/data"
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// Run statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SimulationOutput is the complete result of one run. Status is "completed"
// or "failed"; a failed output carries the error string and empty analytics
// instead of partial numbers.
type SimulationOutput struct {
	RunID     string        `json:"run_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`

	Config *config.SimulationConfig `json:"config,omitempty"`

	TimeSeries    []types.TimePoint    `json:"time_series,omitempty"`
	Transactions  []ledger.Transaction `json:"transactions,omitempty"`
	TotalInvested float64              `json:"total_invested,omitempty"`
	FinalValue    float64              `json:"final_value,omitempty"`
	FinalHoldings map[string]float64   `json:"final_holdings,omitempty"`

	RiskMetrics        *analytics.RiskMetrics         `json:"risk_metrics,omitempty"`
	RebalancingImpact  *analytics.RebalancingImpact   `json:"rebalancing_impact,omitempty"`
	AnnualReturns      []analytics.AnnualReturn       `json:"annual_returns,omitempty"`
	TransactionSummary *ledger.Summary                `json:"transaction_summary,omitempty"`
	DCASummary         *analytics.DCASummary          `json:"dca_summary,omitempty"`
	Benchmark          *analytics.BenchmarkComparison `json:"benchmark_comparison,omitempty"`

	// SkippedSymbols lists configured symbols that had no usable data and
	// were carried as cash.
	SkippedSymbols []string `json:"skipped_symbols,omitempty"`
}

// Runner executes simulation runs against a data provider
type Runner struct {
	provider  data.Provider
	validator *config.Validator
	simulator *simulator.Simulator
	health    *monitoring.HealthChecker
}

// NewRunner creates a runner backed by the given price data provider
func NewRunner(provider data.Provider) *Runner {
	return &Runner{
		provider:  provider,
		validator: config.NewValidator(),
		simulator: simulator.New(),
	}
}

// WithHealthChecker attaches a health checker that observes run outcomes
func (r *Runner) WithHealthChecker(h *monitoring.HealthChecker) *Runner {
	r.health = h
	return r
}

// Run executes one simulation. It never panics outward: any failure,
// including an internal fault, is reported as a failed output.
func (r *Runner) Run(cfg *config.SimulationConfig) (output *SimulationOutput) {
	start := time.Now()
	output = &SimulationOutput{
		RunID:     newRunID(),
		Status:    StatusCompleted,
		CreatedAt: start,
		Config:    cfg,
	}

	defer func() {
		if rec := recover(); rec != nil {
			err := simerrors.NewSimError(simerrors.ErrorCategoryInternal,
				"runner", "run", fmt.Sprintf("unexpected fault: %v", rec))
			output.fail(err)
		}
		output.Duration = time.Since(start)
		monitoring.RecordRun(output.Status, output.Duration)
		if r.health != nil {
			r.health.ObserveRun(output.Status, output.Error)
		}
	}()

	if err := r.execute(cfg, output); err != nil {
		log.Printf("❌ Run %s failed: %v", output.RunID, err)
		output.fail(err)
	}
	return output
}

// fail resets the output to a failed state, discarding partial analytics
func (o *SimulationOutput) fail(err error) {
	category := string(simerrors.ErrorCategoryInternal)
	var simErr *simerrors.SimError
	if errors.As(err, &simErr) {
		category = string(simErr.Category)
	}
	monitoring.RecordError(category)

	*o = SimulationOutput{
		RunID:     o.RunID,
		Status:    StatusFailed,
		CreatedAt: o.CreatedAt,
		Duration:  o.Duration,
		Config:    o.Config,
		Error:     err.Error(),
	}
}

func (r *Runner) execute(cfg *config.SimulationConfig, output *SimulationOutput) error {
	if err := r.validator.Validate(cfg); err != nil {
		return err
	}

	startDate, endDate, err := cfg.DateRange()
	if err != nil {
		return simerrors.WrapError(err, simerrors.ErrorCategoryConfiguration, "runner", "parse dates")
	}

	series, results := data.LoadAll(r.provider, cfg.Symbols(), startDate, endDate)
	for _, res := range results {
		monitoring.RecordSeriesLoad(res.OK())
		if !res.OK() {
			log.Printf("⚠️ No data for %s, symbol will be held as cash: %v", res.Symbol, res.Err)
			output.SkippedSymbols = append(output.SkippedSymbols, res.Symbol)
		}
	}
	if len(series) == 0 {
		return simerrors.NewDataError("runner",
			fmt.Sprintf("no price data available for any of: %s", strings.Join(cfg.Symbols(), ", ")))
	}

	policy, err := r.buildPolicy(cfg, series, startDate, endDate)
	if err != nil {
		return err
	}

	led := ledger.New()
	simResult := r.simulator.Simulate(series, cfg.Assets, cfg.InitialAmount, policy, led)
	if len(simResult.TimeSeries) == 0 {
		return simerrors.NewDataError("runner", "simulation produced no valuation points")
	}

	for _, tx := range led.All() {
		monitoring.RecordTransaction(string(tx.ReasonCode))
	}

	metrics := analytics.ComputeWithRates(simResult.TimeSeries, cfg.RiskFreeRate, 0)
	summary := led.Analyze()

	output.TimeSeries = simResult.TimeSeries
	output.Transactions = led.All()
	output.TotalInvested = simResult.TotalInvested
	output.FinalValue = simResult.TimeSeries[len(simResult.TimeSeries)-1].Value
	output.FinalHoldings = simResult.FinalHoldings
	output.RiskMetrics = &metrics
	output.AnnualReturns = analytics.AnnualReturns(simResult.TimeSeries)
	output.TransactionSummary = &summary

	if cfg.DCA != nil {
		dcaSummary := analytics.SummarizeDCA(simResult.TimeSeries, simResult.TotalInvested)
		output.DCASummary = &dcaSummary
	}

	if policy.Rebalance != simulator.RebalanceNone {
		// Shadow run with the same contributions but no rebalancing
		driftPolicy := policy
		driftPolicy.Rebalance = simulator.RebalanceNone
		driftResult := r.simulator.Simulate(series, cfg.Assets, cfg.InitialAmount, driftPolicy, ledger.New())
		output.RebalancingImpact = analytics.CompareRebalancing(simResult.TimeSeries, driftResult.TimeSeries, led.All())
	}

	if cfg.Benchmark != "" {
		output.Benchmark = r.compareBenchmark(cfg, startDate, endDate, simResult.TimeSeries)
	}

	return nil
}

// buildPolicy assembles the rebalance, contribution and signal policies from
// the validated configuration
func (r *Runner) buildPolicy(
	cfg *config.SimulationConfig,
	series map[string][]types.PriceBar,
	startDate, endDate time.Time,
) (simulator.Policy, error) {
	var policy simulator.Policy

	rebalance, err := simulator.ParseRebalanceFrequency(cfg.RebalanceFrequency)
	if err != nil {
		return policy, simerrors.WrapError(err, simerrors.ErrorCategoryConfiguration, "runner", "parse rebalance frequency")
	}
	policy.Rebalance = rebalance

	if cfg.DCA != nil {
		switch cfg.DCA.Mode {
		case config.DCAModePeriodic:
			frequency, err := schedule.ParseFrequency(cfg.DCA.Frequency)
			if err != nil {
				return policy, simerrors.WrapError(err, simerrors.ErrorCategoryConfiguration, "runner", "parse contribution frequency")
			}
			policy.DCA = simulator.PeriodicDCA{
				Amount: cfg.DCA.InvestmentAmount,
				Dates:  schedule.GenerateSchedule(startDate, endDate, frequency, cfg.DCA.FrequencyConfig),
			}
		case config.DCAModeConditional:
			prices := schedule.EqualWeightSeries(series)
			policy.DCA = simulator.ConditionalDCA{
				Triggers: schedule.DetectTriggers(prices, cfg.DCA.Conditions),
			}
		}
	}

	if cfg.BuyConditions != nil {
		policy.Signals = signal.NewDetector(*cfg.BuyConditions)
	}

	return policy, nil
}

// compareBenchmark loads the benchmark series and compares the portfolio
// against buy-and-hold. Benchmark failures degrade to a log line rather than
// failing the run.
func (r *Runner) compareBenchmark(
	cfg *config.SimulationConfig,
	startDate, endDate time.Time,
	portfolio []types.TimePoint,
) *analytics.BenchmarkComparison {
	bars, err := r.provider.GetSeries(cfg.Benchmark, startDate, endDate)
	if err != nil {
		log.Printf("⚠️ Benchmark %s unavailable, skipping comparison: %v", cfg.Benchmark, err)
		return nil
	}
	benchmark := analytics.BenchmarkSeries(bars, cfg.InitialAmount)
	return analytics.CompareBenchmark(cfg.Benchmark, portfolio, benchmark)
}

// newRunID generates a short unique run identifier
func newRunID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "bt_" + id[:12]
}
