package reporting

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
	"github.com/ducminhle1904/portfolio-backtest/internal/ledger"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputResults prints a simulation output to the console
func (r *DefaultConsoleReporter) OutputResults(output *backtest.SimulationOutput) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📊 SIMULATION RESULTS")
	fmt.Println(strings.Repeat("=", 50))

	if output.Status != backtest.StatusCompleted {
		fmt.Printf("❌ Run %s failed: %s\n", output.RunID, output.Error)
		return
	}

	m := output.RiskMetrics
	fmt.Printf("🆔 Run ID:             %s\n", output.RunID)
	fmt.Printf("💰 Total Invested:     $%.2f\n", output.TotalInvested)
	fmt.Printf("💰 Final Value:        $%.2f\n", output.FinalValue)
	fmt.Printf("📈 Total Return:       %.2f%%\n", m.TotalReturnPct)
	fmt.Printf("📈 Annualized Return:  %.2f%%\n", m.AnnualizedReturnPct)
	fmt.Printf("📊 Volatility:         %.2f%%\n", m.VolatilityPct)
	fmt.Printf("📉 Max Drawdown:       %.2f%%\n", m.MaxDrawdownPct)
	fmt.Printf("📊 Sharpe Ratio:       %.2f\n", m.SharpeRatio)
	fmt.Printf("📊 Sortino Ratio:      %.2f\n", m.SortinoRatio)
	fmt.Printf("✅ Positive Days:      %.1f%%\n", m.PositiveRatePct)
	fmt.Printf("🔄 Transactions:       %d\n", len(output.Transactions))

	if len(output.SkippedSymbols) > 0 {
		fmt.Printf("⚠️ Skipped (no data):  %s\n", strings.Join(output.SkippedSymbols, ", "))
	}

	r.printAnnualReturns(output)
	r.printRebalancingImpact(output)
	r.printTransactionSummary(output)
	r.printDCASummary(output)
	r.printBenchmark(output)
}

// PrintConfigSummary prints the run configuration as a table
func (r *DefaultConsoleReporter) PrintConfigSummary(output *backtest.SimulationOutput) {
	cfg := output.Config
	if cfg == nil {
		return
	}

	assets := make([]string, 0, len(cfg.Assets))
	for _, a := range cfg.Assets {
		assets = append(assets, fmt.Sprintf("%s %.0f%%", a.Symbol, a.Weight))
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("SIMULATION CONFIGURATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Assets", strings.Join(assets, ", ")},
		{"📅 Period", fmt.Sprintf("%s → %s", cfg.StartDate, cfg.EndDate)},
		{"💰 Initial Amount", fmt.Sprintf("$%.2f", cfg.InitialAmount)},
	})

	if cfg.RebalanceFrequency != "" {
		t.AppendRows([]table.Row{{"🔄 Rebalancing", cfg.RebalanceFrequency}})
	}
	if cfg.DCA != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{{"📈 DCA Mode", cfg.DCA.Mode}})
		if cfg.DCA.Mode == "periodic" {
			t.AppendRows([]table.Row{
				{"💵 DCA Amount", fmt.Sprintf("$%.2f", cfg.DCA.InvestmentAmount)},
				{"⏰ Frequency", cfg.DCA.Frequency},
			})
		}
	}
	if cfg.Benchmark != "" {
		t.AppendRows([]table.Row{{"🎯 Benchmark", cfg.Benchmark}})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 50, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

func (r *DefaultConsoleReporter) printAnnualReturns(output *backtest.SimulationOutput) {
	if len(output.AnnualReturns) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("ANNUAL RETURNS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Year", "Start Value", "End Value", "Return", "Volatility"})

	for _, ar := range output.AnnualReturns {
		t.AppendRow(table.Row{
			ar.Year,
			fmt.Sprintf("$%.2f", ar.StartValue),
			fmt.Sprintf("$%.2f", ar.EndValue),
			fmt.Sprintf("%.2f%%", ar.AnnualReturn),
			fmt.Sprintf("%.2f%%", ar.Volatility),
		})
	}

	t.Render()
	fmt.Println()
}

func (r *DefaultConsoleReporter) printRebalancingImpact(output *backtest.SimulationOutput) {
	impact := output.RebalancingImpact
	if impact == nil {
		return
	}

	fmt.Println("🔄 REBALANCING IMPACT")
	fmt.Printf("   With Rebalancing:    %.2f%%\n", impact.WithRebalancingPct)
	fmt.Printf("   Without Rebalancing: %.2f%%\n", impact.WithoutRebalancingPct)
	fmt.Printf("   Benefit:             %.2f%%\n", impact.BenefitPct)
	fmt.Printf("   Rebalance Events:    %d\n", impact.RebalanceCount)
	fmt.Println()
}

func (r *DefaultConsoleReporter) printTransactionSummary(output *backtest.SimulationOutput) {
	summary := output.TransactionSummary
	if summary == nil || summary.Total == 0 {
		return
	}

	reasons := make([]ledger.Reason, 0, len(summary.ByReason))
	for reason := range summary.ByReason {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TRANSACTIONS BY REASON")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Reason", "Count", "Total Amount"})

	for _, reason := range reasons {
		stats := summary.ByReason[reason]
		t.AppendRow(table.Row{
			string(reason),
			stats.Count,
			fmt.Sprintf("$%.2f", stats.TotalAmount),
		})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"total", summary.Total, fmt.Sprintf("$%.2f", summary.TotalBuyAmount)})

	t.Render()
	fmt.Println()
}

func (r *DefaultConsoleReporter) printDCASummary(output *backtest.SimulationOutput) {
	dca := output.DCASummary
	if dca == nil {
		return
	}

	fmt.Println("📈 DCA PERFORMANCE")
	fmt.Printf("   Invested:         $%.2f\n", dca.TotalInvested)
	fmt.Printf("   Final Value:      $%.2f\n", dca.FinalValue)
	fmt.Printf("   Current Return:   %.2f%%\n", dca.CurrentReturnPct)
	fmt.Printf("   Best / Worst:     %.2f%% / %.2f%%\n", dca.BestReturnPct, dca.WorstReturnPct)
	fmt.Println()
}

func (r *DefaultConsoleReporter) printBenchmark(output *backtest.SimulationOutput) {
	b := output.Benchmark
	if b == nil {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("VS BENCHMARK (%s)", b.BenchmarkSymbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📈 Benchmark Return", fmt.Sprintf("%.2f%%", b.BenchmarkReturnPct)},
		{"📈 Excess Return", fmt.Sprintf("%.2f%%", b.ExcessReturnPct)},
		{"📊 Tracking Error", fmt.Sprintf("%.2f%%", b.TrackingErrorPct)},
		{"📊 Information Ratio", fmt.Sprintf("%.2f", b.InformationRatio)},
		{"📊 Correlation", fmt.Sprintf("%.2f", b.Correlation)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, WidthMax: 20, Align: text.AlignLeft},
		{Number: 2, WidthMin: 15, WidthMax: 20, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// OutputConsole is a package-level convenience function
func OutputConsole(output *backtest.SimulationOutput) {
	reporter := NewDefaultConsoleReporter()
	reporter.OutputResults(output)
}
