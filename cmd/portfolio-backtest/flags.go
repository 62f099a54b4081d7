package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// PortfolioFlags holds all command line flags for the backtest command
type PortfolioFlags struct {
	// Configuration
	ConfigFile *string
	Assets     *string
	StartDate  *string
	EndDate    *string

	// Account settings
	InitialAmount *float64

	// Policies
	Rebalance    *string
	DCAMode      *string
	DCAAmount    *float64
	DCAFrequency *string
	DCADay       *int
	BuySignals   *bool

	// Analytics options
	Benchmark    *string
	RiskFreeRate *float64

	// Data options
	DataRoot *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	CSVEnabled  *bool
	JSONEnabled *bool
	XLSXEnabled *bool
	EnvFile     *string

	// Monitoring
	MetricsAddr *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewPortfolioFlags creates and registers all command line flags
func NewPortfolioFlags() *PortfolioFlags {
	flags := &PortfolioFlags{
		// Configuration
		ConfigFile: flag.String("config", "", "Path to simulation configuration file (JSON)"),
		Assets:     flag.String("assets", "", "Comma-separated symbol:weight pairs (e.g., AAPL:60,MSFT:40)"),
		StartDate:  flag.String("start", "", "Simulation start date (YYYY-MM-DD)"),
		EndDate:    flag.String("end", "", "Simulation end date (YYYY-MM-DD)"),

		// Account settings
		InitialAmount: flag.Float64("amount", DefaultInitialAmount, "Initial investment amount"),

		// Policies
		Rebalance:    flag.String("rebalance", "", "Rebalance frequency (monthly, quarterly, yearly)"),
		DCAMode:      flag.String("dca-mode", "", "DCA mode (periodic, conditional)"),
		DCAAmount:    flag.Float64("dca-amount", DefaultDCAAmount, "Periodic contribution amount"),
		DCAFrequency: flag.String("dca-frequency", "monthly", "Contribution frequency (daily, weekly, biweekly, monthly)"),
		DCADay:       flag.Int("dca-day", 1, "Day of month for monthly contributions"),
		BuySignals:   flag.Bool("buy-signals", false, "Enable indicator-gated opportunistic buys"),

		// Analytics options
		Benchmark:    flag.String("benchmark", "", "Benchmark symbol for comparison (e.g., SPY)"),
		RiskFreeRate: flag.Float64("risk-free-rate", 0.0, "Annualized risk-free rate as a fraction (0.04 = 4%)"),

		// Data options
		DataRoot: flag.String("data-root", DefaultDataRoot, "Price data root directory"),

		// Output options
		OutputDir:   flag.String("output", "", "Output directory (defaults to results/<run_id>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		CSVEnabled:  flag.Bool("csv", true, "Write CSV outputs"),
		JSONEnabled: flag.Bool("json", true, "Write JSON output"),
		XLSXEnabled: flag.Bool("xlsx", false, "Write Excel workbook"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Monitoring
		MetricsAddr: flag.String("metrics-addr", "", "Address for Prometheus metrics endpoint (e.g., :9090)"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}

	return flags
}

// ValidatePortfolioFlags checks flag combinations before running
func ValidatePortfolioFlags(flags *PortfolioFlags) error {
	if *flags.ConfigFile == "" && *flags.Assets == "" && !*flags.ShowVersion && !*flags.ShowHelp {
		return fmt.Errorf("either -config or -assets is required")
	}
	if *flags.ConfigFile != "" && *flags.Assets != "" {
		return fmt.Errorf("-config and -assets are mutually exclusive")
	}
	if *flags.DCAMode != "" && *flags.DCAMode != "periodic" && *flags.DCAMode != "conditional" {
		return fmt.Errorf("invalid -dca-mode %q (use periodic or conditional)", *flags.DCAMode)
	}
	return nil
}

// ParseAssetList parses a symbol:weight flag value into asset weights
func ParseAssetList(list string) ([]types.AssetWeight, error) {
	parts := strings.Split(list, ",")
	assets := make([]types.AssetWeight, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid asset entry %q (expected SYMBOL:WEIGHT)", part)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", part, err)
		}

		assets = append(assets, types.AssetWeight{
			Symbol: strings.ToUpper(strings.TrimSpace(fields[0])),
			Weight: weight,
		})
	}

	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets specified")
	}
	return assets, nil
}

// PrintUsageExamples prints common command invocations
func PrintUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"portfolio-backtest -assets AAPL:60,MSFT:40 -start 2020-01-01 -end 2023-12-31 -amount 10000",
			"Fixed-weight simulation over four years",
		},
		{
			"portfolio-backtest -config configs/balanced.json",
			"Load full simulation configuration from file",
		},
		{
			"portfolio-backtest -assets SPY:70,TLT:30 -start 2019-01-01 -end 2023-12-31 -rebalance quarterly",
			"Quarterly rebalancing back to target weights",
		},
		{
			"portfolio-backtest -assets VTI:100 -start 2020-01-01 -end 2023-12-31 -dca-mode periodic -dca-amount 500",
			"Monthly $500 contributions on top of the initial amount",
		},
		{
			"portfolio-backtest -assets QQQ:100 -start 2020-01-01 -end 2023-12-31 -buy-signals -benchmark SPY",
			"Signal-gated buys with benchmark comparison",
		},
	}

	fmt.Println("\nUsage examples:")
	for _, e := range examples {
		fmt.Printf("\n  %s\n      %s\n", e.command, e.description)
	}
	fmt.Println()
}
