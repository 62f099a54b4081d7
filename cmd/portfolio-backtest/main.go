package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
	"github.com/ducminhle1904/portfolio-backtest/internal/monitoring"
	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/internal/signal"
	"github.com/ducminhle1904/portfolio-backtest/pkg/config"
	"github.com/ducminhle1904/portfolio-backtest/pkg/data"
	"github.com/ducminhle1904/portfolio-backtest/pkg/reporting"
)

const (
	AppName    = "Portfolio Backtest"
	AppVersion = "1.0.0"

	// Default values
	DefaultInitialAmount = 10000.0
	DefaultDCAAmount     = 500.0
	DefaultDataRoot      = "data"
)

func main() {
	flags := NewPortfolioFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidatePortfolioFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()

	loadEnvironment(*flags.EnvFile)

	cfg, err := buildConfiguration(flags)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	provider := data.NewCachedProvider(data.NewCSVProvider(*flags.DataRoot))

	health := monitoring.NewHealthChecker()
	runner := backtest.NewRunner(provider).WithHealthChecker(health)

	if *flags.MetricsAddr != "" {
		startMetricsServer(*flags.MetricsAddr, health)
	}

	output := runner.Run(cfg)

	manager := reporting.NewReportingManager(reporting.ReportingConfig{
		EnableConsole:   true,
		EnableFiles:     !*flags.ConsoleOnly,
		OutputDirectory: *flags.OutputDir,
		CSVEnabled:      *flags.CSVEnabled,
		JSONEnabled:     *flags.JSONEnabled,
		ExcelEnabled:    *flags.XLSXEnabled,
	})
	if err := manager.ReportResults(output); err != nil {
		log.Fatalf("❌ Reporting error: %v", err)
	}

	if output.Status != backtest.StatusCompleted {
		os.Exit(1)
	}
}

// buildConfiguration assembles the simulation config from a file or flags
func buildConfiguration(flags *PortfolioFlags) (*config.SimulationConfig, error) {
	if *flags.ConfigFile != "" {
		return config.LoadConfigFile(*flags.ConfigFile)
	}

	assets, err := ParseAssetList(*flags.Assets)
	if err != nil {
		return nil, err
	}

	cfg := &config.SimulationConfig{
		Assets:             assets,
		StartDate:          *flags.StartDate,
		EndDate:            *flags.EndDate,
		InitialAmount:      *flags.InitialAmount,
		RebalanceFrequency: *flags.Rebalance,
		Benchmark:          strings.ToUpper(strings.TrimSpace(*flags.Benchmark)),
		RiskFreeRate:       *flags.RiskFreeRate,
	}

	if *flags.DCAMode != "" {
		cfg.DCA = &config.DCAConfig{
			Mode:             *flags.DCAMode,
			InvestmentAmount: *flags.DCAAmount,
			Frequency:        *flags.DCAFrequency,
			FrequencyConfig:  schedule.FrequencyConfig{DayOfMonth: *flags.DCADay},
		}
		if *flags.DCAMode == config.DCAModeConditional {
			cfg.DCA.Conditions = []schedule.Condition{
				{
					Type:           schedule.ConditionPriceDrop,
					DropPercentage: 5.0,
					Amount:         *flags.DCAAmount,
				},
			}
		}
	}

	if *flags.BuySignals {
		defaults := signal.DefaultConfig()
		cfg.BuyConditions = &defaults
	}

	return cfg, nil
}

// loadEnvironment loads variables from the environment file when present
func loadEnvironment(envFile string) {
	if envFile == "" {
		return
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️ Could not load environment file %s: %v", envFile, err)
	}
}

// startMetricsServer serves Prometheus metrics and the health endpoint
func startMetricsServer(addr string, health *monitoring.HealthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	go func() {
		log.Printf("📊 Metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️ Metrics server stopped: %v", err)
		}
	}()
}

func printHeader() {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("🚀 %s v%s\n", AppName, AppVersion)
	fmt.Println(strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s\n", AppName, AppVersion)
	fmt.Println("\nSimulates long-horizon portfolio strategies over historical price data:")
	fmt.Println("fixed weights, periodic rebalancing, scheduled or conditional contributions,")
	fmt.Println("and indicator-gated opportunistic buys, with full risk analytics.")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
	PrintUsageExamples()
}
