// Package config defines the simulation configuration and its validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/internal/signal"
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// DateFormat is the wire format for config dates
const DateFormat = "2006-01-02"

// Configuration bounds enforced before a simulation runs
const (
	MaxAssetsCount     = 10
	MinInitialAmount   = 100.0
	MaxInitialAmount   = 10_000_000.0
	WeightSumTolerance = 0.01
)

// DCA modes
const (
	DCAModePeriodic    = "periodic"
	DCAModeConditional = "conditional"
)

// DCAConfig configures the contribution policy
type DCAConfig struct {
	Mode             string                   `json:"mode"`
	InvestmentAmount float64                  `json:"investment_amount,omitempty"`
	Frequency        string                   `json:"frequency,omitempty"`
	FrequencyConfig  schedule.FrequencyConfig `json:"frequency_config,omitempty"`
	Conditions       []schedule.Condition     `json:"conditions,omitempty"`
}

// SimulationConfig is the complete input for one simulation run
type SimulationConfig struct {
	Assets             []types.AssetWeight `json:"assets"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	InitialAmount      float64             `json:"initial_amount"`
	RebalanceFrequency string              `json:"rebalance_frequency,omitempty"`
	DCA                *DCAConfig          `json:"dca,omitempty"`
	BuyConditions      *signal.Config      `json:"buy_conditions,omitempty"`
	Benchmark          string              `json:"benchmark,omitempty"`

	// Annualized risk-free rate used for Sharpe, as a fraction
	RiskFreeRate float64 `json:"risk_free_rate,omitempty"`
}

// Symbols returns the configured asset symbols in declaration order
func (c *SimulationConfig) Symbols() []string {
	symbols := make([]string, len(c.Assets))
	for i, asset := range c.Assets {
		symbols[i] = asset.Symbol
	}
	return symbols
}

// DateRange parses the configured start and end dates
func (c *SimulationConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(DateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err = time.Parse(DateFormat, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	return start, end, nil
}

// LoadConfigFile reads and parses a simulation config from a JSON file
func LoadConfigFile(path string) (*SimulationConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg SimulationConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}
