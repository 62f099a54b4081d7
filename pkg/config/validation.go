package config

import (
	"fmt"
	"math"

	simerrors "github.com/ducminhle1904/portfolio-backtest/internal/errors"
	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
)

// Validator performs pre-run validation of simulation configurations
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a configuration before simulation. Any violation returns a
// configuration error and the simulation never runs.
func (v *Validator) Validate(cfg *SimulationConfig) error {
	if cfg == nil {
		return simerrors.NewConfigError("config", "missing configuration")
	}

	if len(cfg.Assets) == 0 {
		return simerrors.NewConfigError("config", "at least one asset is required")
	}

	if len(cfg.Assets) > MaxAssetsCount {
		return simerrors.NewConfigError("config",
			fmt.Sprintf("maximum %d assets allowed, got %d", MaxAssetsCount, len(cfg.Assets)))
	}

	totalWeight := 0.0
	for _, asset := range cfg.Assets {
		if asset.Symbol == "" {
			return simerrors.NewConfigError("config", "asset symbol must not be empty")
		}
		if asset.Weight < 0 {
			return simerrors.NewConfigError("config",
				fmt.Sprintf("asset %s has negative weight %.2f", asset.Symbol, asset.Weight))
		}
		totalWeight += asset.Weight
	}
	if math.Abs(totalWeight-100.0) > WeightSumTolerance {
		return simerrors.NewConfigError("config",
			fmt.Sprintf("weights must sum to 100%%, got %.2f%%", totalWeight))
	}

	if cfg.StartDate == "" || cfg.EndDate == "" {
		return simerrors.NewConfigError("config", "start_date and end_date are required")
	}
	start, end, err := cfg.DateRange()
	if err != nil {
		return simerrors.NewConfigError("config", err.Error())
	}
	if !start.Before(end) {
		return simerrors.NewConfigError("config",
			fmt.Sprintf("start_date %s must be before end_date %s", cfg.StartDate, cfg.EndDate))
	}

	if cfg.InitialAmount < MinInitialAmount {
		return simerrors.NewConfigError("config",
			fmt.Sprintf("minimum initial amount is $%.0f, got $%.2f", MinInitialAmount, cfg.InitialAmount))
	}
	if cfg.InitialAmount > MaxInitialAmount {
		return simerrors.NewConfigError("config",
			fmt.Sprintf("maximum initial amount is $%.0f, got $%.2f", MaxInitialAmount, cfg.InitialAmount))
	}

	if err := v.validateDCA(cfg.DCA); err != nil {
		return err
	}

	return nil
}

// validateDCA checks the contribution policy configuration
func (v *Validator) validateDCA(dca *DCAConfig) error {
	if dca == nil {
		return nil
	}

	switch dca.Mode {
	case DCAModePeriodic:
		if dca.InvestmentAmount <= 0 {
			return simerrors.NewConfigError("config",
				fmt.Sprintf("periodic DCA requires a positive investment_amount, got %.2f", dca.InvestmentAmount))
		}
		if _, err := schedule.ParseFrequency(dca.Frequency); err != nil {
			return simerrors.NewConfigError("config", err.Error())
		}

	case DCAModeConditional:
		if len(dca.Conditions) == 0 {
			return simerrors.NewConfigError("config", "conditional DCA requires at least one condition")
		}
		for _, condition := range dca.Conditions {
			switch condition.Type {
			case schedule.ConditionPriceDrop:
				if condition.DropPercentage <= 0 {
					return simerrors.NewConfigError("config",
						"price_drop condition requires a positive drop_percentage")
				}
			case schedule.ConditionDrawdown:
				if condition.DrawdownThreshold <= 0 {
					return simerrors.NewConfigError("config",
						"drawdown condition requires a positive drawdown_threshold")
				}
			default:
				return simerrors.NewConfigError("config",
					fmt.Sprintf("unknown condition type: %q", condition.Type))
			}
		}

	default:
		return simerrors.NewConfigError("config",
			fmt.Sprintf("unknown DCA mode: %q", dca.Mode))
	}

	return nil
}
