package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simerrors "github.com/ducminhle1904/portfolio-backtest/internal/errors"
	"github.com/ducminhle1904/portfolio-backtest/internal/schedule"
	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

func validConfig() *SimulationConfig {
	return &SimulationConfig{
		Assets: []types.AssetWeight{
			{Symbol: "AAPL", Weight: 60},
			{Symbol: "MSFT", Weight: 40},
		},
		StartDate:     "2022-01-01",
		EndDate:       "2023-01-01",
		InitialAmount: 10000,
	}
}

func requireConfigError(t *testing.T, err error, fragment string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, simerrors.IsConfigError(err), "expected a configuration error, got %v", err)
	assert.Contains(t, err.Error(), fragment)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validConfig()))
}

func TestValidate_NilConfig(t *testing.T) {
	requireConfigError(t, NewValidator().Validate(nil), "missing configuration")
}

func TestValidate_Assets(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.Assets = nil
	requireConfigError(t, v.Validate(cfg), "at least one asset")

	cfg = validConfig()
	cfg.Assets = make([]types.AssetWeight, MaxAssetsCount+1)
	for i := range cfg.Assets {
		cfg.Assets[i] = types.AssetWeight{Symbol: strings.Repeat("A", i+1), Weight: 100.0 / float64(len(cfg.Assets))}
	}
	requireConfigError(t, v.Validate(cfg), "maximum 10 assets")

	cfg = validConfig()
	cfg.Assets[0].Symbol = ""
	requireConfigError(t, v.Validate(cfg), "symbol must not be empty")

	cfg = validConfig()
	cfg.Assets[0].Weight = -10
	cfg.Assets[1].Weight = 110
	requireConfigError(t, v.Validate(cfg), "negative weight")
}

func TestValidate_WeightSum(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.Assets[1].Weight = 39
	requireConfigError(t, v.Validate(cfg), "sum to 100")

	// Within the tolerance window validation passes.
	cfg = validConfig()
	cfg.Assets[1].Weight = 40.009
	assert.NoError(t, v.Validate(cfg))
}

func TestValidate_Dates(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.StartDate = ""
	requireConfigError(t, v.Validate(cfg), "required")

	cfg = validConfig()
	cfg.StartDate = "01/02/2022"
	requireConfigError(t, v.Validate(cfg), "invalid start_date")

	cfg = validConfig()
	cfg.StartDate = "2023-01-01"
	cfg.EndDate = "2022-01-01"
	requireConfigError(t, v.Validate(cfg), "must be before")

	cfg = validConfig()
	cfg.StartDate = "2022-01-01"
	cfg.EndDate = "2022-01-01"
	requireConfigError(t, v.Validate(cfg), "must be before")
}

func TestValidate_InitialAmount(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.InitialAmount = 50
	requireConfigError(t, v.Validate(cfg), "minimum initial amount")

	cfg = validConfig()
	cfg.InitialAmount = 20_000_000
	requireConfigError(t, v.Validate(cfg), "maximum initial amount")
}

func TestValidate_PeriodicDCA(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.DCA = &DCAConfig{Mode: DCAModePeriodic, InvestmentAmount: 500, Frequency: "monthly"}
	assert.NoError(t, v.Validate(cfg))

	cfg.DCA.InvestmentAmount = 0
	requireConfigError(t, v.Validate(cfg), "positive investment_amount")

	cfg.DCA.InvestmentAmount = 500
	cfg.DCA.Frequency = "hourly"
	requireConfigError(t, v.Validate(cfg), "hourly")
}

func TestValidate_ConditionalDCA(t *testing.T) {
	v := NewValidator()

	cfg := validConfig()
	cfg.DCA = &DCAConfig{
		Mode: DCAModeConditional,
		Conditions: []schedule.Condition{
			{Type: schedule.ConditionPriceDrop, DropPercentage: 5, Amount: 1000},
		},
	}
	assert.NoError(t, v.Validate(cfg))

	cfg.DCA.Conditions = nil
	requireConfigError(t, v.Validate(cfg), "at least one condition")

	cfg.DCA.Conditions = []schedule.Condition{{Type: schedule.ConditionPriceDrop}}
	requireConfigError(t, v.Validate(cfg), "positive drop_percentage")

	cfg.DCA.Conditions = []schedule.Condition{{Type: schedule.ConditionDrawdown}}
	requireConfigError(t, v.Validate(cfg), "positive drawdown_threshold")

	cfg.DCA.Conditions = []schedule.Condition{{Type: "moon_phase"}}
	requireConfigError(t, v.Validate(cfg), "unknown condition type")
}

func TestValidate_UnknownDCAMode(t *testing.T) {
	cfg := validConfig()
	cfg.DCA = &DCAConfig{Mode: "weekly_lump"}
	requireConfigError(t, NewValidator().Validate(cfg), "unknown DCA mode")
}
