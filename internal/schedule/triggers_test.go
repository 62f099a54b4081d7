package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

func pricePoints(start time.Time, prices []float64) []types.PricePoint {
	points := make([]types.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = types.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return points
}

func TestEqualWeightSeries(t *testing.T) {
	start := date(2023, 1, 2)
	series := map[string][]types.PriceBar{
		"AAA": {
			{Date: start, Close: 100},
			{Date: start.AddDate(0, 0, 1), Close: 110},
		},
		"BBB": {
			{Date: start, Close: 200},
		},
	}

	points := EqualWeightSeries(series)
	require.Len(t, points, 2)

	// Both symbols present on day one, only AAA on day two.
	assert.Equal(t, start, points[0].Date)
	assert.InDelta(t, 150.0, points[0].Price, 1e-9)
	assert.InDelta(t, 110.0, points[1].Price, 1e-9)
}

func TestDetectTriggers_PriceDrop(t *testing.T) {
	start := date(2023, 1, 2)
	prices := pricePoints(start, []float64{100, 96, 95, 94})

	conditions := []Condition{{
		Type:           ConditionPriceDrop,
		DropPercentage: 3.0,
		Amount:         500,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 1)
	assert.Equal(t, start.AddDate(0, 0, 1), triggers[0].Date)
	assert.InDelta(t, 4.0, triggers[0].TriggerValue, 1e-9)
	assert.Equal(t, 500.0, triggers[0].Amount)
}

func TestDetectTriggers_PriceDropNoDefaultCooldown(t *testing.T) {
	start := date(2023, 1, 2)
	// Price drops have no default cooldown: both qualifying days fire.
	prices := pricePoints(start, []float64{100, 96, 96, 96, 92, 92})

	conditions := []Condition{{
		Type:           ConditionPriceDrop,
		DropPercentage: 3.0,
		Amount:         500,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 2)
	assert.Equal(t, start.AddDate(0, 0, 1), triggers[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 4), triggers[1].Date)
}

func TestDetectTriggers_ExplicitCooldownSuppressesRepeat(t *testing.T) {
	start := date(2023, 1, 2)
	// Same drops, but an explicit cooldown swallows the second one.
	prices := pricePoints(start, []float64{100, 96, 96, 96, 92, 92})

	conditions := []Condition{{
		Type:           ConditionPriceDrop,
		DropPercentage: 3.0,
		CooldownDays:   7,
		Amount:         500,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 1)
	assert.Equal(t, start.AddDate(0, 0, 1), triggers[0].Date)
}

func TestDetectTriggers_DrawdownDefaultCooldown(t *testing.T) {
	start := date(2023, 1, 2)
	// Both closing days sit more than 10% below the 105 peak, but the
	// seven day drawdown default keeps the second from firing.
	prices := pricePoints(start, []float64{100, 105, 103, 94, 93})

	conditions := []Condition{{
		Type:              ConditionDrawdown,
		DrawdownThreshold: 10.0,
		Amount:            1000,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 1)
	assert.Equal(t, start.AddDate(0, 0, 3), triggers[0].Date)
}

func TestDetectTriggers_CooldownExpiry(t *testing.T) {
	start := date(2023, 1, 2)
	prices := pricePoints(start, []float64{100, 96, 96, 96, 96, 96, 96, 96, 92})

	conditions := []Condition{{
		Type:           ConditionPriceDrop,
		DropPercentage: 3.0,
		CooldownDays:   7,
		Amount:         500,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 2)
	assert.Equal(t, start.AddDate(0, 0, 8), triggers[1].Date)
}

func TestDetectTriggers_Drawdown(t *testing.T) {
	start := date(2023, 1, 2)
	prices := pricePoints(start, []float64{100, 105, 103, 94, 93})

	conditions := []Condition{{
		Type:              ConditionDrawdown,
		DrawdownThreshold: 10.0,
		Amount:            1000,
	}}

	triggers := DetectTriggers(prices, conditions)
	require.Len(t, triggers, 1)

	// 94 is 10.48% below the 105 peak.
	assert.Equal(t, start.AddDate(0, 0, 3), triggers[0].Date)
	assert.InDelta(t, (105.0-94.0)/105.0*100, triggers[0].TriggerValue, 1e-9)
}

func TestDetectTriggers_DefaultAmount(t *testing.T) {
	start := date(2023, 1, 2)
	prices := pricePoints(start, []float64{100, 90})

	triggers := DetectTriggers(prices, []Condition{{
		Type:           ConditionPriceDrop,
		DropPercentage: 5.0,
	}})

	require.Len(t, triggers, 1)
	assert.Equal(t, DefaultTriggerAmount, triggers[0].Amount)
}

func TestDetectTriggers_NoConditions(t *testing.T) {
	prices := pricePoints(date(2023, 1, 2), []float64{100, 50})
	assert.Empty(t, DetectTriggers(prices, nil))
}
