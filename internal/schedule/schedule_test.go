package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFrequency(t *testing.T) {
	freq, err := ParseFrequency("monthly")
	require.NoError(t, err)
	assert.Equal(t, FrequencyMonthly, freq)

	_, err = ParseFrequency("hourly")
	assert.Error(t, err)

	_, err = ParseFrequency("")
	assert.Error(t, err)
}

func TestGenerateSchedule_Monthly(t *testing.T) {
	dates := GenerateSchedule(date(2023, 1, 1), date(2023, 4, 30), FrequencyMonthly, FrequencyConfig{DayOfMonth: 15})

	require.Len(t, dates, 4)
	assert.Equal(t, date(2023, 1, 15), dates[0])
	assert.Equal(t, date(2023, 2, 15), dates[1])
	assert.Equal(t, date(2023, 3, 15), dates[2])
	assert.Equal(t, date(2023, 4, 15), dates[3])
}

func TestGenerateSchedule_MonthlyClampsToMonthEnd(t *testing.T) {
	dates := GenerateSchedule(date(2023, 1, 1), date(2023, 4, 30), FrequencyMonthly, FrequencyConfig{DayOfMonth: 31})

	require.Len(t, dates, 4)
	assert.Equal(t, date(2023, 1, 31), dates[0])
	assert.Equal(t, date(2023, 2, 28), dates[1])
	assert.Equal(t, date(2023, 3, 31), dates[2])
	assert.Equal(t, date(2023, 4, 30), dates[3])
}

func TestGenerateSchedule_MonthlyLeapFebruary(t *testing.T) {
	dates := GenerateSchedule(date(2024, 2, 1), date(2024, 2, 29), FrequencyMonthly, FrequencyConfig{DayOfMonth: 31})

	require.Len(t, dates, 1)
	assert.Equal(t, date(2024, 2, 29), dates[0])
}

func TestGenerateSchedule_MonthlySkipsDatesBeforeStart(t *testing.T) {
	// First month's target day falls before the start date.
	dates := GenerateSchedule(date(2023, 1, 20), date(2023, 3, 31), FrequencyMonthly, FrequencyConfig{DayOfMonth: 15})

	require.Len(t, dates, 2)
	assert.Equal(t, date(2023, 2, 15), dates[0])
}

func TestGenerateSchedule_Weekly(t *testing.T) {
	dates := GenerateSchedule(date(2023, 1, 2), date(2023, 1, 31), FrequencyWeekly, FrequencyConfig{})

	require.Len(t, dates, 5)
	assert.Equal(t, date(2023, 1, 2), dates[0])
	assert.Equal(t, date(2023, 1, 30), dates[4])
}

func TestGenerateSchedule_Biweekly(t *testing.T) {
	dates := GenerateSchedule(date(2023, 1, 2), date(2023, 1, 31), FrequencyBiweekly, FrequencyConfig{})

	require.Len(t, dates, 3)
	assert.Equal(t, date(2023, 1, 16), dates[1])
	assert.Equal(t, date(2023, 1, 30), dates[2])
}

func TestGenerateSchedule_DailySkipsWeekends(t *testing.T) {
	// Mon Jan 2 through Sun Jan 8: five weekdays.
	dates := GenerateSchedule(date(2023, 1, 2), date(2023, 1, 8), FrequencyDaily, FrequencyConfig{})

	require.Len(t, dates, 5)
	for _, d := range dates {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}
