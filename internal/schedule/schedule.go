// Package schedule builds contribution calendars for periodic DCA and
// detects condition-based contribution triggers for conditional DCA.
package schedule

import (
	"fmt"
	"time"
)

// Frequency determines how scheduled contribution dates are generated
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// FrequencyConfig carries the frequency-specific parameters
type FrequencyConfig struct {
	// DayOfMonth is the target contribution day for monthly schedules.
	// Days past the end of a month are clamped to the month's last day.
	DayOfMonth int `json:"day_of_month"`
}

// ParseFrequency converts a config string into a Frequency
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("unknown contribution frequency: %q", s)
	}
}

// GenerateSchedule returns the ordered contribution dates in [start, end].
// Monthly schedules clamp the target day to each month's last valid day;
// weekly/biweekly step by fixed day counts from start; daily includes
// weekdays only.
func GenerateSchedule(start, end time.Time, frequency Frequency, config FrequencyConfig) []time.Time {
	var dates []time.Time

	switch frequency {
	case FrequencyMonthly:
		dayOfMonth := config.DayOfMonth
		if dayOfMonth <= 0 {
			dayOfMonth = 1
		}
		// Iterate on month anchors so adding a month never overflows into the
		// next one (Jan 31 + 1 month would normalize to Mar 2).
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		for !month.After(end) {
			day := dayOfMonth
			if last := lastDayOfMonth(month); day > last {
				day = last
			}
			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, month.Location())
			if !date.Before(start) && !date.After(end) {
				dates = append(dates, date)
			}
			month = month.AddDate(0, 1, 0)
		}

	case FrequencyWeekly:
		for current := start; !current.After(end); current = current.AddDate(0, 0, 7) {
			dates = append(dates, current)
		}

	case FrequencyBiweekly:
		for current := start; !current.After(end); current = current.AddDate(0, 0, 14) {
			dates = append(dates, current)
		}

	case FrequencyDaily:
		for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
			if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
				dates = append(dates, current)
			}
		}
	}

	return dates
}

// lastDayOfMonth returns the number of days in t's month
func lastDayOfMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
