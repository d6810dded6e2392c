package engine

import (
	"sort"
	"time"
)

// Shared dated-event streak arithmetic. Authenticity, habit stacks, and
// maker-mode deep work all qualify days with their own predicate and feed the
// resulting "2006-01-02" day keys through these two functions.

// currentDailyStreak counts consecutive qualifying calendar days ending at
// today (or yesterday, when today has not qualified yet). If the most recent
// qualifying day is older than yesterday the streak is 0.
func currentDailyStreak(today time.Time, dates []string) int {
	if len(dates) == 0 {
		return 0
	}
	qualified := make(map[string]bool, len(dates))
	for _, d := range dates {
		qualified[d] = true
	}

	anchor := today
	if !qualified[dayKey(anchor)] {
		anchor = anchor.AddDate(0, 0, -1)
		if !qualified[dayKey(anchor)] {
			return 0
		}
	}

	streak := 0
	for qualified[dayKey(anchor)] {
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// longestDailyStreak scans qualifying day keys in ascending order, extending
// the running streak when the gap to the previous day is exactly one day and
// resetting to 1 otherwise.
func longestDailyStreak(dates []string) int {
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		t, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// scoreTrend compares the mean of the 3 most recent data points against the
// mean of the preceding 4. Fewer than 7 points is always stable.
func scoreTrend(newestFirst []float64) Trend {
	if len(newestFirst) < 7 {
		return TrendStable
	}

	var recent, prior float64
	for _, v := range newestFirst[:3] {
		recent += v
	}
	recent /= 3
	for _, v := range newestFirst[3:7] {
		prior += v
	}
	prior /= 4

	switch {
	case recent > prior+0.5:
		return TrendImproving
	case recent < prior-0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}
