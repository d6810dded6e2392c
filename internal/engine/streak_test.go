package engine

import (
	"testing"
	"time"
)

func day(t *testing.T, offset int) string {
	t.Helper()
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestCurrentDailyStreak(t *testing.T) {
	now := time.Now()

	if got := currentDailyStreak(now, nil); got != 0 {
		t.Fatalf("empty=%d, want 0", got)
	}

	dates := []string{day(t, 0), day(t, -1), day(t, -2)}
	if got := currentDailyStreak(now, dates); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}

	// Today missing but yesterday present still anchors the streak.
	dates = []string{day(t, -1), day(t, -2)}
	if got := currentDailyStreak(now, dates); got != 2 {
		t.Fatalf("yesterday-anchored streak=%d, want 2", got)
	}

	// Most recent qualifying day older than yesterday breaks the streak.
	dates = []string{day(t, -2), day(t, -3)}
	if got := currentDailyStreak(now, dates); got != 0 {
		t.Fatalf("stale streak=%d, want 0", got)
	}

	// A gap stops the count.
	dates = []string{day(t, 0), day(t, -1), day(t, -3), day(t, -4)}
	if got := currentDailyStreak(now, dates); got != 2 {
		t.Fatalf("gapped streak=%d, want 2", got)
	}
}

func TestLongestDailyStreak(t *testing.T) {
	if got := longestDailyStreak(nil); got != 0 {
		t.Fatalf("empty=%d, want 0", got)
	}

	// Two runs: 2 days and 3 days, unsorted with a duplicate.
	dates := []string{
		day(t, -9), day(t, -8),
		day(t, -5), day(t, -4), day(t, -3), day(t, -4),
	}
	if got := longestDailyStreak(dates); got != 3 {
		t.Fatalf("longest=%d, want 3", got)
	}
}

func TestScoreTrend(t *testing.T) {
	if got := scoreTrend([]float64{8, 8, 8}); got != TrendStable {
		t.Fatalf("short series trend=%s, want stable", got)
	}

	improving := []float64{9, 9, 9, 5, 5, 5, 5}
	if got := scoreTrend(improving); got != TrendImproving {
		t.Fatalf("trend=%s, want improving", got)
	}

	declining := []float64{4, 4, 4, 8, 8, 8, 8}
	if got := scoreTrend(declining); got != TrendDeclining {
		t.Fatalf("trend=%s, want declining", got)
	}

	// Within the half-point band means stable.
	flat := []float64{7.2, 7.0, 7.1, 7.0, 7.0, 7.0, 7.0}
	if got := scoreTrend(flat); got != TrendStable {
		t.Fatalf("trend=%s, want stable", got)
	}
}
