package engine

import (
	"context"
	"testing"
	"time"
)

func TestLogAuthenticityUpsertsByDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.LogAuthenticity(ctx, 5, 1, []string{"Headache"}, "rough morning")
	if err != nil {
		t.Fatalf("LogAuthenticity: %v", err)
	}

	second, err := svc.LogAuthenticity(ctx, 8, 2, nil, "better after a walk")
	if err != nil {
		t.Fatalf("LogAuthenticity: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("same-day relog changed id: %s != %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("same-day relog changed createdAt: %v != %v", second.CreatedAt, first.CreatedAt)
	}
	if second.Score != 8 {
		t.Fatalf("score=%d, want 8", second.Score)
	}

	logs, err := svc.AuthenticityLogs(ctx)
	if err != nil {
		t.Fatalf("AuthenticityLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs)=%d, want 1 after same-day upsert", len(logs))
	}
}

func TestLogAuthenticityValidatesScore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LogAuthenticity(ctx, 11, 0, nil, ""); err == nil {
		t.Fatal("expected error for score 11")
	}
	if _, err := svc.LogAuthenticity(ctx, -1, 0, nil, ""); err == nil {
		t.Fatal("expected error for score -1")
	}
}

func TestAuthenticityStatsStreaks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Three consecutive good days ending today, plus an older low day.
	for offset := -2; offset <= 0; offset++ {
		setClock(svc, time.Now().AddDate(0, 0, offset))
		if _, err := svc.LogAuthenticity(ctx, 8, 1, []string{"Brain fog"}, ""); err != nil {
			t.Fatalf("LogAuthenticity: %v", err)
		}
	}
	setClock(svc, time.Now().AddDate(0, 0, -5))
	if _, err := svc.LogAuthenticity(ctx, 4, 0, []string{"Brain fog", "Headache"}, ""); err != nil {
		t.Fatalf("LogAuthenticity: %v", err)
	}
	setClock(svc, time.Now())

	stats, err := svc.AuthenticityStats(ctx)
	if err != nil {
		t.Fatalf("AuthenticityStats: %v", err)
	}
	if stats.CurrentStreak != 3 {
		t.Fatalf("currentStreak=%d, want 3", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("longestStreak=%d, want 3", stats.LongestStreak)
	}
	if stats.TotalBoundariesHonored != 3 {
		t.Fatalf("boundaries=%d, want 3", stats.TotalBoundariesHonored)
	}
	if len(stats.CommonBodySignals) == 0 || stats.CommonBodySignals[0].Signal != "Brain fog" {
		t.Fatalf("signals=%v, want Brain fog first", stats.CommonBodySignals)
	}
}

func TestCheckLowAuthenticityAlert(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for offset := -2; offset <= 0; offset++ {
		setClock(svc, time.Now().AddDate(0, 0, offset))
		if _, err := svc.LogAuthenticity(ctx, 3, 0, nil, ""); err != nil {
			t.Fatalf("LogAuthenticity: %v", err)
		}
	}
	setClock(svc, time.Now())

	alert, err := svc.CheckLowAuthenticity(ctx)
	if err != nil {
		t.Fatalf("CheckLowAuthenticity: %v", err)
	}
	if !alert.ShouldAlert {
		t.Fatal("expected alert after 3 consecutive low days")
	}
	if alert.ConsecutiveLowDays != 3 {
		t.Fatalf("consecutiveLowDays=%d, want 3", alert.ConsecutiveLowDays)
	}
}

func TestCheckLowAuthenticityNoAlertAfterGoodDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setClock(svc, time.Now().AddDate(0, 0, -1))
	if _, err := svc.LogAuthenticity(ctx, 2, 0, nil, ""); err != nil {
		t.Fatalf("LogAuthenticity: %v", err)
	}
	setClock(svc, time.Now())
	if _, err := svc.LogAuthenticity(ctx, 9, 0, nil, ""); err != nil {
		t.Fatalf("LogAuthenticity: %v", err)
	}

	alert, err := svc.CheckLowAuthenticity(ctx)
	if err != nil {
		t.Fatalf("CheckLowAuthenticity: %v", err)
	}
	if alert.ShouldAlert {
		t.Fatal("a good most-recent day should suppress the alert")
	}
}
