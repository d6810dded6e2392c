package engine

import (
	"context"
	"testing"
	"time"
)

func TestAddXPSingleLevelUp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.AddXP(ctx, 250)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if state.Level != 2 {
		t.Fatalf("level=%d, want 2", state.Level)
	}
	if state.XP != 150 {
		t.Fatalf("xp=%d, want 150", state.XP)
	}
	if state.XPForNextLevel != 200 {
		t.Fatalf("xpForNextLevel=%d, want 200", state.XPForNextLevel)
	}
}

func TestAddXPMultiLevelJump(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// 100 (L1) + 200 (L2) + 300 (L3) = 600 consumed, 50 left at level 4.
	state, err := svc.AddXP(ctx, 650)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if state.Level != 4 {
		t.Fatalf("level=%d, want 4", state.Level)
	}
	if state.XP != 50 {
		t.Fatalf("xp=%d, want 50", state.XP)
	}
	if state.XP >= state.XPForNextLevel {
		t.Fatalf("xp=%d not normalized below threshold %d", state.XP, state.XPForNextLevel)
	}
}

func TestUpdateStreakOncePerDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Seeded lastActive is today, so the first call is a same-day no-op.
	state, err := svc.UpdateStreak(ctx, true)
	if err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if state.CurrentStreak != 0 {
		t.Fatalf("same-day streak=%d, want 0", state.CurrentStreak)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	setClock(svc, tomorrow)

	state, err = svc.UpdateStreak(ctx, true)
	if err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if state.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", state.CurrentStreak)
	}
	if state.LongestStreak != 1 {
		t.Fatalf("longest=%d, want 1", state.LongestStreak)
	}

	// Second update the same day must not double-count.
	state, err = svc.UpdateStreak(ctx, true)
	if err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if state.CurrentStreak != 1 {
		t.Fatalf("streak after same-day repeat=%d, want 1", state.CurrentStreak)
	}
}

func TestUpdateStreakReset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setClock(svc, time.Now().AddDate(0, 0, 1))
	if _, err := svc.UpdateStreak(ctx, true); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}

	setClock(svc, time.Now().AddDate(0, 0, 2))
	state, err := svc.UpdateStreak(ctx, false)
	if err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if state.CurrentStreak != 0 {
		t.Fatalf("streak=%d, want 0 after reset", state.CurrentStreak)
	}
	if state.LongestStreak != 1 {
		t.Fatalf("longest=%d, want 1 preserved", state.LongestStreak)
	}
}

func TestMidnightResetPreservesStreakDayKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	setClock(svc, day1)
	if _, err := svc.UpdateStreak(ctx, true); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}

	// The startup rollover runs before any completion the next day. It is
	// housekeeping and must leave lastActive on the previous day.
	day2 := day1.AddDate(0, 0, 1)
	setClock(svc, day2)
	if err := svc.EnsureMidnightReset(ctx); err != nil {
		t.Fatalf("EnsureMidnightReset: %v", err)
	}

	state := mustUserState(t, svc)
	if !sameDay(state.LastActive, day1) {
		t.Fatalf("lastActive=%v, want still on %v after rollover", state.LastActive, day1)
	}

	xpBefore := state.XP
	completed, err := svc.CheckDailyChallenges(ctx)
	if err != nil {
		t.Fatalf("CheckDailyChallenges: %v", err)
	}
	for _, ch := range completed {
		if ch.ID == "daily_streak_keeper" {
			t.Fatal("streak keeper completed with no completion event")
		}
	}
	if state = mustUserState(t, svc); state.XP != xpBefore {
		t.Fatalf("xp=%d, want %d (no reward without activity)", state.XP, xpBefore)
	}

	task, err := svc.CreateTask(ctx, CreateTaskInput{Title: "New day task", LeverageScore: 4})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	state = mustUserState(t, svc)
	if state.CurrentStreak != 2 {
		t.Fatalf("streak=%d, want 2 after the new-day completion", state.CurrentStreak)
	}
}

func TestEnsureMidnightResetClearsPracticeDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	practices, err := svc.Practices(ctx)
	if err != nil || len(practices) == 0 {
		t.Fatalf("practices: %v (n=%d)", err, len(practices))
	}

	p, err := svc.LogPractice(ctx, practices[0].ID, practices[0].Target)
	if err != nil {
		t.Fatalf("LogPractice: %v", err)
	}
	if !p.TodayCompleted {
		t.Fatal("expected practice completed today")
	}

	setClock(svc, time.Now().AddDate(0, 0, 1))
	if err := svc.EnsureMidnightReset(ctx); err != nil {
		t.Fatalf("EnsureMidnightReset: %v", err)
	}

	after, err := svc.PracticeByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("PracticeByID: %v", err)
	}
	if after.TodayCompleted || after.TodayValue != 0 {
		t.Fatalf("practice not reset: completed=%v value=%g", after.TodayCompleted, after.TodayValue)
	}
	if after.HabitStrength != p.HabitStrength {
		t.Fatalf("habit strength changed by reset: %d != %d", after.HabitStrength, p.HabitStrength)
	}
}
