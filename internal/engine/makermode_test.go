package engine

import (
	"context"
	"testing"
	"time"
)

func TestStartSessionClosesActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	setClock(svc, start)

	first, err := svc.StartSession(ctx, ModeMaker)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if first.EndTime != nil {
		t.Fatal("new session should be open")
	}

	setClock(svc, start.Add(90*time.Minute))
	second, err := svc.StartSession(ctx, ModeManager)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	sessions, err := svc.MakerSessions(ctx)
	if err != nil {
		t.Fatalf("MakerSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions)=%d, want 2", len(sessions))
	}

	var closed, open int
	for _, sess := range sessions {
		if sess.EndTime != nil {
			closed++
			if sess.ID != first.ID {
				t.Fatalf("closed session %s, want %s", sess.ID, first.ID)
			}
			if sess.DurationMinutes != 90 {
				t.Fatalf("durationMinutes=%d, want 90", sess.DurationMinutes)
			}
		} else {
			open++
			if sess.ID != second.ID {
				t.Fatalf("open session %s, want %s", sess.ID, second.ID)
			}
		}
	}
	if closed != 1 || open != 1 {
		t.Fatalf("closed=%d open=%d, want 1/1", closed, open)
	}

	mode, err := svc.CurrentMode(ctx)
	if err != nil {
		t.Fatalf("CurrentMode: %v", err)
	}
	if mode != ModeManager {
		t.Fatalf("mode=%s, want manager", mode)
	}
}

func TestEndCurrentSessionNoneActive(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.EndCurrentSession(context.Background(), 8, "wrap up")
	if err != nil {
		t.Fatalf("EndCurrentSession: %v", err)
	}
	if session != nil {
		t.Fatal("ending with no active session should return nil")
	}
}

func TestCurrentModeFallsBackToPreference(t *testing.T) {
	svc := newTestService(t)

	mode, err := svc.CurrentMode(context.Background())
	if err != nil {
		t.Fatalf("CurrentMode: %v", err)
	}
	if mode != ModeMaker {
		t.Fatalf("mode=%s, want maker default", mode)
	}
}

func TestIncrementSessionTasksAndInterruptions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// No open session: both are silent no-ops.
	if err := svc.IncrementSessionTasks(ctx); err != nil {
		t.Fatalf("IncrementSessionTasks: %v", err)
	}
	if err := svc.LogInterruption(ctx); err != nil {
		t.Fatalf("LogInterruption: %v", err)
	}

	if _, err := svc.StartSession(ctx, ModeMaker); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := svc.IncrementSessionTasks(ctx); err != nil {
		t.Fatalf("IncrementSessionTasks: %v", err)
	}
	if err := svc.LogInterruption(ctx); err != nil {
		t.Fatalf("LogInterruption: %v", err)
	}

	session, err := svc.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if session.TasksCompleted != 1 || session.Interruptions != 1 {
		t.Fatalf("tasks=%d interruptions=%d, want 1/1", session.TasksCompleted, session.Interruptions)
	}
}

func TestMakerStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	// A 200-minute maker block (a deep-work day at the 180-minute default).
	setClock(svc, start)
	if _, err := svc.StartSession(ctx, ModeMaker); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	setClock(svc, start.Add(200*time.Minute))
	if _, err := svc.EndCurrentSession(ctx, 8, ""); err != nil {
		t.Fatalf("EndCurrentSession: %v", err)
	}

	// A 60-minute manager slot the same afternoon.
	setClock(svc, start.Add(5*time.Hour))
	if _, err := svc.StartSession(ctx, ModeManager); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	setClock(svc, start.Add(6*time.Hour))
	if _, err := svc.EndCurrentSession(ctx, 6, ""); err != nil {
		t.Fatalf("EndCurrentSession: %v", err)
	}

	stats, err := svc.MakerStats(ctx)
	if err != nil {
		t.Fatalf("MakerStats: %v", err)
	}
	if stats.TotalMakerMinutes != 200 {
		t.Fatalf("makerMinutes=%d, want 200", stats.TotalMakerMinutes)
	}
	if stats.TotalManagerMinutes != 60 {
		t.Fatalf("managerMinutes=%d, want 60", stats.TotalManagerMinutes)
	}
	if stats.MakerSessionsCount != 1 || stats.ManagerSessionsCount != 1 {
		t.Fatalf("sessions=%d/%d, want 1/1", stats.MakerSessionsCount, stats.ManagerSessionsCount)
	}
	if stats.LongestMakerBlock != 200 {
		t.Fatalf("longestMakerBlock=%d, want 200", stats.LongestMakerBlock)
	}
	if stats.AvgMakerProductivity != 8 {
		t.Fatalf("avgMakerProductivity=%.1f, want 8", stats.AvgMakerProductivity)
	}
	if stats.DeepWorkStreak != 1 {
		t.Fatalf("deepWorkStreak=%d, want 1", stats.DeepWorkStreak)
	}
}

func TestMeetingCostByMode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, ModeManager); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	cost, err := svc.MeetingCostFor(ctx, 30)
	if err != nil {
		t.Fatalf("MeetingCostFor: %v", err)
	}
	if cost.LostProductivityMinutes != 0 {
		t.Fatalf("manager cost=%d, want 0", cost.LostProductivityMinutes)
	}

	if _, err := svc.StartSession(ctx, ModeMaker); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	cost, err = svc.MeetingCostFor(ctx, 30)
	if err != nil {
		t.Fatalf("MeetingCostFor: %v", err)
	}
	// Meeting length plus the context switch penalty on both sides.
	if cost.LostProductivityMinutes != 30+23*2 {
		t.Fatalf("maker cost=%d, want %d", cost.LostProductivityMinutes, 30+23*2)
	}
}

func TestSessionQueriesAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)

	// One closed maker session yesterday, one closed manager session today.
	setClock(svc, start)
	if _, err := svc.StartSession(ctx, ModeMaker); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	setClock(svc, start.Add(2*time.Hour))
	if _, err := svc.EndCurrentSession(ctx, 0, ""); err != nil {
		t.Fatalf("EndCurrentSession: %v", err)
	}

	today := start.AddDate(0, 0, 1)
	setClock(svc, today)
	manager, err := svc.StartSession(ctx, ModeManager)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	setClock(svc, today.Add(time.Hour))
	if _, err := svc.EndCurrentSession(ctx, 0, ""); err != nil {
		t.Fatalf("EndCurrentSession: %v", err)
	}

	makers, err := svc.SessionsByMode(ctx, ModeMaker)
	if err != nil {
		t.Fatalf("SessionsByMode: %v", err)
	}
	if len(makers) != 1 {
		t.Fatalf("len(makers)=%d, want 1", len(makers))
	}

	ranged, err := svc.SessionsInRange(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SessionsInRange: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != manager.ID {
		t.Fatalf("ranged=%v, want only today's manager session", ranged)
	}

	todays, err := svc.TodaySessions(ctx)
	if err != nil {
		t.Fatalf("TodaySessions: %v", err)
	}
	if len(todays) != 1 || todays[0].ID != manager.ID {
		t.Fatalf("todays=%v, want only today's manager session", todays)
	}

	ok, err := svc.DeleteSession(ctx, manager.ID)
	if err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if !ok {
		t.Fatal("delete of existing session reported false")
	}
	ok, err = svc.DeleteSession(ctx, manager.ID)
	if err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if ok {
		t.Fatal("second delete reported true")
	}
}

func TestProtectedMakerTimeFollowsPrefs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	protected, err := svc.InProtectedMakerTime(ctx)
	if err != nil {
		t.Fatalf("InProtectedMakerTime: %v", err)
	}
	if protected {
		t.Fatal("no active session should not be protected")
	}

	if _, err := svc.StartSession(ctx, ModeMaker); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	protected, err = svc.InProtectedMakerTime(ctx)
	if err != nil {
		t.Fatalf("InProtectedMakerTime: %v", err)
	}
	if !protected {
		t.Fatal("active maker session with default prefs should be protected")
	}

	off := false
	if _, err := svc.UpdateMakerPrefs(ctx, UpdateMakerPrefsInput{ProtectMakerTime: &off}); err != nil {
		t.Fatalf("UpdateMakerPrefs: %v", err)
	}
	protected, err = svc.InProtectedMakerTime(ctx)
	if err != nil {
		t.Fatalf("InProtectedMakerTime: %v", err)
	}
	if protected {
		t.Fatal("protection disabled in prefs should win")
	}

	prefs, err := svc.MakerPrefs(ctx)
	if err != nil {
		t.Fatalf("MakerPrefs: %v", err)
	}
	if prefs.MakerBlockDuration != 180 {
		t.Fatalf("makerBlockDuration=%d, want 180 preserved", prefs.MakerBlockDuration)
	}
}
