package engine

import (
	"context"
	"testing"
	"time"

	"github.com/myaiRhys/Lifer/internal/storage"
)

func fixedNow() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local) }

func TestEvaluateAchievementsStreak(t *testing.T) {
	state := &storage.UserState{CurrentStreak: 7}

	newly := EvaluateAchievements(state, nil, nil, fixedNow)
	ids := map[string]bool{}
	for _, a := range newly {
		ids[a.ID] = true
	}
	if !ids["fire_starter"] || !ids["momentum_master"] {
		t.Fatalf("expected fire_starter and momentum_master, got %v", ids)
	}
	if ids["unstoppable"] {
		t.Fatal("unstoppable should need a 30-day streak")
	}
}

func TestEvaluateAchievementsPermanent(t *testing.T) {
	// Streak regressed to zero after the unlock: the trophy stays.
	state := &storage.UserState{CurrentStreak: 0}

	newly := EvaluateAchievements(state, nil, []string{"fire_starter"}, fixedNow)
	for _, a := range newly {
		if a.ID == "fire_starter" {
			t.Fatal("already-unlocked achievement re-evaluated")
		}
	}
}

func TestEvaluateAchievementsTaskCounts(t *testing.T) {
	history := make([]storage.HistoryRecord, 0, 12)
	for i := 0; i < 10; i++ {
		history = append(history, storage.HistoryRecord{Type: "task", LeverageScore: 8, XPEarned: 80})
	}
	history = append(history, storage.HistoryRecord{Type: "practice", XPEarned: 15})

	state := &storage.UserState{}
	newly := EvaluateAchievements(state, history, nil, fixedNow)

	ids := map[string]bool{}
	for _, a := range newly {
		ids[a.ID] = true
	}
	if !ids["task_novice"] {
		t.Fatal("10 task records should unlock task_novice")
	}
	if !ids["high_value"] {
		t.Fatal("10 leverage-8 tasks should unlock high_value")
	}
	if ids["task_warrior"] {
		t.Fatal("task_warrior needs 50 tasks")
	}
}

func TestRuleProgressClamped(t *testing.T) {
	state := &storage.UserState{CurrentStreak: 12}
	rule := Rule{Kind: RuleStreak, Threshold: 7}

	p := rule.Progress(state, nil)
	if p.Current != 7 || p.Total != 7 {
		t.Fatalf("progress=%d/%d, want 7/7", p.Current, p.Total)
	}
}

func TestCheckAchievementsPersistsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state := mustUserState(t, svc)
	state.CurrentStreak = 3
	if err := svc.Store().Put(ctx, storage.KeyUserState, state); err != nil {
		t.Fatalf("put state: %v", err)
	}

	newly, err := svc.CheckAchievements(ctx)
	if err != nil {
		t.Fatalf("CheckAchievements: %v", err)
	}
	found := false
	for _, a := range newly {
		if a.ID == "fire_starter" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected fire_starter unlock")
	}

	again, err := svc.CheckAchievements(ctx)
	if err != nil {
		t.Fatalf("CheckAchievements: %v", err)
	}
	for _, a := range again {
		if a.ID == "fire_starter" {
			t.Fatal("fire_starter unlocked twice")
		}
	}
}
