package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestAddVictoryClampsDifficulty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Ran a marathon", Difficulty: 14, Emotion: EmotionProud, Category: CategoryPhysical})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}
	if v.Difficulty != 10 {
		t.Fatalf("difficulty=%d, want clamped to 10", v.Difficulty)
	}

	if _, err := svc.AddVictory(ctx, AddVictoryInput{Title: "  "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestRetrieveVictoryCountsRetrievals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Shipped the launch", Difficulty: 7, Emotion: EmotionUnstoppable, Category: CategoryProfessional})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}

	got, err := svc.RetrieveVictory(ctx, v.ID)
	if err != nil {
		t.Fatalf("RetrieveVictory: %v", err)
	}
	if got.TimesRetrieved != 1 || got.LastRetrievedAt == nil {
		t.Fatalf("timesRetrieved=%d lastRetrievedAt=%v, want 1 and set", got.TimesRetrieved, got.LastRetrievedAt)
	}

	missing, err := svc.RetrieveVictory(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("RetrieveVictory: %v", err)
	}
	if missing != nil {
		t.Fatal("unknown id should return nil")
	}
}

func TestRandomVictoryWeightedByDifficulty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	hard, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Hard win", Difficulty: 9, Emotion: EmotionProud, Category: CategoryMental})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}
	if _, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Easy win", Difficulty: 1, Emotion: EmotionCalm, Category: CategoryMental}); err != nil {
		t.Fatalf("AddVictory: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	svc.randF = rng.Float64

	const draws = 10000
	hardHits := 0
	for i := 0; i < draws; i++ {
		v, err := svc.RandomVictory(ctx)
		if err != nil {
			t.Fatalf("RandomVictory: %v", err)
		}
		if v.ID == hard.ID {
			hardHits++
		}
	}

	ratio := float64(hardHits) / draws
	if ratio < 0.88 || ratio > 0.92 {
		t.Fatalf("hard victory drawn %.3f of the time, want ~0.90", ratio)
	}
}

func TestCookieJarStatsEmpty(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.CookieJarStats(context.Background())
	if err != nil {
		t.Fatalf("CookieJarStats: %v", err)
	}
	if stats.TotalVictories != 0 {
		t.Fatalf("totalVictories=%d, want 0", stats.TotalVictories)
	}
	if stats.MostCommonEmotion != string(EmotionProud) {
		t.Fatalf("mostCommonEmotion=%q, want proud default", stats.MostCommonEmotion)
	}
}

func TestCookieJarStrength(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Win", Difficulty: 10, Emotion: EmotionProud, Category: CategoryPersonal}); err != nil {
			t.Fatalf("AddVictory: %v", err)
		}
	}

	stats, err := svc.CookieJarStats(ctx)
	if err != nil {
		t.Fatalf("CookieJarStats: %v", err)
	}
	// 3 victories * 5 = 15, avg difficulty 10 * 3 = 30 (capped), no recent
	// retrievals.
	if stats.CurrentStrength != 45 {
		t.Fatalf("strength=%d, want 45", stats.CurrentStrength)
	}
	if stats.AvgDifficulty != 10 {
		t.Fatalf("avgDifficulty=%.1f, want 10", stats.AvgDifficulty)
	}
}

func TestUpdateAndDeleteVictory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.AddVictory(ctx, AddVictoryInput{Title: "First 5k", Difficulty: 6, Emotion: EmotionProud, Category: CategoryPhysical})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}

	story := "Ran the whole way without stopping."
	difficulty := 20
	updated, err := svc.UpdateVictory(ctx, v.ID, UpdateVictoryInput{Story: &story, Difficulty: &difficulty})
	if err != nil {
		t.Fatalf("UpdateVictory: %v", err)
	}
	if updated.Story != story {
		t.Fatalf("story=%q, want %q", updated.Story, story)
	}
	if updated.Difficulty != 10 {
		t.Fatalf("difficulty=%d, want clamped to 10", updated.Difficulty)
	}
	if updated.Title != "First 5k" {
		t.Fatalf("title=%q, want unchanged", updated.Title)
	}

	missing, err := svc.UpdateVictory(ctx, "no-such-id", UpdateVictoryInput{Story: &story})
	if err != nil {
		t.Fatalf("UpdateVictory: %v", err)
	}
	if missing != nil {
		t.Fatal("unknown id should return nil")
	}

	ok, err := svc.DeleteVictory(ctx, v.ID)
	if err != nil {
		t.Fatalf("DeleteVictory: %v", err)
	}
	if !ok {
		t.Fatal("delete of existing victory reported false")
	}
	ok, err = svc.DeleteVictory(ctx, v.ID)
	if err != nil {
		t.Fatalf("DeleteVictory: %v", err)
	}
	if ok {
		t.Fatal("second delete reported true")
	}
}

func TestVictoriesByCategoryAndEmotion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Lift PR", Difficulty: 7, Emotion: EmotionUnstoppable, Category: CategoryPhysical}); err != nil {
		t.Fatalf("AddVictory: %v", err)
	}
	if _, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Shipped launch", Difficulty: 8, Emotion: EmotionProud, Category: CategoryProfessional}); err != nil {
		t.Fatalf("AddVictory: %v", err)
	}

	physical, err := svc.VictoriesByCategory(ctx, CategoryPhysical)
	if err != nil {
		t.Fatalf("VictoriesByCategory: %v", err)
	}
	if len(physical) != 1 || physical[0].Title != "Lift PR" {
		t.Fatalf("physical=%v, want only the lift PR", physical)
	}

	proud, err := svc.VictoriesByEmotion(ctx, EmotionProud)
	if err != nil {
		t.Fatalf("VictoriesByEmotion: %v", err)
	}
	if len(proud) != 1 || proud[0].Title != "Shipped launch" {
		t.Fatalf("proud=%v, want only the launch", proud)
	}
}

func TestForgottenVictories(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	setClock(svc, time.Now().AddDate(0, 0, -45))
	old, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Old win", Difficulty: 9, Emotion: EmotionProud, Category: CategoryMental})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}
	if _, err := svc.RetrieveVictory(ctx, old.ID); err != nil {
		t.Fatalf("RetrieveVictory: %v", err)
	}

	setClock(svc, time.Now())
	fresh, err := svc.AddVictory(ctx, AddVictoryInput{Title: "Fresh win", Difficulty: 5, Emotion: EmotionCalm, Category: CategoryPersonal})
	if err != nil {
		t.Fatalf("AddVictory: %v", err)
	}
	if _, err := svc.RetrieveVictory(ctx, fresh.ID); err != nil {
		t.Fatalf("RetrieveVictory: %v", err)
	}

	forgotten, err := svc.ForgottenVictories(ctx)
	if err != nil {
		t.Fatalf("ForgottenVictories: %v", err)
	}
	if len(forgotten) != 1 || forgotten[0].ID != old.ID {
		t.Fatalf("forgotten=%v, want only the 45-day-old win", forgotten)
	}
}
