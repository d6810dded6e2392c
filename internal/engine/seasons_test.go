package engine

import (
	"context"
	"testing"
	"time"
)

func TestNextSeasonCycle(t *testing.T) {
	cases := []struct{ in, want Season }{
		{SeasonSpring, SeasonSummer},
		{SeasonSummer, SeasonFall},
		{SeasonFall, SeasonWinter},
		{SeasonWinter, SeasonSpring},
	}
	for _, c := range cases {
		if got := NextSeason(c.in); got != c.want {
			t.Fatalf("NextSeason(%s)=%s, want %s", c.in, got, c.want)
		}
	}
}

func TestStartSeasonClosesCurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	setClock(svc, start)

	first, err := svc.StartSeason(ctx, SeasonSpring, "learning quarter", nil)
	if err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	if first.EnergyPattern != "building" {
		t.Fatalf("energyPattern=%q, want building", first.EnergyPattern)
	}

	setClock(svc, start.AddDate(0, 3, 0))
	second, err := svc.StartSeason(ctx, SeasonSummer, "", nil)
	if err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	if second.EnergyPattern != "peak" {
		t.Fatalf("energyPattern=%q, want peak", second.EnergyPattern)
	}

	current, err := svc.CurrentSeason(ctx)
	if err != nil {
		t.Fatalf("CurrentSeason: %v", err)
	}
	if current.Season != string(SeasonSummer) {
		t.Fatalf("current=%s, want summer", current.Season)
	}
	if current.EndDate != nil {
		t.Fatal("current season should be open")
	}

	history, err := svc.SeasonHistory(ctx)
	if err != nil {
		t.Fatalf("SeasonHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("len(history)=%d, want 1", len(history))
	}
	if history[0].ID != first.ID || history[0].EndDate == nil {
		t.Fatalf("history entry %+v, want closed copy of first season", history[0])
	}
}

func TestCurrentSeasonUnset(t *testing.T) {
	svc := newTestService(t)

	current, err := svc.CurrentSeason(context.Background())
	if err != nil {
		t.Fatalf("CurrentSeason: %v", err)
	}
	if current != nil {
		t.Fatal("expected nil before any season starts")
	}

	transition, err := svc.CheckSeasonTransition(context.Background())
	if err != nil {
		t.Fatalf("CheckSeasonTransition: %v", err)
	}
	if transition != nil {
		t.Fatal("no transition suggestion without a season")
	}
}

func TestCheckSeasonTransitionThresholds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	setClock(svc, start)
	if _, err := svc.StartSeason(ctx, SeasonFall, "", nil); err != nil {
		t.Fatalf("StartSeason: %v", err)
	}

	setClock(svc, start.AddDate(0, 0, 30))
	transition, err := svc.CheckSeasonTransition(ctx)
	if err != nil {
		t.Fatalf("CheckSeasonTransition: %v", err)
	}
	if transition != nil {
		t.Fatal("30 days in should not suggest a transition")
	}

	setClock(svc, start.AddDate(0, 0, 100))
	transition, err = svc.CheckSeasonTransition(ctx)
	if err != nil {
		t.Fatalf("CheckSeasonTransition: %v", err)
	}
	if transition == nil || transition.ShouldTransition {
		t.Fatalf("transition=%+v, want gentle suggestion at 100 days", transition)
	}
	if transition.NextSeason != SeasonWinter {
		t.Fatalf("nextSeason=%s, want winter", transition.NextSeason)
	}

	setClock(svc, start.AddDate(0, 0, 200))
	transition, err = svc.CheckSeasonTransition(ctx)
	if err != nil {
		t.Fatalf("CheckSeasonTransition: %v", err)
	}
	if transition == nil || !transition.ShouldTransition {
		t.Fatalf("transition=%+v, want strong suggestion at 200 days", transition)
	}
}

func TestUpdateSeasonFocus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	missing, err := svc.UpdateSeasonFocus(ctx, UpdateSeasonFocusInput{})
	if err != nil {
		t.Fatalf("UpdateSeasonFocus: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil with no current season")
	}

	if _, err := svc.StartSeason(ctx, SeasonWinter, "", nil); err != nil {
		t.Fatalf("StartSeason: %v", err)
	}

	theme := "rest and plan"
	updated, err := svc.UpdateSeasonFocus(ctx, UpdateSeasonFocusInput{Theme: &theme})
	if err != nil {
		t.Fatalf("UpdateSeasonFocus: %v", err)
	}
	if updated.Theme != theme {
		t.Fatalf("theme=%q, want %q", updated.Theme, theme)
	}
	if updated.Mindset == "" {
		t.Fatal("mindset lost on focus update")
	}
}

func TestSeasonStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	setClock(svc, start)
	if _, err := svc.StartSeason(ctx, SeasonSpring, "", nil); err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	setClock(svc, start.AddDate(0, 0, 90))
	if _, err := svc.StartSeason(ctx, SeasonSummer, "", nil); err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	setClock(svc, start.AddDate(0, 0, 100))

	stats, err := svc.SeasonStats(ctx)
	if err != nil {
		t.Fatalf("SeasonStats: %v", err)
	}
	if stats.CurrentSeason != SeasonSummer {
		t.Fatalf("currentSeason=%s, want summer", stats.CurrentSeason)
	}
	if stats.DaysInCurrentSeason != 10 {
		t.Fatalf("daysInCurrentSeason=%d, want 10", stats.DaysInCurrentSeason)
	}
	if stats.TotalSeasonsCycled != 1 {
		t.Fatalf("cycled=%d, want 1", stats.TotalSeasonsCycled)
	}
	if stats.AvgSeasonDuration != 90 {
		t.Fatalf("avgDuration=%d, want 90", stats.AvgSeasonDuration)
	}
}
