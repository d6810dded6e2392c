package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CorePractices are seeded on first run.
var CorePractices = []Practice{
	{
		Name:        "Sleep",
		Type:        "positive",
		Target:      8,
		Unit:        "hours",
		Frequency:   "daily",
		Description: "7-9 hours optimal for recovery",
	},
	{
		Name:        "Water Intake",
		Type:        "positive",
		Target:      3700,
		Unit:        "ml",
		Frequency:   "daily",
		Description: "Minimum daily fluid intake",
	},
	{
		Name:        "Protein",
		Type:        "positive",
		Target:      180,
		Unit:        "grams",
		Frequency:   "daily",
		Description: "Muscle maintenance, 0.7-1g per pound bodyweight",
	},
	{
		Name:        "Morning Sun Exposure",
		Type:        "positive",
		Target:      15,
		Unit:        "minutes",
		Frequency:   "daily",
		Description: "Circadian rhythm anchor",
	},
	{
		Name:         "Strength Training",
		Type:         "positive",
		Target:       1,
		Unit:         "session",
		Frequency:    "custom",
		ScheduleDays: []int{1, 3, 5},
		Description:  "Compound movements, 3x per week minimum",
	},
	{
		Name:        "High-Leverage Work",
		Type:        "positive",
		Target:      2,
		Unit:        "hours",
		Frequency:   "daily",
		Description: "Deep focus blocks on leverage 7+ tasks",
	},
	{
		Name:        "Morning Power Hour",
		Type:        "positive",
		Target:      1,
		Unit:        "completion",
		Frequency:   "daily",
		Description: "Complete at least one high-leverage task in the first 90 min",
	},
}

// DefaultUserState returns the first-run progression record.
func DefaultUserState(now time.Time) *UserState {
	return &UserState{
		ID:                "user_state",
		XP:                0,
		Level:             1,
		XPForNextLevel:    100,
		LastActive:        now,
		CreatedAt:         now,
		LastMidnightReset: now,
	}
}

// Seed performs first-time setup: the singleton user state, the core
// practices, and empty arrays for the main collections. It is a no-op when a
// user state already exists.
func Seed(ctx context.Context, s *Store) error {
	var state UserState
	ok, err := s.Get(ctx, KeyUserState, &state)
	if err != nil {
		return err
	}

	now := time.Now()
	if !ok {
		if err := s.Put(ctx, KeyUserState, DefaultUserState(now)); err != nil {
			return err
		}

		practices := make([]Practice, 0, len(CorePractices))
		for _, p := range CorePractices {
			p.ID = uuid.NewString()
			p.LastLoggedAt = now
			p.CreatedAt = now
			practices = append(practices, p)
		}
		if err := s.Put(ctx, KeyPractices, practices); err != nil {
			return err
		}
	}

	for _, key := range []string{KeyTasks, KeyOutcomes, KeyHistory} {
		if err := ensureArray(ctx, s, key); err != nil {
			return err
		}
	}
	return nil
}

func ensureArray(ctx context.Context, s *Store, key string) error {
	var raw []any
	ok, err := s.Get(ctx, key, &raw)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.Put(ctx, key, []any{})
}
