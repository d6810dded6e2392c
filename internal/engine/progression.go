package engine

import (
	"context"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// UserState returns the singleton progression record, or nil when storage
// has not been initialized.
func (s *Service) UserState(ctx context.Context) (*storage.UserState, error) {
	var state storage.UserState
	ok, err := s.store.Get(ctx, storage.KeyUserState, &state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *Service) putUserState(ctx context.Context, state *storage.UserState) error {
	state.LastActive = s.now()
	return s.store.Put(ctx, storage.KeyUserState, state)
}

// AddXP grants XP and normalizes level by repeatedly consuming the next-level
// threshold. The loop handles multi-level jumps from a single large grant;
// the threshold for level L is L*100.
func (s *Service) AddXP(ctx context.Context, amount int) (*storage.UserState, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}

	state.XP += amount
	for state.XP >= state.XPForNextLevel {
		state.XP -= state.XPForNextLevel
		state.Level++
		state.XPForNextLevel = state.Level * 100
	}

	if err := s.putUserState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// UpdateStreak applies at most one streak update per calendar day, keyed on
// the lastActive date. A second call on the same day is a no-op.
func (s *Service) UpdateStreak(ctx context.Context, completed bool) (*storage.UserState, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}

	if sameDay(state.LastActive, s.now()) {
		return state, nil
	}

	if completed {
		state.CurrentStreak++
	} else {
		state.CurrentStreak = 0
	}
	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}

	if err := s.putUserState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// IncrementMorningControl bumps the count of morning-window completions.
func (s *Service) IncrementMorningControl(ctx context.Context) (*storage.UserState, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}
	state.MorningControlCount++
	if err := s.putUserState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// RefreshLeverageRatios re-derives the lifetime and last-7-days mean leverage
// of completed tasks from the history log.
func (s *Service) RefreshLeverageRatios(ctx context.Context) (*storage.UserState, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}

	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().AddDate(0, 0, -7)
	var lifetimeSum, recentSum float64
	var lifetimeN, recentN int
	for _, h := range history {
		if h.Type != string(RecordTask) || h.LeverageScore == 0 {
			continue
		}
		lifetimeSum += float64(h.LeverageScore)
		lifetimeN++
		if h.CompletedAt.After(cutoff) {
			recentSum += float64(h.LeverageScore)
			recentN++
		}
	}

	state.LifetimeLeverageRatio = 0
	if lifetimeN > 0 {
		state.LifetimeLeverageRatio = round1(lifetimeSum / float64(lifetimeN))
	}
	state.Last7DaysLeverageRatio = 0
	if recentN > 0 {
		state.Last7DaysLeverageRatio = round1(recentSum / float64(recentN))
	}

	if err := s.putUserState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// EnsureMidnightReset rolls per-day practice fields over to a new calendar
// day. Safe to call on every startup; it only acts when lastMidnightReset is
// a prior day.
func (s *Service) EnsureMidnightReset(ctx context.Context) error {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return err
	}

	now := s.now()
	if sameDay(state.LastMidnightReset, now) {
		return nil
	}

	practices, err := s.Practices(ctx)
	if err != nil {
		return err
	}
	for i := range practices {
		practices[i].TodayValue = 0
		practices[i].TodayCompleted = false
	}
	if err := s.store.Put(ctx, storage.KeyPractices, practices); err != nil {
		return err
	}

	// Write directly: the rollover is housekeeping, not user activity, and
	// must not refresh lastActive or the streak day-key breaks.
	state.LastMidnightReset = now
	return s.store.Put(ctx, storage.KeyUserState, state)
}
