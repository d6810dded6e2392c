package engine

import (
	"context"
	"time"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// ChallengeKind tags how a daily challenge is evaluated, mirroring the
// achievement catalog's data-plus-interpreter shape.
type ChallengeKind string

const (
	// ChallengeMorningTasks counts tasks completed today before MorningEnd.
	ChallengeMorningTasks ChallengeKind = "morning_tasks"
	// ChallengeHighLeverage counts tasks at or above MinLeverage completed today.
	ChallengeHighLeverage ChallengeKind = "high_leverage"
	// ChallengePerfectPractices requires every practice scheduled today to be done.
	ChallengePerfectPractices ChallengeKind = "perfect_practices"
	// ChallengeStreakKeeper requires activity today (lastActive is today).
	ChallengeStreakKeeper ChallengeKind = "streak_keeper"
	// ChallengeXPSprint sums XP earned from tasks completed today.
	ChallengeXPSprint ChallengeKind = "xp_sprint"
)

type ChallengeRule struct {
	Kind        ChallengeKind
	Target      int
	MinLeverage int
	MorningEnd  int // hour of day, exclusive
}

// Challenge is a day-scoped goal. Once CompletedAt is set it is immutable;
// past ExpiresAt it can never complete.
type Challenge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Difficulty  string
	XPReward    int
	ExpiresAt   time.Time
	CompletedAt *time.Time
	Rule        ChallengeRule
}

// GenerateDailyChallenges produces the fixed daily set, each expiring at
// 23:59:59.999 of the current day. Callers regenerate the list every day;
// there is no cleanup of yesterday's challenges here.
func GenerateDailyChallenges(now time.Time, morningEnd int) []Challenge {
	y, m, d := now.Date()
	expires := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())

	return []Challenge{
		{
			ID: "daily_power_hour", Name: "Power Hour",
			Description: "Complete 3 tasks before 9 AM", Icon: "⏰",
			Difficulty: "medium", XPReward: 100, ExpiresAt: expires,
			Rule: ChallengeRule{Kind: ChallengeMorningTasks, Target: 3, MorningEnd: morningEnd},
		},
		{
			ID: "daily_high_leverage", Name: "High Impact Day",
			Description: "Complete 5 high-leverage tasks (7+)", Icon: "🎯",
			Difficulty: "hard", XPReward: 150, ExpiresAt: expires,
			Rule: ChallengeRule{Kind: ChallengeHighLeverage, Target: 5, MinLeverage: 7},
		},
		{
			ID: "daily_perfect_practices", Name: "Perfect Day",
			Description: "Complete all scheduled practices", Icon: "✨",
			Difficulty: "hard", XPReward: 200, ExpiresAt: expires,
			Rule: ChallengeRule{Kind: ChallengePerfectPractices},
		},
		{
			ID: "daily_streak_keeper", Name: "Streak Keeper",
			Description: "Keep your streak alive today", Icon: "🔥",
			Difficulty: "easy", XPReward: 50, ExpiresAt: expires,
			Rule: ChallengeRule{Kind: ChallengeStreakKeeper},
		},
		{
			ID: "daily_xp_sprint", Name: "XP Sprint",
			Description: "Earn 500 XP today", Icon: "⚡",
			Difficulty: "hard", XPReward: 100, ExpiresAt: expires,
			Rule: ChallengeRule{Kind: ChallengeXPSprint, Target: 500},
		},
	}
}

func (r ChallengeRule) progress(state *storage.UserState, tasks []storage.Task, practices []storage.Practice, now time.Time) Progress {
	switch r.Kind {
	case ChallengeMorningTasks:
		n := 0
		for _, t := range tasks {
			if t.Completed && t.CompletedAt != nil && sameDay(*t.CompletedAt, now) && t.CompletedAt.Hour() < r.MorningEnd {
				n++
			}
		}
		return clampProgress(n, r.Target)
	case ChallengeHighLeverage:
		n := 0
		for _, t := range tasks {
			if t.Completed && t.CompletedAt != nil && sameDay(*t.CompletedAt, now) && t.LeverageScore >= r.MinLeverage {
				n++
			}
		}
		return clampProgress(n, r.Target)
	case ChallengePerfectPractices:
		scheduled, done := 0, 0
		for _, p := range practices {
			if !practiceScheduledOn(p, now) {
				continue
			}
			scheduled++
			if p.TodayCompleted {
				done++
			}
		}
		return Progress{Current: done, Total: scheduled}
	case ChallengeStreakKeeper:
		cur := 0
		if sameDay(state.LastActive, now) {
			cur = 1
		}
		return Progress{Current: cur, Total: 1}
	case ChallengeXPSprint:
		sum := 0
		for _, t := range tasks {
			if t.Completed && t.CompletedAt != nil && sameDay(*t.CompletedAt, now) {
				sum += t.XPEarned
			}
		}
		return clampProgress(sum, r.Target)
	default:
		return Progress{}
	}
}

func (r ChallengeRule) met(state *storage.UserState, tasks []storage.Task, practices []storage.Practice, now time.Time) bool {
	p := r.progress(state, tasks, practices, now)
	if r.Kind == ChallengePerfectPractices {
		return p.Total > 0 && p.Current == p.Total
	}
	return p.Current >= p.Total
}

func clampProgress(cur, total int) Progress {
	if cur > total {
		cur = total
	}
	return Progress{Current: cur, Total: total}
}

// practiceScheduledOn reports whether the practice is due on the given day.
func practiceScheduledOn(p storage.Practice, day time.Time) bool {
	if p.Frequency == "daily" {
		return true
	}
	if p.Frequency != "custom" {
		return false
	}
	wd := int(day.Weekday())
	for _, d := range p.ScheduleDays {
		if d == wd {
			return true
		}
	}
	return false
}

// CheckChallengeCompletion returns true for an already-completed challenge,
// false for an expired one regardless of its condition, and otherwise
// evaluates the rule.
func CheckChallengeCompletion(ch Challenge, state *storage.UserState, tasks []storage.Task, practices []storage.Practice, now time.Time) bool {
	if ch.CompletedAt != nil {
		return true
	}
	if now.After(ch.ExpiresAt) {
		return false
	}
	return ch.Rule.met(state, tasks, practices, now)
}

// ChallengeProgress exposes the clamped progress pair for display.
func ChallengeProgress(ch Challenge, state *storage.UserState, tasks []storage.Task, practices []storage.Practice, now time.Time) Progress {
	return ch.Rule.progress(state, tasks, practices, now)
}

func (s *Service) challengeState(ctx context.Context) (*storage.ChallengeState, error) {
	var st storage.ChallengeState
	ok, err := s.store.Get(ctx, storage.KeyChallengeState, &st)
	if err != nil {
		return nil, err
	}
	today := dayKey(s.now())
	if !ok || st.Date != today {
		st = storage.ChallengeState{Date: today, Completed: map[string]time.Time{}}
	}
	if st.Completed == nil {
		st.Completed = map[string]time.Time{}
	}
	return &st, nil
}

// DailyChallenges returns today's challenge set with completion stamps
// applied from the persisted per-day state.
func (s *Service) DailyChallenges(ctx context.Context) ([]Challenge, error) {
	st, err := s.challengeState(ctx)
	if err != nil {
		return nil, err
	}

	challenges := GenerateDailyChallenges(s.now(), s.cfg.MorningWindowEnd)
	for i := range challenges {
		if at, ok := st.Completed[challenges[i].ID]; ok {
			t := at
			challenges[i].CompletedAt = &t
		}
	}
	return challenges, nil
}

// CheckDailyChallenges evaluates today's open challenges, records and pays
// out any that completed, and returns the newly completed ones. Each
// challenge rewards exactly once per day.
func (s *Service) CheckDailyChallenges(ctx context.Context) ([]Challenge, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.challengeState(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var completed []Challenge
	for _, ch := range GenerateDailyChallenges(now, s.cfg.MorningWindowEnd) {
		if _, done := st.Completed[ch.ID]; done {
			continue
		}
		if !CheckChallengeCompletion(ch, state, tasks, practices, now) {
			continue
		}
		st.Completed[ch.ID] = now
		at := now
		ch.CompletedAt = &at
		completed = append(completed, ch)
	}

	if len(completed) == 0 {
		return nil, nil
	}
	if err := s.store.Put(ctx, storage.KeyChallengeState, st); err != nil {
		return nil, err
	}
	for _, ch := range completed {
		if _, err := s.AddXP(ctx, ch.XPReward); err != nil {
			return nil, err
		}
	}
	return completed, nil
}
