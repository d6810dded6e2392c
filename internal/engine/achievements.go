package engine

import (
	"context"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// RuleKind tags how an achievement's condition and progress are computed.
// The catalog stores data only; evaluation lives in one interpreter.
type RuleKind string

const (
	// RuleStreak compares the current streak against Threshold.
	RuleStreak RuleKind = "streak"
	// RuleTaskCount counts completed tasks in history.
	RuleTaskCount RuleKind = "task_count"
	// RuleLeverageCount counts completed tasks at or above MinLeverage.
	RuleLeverageCount RuleKind = "leverage_count"
	// RuleMorningCount compares the morning-control counter.
	RuleMorningCount RuleKind = "morning_count"
	// RuleLevel compares the current level.
	RuleLevel RuleKind = "level"
	// RuleTotalXP sums xpEarned across all history records.
	RuleTotalXP RuleKind = "total_xp"
	// RuleWeeklyLeverage compares the last-7-days leverage ratio.
	RuleWeeklyLeverage RuleKind = "weekly_leverage"
)

type Rule struct {
	Kind        RuleKind
	Threshold   int
	MinLeverage int
}

type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Rarity      Rarity
	Category    string
	Rule        Rule
}

// Achievements is the static catalog, evaluated in order.
var Achievements = []AchievementDef{
	// Streaks
	{ID: "fire_starter", Name: "Fire Starter", Description: "Maintain a 3-day streak", Icon: "🔥", Rarity: RarityCommon, Category: "streak", Rule: Rule{Kind: RuleStreak, Threshold: 3}},
	{ID: "momentum_master", Name: "Momentum Master", Description: "Achieve a 7-day streak", Icon: "⚡", Rarity: RarityRare, Category: "streak", Rule: Rule{Kind: RuleStreak, Threshold: 7}},
	{ID: "unstoppable", Name: "Unstoppable", Description: "Reach a 30-day streak", Icon: "💪", Rarity: RarityEpic, Category: "streak", Rule: Rule{Kind: RuleStreak, Threshold: 30}},
	{ID: "legend_status", Name: "Legend Status", Description: "Achieve a 100-day streak", Icon: "👑", Rarity: RarityLegendary, Category: "streak", Rule: Rule{Kind: RuleStreak, Threshold: 100}},

	// Tasks
	{ID: "task_novice", Name: "Task Novice", Description: "Complete 10 tasks", Icon: "📝", Rarity: RarityCommon, Category: "task", Rule: Rule{Kind: RuleTaskCount, Threshold: 10}},
	{ID: "task_warrior", Name: "Task Warrior", Description: "Complete 50 tasks", Icon: "⚔️", Rarity: RarityRare, Category: "task", Rule: Rule{Kind: RuleTaskCount, Threshold: 50}},
	{ID: "task_master", Name: "Task Master", Description: "Complete 100 tasks", Icon: "🎯", Rarity: RarityEpic, Category: "task", Rule: Rule{Kind: RuleTaskCount, Threshold: 100}},
	{ID: "task_legend", Name: "Task Legend", Description: "Complete 500 tasks", Icon: "🏅", Rarity: RarityLegendary, Category: "task", Rule: Rule{Kind: RuleTaskCount, Threshold: 500}},

	// Leverage
	{ID: "high_value", Name: "High Value", Description: "Complete 10 high-leverage tasks (7+)", Icon: "💎", Rarity: RarityCommon, Category: "leverage", Rule: Rule{Kind: RuleLeverageCount, Threshold: 10, MinLeverage: 7}},
	{ID: "leverage_pro", Name: "Leverage Pro", Description: "Complete 50 ultra-high tasks (8+)", Icon: "🚀", Rarity: RarityRare, Category: "leverage", Rule: Rule{Kind: RuleLeverageCount, Threshold: 50, MinLeverage: 8}},
	{ID: "impact_titan", Name: "Impact Titan", Description: "Complete 100 maximum impact tasks (9+)", Icon: "⭐", Rarity: RarityEpic, Category: "leverage", Rule: Rule{Kind: RuleLeverageCount, Threshold: 100, MinLeverage: 9}},

	// Mornings
	{ID: "early_bird", Name: "Early Bird", Description: "Complete 10 morning tasks", Icon: "☀️", Rarity: RarityCommon, Category: "morning", Rule: Rule{Kind: RuleMorningCount, Threshold: 10}},
	{ID: "dawn_warrior", Name: "Dawn Warrior", Description: "Complete 50 morning tasks", Icon: "🌅", Rarity: RarityRare, Category: "morning", Rule: Rule{Kind: RuleMorningCount, Threshold: 50}},
	{ID: "morning_legend", Name: "Morning Legend", Description: "Complete 100 morning tasks", Icon: "🦅", Rarity: RarityEpic, Category: "morning", Rule: Rule{Kind: RuleMorningCount, Threshold: 100}},

	// Levels
	{ID: "bronze_achiever", Name: "Bronze Achiever", Description: "Reach level 10", Icon: "🥉", Rarity: RarityCommon, Category: "level", Rule: Rule{Kind: RuleLevel, Threshold: 10}},
	{ID: "silver_warrior", Name: "Silver Warrior", Description: "Reach level 25", Icon: "🥈", Rarity: RarityRare, Category: "level", Rule: Rule{Kind: RuleLevel, Threshold: 25}},
	{ID: "gold_master", Name: "Gold Master", Description: "Reach level 50", Icon: "🥇", Rarity: RarityEpic, Category: "level", Rule: Rule{Kind: RuleLevel, Threshold: 50}},
	{ID: "diamond_elite", Name: "Diamond Elite", Description: "Reach level 100", Icon: "💠", Rarity: RarityLegendary, Category: "level", Rule: Rule{Kind: RuleLevel, Threshold: 100}},

	// XP and leverage ratio
	{ID: "xp_millionaire", Name: "XP Millionaire", Description: "Earn 10,000 total XP", Icon: "💰", Rarity: RarityEpic, Category: "level", Rule: Rule{Kind: RuleTotalXP, Threshold: 10000}},
	{ID: "leverage_master", Name: "Leverage Master", Description: "Maintain 7+ average leverage ratio for 7 days", Icon: "🎪", Rarity: RarityRare, Category: "leverage", Rule: Rule{Kind: RuleWeeklyLeverage, Threshold: 7}},
}

// metric resolves the rule's current value against state and history.
func (r Rule) metric(state *storage.UserState, history []storage.HistoryRecord) int {
	switch r.Kind {
	case RuleStreak:
		return state.CurrentStreak
	case RuleTaskCount:
		n := 0
		for _, h := range history {
			if h.Type == string(RecordTask) {
				n++
			}
		}
		return n
	case RuleLeverageCount:
		n := 0
		for _, h := range history {
			if h.Type == string(RecordTask) && h.LeverageScore >= r.MinLeverage {
				n++
			}
		}
		return n
	case RuleMorningCount:
		return state.MorningControlCount
	case RuleLevel:
		return state.Level
	case RuleTotalXP:
		sum := 0
		for _, h := range history {
			sum += h.XPEarned
		}
		return sum
	case RuleWeeklyLeverage:
		return int(state.Last7DaysLeverageRatio)
	default:
		return 0
	}
}

// Met reports whether the rule's condition holds.
func (r Rule) Met(state *storage.UserState, history []storage.HistoryRecord) bool {
	if r.Kind == RuleWeeklyLeverage {
		return state.Last7DaysLeverageRatio >= float64(r.Threshold)
	}
	return r.metric(state, history) >= r.Threshold
}

// Progress returns the current/total pair, clamped to the target.
func (r Rule) Progress(state *storage.UserState, history []storage.HistoryRecord) Progress {
	cur := r.metric(state, history)
	if cur > r.Threshold {
		cur = r.Threshold
	}
	return Progress{Current: cur, Total: r.Threshold}
}

// EvaluateAchievements walks the catalog in order and returns entries whose
// condition holds and whose id is not already unlocked. Already-unlocked ids
// are never re-evaluated, so a later regression (e.g. a streak reset) cannot
// retract a trophy.
func EvaluateAchievements(state *storage.UserState, history []storage.HistoryRecord, unlockedIDs []string, now timeNow) []storage.UnlockedAchievement {
	unlocked := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = true
	}

	var newly []storage.UnlockedAchievement
	for _, def := range Achievements {
		if unlocked[def.ID] {
			continue
		}
		if !def.Rule.Met(state, history) {
			continue
		}
		newly = append(newly, storage.UnlockedAchievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Rarity:      string(def.Rarity),
			Category:    def.Category,
			UnlockedAt:  now(),
		})
	}
	return newly
}

// UnlockedAchievements returns the persisted unlock list.
func (s *Service) UnlockedAchievements(ctx context.Context) ([]storage.UnlockedAchievement, error) {
	var list []storage.UnlockedAchievement
	if _, err := s.store.Get(ctx, storage.KeyAchievements, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CheckAchievements evaluates the catalog against current state and history,
// persists any new unlocks, and returns them.
func (s *Service) CheckAchievements(ctx context.Context) ([]storage.UnlockedAchievement, error) {
	state, err := s.UserState(ctx)
	if err != nil || state == nil {
		return nil, err
	}
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.UnlockedAchievements(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(existing))
	for _, u := range existing {
		ids = append(ids, u.ID)
	}

	newly := EvaluateAchievements(state, history, ids, s.now)
	if len(newly) == 0 {
		return nil, nil
	}

	if err := s.store.Put(ctx, storage.KeyAchievements, append(existing, newly...)); err != nil {
		return nil, err
	}
	return newly, nil
}
