package storage

// Logical keys for the kv table. One key per collection; singletons hold one
// record, logs hold a JSON array. No schema version field exists; evolution is
// additive only.
const (
	KeyUserState          = "user_state"
	KeyTasks              = "tasks"
	KeyPractices          = "practices"
	KeyOutcomes           = "outcomes"
	KeyHistory            = "history"
	KeyAchievements       = "achievements_unlocked"
	KeyChallengeState     = "challenge_state"
	KeyAuthenticityLogs   = "authenticity_logs"
	KeyCookieJarVictories = "cookie_jar_victories"
	KeyHabitStacks        = "habit_stacks"
	KeyStackCompletions   = "habit_stack_completions"
	KeyMakerSessions      = "maker_sessions"
	KeyMakerPreferences   = "maker_preferences"
	KeyMakerCurrentMode   = "maker_current_mode"
	KeySeasonCurrent      = "season_current"
	KeySeasonHistory      = "season_history"
)
