package storage

import "time"

// UserState is the singleton progression record. It is merge-updated in
// place, never replaced wholesale.
type UserState struct {
	ID                     string    `json:"id"` // always "user_state"
	XP                     int       `json:"xp"`
	Level                  int       `json:"level"`
	XPForNextLevel         int       `json:"xpForNextLevel"`
	CurrentStreak          int       `json:"currentStreak"`
	LongestStreak          int       `json:"longestStreak"`
	MorningControlCount    int       `json:"morningControlCount"`
	LifetimeLeverageRatio  float64   `json:"lifetimeLeverageRatio"`
	Last7DaysLeverageRatio float64   `json:"last7DaysLeverageRatio"`
	LastActive             time.Time `json:"lastActive"`
	CreatedAt              time.Time `json:"createdAt"`
	LastMidnightReset      time.Time `json:"lastMidnightReset"`
}

type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	LeverageScore int        `json:"leverageScore"` // 1-10
	OutcomeID     string     `json:"outcomeId,omitempty"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	IsMorningTask bool       `json:"isMorningTask"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	XPEarned      int        `json:"xpEarned,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Practice struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Type            string     `json:"type"` // "positive" | "negative"
	Target          float64    `json:"target"`
	Unit            string     `json:"unit"`
	HabitStrength   int        `json:"habitStrength"` // 0-100
	CurrentStreak   int        `json:"currentStreak"`
	LongestStreak   int        `json:"longestStreak"`
	TodayValue      float64    `json:"todayValue"`
	TodayCompleted  bool       `json:"todayCompleted"`
	LastLoggedAt    time.Time  `json:"lastLoggedAt"`
	Frequency       string     `json:"frequency"`              // "daily" | "custom"
	ScheduleDays    []int      `json:"scheduleDays,omitempty"` // 0=Sunday
	CreatedAt       time.Time  `json:"createdAt"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

type Outcome struct {
	ID                 string     `json:"id"`
	Result             string     `json:"result"`
	Purpose            string     `json:"purpose"`
	Status             string     `json:"status"`   // active|completed|stalled|archived
	Progress           int        `json:"progress"` // 0-100
	LinkedTaskCount    int        `json:"linkedTaskCount"`
	LastProgressUpdate time.Time  `json:"lastProgressUpdate"`
	CreatedAt          time.Time  `json:"createdAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	ArchivedAt         *time.Time `json:"archivedAt,omitempty"`
}

// HistoryRecord is an immutable append-only completion entry. It is never
// mutated or deleted; derived analytics re-scan this log instead of trusting
// cached aggregates.
type HistoryRecord struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"` // task|practice|outcome
	EntityID           string    `json:"entityId"`
	EntitySnapshot     any       `json:"entitySnapshot,omitempty"`
	CompletedAt        time.Time `json:"completedAt"`
	XPEarned           int       `json:"xpEarned,omitempty"`
	WasInMorningWindow bool      `json:"wasInMorningWindow,omitempty"`
	LeverageScore      int       `json:"leverageScore,omitempty"`
	HabitStrength      int       `json:"habitStrength,omitempty"`
	DayOfWeek          int       `json:"dayOfWeek"`
	HourOfDay          int       `json:"hourOfDay"`
}

// UnlockedAchievement freezes a catalog entry at unlock time. An id appears
// at most once; unlocks are never revoked.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rarity      string    `json:"rarity"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// ChallengeState tracks which of a day's challenges already paid out, so each
// reward is granted exactly once. Regenerated when Date goes stale.
type ChallengeState struct {
	Date      string               `json:"date"` // "2006-01-02"
	Completed map[string]time.Time `json:"completed"`
}

// AuthenticityLog holds at most one entry per calendar date (upsert by Date).
type AuthenticityLog struct {
	ID                string    `json:"id"`
	Date              string    `json:"date"`  // "2006-01-02"
	Score             int       `json:"score"` // 0-10
	BoundariesHonored int       `json:"boundariesHonored"`
	BodySignals       []string  `json:"bodySignals"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type CookieJarVictory struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Story           string     `json:"story"`
	Emotion         string     `json:"emotion"`
	Difficulty      int        `json:"difficulty"` // clamped 1-10
	Category        string     `json:"category"`
	DateAchieved    time.Time  `json:"dateAchieved"`
	SourceType      string     `json:"sourceType,omitempty"`
	SourceID        string     `json:"sourceId,omitempty"`
	TimesRetrieved  int        `json:"timesRetrieved"`
	LastRetrievedAt *time.Time `json:"lastRetrievedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// HabitStackLink references a practice by id; relations are by string id,
// never live pointers.
type HabitStackLink struct {
	PracticeID     string `json:"practiceId"`
	Order          int    `json:"order"`
	TransitionTime int    `json:"transitionTime"` // seconds between links
}

type HabitStack struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	Chain            []HabitStackLink `json:"chain"`
	IsActive         bool             `json:"isActive"`
	CompletionRate   int              `json:"completionRate"` // percent
	TotalCompletions int              `json:"totalCompletions"`
	LastCompleted    *time.Time       `json:"lastCompleted,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	LastUpdated      time.Time        `json:"lastUpdated"`
}

type HabitStackCompletion struct {
	ID                 string    `json:"id"`
	StackID            string    `json:"stackId"`
	StackName          string    `json:"stackName"`
	Date               string    `json:"date"` // "2006-01-02"
	CompletedLinks     []string  `json:"completedLinks"`
	FullChainCompleted bool      `json:"fullChainCompleted"`
	Timestamp          time.Time `json:"timestamp"`
}

// MakerSession records one maker/manager work block. At most one session has
// no EndTime; starting a new session closes the prior active one first.
type MakerSession struct {
	ID                 string     `json:"id"`
	Mode               string     `json:"mode"` // maker|manager
	StartTime          time.Time  `json:"startTime"`
	EndTime            *time.Time `json:"endTime,omitempty"`
	DurationMinutes    int        `json:"durationMinutes,omitempty"`
	TasksCompleted     int        `json:"tasksCompleted"`
	Interruptions      int        `json:"interruptions"`
	ProductivityRating int        `json:"productivityRating,omitempty"` // 1-10
	Notes              string     `json:"notes,omitempty"`
}

type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type MakerPreferences struct {
	DefaultMode         string      `json:"defaultMode"`
	MakerBlockDuration  int         `json:"makerBlockDuration"`  // minutes
	ManagerSlotDuration int         `json:"managerSlotDuration"` // minutes
	ProtectMakerTime    bool        `json:"protectMakerTime"`
	AutoSwitchEnabled   bool        `json:"autoSwitchEnabled"`
	PreferredMakerHours []HourRange `json:"preferredMakerHours"`
}

// SeasonPhase is a self-declared multi-month life phase. The current phase
// has no EndDate; starting a new season closes it into history.
type SeasonPhase struct {
	ID              string     `json:"id"`
	Season          string     `json:"season"` // spring|summer|fall|winter
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Theme           string     `json:"theme,omitempty"`
	PrimaryOutcomes []string   `json:"primaryOutcomes,omitempty"`
	EnergyPattern   string     `json:"energyPattern"`
	Mindset         string     `json:"mindset"`
	ReflectionNotes string     `json:"reflectionNotes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
