package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// authenticityGoodScore is the qualifying threshold for streaks and alerts.
const authenticityGoodScore = 7

// CommonBodySignals offers quick-select options when logging.
var CommonBodySignals = []string{
	"Tension in neck/shoulders",
	"Headache",
	"Tight chest",
	"Stomach discomfort",
	"Fatigue/exhaustion",
	"Restlessness",
	"Racing heart",
	"Shallow breathing",
	"Jaw clenching",
	"Back pain",
	"Difficulty sleeping",
	"Loss of appetite",
	"Increased appetite",
	"Brain fog",
}

type SignalCount struct {
	Signal string
	Count  int
}

type AuthenticityStats struct {
	AverageScore           float64
	Last7DaysAverage       float64
	Last30DaysAverage      float64
	TotalBoundariesHonored int
	CommonBodySignals      []SignalCount
	CurrentStreak          int
	LongestStreak          int
}

type LowAuthenticityAlert struct {
	ShouldAlert        bool
	ConsecutiveLowDays int
	LastLowScores      []int
}

func (s *Service) AuthenticityLogs(ctx context.Context) ([]storage.AuthenticityLog, error) {
	var logs []storage.AuthenticityLog
	if _, err := s.store.Get(ctx, storage.KeyAuthenticityLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Service) AuthenticityLogByDate(ctx context.Context, date string) (*storage.AuthenticityLog, error) {
	logs, err := s.AuthenticityLogs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		if logs[i].Date == date {
			return &logs[i], nil
		}
	}
	return nil, nil
}

func (s *Service) TodayAuthenticityLog(ctx context.Context) (*storage.AuthenticityLog, error) {
	return s.AuthenticityLogByDate(ctx, dayKey(s.now()))
}

// LogAuthenticity upserts today's log. A second call for the same date
// replaces the scores but keeps the original id and createdAt.
func (s *Service) LogAuthenticity(ctx context.Context, score, boundariesHonored int, bodySignals []string, notes string) (*storage.AuthenticityLog, error) {
	if score < 0 || score > 10 {
		return nil, fmt.Errorf("invalid authenticity score: %d", score)
	}

	logs, err := s.AuthenticityLogs(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := dayKey(now)

	log := storage.AuthenticityLog{
		ID:                uuid.NewString(),
		Date:              today,
		Score:             score,
		BoundariesHonored: boundariesHonored,
		BodySignals:       bodySignals,
		Notes:             notes,
		CreatedAt:         now,
	}

	replaced := false
	for i := range logs {
		if logs[i].Date == today {
			log.ID = logs[i].ID
			log.CreatedAt = logs[i].CreatedAt
			logs[i] = log
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, log)
	}

	if err := s.store.Put(ctx, storage.KeyAuthenticityLogs, logs); err != nil {
		return nil, err
	}
	return &log, nil
}

// AuthenticityStats aggregates averages, the body-signal leaderboard, and the
// score>=7 streaks from the full log.
func (s *Service) AuthenticityStats(ctx context.Context) (*AuthenticityStats, error) {
	logs, err := s.AuthenticityLogs(ctx)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return &AuthenticityStats{}, nil
	}

	sorted := make([]storage.AuthenticityLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	stats := &AuthenticityStats{
		AverageScore:      round1(meanScore(sorted)),
		Last7DaysAverage:  round1(meanScore(headLogs(sorted, 7))),
		Last30DaysAverage: round1(meanScore(headLogs(sorted, 30))),
	}

	signalCounts := map[string]int{}
	var goodDays []string
	for _, l := range logs {
		stats.TotalBoundariesHonored += l.BoundariesHonored
		for _, sig := range l.BodySignals {
			signalCounts[sig]++
		}
		if l.Score >= authenticityGoodScore {
			goodDays = append(goodDays, l.Date)
		}
	}

	for sig, n := range signalCounts {
		stats.CommonBodySignals = append(stats.CommonBodySignals, SignalCount{Signal: sig, Count: n})
	}
	sort.Slice(stats.CommonBodySignals, func(i, j int) bool {
		a, b := stats.CommonBodySignals[i], stats.CommonBodySignals[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Signal < b.Signal
	})
	if len(stats.CommonBodySignals) > 10 {
		stats.CommonBodySignals = stats.CommonBodySignals[:10]
	}

	stats.CurrentStreak = currentDailyStreak(s.now(), goodDays)
	stats.LongestStreak = longestDailyStreak(goodDays)
	return stats, nil
}

func meanScore(logs []storage.AuthenticityLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0
	for _, l := range logs {
		sum += l.Score
	}
	return float64(sum) / float64(len(logs))
}

func headLogs(logs []storage.AuthenticityLog, n int) []storage.AuthenticityLog {
	if len(logs) < n {
		return logs
	}
	return logs[:n]
}

// CheckLowAuthenticity flags three or more consecutive logged days under 7.
func (s *Service) CheckLowAuthenticity(ctx context.Context) (*LowAuthenticityAlert, error) {
	logs, err := s.AuthenticityLogs(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]storage.AuthenticityLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	alert := &LowAuthenticityAlert{}
	for _, l := range sorted {
		if l.Score >= authenticityGoodScore {
			break
		}
		alert.ConsecutiveLowDays++
		if len(alert.LastLowScores) < 3 {
			alert.LastLowScores = append(alert.LastLowScores, l.Score)
		}
		if alert.ConsecutiveLowDays >= 3 {
			break
		}
	}
	alert.ShouldAlert = alert.ConsecutiveLowDays >= 3
	return alert, nil
}

// AuthenticityTrend compares the mean of the 3 most recent logs to the mean
// of the 4 before them; fewer than 7 logs is always stable.
func (s *Service) AuthenticityTrend(ctx context.Context) (Trend, error) {
	logs, err := s.AuthenticityLogs(ctx)
	if err != nil {
		return TrendStable, err
	}

	sorted := make([]storage.AuthenticityLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	scores := make([]float64, len(sorted))
	for i, l := range sorted {
		scores[i] = float64(l.Score)
	}
	return scoreTrend(scores), nil
}

// ReflectionPrompts suggests journaling prompts from recent stats and alerts.
func (s *Service) ReflectionPrompts(ctx context.Context) ([]string, error) {
	stats, err := s.AuthenticityStats(ctx)
	if err != nil {
		return nil, err
	}
	alert, err := s.CheckLowAuthenticity(ctx)
	if err != nil {
		return nil, err
	}

	var prompts []string
	if alert.ShouldAlert {
		prompts = append(prompts,
			fmt.Sprintf("Your authenticity has been below 7 for %d days. What's pulling you away from yourself?", alert.ConsecutiveLowDays),
			"Are you saying 'yes' when you mean 'no'? What boundaries need reinforcement?",
		)
	}
	if stats.AverageScore > 0 && stats.AverageScore < 6 {
		prompts = append(prompts, "Your average authenticity is low. What would living more authentically look like for you?")
	}
	if stats.TotalBoundariesHonored == 0 && stats.Last7DaysAverage > 0 {
		prompts = append(prompts, "You haven't honored any boundaries recently. Are you people-pleasing or avoiding conflict?")
	}
	if len(stats.CommonBodySignals) > 0 {
		prompts = append(prompts, fmt.Sprintf("Your body frequently signals %q. What is it trying to tell you?", stats.CommonBodySignals[0].Signal))
	}
	if len(prompts) == 0 {
		prompts = []string{
			"How true to yourself were you today?",
			"What moments felt aligned vs. forced?",
			"What did your body tell you today?",
		}
	}
	return prompts, nil
}
