package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// DefaultMakerPreferences mirror the classic maker/manager schedule split.
func DefaultMakerPreferences() *storage.MakerPreferences {
	return &storage.MakerPreferences{
		DefaultMode:         string(ModeMaker),
		MakerBlockDuration:  180,
		ManagerSlotDuration: 60,
		ProtectMakerTime:    true,
		AutoSwitchEnabled:   false,
		PreferredMakerHours: []storage.HourRange{
			{Start: 9, End: 12},
			{Start: 14, End: 17},
		},
	}
}

type MakerStats struct {
	TotalMakerMinutes      int
	TotalManagerMinutes    int
	MakerSessionsCount     int
	ManagerSessionsCount   int
	AvgMakerProductivity   float64
	AvgManagerProductivity float64
	TotalInterruptions     int
	DeepWorkStreak         int
	LongestMakerBlock      int
}

type MeetingCost struct {
	FragmentedBlocks        int
	LostProductivityMinutes int
	Suggestion              string
}

func (s *Service) MakerSessions(ctx context.Context) ([]storage.MakerSession, error) {
	var sessions []storage.MakerSession
	if _, err := s.store.Get(ctx, storage.KeyMakerSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CurrentSession returns the single open session, or nil when none is open.
func (s *Service) CurrentSession(ctx context.Context) (*storage.MakerSession, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].EndTime == nil {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// CurrentMode is the active session's mode, falling back to the preferred
// default when nothing is running.
func (s *Service) CurrentMode(ctx context.Context) (WorkMode, error) {
	active, err := s.CurrentSession(ctx)
	if err != nil {
		return "", err
	}
	if active != nil {
		return WorkMode(active.Mode), nil
	}
	prefs, err := s.MakerPrefs(ctx)
	if err != nil {
		return "", err
	}
	return WorkMode(prefs.DefaultMode), nil
}

// StartSession opens a session in the given mode. Any active session is
// silently closed first (its duration computed from now), so at most one
// session is ever open; there is no "already active" error path.
func (s *Service) StartSession(ctx context.Context, mode WorkMode) (*storage.MakerSession, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid work mode: %q", mode)
	}

	if _, err := s.EndCurrentSession(ctx, 0, ""); err != nil {
		return nil, err
	}

	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}

	session := storage.MakerSession{
		ID:        uuid.NewString(),
		Mode:      string(mode),
		StartTime: s.now(),
	}

	sessions = append(sessions, session)
	if err := s.store.Put(ctx, storage.KeyMakerSessions, sessions); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, storage.KeyMakerCurrentMode, string(mode)); err != nil {
		return nil, err
	}
	return &session, nil
}

// EndCurrentSession closes the open session, computing its duration. Returns
// nil when no session is open.
func (s *Service) EndCurrentSession(ctx context.Context, productivityRating int, notes string) (*storage.MakerSession, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].EndTime != nil {
			continue
		}
		end := s.now()
		sessions[i].EndTime = &end
		sessions[i].DurationMinutes = int(end.Sub(sessions[i].StartTime).Minutes())
		sessions[i].ProductivityRating = productivityRating
		sessions[i].Notes = notes
		if err := s.store.Put(ctx, storage.KeyMakerSessions, sessions); err != nil {
			return nil, err
		}
		return &sessions[i], nil
	}
	return nil, nil
}

// SwitchMode is defined as close-then-start; there is no in-place mutation.
func (s *Service) SwitchMode(ctx context.Context, mode WorkMode) (*storage.MakerSession, error) {
	return s.StartSession(ctx, mode)
}

// IncrementSessionTasks bumps the open session's task counter, if any.
func (s *Service) IncrementSessionTasks(ctx context.Context) error {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].EndTime == nil {
			sessions[i].TasksCompleted++
			return s.store.Put(ctx, storage.KeyMakerSessions, sessions)
		}
	}
	return nil
}

// LogInterruption bumps the open session's interruption counter, if any.
func (s *Service) LogInterruption(ctx context.Context) error {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].EndTime == nil {
			sessions[i].Interruptions++
			return s.store.Put(ctx, storage.KeyMakerSessions, sessions)
		}
	}
	return nil
}

func (s *Service) MakerPrefs(ctx context.Context) (*storage.MakerPreferences, error) {
	var prefs storage.MakerPreferences
	ok, err := s.store.Get(ctx, storage.KeyMakerPreferences, &prefs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultMakerPreferences(), nil
	}
	return &prefs, nil
}

type UpdateMakerPrefsInput struct {
	DefaultMode         *WorkMode
	MakerBlockDuration  *int
	ManagerSlotDuration *int
	ProtectMakerTime    *bool
	AutoSwitchEnabled   *bool
	PreferredMakerHours []storage.HourRange
}

func (s *Service) UpdateMakerPrefs(ctx context.Context, in UpdateMakerPrefsInput) (*storage.MakerPreferences, error) {
	prefs, err := s.MakerPrefs(ctx)
	if err != nil {
		return nil, err
	}
	if in.DefaultMode != nil {
		prefs.DefaultMode = string(*in.DefaultMode)
	}
	if in.MakerBlockDuration != nil {
		prefs.MakerBlockDuration = *in.MakerBlockDuration
	}
	if in.ManagerSlotDuration != nil {
		prefs.ManagerSlotDuration = *in.ManagerSlotDuration
	}
	if in.ProtectMakerTime != nil {
		prefs.ProtectMakerTime = *in.ProtectMakerTime
	}
	if in.AutoSwitchEnabled != nil {
		prefs.AutoSwitchEnabled = *in.AutoSwitchEnabled
	}
	if in.PreferredMakerHours != nil {
		prefs.PreferredMakerHours = in.PreferredMakerHours
	}
	if err := s.store.Put(ctx, storage.KeyMakerPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *Service) SessionsByMode(ctx context.Context, mode WorkMode) ([]storage.MakerSession, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.MakerSession
	for _, sess := range sessions {
		if sess.Mode == string(mode) {
			out = append(out, sess)
		}
	}
	return out, nil
}

// SessionsInRange lists sessions that started within [from, to).
func (s *Service) SessionsInRange(ctx context.Context, from, to time.Time) ([]storage.MakerSession, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.MakerSession
	for _, sess := range sessions {
		if !sess.StartTime.Before(from) && sess.StartTime.Before(to) {
			out = append(out, sess)
		}
	}
	return out, nil
}

// TodaySessions lists sessions that started today.
func (s *Service) TodaySessions(ctx context.Context) ([]storage.MakerSession, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var out []storage.MakerSession
	for _, sess := range sessions {
		if sameDay(sess.StartTime, now) {
			out = append(out, sess)
		}
	}
	return out, nil
}

// DeleteSession removes a session; returns false when the id is unknown.
func (s *Service) DeleteSession(ctx context.Context, id string) (bool, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return false, err
	}
	filtered := sessions[:0]
	for _, sess := range sessions {
		if sess.ID != id {
			filtered = append(filtered, sess)
		}
	}
	if len(filtered) == len(sessions) {
		return false, nil
	}
	if err := s.store.Put(ctx, storage.KeyMakerSessions, filtered); err != nil {
		return false, err
	}
	return true, nil
}

// InProtectedMakerTime reports whether an active maker session should shield
// the user from interruptions.
func (s *Service) InProtectedMakerTime(ctx context.Context) (bool, error) {
	active, err := s.CurrentSession(ctx)
	if err != nil {
		return false, err
	}
	if active == nil || active.Mode != string(ModeMaker) {
		return false, nil
	}
	prefs, err := s.MakerPrefs(ctx)
	if err != nil {
		return false, err
	}
	return prefs.ProtectMakerTime, nil
}

// MakerStats aggregates closed sessions: totals per mode, productivity
// averages, interruptions, the longest maker block, and the deep-work streak
// (consecutive days at or above the configured maker-minute threshold).
func (s *Service) MakerStats(ctx context.Context) (*MakerStats, error) {
	sessions, err := s.MakerSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &MakerStats{}
	makerMinutesByDay := map[string]int{}
	var makerRatingSum, makerRated, managerRatingSum, managerRated int

	for _, sess := range sessions {
		if sess.EndTime == nil {
			continue
		}
		stats.TotalInterruptions += sess.Interruptions
		switch sess.Mode {
		case string(ModeMaker):
			stats.MakerSessionsCount++
			stats.TotalMakerMinutes += sess.DurationMinutes
			makerMinutesByDay[dayKey(sess.StartTime)] += sess.DurationMinutes
			if sess.DurationMinutes > stats.LongestMakerBlock {
				stats.LongestMakerBlock = sess.DurationMinutes
			}
			if sess.ProductivityRating > 0 {
				makerRatingSum += sess.ProductivityRating
				makerRated++
			}
		case string(ModeManager):
			stats.ManagerSessionsCount++
			stats.TotalManagerMinutes += sess.DurationMinutes
			if sess.ProductivityRating > 0 {
				managerRatingSum += sess.ProductivityRating
				managerRated++
			}
		}
	}

	if makerRated > 0 {
		stats.AvgMakerProductivity = round1(float64(makerRatingSum) / float64(makerRated))
	}
	if managerRated > 0 {
		stats.AvgManagerProductivity = round1(float64(managerRatingSum) / float64(managerRated))
	}

	var deepDays []string
	for day, minutes := range makerMinutesByDay {
		if minutes >= s.cfg.DeepWorkMinutes {
			deepDays = append(deepDays, day)
		}
	}
	sort.Strings(deepDays)
	stats.DeepWorkStreak = currentDailyStreak(s.now(), deepDays)

	return stats, nil
}

// MeetingCostFor estimates how badly a meeting of the given length fragments
// the current mode. Manager mode absorbs meetings; maker mode pays a context
// switch penalty on both sides.
func (s *Service) MeetingCostFor(ctx context.Context, meetingMinutes int) (*MeetingCost, error) {
	mode, err := s.CurrentMode(ctx)
	if err != nil {
		return nil, err
	}
	if mode == ModeManager {
		return &MeetingCost{
			Suggestion: "Manager mode can handle meetings efficiently in 1-hour slots.",
		}, nil
	}

	const contextSwitchPenalty = 23 // minutes to regain deep focus

	prefs, err := s.MakerPrefs(ctx)
	if err != nil {
		return nil, err
	}

	cost := &MeetingCost{
		FragmentedBlocks:        1,
		LostProductivityMinutes: meetingMinutes + contextSwitchPenalty*2,
	}
	suggestion := fmt.Sprintf("This %d-min meeting will fragment a %d-min maker block. ", meetingMinutes, prefs.MakerBlockDuration)
	if meetingMinutes <= 30 {
		suggestion += "Consider batching with other short meetings in manager time."
	} else {
		suggestion += "Consider scheduling during manager time or end of day."
	}
	cost.Suggestion = suggestion
	return cost, nil
}

// SuggestMeetingTimes splits business hours into best and worst slots based
// on the preferred maker blocks.
func (s *Service) SuggestMeetingTimes(ctx context.Context) (best, worst []string, err error) {
	prefs, err := s.MakerPrefs(ctx)
	if err != nil {
		return nil, nil, err
	}
	mode, err := s.CurrentMode(ctx)
	if err != nil {
		return nil, nil, err
	}

	for hour := 8; hour < 18; hour++ {
		slot := fmt.Sprintf("%d:00-%d:00", hour, hour+1)
		if mode != ModeMaker {
			best = append(best, slot)
			continue
		}
		inBlock := false
		for _, block := range prefs.PreferredMakerHours {
			if hour >= block.Start && hour < block.End {
				inBlock = true
				break
			}
		}
		if inBlock {
			worst = append(worst, slot)
		} else {
			best = append(best, slot)
		}
	}
	return best, worst, nil
}
