package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// PracticeCompletionXP is awarded when a practice hits its daily target.
const PracticeCompletionXP = 15

// habitStrengthStep is the per-completion habit strength gain (clamped 100).
const habitStrengthStep = 2

type CreatePracticeInput struct {
	Name         string
	Description  string
	Type         string // positive | negative
	Target       float64
	Unit         string
	Frequency    string // daily | custom
	ScheduleDays []int
}

func (s *Service) Practices(ctx context.Context) ([]storage.Practice, error) {
	var practices []storage.Practice
	if _, err := s.store.Get(ctx, storage.KeyPractices, &practices); err != nil {
		return nil, err
	}
	return practices, nil
}

func (s *Service) PracticeByID(ctx context.Context, id string) (*storage.Practice, error) {
	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range practices {
		if practices[i].ID == id {
			return &practices[i], nil
		}
	}
	return nil, nil
}

func (s *Service) CreatePractice(ctx context.Context, in CreatePracticeInput) (*storage.Practice, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if in.Type != "positive" && in.Type != "negative" {
		return nil, fmt.Errorf("invalid practice type: %q", in.Type)
	}
	if in.Frequency != "daily" && in.Frequency != "custom" {
		return nil, fmt.Errorf("invalid frequency: %q", in.Frequency)
	}

	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := storage.Practice{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  in.Description,
		Type:         in.Type,
		Target:       in.Target,
		Unit:         in.Unit,
		Frequency:    in.Frequency,
		ScheduleDays: in.ScheduleDays,
		LastLoggedAt: now,
		CreatedAt:    now,
	}

	practices = append(practices, p)
	if err := s.store.Put(ctx, storage.KeyPractices, practices); err != nil {
		return nil, err
	}
	return &p, nil
}

// LogPractice records today's value for a practice. Crossing the target for
// the first time today marks it completed, strengthens the habit, advances
// the per-practice streak, writes history, and awards XP. Unknown ids return
// nil.
func (s *Service) LogPractice(ctx context.Context, id string, value float64) (*storage.Practice, error) {
	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range practices {
		if practices[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	now := s.now()
	p := &practices[idx]
	p.TodayValue = value
	p.LastLoggedAt = now

	hitTarget := value >= p.Target
	if p.Type == "negative" {
		hitTarget = value <= p.Target
	}

	completedNow := hitTarget && !p.TodayCompleted
	if hitTarget {
		p.TodayCompleted = true
	}

	if completedNow {
		p.HabitStrength += habitStrengthStep
		if p.HabitStrength > 100 {
			p.HabitStrength = 100
		}

		switch {
		case p.LastCompletedAt == nil:
			p.CurrentStreak = 1
		case sameDay(*p.LastCompletedAt, now):
			// Second completion today; streak already counted.
		case sameDay(p.LastCompletedAt.AddDate(0, 0, 1), now):
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
		t := now
		p.LastCompletedAt = &t
	}

	if err := s.store.Put(ctx, storage.KeyPractices, practices); err != nil {
		return nil, err
	}

	if completedNow {
		if _, err := s.UpdateStreak(ctx, true); err != nil {
			return nil, err
		}
		if _, err := s.appendHistory(ctx, storage.HistoryRecord{
			Type:           string(RecordPractice),
			EntityID:       p.ID,
			EntitySnapshot: *p,
			CompletedAt:    now,
			XPEarned:       PracticeCompletionXP,
			HabitStrength:  p.HabitStrength,
		}); err != nil {
			return nil, err
		}
		if _, err := s.AddXP(ctx, PracticeCompletionXP); err != nil {
			return nil, err
		}
		if _, err := s.CheckAchievements(ctx); err != nil {
			return nil, err
		}
		if _, err := s.CheckDailyChallenges(ctx); err != nil {
			return nil, err
		}
	}

	return p, nil
}
