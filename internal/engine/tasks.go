package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// TaskBaseXPPerLeverage converts a task's leverage score into XP.
const TaskBaseXPPerLeverage = 10

// MorningMultiplier doubles XP for morning tasks finished inside the window.
const MorningMultiplier = 2

type CreateTaskInput struct {
	Title         string
	Description   string
	LeverageScore int
	OutcomeID     string
	ScheduledFor  *time.Time
	IsMorningTask bool
}

type CompleteTaskResult struct {
	Task                *storage.Task
	XPAwarded           int
	InMorningWindow     bool
	LevelBefore         int
	LevelAfter          int
	LevelUp             bool
	NewAchievements     []storage.UnlockedAchievement
	CompletedChallenges []Challenge
}

func (s *Service) Tasks(ctx context.Context) ([]storage.Task, error) {
	var tasks []storage.Task
	if _, err := s.store.Get(ctx, storage.KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Service) TaskByID(ctx context.Context, id string) (*storage.Task, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if in.LeverageScore < 1 || in.LeverageScore > 10 {
		return nil, fmt.Errorf("invalid leverage score: %d", in.LeverageScore)
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	task := storage.Task{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   in.Description,
		LeverageScore: in.LeverageScore,
		OutcomeID:     in.OutcomeID,
		ScheduledFor:  in.ScheduledFor,
		IsMorningTask: in.IsMorningTask,
		CreatedAt:     s.now(),
	}

	tasks = append(tasks, task)
	if err := s.store.Put(ctx, storage.KeyTasks, tasks); err != nil {
		return nil, err
	}

	if in.OutcomeID != "" {
		if err := s.bumpOutcomeTaskCount(ctx, in.OutcomeID); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// CompleteTask marks the task done, awards leverage-weighted XP (doubled for
// morning tasks inside the morning window), records history, and re-runs the
// achievement and challenge engines against the updated state. Completing an
// unknown or already-completed task returns nil.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompleteTaskResult, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || tasks[idx].Completed {
		return nil, nil
	}

	stateBefore, err := s.UserState(ctx)
	if err != nil || stateBefore == nil {
		return nil, err
	}
	levelBefore := stateBefore.Level

	// Streak first: it is keyed on lastActive's calendar date, and every
	// later state write refreshes lastActive to today.
	if _, err := s.UpdateStreak(ctx, true); err != nil {
		return nil, err
	}

	now := s.now()
	inMorning := now.Hour() < s.cfg.MorningWindowEnd

	xp := tasks[idx].LeverageScore * TaskBaseXPPerLeverage
	if tasks[idx].IsMorningTask && inMorning {
		xp *= MorningMultiplier
		if _, err := s.IncrementMorningControl(ctx); err != nil {
			return nil, err
		}
	}

	tasks[idx].Completed = true
	tasks[idx].CompletedAt = &now
	tasks[idx].XPEarned = xp
	if err := s.store.Put(ctx, storage.KeyTasks, tasks); err != nil {
		return nil, err
	}

	if _, err := s.appendHistory(ctx, storage.HistoryRecord{
		Type:               string(RecordTask),
		EntityID:           tasks[idx].ID,
		EntitySnapshot:     tasks[idx],
		CompletedAt:        now,
		XPEarned:           xp,
		WasInMorningWindow: inMorning,
		LeverageScore:      tasks[idx].LeverageScore,
	}); err != nil {
		return nil, err
	}

	state, err := s.AddXP(ctx, xp)
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshLeverageRatios(ctx); err != nil {
		return nil, err
	}

	// Count toward the active maker/manager session, when one is open.
	if err := s.IncrementSessionTasks(ctx); err != nil {
		return nil, err
	}

	newAch, err := s.CheckAchievements(ctx)
	if err != nil {
		return nil, err
	}
	doneCh, err := s.CheckDailyChallenges(ctx)
	if err != nil {
		return nil, err
	}

	return &CompleteTaskResult{
		Task:                &tasks[idx],
		XPAwarded:           xp,
		InMorningWindow:     inMorning,
		LevelBefore:         levelBefore,
		LevelAfter:          state.Level,
		LevelUp:             state.Level > levelBefore,
		NewAchievements:     newAch,
		CompletedChallenges: doneCh,
	}, nil
}
