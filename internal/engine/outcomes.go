package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// OutcomeCompletionXP is awarded when a long-term outcome is completed.
const OutcomeCompletionXP = 100

func (s *Service) Outcomes(ctx context.Context) ([]storage.Outcome, error) {
	var outcomes []storage.Outcome
	if _, err := s.store.Get(ctx, storage.KeyOutcomes, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Service) OutcomeByID(ctx context.Context, id string) (*storage.Outcome, error) {
	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range outcomes {
		if outcomes[i].ID == id {
			return &outcomes[i], nil
		}
	}
	return nil, nil
}

func (s *Service) CreateOutcome(ctx context.Context, result, purpose string) (*storage.Outcome, error) {
	result = strings.TrimSpace(result)
	if result == "" {
		return nil, errors.New("result is required")
	}

	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o := storage.Outcome{
		ID:                 uuid.NewString(),
		Result:             result,
		Purpose:            purpose,
		Status:             "active",
		LastProgressUpdate: now,
		CreatedAt:          now,
	}

	outcomes = append(outcomes, o)
	if err := s.store.Put(ctx, storage.KeyOutcomes, outcomes); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOutcomeProgress sets the 0-100 progress value. Unknown ids return nil.
func (s *Service) UpdateOutcomeProgress(ctx context.Context, id string, progress int) (*storage.Outcome, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range outcomes {
		if outcomes[i].ID != id {
			continue
		}
		outcomes[i].Progress = progress
		outcomes[i].LastProgressUpdate = s.now()
		if err := s.store.Put(ctx, storage.KeyOutcomes, outcomes); err != nil {
			return nil, err
		}
		return &outcomes[i], nil
	}
	return nil, nil
}

// CompleteOutcome closes an outcome, records history, and awards XP. Unknown
// or already-completed ids return nil.
func (s *Service) CompleteOutcome(ctx context.Context, id string) (*storage.Outcome, error) {
	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range outcomes {
		if outcomes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || outcomes[idx].Status == "completed" {
		return nil, nil
	}

	now := s.now()
	outcomes[idx].Status = "completed"
	outcomes[idx].Progress = 100
	outcomes[idx].CompletedAt = &now
	outcomes[idx].LastProgressUpdate = now
	if err := s.store.Put(ctx, storage.KeyOutcomes, outcomes); err != nil {
		return nil, err
	}

	if _, err := s.UpdateStreak(ctx, true); err != nil {
		return nil, err
	}
	if _, err := s.appendHistory(ctx, storage.HistoryRecord{
		Type:           string(RecordOutcome),
		EntityID:       outcomes[idx].ID,
		EntitySnapshot: outcomes[idx],
		CompletedAt:    now,
		XPEarned:       OutcomeCompletionXP,
	}); err != nil {
		return nil, err
	}
	if _, err := s.AddXP(ctx, OutcomeCompletionXP); err != nil {
		return nil, err
	}
	if _, err := s.CheckAchievements(ctx); err != nil {
		return nil, err
	}

	return &outcomes[idx], nil
}

// ArchiveOutcome moves an outcome out of the active list. Unknown ids return
// nil.
func (s *Service) ArchiveOutcome(ctx context.Context, id string) (*storage.Outcome, error) {
	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range outcomes {
		if outcomes[i].ID != id {
			continue
		}
		now := s.now()
		outcomes[i].Status = "archived"
		outcomes[i].ArchivedAt = &now
		if err := s.store.Put(ctx, storage.KeyOutcomes, outcomes); err != nil {
			return nil, err
		}
		return &outcomes[i], nil
	}
	return nil, nil
}

func (s *Service) bumpOutcomeTaskCount(ctx context.Context, id string) error {
	outcomes, err := s.Outcomes(ctx)
	if err != nil {
		return err
	}
	for i := range outcomes {
		if outcomes[i].ID != id {
			continue
		}
		outcomes[i].LinkedTaskCount++
		return s.store.Put(ctx, storage.KeyOutcomes, outcomes)
	}
	return nil
}
