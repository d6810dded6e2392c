package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

// History returns the full append-only completion log in insertion order.
func (s *Service) History(ctx context.Context) ([]storage.HistoryRecord, error) {
	var history []storage.HistoryRecord
	if _, err := s.store.Get(ctx, storage.KeyHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// appendHistory assigns a fresh id, stamps the day-of-week and hour-of-day
// denormalizations, and appends. Records are write-once; there is no update
// or delete path.
func (s *Service) appendHistory(ctx context.Context, rec storage.HistoryRecord) (*storage.HistoryRecord, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	rec.ID = uuid.NewString()
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = s.now()
	}
	rec.DayOfWeek = int(rec.CompletedAt.Weekday())
	rec.HourOfDay = rec.CompletedAt.Hour()

	history = append(history, rec)
	if err := s.store.Put(ctx, storage.KeyHistory, history); err != nil {
		return nil, err
	}
	return &rec, nil
}
