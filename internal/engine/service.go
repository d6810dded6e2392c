package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/myaiRhys/Lifer/internal/config"
	"github.com/myaiRhys/Lifer/internal/storage"
)

// timeNow is the injected clock used by pure evaluation helpers.
type timeNow func() time.Time

// Service is the facade over the persistent store. All domain operations
// (progression, history, analytics, engines) hang off it.
type Service struct {
	store *storage.Store
	cfg   *config.Config

	// Injected for tests.
	now   func() time.Time
	randF func() float64
}

func NewService(store *storage.Store, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
		randF: rand.Float64,
	}
}

func (s *Service) Store() *storage.Store { return s.store }

// Now exposes the service clock so callers evaluate progress against the same
// instant the engine uses.
func (s *Service) Now() time.Time { return s.now() }

// dayKey reduces a timestamp to its local calendar date.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
