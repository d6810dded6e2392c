package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

type SeasonTransition struct {
	ShouldTransition bool
	DaysInSeason     int
	NextSeason       Season
	Message          string
}

type SeasonSummary struct {
	Season   Season
	Days     int
	Outcomes int
	Tasks    int
}

type SeasonStats struct {
	CurrentSeason       Season
	DaysInCurrentSeason int
	TotalSeasonsCycled  int
	History             []SeasonSummary
	LongestSeason       *SeasonSummary
	AvgSeasonDuration   int
}

// seasonCharacteristics returns the default energy pattern and mindset for a
// season.
func seasonCharacteristics(season Season) (energyPattern, mindset string) {
	switch season {
	case SeasonSpring:
		return "building", "Explore, experiment, and plant seeds. Try new things without pressure."
	case SeasonSummer:
		return "peak", "Execute with intensity. This is your time to produce and deliver."
	case SeasonFall:
		return "harvest", "Reap what you have sown. Reflect, integrate learnings, celebrate wins."
	case SeasonWinter:
		return "rest", "Rest deeply. Strategic planning. Let old identities die to make room for new growth."
	}
	return "", ""
}

// NextSeason is the natural cycle: spring, summer, fall, winter, spring.
func NextSeason(current Season) Season {
	switch current {
	case SeasonSpring:
		return SeasonSummer
	case SeasonSummer:
		return SeasonFall
	case SeasonFall:
		return SeasonWinter
	default:
		return SeasonSpring
	}
}

// CurrentSeason returns nil when no season has been started yet.
func (s *Service) CurrentSeason(ctx context.Context) (*storage.SeasonPhase, error) {
	var phase storage.SeasonPhase
	ok, err := s.store.Get(ctx, storage.KeySeasonCurrent, &phase)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &phase, nil
}

// SeasonHistory lists closed phases, newest first.
func (s *Service) SeasonHistory(ctx context.Context) ([]storage.SeasonPhase, error) {
	var phases []storage.SeasonPhase
	if _, err := s.store.Get(ctx, storage.KeySeasonHistory, &phases); err != nil {
		return nil, err
	}
	sort.Slice(phases, func(i, j int) bool {
		return phases[i].StartDate.After(phases[j].StartDate)
	})
	return phases, nil
}

// StartSeason closes the current phase (if any) into history, then begins a
// new phase with the season's default energy pattern and mindset.
func (s *Service) StartSeason(ctx context.Context, season Season, theme string, primaryOutcomes []string) (*storage.SeasonPhase, error) {
	if !season.IsValid() {
		return nil, fmt.Errorf("invalid season: %q", season)
	}

	now := s.now()

	current, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil && current.EndDate == nil {
		end := now
		current.EndDate = &end

		history, err := s.SeasonHistory(ctx)
		if err != nil {
			return nil, err
		}
		history = append(history, *current)
		if err := s.store.Put(ctx, storage.KeySeasonHistory, history); err != nil {
			return nil, err
		}
	}

	energy, mindset := seasonCharacteristics(season)
	phase := storage.SeasonPhase{
		ID:              uuid.NewString(),
		Season:          string(season),
		StartDate:       now,
		Theme:           theme,
		PrimaryOutcomes: primaryOutcomes,
		EnergyPattern:   energy,
		Mindset:         mindset,
		CreatedAt:       now,
	}
	if phase.PrimaryOutcomes == nil {
		phase.PrimaryOutcomes = []string{}
	}

	if err := s.store.Put(ctx, storage.KeySeasonCurrent, phase); err != nil {
		return nil, err
	}
	return &phase, nil
}

type UpdateSeasonFocusInput struct {
	Theme           *string
	PrimaryOutcomes []string
	ReflectionNotes *string
}

// UpdateSeasonFocus refines the current phase. Returns nil when no season is
// set.
func (s *Service) UpdateSeasonFocus(ctx context.Context, in UpdateSeasonFocusInput) (*storage.SeasonPhase, error) {
	current, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if in.Theme != nil {
		current.Theme = *in.Theme
	}
	if in.PrimaryOutcomes != nil {
		current.PrimaryOutcomes = in.PrimaryOutcomes
	}
	if in.ReflectionNotes != nil {
		current.ReflectionNotes = *in.ReflectionNotes
	}

	if err := s.store.Put(ctx, storage.KeySeasonCurrent, current); err != nil {
		return nil, err
	}
	return current, nil
}

// CheckSeasonTransition suggests a transition after 90 days (gentle) or 180
// days (strong). Returns nil when no season is set or the phase is young.
func (s *Service) CheckSeasonTransition(ctx context.Context) (*SeasonTransition, error) {
	current, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	days := int(s.now().Sub(current.StartDate).Hours() / 24)
	next := NextSeason(Season(current.Season))

	switch {
	case days >= 180:
		return &SeasonTransition{
			ShouldTransition: true,
			DaysInSeason:     days,
			NextSeason:       next,
			Message:          fmt.Sprintf("You've been in %s for %d days. It may be time to embrace %s and let this season end.", current.Season, days, next),
		}, nil
	case days >= 90:
		return &SeasonTransition{
			DaysInSeason: days,
			NextSeason:   next,
			Message:      fmt.Sprintf("You've been in %s for %d days. Consider if it's time to transition to %s.", current.Season, days, next),
		}, nil
	}
	return nil, nil
}

// SeasonStats summarizes the current phase plus completed cycles. Per-season
// task and outcome counts come from the history log's timestamps.
func (s *Service) SeasonStats(ctx context.Context) (*SeasonStats, error) {
	current, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &SeasonStats{CurrentSeason: SeasonSpring}, nil
	}

	history, err := s.SeasonHistory(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SeasonStats{
		CurrentSeason:       Season(current.Season),
		DaysInCurrentSeason: int(s.now().Sub(current.StartDate).Hours() / 24),
	}

	durationSum := 0
	for _, phase := range history {
		if phase.EndDate == nil {
			continue
		}
		stats.TotalSeasonsCycled++

		summary := SeasonSummary{
			Season: Season(phase.Season),
			Days:   int(phase.EndDate.Sub(phase.StartDate).Hours() / 24),
		}
		for _, rec := range records {
			if rec.CompletedAt.Before(phase.StartDate) || rec.CompletedAt.After(*phase.EndDate) {
				continue
			}
			switch rec.Type {
			case string(RecordTask):
				summary.Tasks++
			case string(RecordOutcome):
				summary.Outcomes++
			}
		}

		stats.History = append(stats.History, summary)
		durationSum += summary.Days
		if stats.LongestSeason == nil || summary.Days > stats.LongestSeason.Days {
			cp := summary
			stats.LongestSeason = &cp
		}
	}

	if stats.TotalSeasonsCycled > 0 {
		stats.AvgSeasonDuration = (durationSum + stats.TotalSeasonsCycled/2) / stats.TotalSeasonsCycled
	}
	return stats, nil
}
