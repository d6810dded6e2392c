package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

type AddVictoryInput struct {
	Title        string
	Story        string
	Emotion      VictoryEmotion
	Difficulty   int // clamped 1-10
	Category     VictoryCategory
	DateAchieved *time.Time
	SourceType   string
	SourceID     string
}

type CategoryCount struct {
	Category string
	Count    int
}

type CookieJarStats struct {
	TotalVictories    int
	TotalRetrievals   int
	MostRetrieved     *storage.CookieJarVictory
	VictoryByCategory []CategoryCount
	AvgDifficulty     float64
	MostCommonEmotion string
	// CurrentStrength is a 0-100 composite of jar size, victory difficulty,
	// and how recently the jar has been used.
	CurrentStrength int
}

// Victories returns the jar sorted newest first.
func (s *Service) Victories(ctx context.Context) ([]storage.CookieJarVictory, error) {
	var victories []storage.CookieJarVictory
	if _, err := s.store.Get(ctx, storage.KeyCookieJarVictories, &victories); err != nil {
		return nil, err
	}
	sort.Slice(victories, func(i, j int) bool {
		return victories[i].CreatedAt.After(victories[j].CreatedAt)
	})
	return victories, nil
}

func (s *Service) AddVictory(ctx context.Context, in AddVictoryInput) (*storage.CookieJarVictory, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("title is required")
	}

	difficulty := in.Difficulty
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 10 {
		difficulty = 10
	}

	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	achieved := now
	if in.DateAchieved != nil {
		achieved = *in.DateAchieved
	}

	v := storage.CookieJarVictory{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Story:        in.Story,
		Emotion:      string(in.Emotion),
		Difficulty:   difficulty,
		Category:     string(in.Category),
		DateAchieved: achieved,
		SourceType:   in.SourceType,
		SourceID:     in.SourceID,
		CreatedAt:    now,
	}

	victories = append(victories, v)
	if err := s.store.Put(ctx, storage.KeyCookieJarVictories, victories); err != nil {
		return nil, err
	}
	return &v, nil
}

// RetrieveVictory pulls a victory out for strength. Retrieval is not a pure
// read: it increments timesRetrieved and stamps lastRetrievedAt. Unknown ids
// return nil.
func (s *Service) RetrieveVictory(ctx context.Context, id string) (*storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range victories {
		if victories[i].ID != id {
			continue
		}
		now := s.now()
		victories[i].TimesRetrieved++
		victories[i].LastRetrievedAt = &now
		if err := s.store.Put(ctx, storage.KeyCookieJarVictories, victories); err != nil {
			return nil, err
		}
		return &victories[i], nil
	}
	return nil, nil
}

// RandomVictory draws from the jar weighted by difficulty: harder victories
// surface more often. The draw walks the list subtracting weights until the
// running value goes non-positive, falling back to the first victory. The
// selected victory is retrieved (with its side effects).
func (s *Service) RandomVictory(ctx context.Context) (*storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}
	if len(victories) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, v := range victories {
		total += float64(v.Difficulty)
	}

	r := s.randF() * total
	for _, v := range victories {
		r -= float64(v.Difficulty)
		if r <= 0 {
			return s.RetrieveVictory(ctx, v.ID)
		}
	}
	return s.RetrieveVictory(ctx, victories[0].ID)
}

func (s *Service) VictoriesByCategory(ctx context.Context, category VictoryCategory) ([]storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.CookieJarVictory
	for _, v := range victories {
		if v.Category == string(category) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) VictoriesByEmotion(ctx context.Context, emotion VictoryEmotion) ([]storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.CookieJarVictory
	for _, v := range victories {
		if v.Emotion == string(emotion) {
			out = append(out, v)
		}
	}
	return out, nil
}

type UpdateVictoryInput struct {
	Title      *string
	Story      *string
	Emotion    *VictoryEmotion
	Difficulty *int
	Category   *VictoryCategory
}

// UpdateVictory refines a victory's narrative fields. Unknown ids return nil.
func (s *Service) UpdateVictory(ctx context.Context, id string, in UpdateVictoryInput) (*storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range victories {
		if victories[i].ID != id {
			continue
		}
		if in.Title != nil {
			victories[i].Title = *in.Title
		}
		if in.Story != nil {
			victories[i].Story = *in.Story
		}
		if in.Emotion != nil {
			victories[i].Emotion = string(*in.Emotion)
		}
		if in.Difficulty != nil {
			d := *in.Difficulty
			if d < 1 {
				d = 1
			}
			if d > 10 {
				d = 10
			}
			victories[i].Difficulty = d
		}
		if in.Category != nil {
			victories[i].Category = string(*in.Category)
		}
		if err := s.store.Put(ctx, storage.KeyCookieJarVictories, victories); err != nil {
			return nil, err
		}
		return &victories[i], nil
	}
	return nil, nil
}

// DeleteVictory removes a victory; returns false when the id is unknown.
func (s *Service) DeleteVictory(ctx context.Context, id string) (bool, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return false, err
	}

	filtered := victories[:0]
	for _, v := range victories {
		if v.ID != id {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == len(victories) {
		return false, nil
	}
	if err := s.store.Put(ctx, storage.KeyCookieJarVictories, filtered); err != nil {
		return false, err
	}
	return true, nil
}

// ForgottenVictories lists wins that were retrieved before but not in the
// last 30 days, hardest first.
func (s *Service) ForgottenVictories(ctx context.Context) ([]storage.CookieJarVictory, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().AddDate(0, 0, -30)
	var out []storage.CookieJarVictory
	for _, v := range victories {
		if v.TimesRetrieved == 0 || v.LastRetrievedAt == nil {
			continue
		}
		if v.LastRetrievedAt.Before(cutoff) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Difficulty > out[j].Difficulty })
	return out, nil
}

// CookieJarStats summarizes the jar.
func (s *Service) CookieJarStats(ctx context.Context) (*CookieJarStats, error) {
	victories, err := s.Victories(ctx)
	if err != nil {
		return nil, err
	}
	if len(victories) == 0 {
		return &CookieJarStats{MostCommonEmotion: string(EmotionProud)}, nil
	}

	stats := &CookieJarStats{TotalVictories: len(victories)}

	categoryCounts := map[string]int{}
	emotionCounts := map[string]int{}
	diffSum := 0
	recentRetrievals := 0
	weekAgo := s.now().AddDate(0, 0, -7)

	mostRetrieved := victories[0]
	for _, v := range victories {
		stats.TotalRetrievals += v.TimesRetrieved
		if v.TimesRetrieved > mostRetrieved.TimesRetrieved {
			mostRetrieved = v
		}
		categoryCounts[v.Category]++
		emotionCounts[v.Emotion]++
		diffSum += v.Difficulty
		if v.LastRetrievedAt != nil && v.LastRetrievedAt.After(weekAgo) {
			recentRetrievals++
		}
	}
	stats.MostRetrieved = &mostRetrieved

	for cat, n := range categoryCounts {
		stats.VictoryByCategory = append(stats.VictoryByCategory, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(stats.VictoryByCategory, func(i, j int) bool {
		a, b := stats.VictoryByCategory[i], stats.VictoryByCategory[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	avg := float64(diffSum) / float64(len(victories))
	stats.AvgDifficulty = round1(avg)

	stats.MostCommonEmotion = string(EmotionProud)
	best := 0
	for emo, n := range emotionCounts {
		if n > best {
			best = n
			stats.MostCommonEmotion = emo
		}
	}

	fromCount := float64(len(victories) * 5)
	if fromCount > 50 {
		fromCount = 50
	}
	fromDifficulty := avg * 3
	if fromDifficulty > 30 {
		fromDifficulty = 30
	}
	fromUsage := float64(recentRetrievals * 4)
	if fromUsage > 20 {
		fromUsage = 20
	}
	stats.CurrentStrength = int(fromCount + fromDifficulty + fromUsage + 0.5)

	return stats, nil
}
