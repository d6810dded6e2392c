package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/myaiRhys/Lifer/internal/storage"
)

type StackAnalytics struct {
	TotalAttempts         int
	SuccessfulCompletions int
	CompletionRate        int // percent
	CurrentStreak         int
	LongestStreak         int
	AverageProgress       int // percent of chain completed per attempt
	LastCompleted         string
}

type StackProgress struct {
	CompletedLinks []string
	TotalLinks     int
	Percentage     int
}

type SuggestedStack struct {
	Name        string
	Description string
	Chain       []storage.HabitStackLink
}

func (s *Service) HabitStacks(ctx context.Context) ([]storage.HabitStack, error) {
	var stacks []storage.HabitStack
	if _, err := s.store.Get(ctx, storage.KeyHabitStacks, &stacks); err != nil {
		return nil, err
	}
	return stacks, nil
}

func (s *Service) HabitStackByID(ctx context.Context, id string) (*storage.HabitStack, error) {
	stacks, err := s.HabitStacks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stacks {
		if stacks[i].ID == id {
			return &stacks[i], nil
		}
	}
	return nil, nil
}

func (s *Service) CreateHabitStack(ctx context.Context, name, description string, chain []storage.HabitStackLink) (*storage.HabitStack, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if len(chain) == 0 {
		return nil, errors.New("chain requires at least one link")
	}

	stacks, err := s.HabitStacks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stack := storage.HabitStack{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Chain:       chain,
		IsActive:    true,
		CreatedAt:   now,
		LastUpdated: now,
	}

	stacks = append(stacks, stack)
	if err := s.store.Put(ctx, storage.KeyHabitStacks, stacks); err != nil {
		return nil, err
	}
	return &stack, nil
}

// CreateDefaultMorningStack builds a starter stack from whatever morning
// practices already exist, matched by name. Returns nil when fewer than two
// links can be found.
func (s *Service) CreateDefaultMorningStack(ctx context.Context) (*storage.HabitStack, error) {
	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}

	find := func(keywords ...string) *storage.Practice {
		for i := range practices {
			name := strings.ToLower(practices[i].Name)
			for _, kw := range keywords {
				if strings.Contains(name, kw) {
					return &practices[i]
				}
			}
		}
		return nil
	}

	var chain []storage.HabitStackLink
	order := 1
	add := func(p *storage.Practice, transition int) {
		if p == nil {
			return
		}
		chain = append(chain, storage.HabitStackLink{PracticeID: p.ID, Order: order, TransitionTime: transition})
		order++
	}

	add(find("water", "hydrat"), 0)
	add(find("sun"), 60)
	add(find("meditat"), 60)
	add(find("journal"), 60)
	add(find("training", "exercise", "workout", "gym"), 300)

	if len(chain) < 2 {
		return nil, nil
	}
	return s.CreateHabitStack(ctx, "Morning Routine",
		"Win the morning, win the day. Stack your most important habits to build momentum.", chain)
}

type UpdateHabitStackInput struct {
	Name        *string
	Description *string
	Chain       []storage.HabitStackLink
	IsActive    *bool
}

// UpdateHabitStack merges the given fields. Unknown ids return nil.
func (s *Service) UpdateHabitStack(ctx context.Context, id string, in UpdateHabitStackInput) (*storage.HabitStack, error) {
	stacks, err := s.HabitStacks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stacks {
		if stacks[i].ID != id {
			continue
		}
		if in.Name != nil {
			stacks[i].Name = *in.Name
		}
		if in.Description != nil {
			stacks[i].Description = *in.Description
		}
		if in.Chain != nil {
			stacks[i].Chain = in.Chain
		}
		if in.IsActive != nil {
			stacks[i].IsActive = *in.IsActive
		}
		stacks[i].LastUpdated = s.now()
		if err := s.store.Put(ctx, storage.KeyHabitStacks, stacks); err != nil {
			return nil, err
		}
		return &stacks[i], nil
	}
	return nil, nil
}

// DeleteHabitStack removes a stack; returns false when the id is unknown.
func (s *Service) DeleteHabitStack(ctx context.Context, id string) (bool, error) {
	stacks, err := s.HabitStacks(ctx)
	if err != nil {
		return false, err
	}
	filtered := stacks[:0]
	for _, st := range stacks {
		if st.ID != id {
			filtered = append(filtered, st)
		}
	}
	if len(filtered) == len(stacks) {
		return false, nil
	}
	if err := s.store.Put(ctx, storage.KeyHabitStacks, filtered); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) StackCompletions(ctx context.Context) ([]storage.HabitStackCompletion, error) {
	var completions []storage.HabitStackCompletion
	if _, err := s.store.Get(ctx, storage.KeyStackCompletions, &completions); err != nil {
		return nil, err
	}
	return completions, nil
}

func (s *Service) StackCompletionsByStack(ctx context.Context, stackID string) ([]storage.HabitStackCompletion, error) {
	completions, err := s.StackCompletions(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.HabitStackCompletion
	for _, c := range completions {
		if c.StackID == stackID {
			out = append(out, c)
		}
	}
	return out, nil
}

// LogStackCompletion records one attempt at a stack for today and recomputes
// the stack's denormalized completion stats. Unlike the rest of the engine,
// an unknown stack id is a hard error.
func (s *Service) LogStackCompletion(ctx context.Context, stackID string, completedLinks []string, fullChain bool) (*storage.HabitStackCompletion, error) {
	stack, err := s.HabitStackByID(ctx, stackID)
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("habit stack %s not found", stackID)
	}

	completions, err := s.StackCompletions(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	completion := storage.HabitStackCompletion{
		ID:                 uuid.NewString(),
		StackID:            stackID,
		StackName:          stack.Name,
		Date:               dayKey(now),
		CompletedLinks:     completedLinks,
		FullChainCompleted: fullChain,
		Timestamp:          now,
	}

	completions = append(completions, completion)
	if err := s.store.Put(ctx, storage.KeyStackCompletions, completions); err != nil {
		return nil, err
	}

	attempts, successes := 0, 0
	for _, c := range completions {
		if c.StackID != stackID {
			continue
		}
		attempts++
		if c.FullChainCompleted {
			successes++
		}
	}

	rate := 0
	if attempts > 0 {
		rate = (successes*100 + attempts/2) / attempts
	}

	stacks, err := s.HabitStacks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stacks {
		if stacks[i].ID != stackID {
			continue
		}
		stacks[i].CompletionRate = rate
		stacks[i].TotalCompletions = successes
		if fullChain {
			t := now
			stacks[i].LastCompleted = &t
		}
		stacks[i].LastUpdated = now
		if err := s.store.Put(ctx, storage.KeyHabitStacks, stacks); err != nil {
			return nil, err
		}
		break
	}

	return &completion, nil
}

// StackCompletedToday reports whether the full chain was completed today.
func (s *Service) StackCompletedToday(ctx context.Context, stackID string) (bool, error) {
	completions, err := s.StackCompletions(ctx)
	if err != nil {
		return false, err
	}
	today := dayKey(s.now())
	for _, c := range completions {
		if c.StackID == stackID && c.Date == today && c.FullChainCompleted {
			return true, nil
		}
	}
	return false, nil
}

// TodayStackProgress derives per-link progress from each linked practice's
// completion state today. Unknown stacks yield an empty progress.
func (s *Service) TodayStackProgress(ctx context.Context, stackID string) (*StackProgress, error) {
	stack, err := s.HabitStackByID(ctx, stackID)
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return &StackProgress{}, nil
	}

	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]storage.Practice, len(practices))
	for _, p := range practices {
		byID[p.ID] = p
	}

	today := s.now()
	progress := &StackProgress{TotalLinks: len(stack.Chain)}
	for _, link := range stack.Chain {
		p, ok := byID[link.PracticeID]
		if !ok {
			continue
		}
		if p.TodayCompleted && sameDay(p.LastLoggedAt, today) {
			progress.CompletedLinks = append(progress.CompletedLinks, link.PracticeID)
		}
	}
	if progress.TotalLinks > 0 {
		progress.Percentage = (len(progress.CompletedLinks)*100 + progress.TotalLinks/2) / progress.TotalLinks
	}
	return progress, nil
}

// SuggestedStacks proposes stacks from the user's existing practices.
func (s *Service) SuggestedStacks(ctx context.Context) ([]SuggestedStack, error) {
	practices, err := s.Practices(ctx)
	if err != nil {
		return nil, err
	}

	matching := func(keywords ...string) []storage.Practice {
		var out []storage.Practice
		for _, p := range practices {
			name := strings.ToLower(p.Name)
			for _, kw := range keywords {
				if strings.Contains(name, kw) {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	var suggestions []SuggestedStack

	morning := matching("meditate", "journal", "exercise", "hydrat", "water", "sun")
	if len(morning) >= 2 {
		if len(morning) > 4 {
			morning = morning[:4]
		}
		chain := make([]storage.HabitStackLink, 0, len(morning))
		for i, p := range morning {
			chain = append(chain, storage.HabitStackLink{PracticeID: p.ID, Order: i + 1, TransitionTime: 60})
		}
		suggestions = append(suggestions, SuggestedStack{
			Name:        "Morning Routine",
			Description: "Stack your morning habits for a powerful start to the day",
			Chain:       chain,
		})
	}

	evening := matching("read", "stretch", "plan")
	if len(evening) >= 2 {
		if len(evening) > 3 {
			evening = evening[:3]
		}
		chain := make([]storage.HabitStackLink, 0, len(evening))
		for i, p := range evening {
			chain = append(chain, storage.HabitStackLink{PracticeID: p.ID, Order: i + 1, TransitionTime: 120})
		}
		suggestions = append(suggestions, SuggestedStack{
			Name:        "Evening Wind-Down",
			Description: "End your day with consistent habits",
			Chain:       chain,
		})
	}

	return suggestions, nil
}

// StackAnalytics aggregates attempts, the full-chain streaks, and average
// chain progress for one stack. Unknown stacks yield zeroes.
func (s *Service) StackAnalytics(ctx context.Context, stackID string) (*StackAnalytics, error) {
	stack, err := s.HabitStackByID(ctx, stackID)
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return &StackAnalytics{}, nil
	}

	completions, err := s.StackCompletionsByStack(ctx, stackID)
	if err != nil {
		return nil, err
	}

	analytics := &StackAnalytics{TotalAttempts: len(completions)}
	var fullDays []string
	progressSum := 0
	for _, c := range completions {
		if c.FullChainCompleted {
			analytics.SuccessfulCompletions++
			fullDays = append(fullDays, c.Date)
		}
		if len(stack.Chain) > 0 {
			progressSum += len(c.CompletedLinks) * 100 / len(stack.Chain)
		}
	}
	sort.Strings(fullDays)

	if analytics.TotalAttempts > 0 {
		analytics.CompletionRate = (analytics.SuccessfulCompletions*100 + analytics.TotalAttempts/2) / analytics.TotalAttempts
		analytics.AverageProgress = (progressSum + analytics.TotalAttempts/2) / analytics.TotalAttempts
	}
	analytics.CurrentStreak = currentDailyStreak(s.now(), fullDays)
	analytics.LongestStreak = longestDailyStreak(fullDays)
	if stack.LastCompleted != nil {
		analytics.LastCompleted = stack.LastCompleted.Format("2006-01-02 15:04")
	}
	return analytics, nil
}
