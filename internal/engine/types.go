package engine

import (
	"fmt"
	"strings"
)

type RecordType string

const (
	RecordTask     RecordType = "task"
	RecordPractice RecordType = "practice"
	RecordOutcome  RecordType = "outcome"
)

type WorkMode string

const (
	ModeMaker   WorkMode = "maker"
	ModeManager WorkMode = "manager"
)

func (m WorkMode) IsValid() bool {
	switch m {
	case ModeMaker, ModeManager:
		return true
	default:
		return false
	}
}

func ParseWorkMode(input string) (WorkMode, error) {
	m := WorkMode(strings.TrimSpace(strings.ToLower(input)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid work mode: %q", input)
	}
	return m, nil
}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter:
		return true
	default:
		return false
	}
}

func ParseSeason(input string) (Season, error) {
	s := Season(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid season: %q", input)
	}
	return s, nil
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// VictoryEmotion tags a cookie-jar victory with the feeling it carries.
type VictoryEmotion string

const (
	EmotionProud       VictoryEmotion = "proud"
	EmotionUnstoppable VictoryEmotion = "unstoppable"
	EmotionRelieved    VictoryEmotion = "relieved"
	EmotionEnergized   VictoryEmotion = "energized"
	EmotionCalm        VictoryEmotion = "calm"
)

// VictoryCategory groups cookie-jar victories for targeted recall.
type VictoryCategory string

const (
	CategoryPhysical     VictoryCategory = "physical"
	CategoryMental       VictoryCategory = "mental"
	CategoryProfessional VictoryCategory = "professional"
	CategoryPersonal     VictoryCategory = "personal"
)

// Progress is a clamped current/total pair for achievements and challenges.
type Progress struct {
	Current int
	Total   int
}
