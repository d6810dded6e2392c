package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lifer theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconLevel     = "🎖️"
	IconXP        = "⚡"
	IconStreak    = "🔥"
	IconTask      = "📝"
	IconPractice  = "🔁"
	IconOutcome   = "🎯"
	IconTrophy    = "🏆"
	IconChallenge = "🗓️"
	IconHeart     = "💙"
	IconJar       = "🍪"
	IconStack     = "🔗"
	IconMaker     = "🛠️"
	IconManager   = "📅"
	IconSpring    = "🌱"
	IconSummer    = "☀️"
	IconFall      = "🍂"
	IconWinter    = "❄️"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconDone      = "✅"
	IconMorning   = "🌅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// XPBar renders a fixed-width progress bar for the current level.
func XPBar(xp, next int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if next > 0 {
		filled = xp * width / next
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return Gold.Render(bar) + " " + Muted.Render(fmt.Sprintf("%d/%d", xp, next))
}

// RarityText colors an achievement rarity.
func RarityText(rarity string) string {
	switch strings.ToLower(strings.TrimSpace(rarity)) {
	case "legendary":
		return Gold.Render("legendary")
	case "epic":
		return Title.Render("epic")
	case "rare":
		return H2.Render("rare")
	default:
		return Muted.Render("common")
	}
}

func SeasonIcon(season string) string {
	switch strings.ToLower(strings.TrimSpace(season)) {
	case "spring":
		return IconSpring
	case "summer":
		return IconSummer
	case "fall":
		return IconFall
	case "winter":
		return IconWinter
	default:
		return ""
	}
}

func ModeIcon(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), "manager") {
		return IconManager
	}
	return IconMaker
}

func TrendText(trend string) string {
	switch strings.ToLower(strings.TrimSpace(trend)) {
	case "improving":
		return Good.Render("improving")
	case "declining":
		return Bad.Render("declining")
	default:
		return Muted.Render("stable")
	}
}
