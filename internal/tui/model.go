package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/storage"
	"github.com/myaiRhys/Lifer/internal/ui"
)

type dashboardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state      *storage.UserState
	tasks      []storage.Task
	practices  []storage.Practice
	challenges []engine.Challenge
	season     *storage.SeasonPhase
	mode       engine.WorkMode

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state      *storage.UserState
	tasks      []storage.Task
	practices  []storage.Practice
	challenges []engine.Challenge
	season     *storage.SeasonPhase
	mode       engine.WorkMode
	err        error
}

type completedMsg struct {
	id  string
	res *engine.CompleteTaskResult
	err error
}

func newDashboardModel(ctx context.Context, svc *engine.Service) dashboardModel {
	return dashboardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.svc.UserState(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.Tasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		practices, err := m.svc.Practices(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		challenges, err := m.svc.DailyChallenges(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		season, err := m.svc.CurrentSeason(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		mode, err := m.svc.CurrentMode(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{
			state:      state,
			tasks:      tasks,
			practices:  practices,
			challenges: challenges,
			season:     season,
			mode:       mode,
		}
	}
}

func (m dashboardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.tasks = msg.tasks
		m.practices = msg.practices
		m.challenges = msg.challenges
		m.season = msg.season
		m.mode = msg.mode
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Task not found or already done."
			return m, m.loadCmd()
		}
		log := fmt.Sprintf("Completed: +%d XP", msg.res.XPAwarded)
		if msg.res.LevelUp {
			log += fmt.Sprintf(" (level %d → %d)", msg.res.LevelBefore, msg.res.LevelAfter)
		}
		for _, a := range msg.res.NewAchievements {
			log += " | unlocked " + a.Name
		}
		m.lastLog = log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.pendingTasks())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			pending := m.pendingTasks()
			if m.selected < 0 || m.selected >= len(pending) {
				return m, nil
			}
			t := pending[m.selected]
			m.lastLog = fmt.Sprintf("Completing %q…", t.Title)
			return m, m.completeCmd(t.ID)
		}
	}
	return m, nil
}

func (m dashboardModel) pendingTasks() []storage.Task {
	var out []storage.Task
	for _, t := range m.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m dashboardModel) renderHeader() string {
	if m.state == nil {
		return "Lifer — loading…"
	}
	bar := progressBar(m.state.XP, m.state.XPForNextLevel, 30)
	line := fmt.Sprintf("Lifer | Level %d %s | %s %d-day streak", m.state.Level, bar, ui.IconStreak, m.state.CurrentStreak)
	if m.season != nil {
		line += fmt.Sprintf(" | %s %s", ui.SeasonIcon(m.season.Season), m.season.Season)
	}
	line += fmt.Sprintf(" | %s %s mode", ui.ModeIcon(string(m.mode)), m.mode)
	return line
}

func (m dashboardModel) renderSidebar() string {
	lines := []string{"Today's Challenges"}
	if m.loading || m.state == nil {
		lines = append(lines, "Loading…")
	} else {
		now := time.Now()
		for _, ch := range m.challenges {
			mark := " "
			if ch.CompletedAt != nil {
				mark = "x"
			}
			p := engine.ChallengeProgress(ch, m.state, m.tasks, m.practices, now)
			lines = append(lines, fmt.Sprintf("[%s] %s %s %d/%d", mark, ch.Icon, ch.Name, p.Current, p.Total))
		}
	}
	lines = append(lines, "")
	lines = append(lines, "Practices")
	done, scheduled := 0, 0
	for _, p := range m.practices {
		scheduled++
		if p.TodayCompleted {
			done++
		}
	}
	lines = append(lines, fmt.Sprintf("- %d/%d completed today", done, scheduled))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m dashboardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Open Tasks")

	pending := m.pendingTasks()
	if len(pending) == 0 {
		out = append(out, "(no open tasks)")
		return strings.Join(out, "\n")
	}
	for i, t := range pending {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		morning := ""
		if t.IsMorningTask {
			morning = ui.IconMorning + " "
		}
		out = append(out, fmt.Sprintf("%s%s%s (leverage %d)", cursor, morning, t.Title, t.LeverageScore))
	}
	return strings.Join(out, "\n")
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
