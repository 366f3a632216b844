package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
	"github.com/Goutamdhanani/30-days-challenge/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	ch       *engine.Challenge
	dayIdx   int
	selected int
	help     help.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	ch  *engine.Challenge
	err error
}

type toggledMsg struct {
	ch  *engine.Challenge
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		dayIdx:  -1,
		help:    help.New(),
		loading: true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.svc.LoadLatest(m.ctx)
		return loadedMsg{ch: ch, err: err}
	}
}

func (m boardModel) toggleCmd(taskID string, completed bool) tea.Cmd {
	dayIdx := m.dayIdx
	return func() tea.Msg {
		ch, err := m.svc.Toggle(m.ctx, m.ch.ID, dayIdx, taskID, completed)
		return toggledMsg{ch: ch, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrNotFound) {
				m.lastLog = "No challenge yet. Run `thirty start` first."
				return m, nil
			}
			m.err = msg.err
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.ch = msg.ch
		if m.dayIdx < 0 {
			m.dayIdx = engine.CurrentDayIndex(m.ch.StartAt, time.Now().UTC())
		}
		m.clampCursor()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.ch = msg.ch
		m.clampCursor()
		m.lastLog = "Saved."
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Refresh):
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		}
		if m.ch == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, keys.Down):
			if m.selected < len(m.day().Tasks)-1 {
				m.selected++
			}
		case key.Matches(msg, keys.Left):
			if m.dayIdx > 0 {
				m.dayIdx--
				m.selected = 0
			}
		case key.Matches(msg, keys.Right):
			if m.dayIdx < len(m.ch.Days)-1 {
				m.dayIdx++
				m.selected = 0
			}
		case key.Matches(msg, keys.Today):
			m.dayIdx = engine.CurrentDayIndex(m.ch.StartAt, time.Now().UTC())
			m.selected = 0
		case key.Matches(msg, keys.Toggle):
			day := m.day()
			if m.selected < 0 || m.selected >= len(day.Tasks) {
				return m, nil
			}
			t := day.Tasks[m.selected]
			return m, m.toggleCmd(t.ID, !t.Completed)
		}
		return m, nil
	}
	return m, nil
}

func (m boardModel) day() engine.Day {
	if m.ch == nil || m.dayIdx < 0 || m.dayIdx >= len(m.ch.Days) {
		return engine.Day{}
	}
	return m.ch.Days[m.dayIdx]
}

func (m *boardModel) clampCursor() {
	n := len(m.day().Tasks)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading && m.ch == nil {
		return "Thirty — loading…\n"
	}
	if m.ch == nil {
		return m.lastLog + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDots())
	b.WriteString("\n\n")
	b.WriteString(m.renderDay())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	today := engine.CurrentDayIndex(m.ch.StartAt, time.Now().UTC()) + 1
	bar := ui.ProgressBar(m.ch.CompletedDays(), engine.ChallengeDays, 30)
	return fmt.Sprintf("%s | Day %d/%d | %s XP | %s",
		ui.Title.Render(m.ch.Title), today, engine.ChallengeDays,
		ui.Gold.Render(fmt.Sprintf("%d", m.ch.EarnedXP())), bar)
}

// renderDots is the 30-day overview row; the viewed day is bracketed.
func (m boardModel) renderDots() string {
	var b strings.Builder
	for i, d := range m.ch.Days {
		dot := ui.StatusDot(d.Status)
		if i == m.dayIdx {
			b.WriteString("[" + dot + "]")
		} else {
			b.WriteString(" " + dot + " ")
		}
	}
	return b.String()
}

func (m boardModel) renderDay() string {
	day := m.day()
	var out []string
	out = append(out, fmt.Sprintf("%s  %s  due %s  %s",
		ui.H2.Render(fmt.Sprintf("Day %d", day.DayNumber)),
		ui.StatusText(day.Status),
		ui.Dim.Render(day.DueAt.Format("Jan 2 15:04")),
		ui.Dim.Render(fmt.Sprintf("~%dm, %d xp", day.EstMinutes, day.XPReward))))

	if len(day.Tasks) == 0 {
		out = append(out, "  (no tasks)")
		return strings.Join(out, "\n")
	}
	for i, t := range day.Tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s (%d%%)", cursor, box, t.Title, t.Percent)
		if t.Carryover {
			line += " " + ui.Warn.Render(fmt.Sprintf("↩ from day %d", t.FromDay))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
		if t.Details != "" && i == m.selected {
			out = append(out, "      "+ui.Muted.Render(t.Details))
		}
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return ui.Dim.Render(m.lastLog) + "\n" + m.help.View(keys)
}
