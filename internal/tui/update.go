package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-8, 50)

	case tickMsg:
		m.countdown = m.clock.UntilMidnight()
		// A date change while the screen is open rolls the day over in place.
		if m.challenge.LastVisitedDate != m.clock.Today() {
			m.refresh()
		}
		return m, tick()

	case tea.KeyMsg:
		if m.state == StateConfirmReset {
			return m.updateConfirmReset(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			if m.state == StateToday {
				m.state = StateHistory
			} else {
				m.state = StateToday
			}
		case key.Matches(msg, m.keys.Reset):
			m.previousState = m.state
			m.state = StateConfirmReset
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if rec := m.challenge.TodayRecord(); rec != nil && m.cursor < len(rec.Tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.state == StateToday {
				m.toggleAtCursor()
			}
		}
	}

	return m, nil
}

func (m *Model) toggleAtCursor() {
	rec := m.challenge.TodayRecord()
	if rec == nil || m.cursor >= len(rec.Tasks) {
		return
	}
	state, err := m.engine.Toggle(rec.Tasks[m.cursor].ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.challenge = state
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		state, err := m.engine.Reset()
		if err != nil {
			m.err = err
		} else {
			m.err = nil
			m.challenge = state
			m.plan = m.engine.CurrentPlan()
			m.cursor = 0
		}
		m.state = StateToday
	case "n", "N", "esc", "q":
		m.state = m.previousState
	}
	return m, nil
}
