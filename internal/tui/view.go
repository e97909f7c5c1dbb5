package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHistory:
		content = m.viewHistory()
	case StateConfirmReset:
		content = m.viewConfirmReset()
	}

	sections := []string{m.viewTabs(), content}
	if m.err != nil {
		sections = append(sections, dangerStyle.Render("error: "+m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "History"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — Day %d of %d", m.plan.Name, m.challenge.CurrentDay, m.plan.DurationDays)))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.challenge.OverallProgress(m.plan.DurationDays) / 100))
	b.WriteString("\n\n")

	rec := m.challenge.TodayRecord()
	if rec == nil {
		b.WriteString("No tasks for today yet.\n")
	} else {
		for i, task := range rec.Tasks {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			line := fmt.Sprintf("[%s] %s %s", mark(task.Completed), task.Icon, task.Label)
			if task.Completed {
				line = doneStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		if rec.Perfect() {
			b.WriteString("\n" + perfectStyle.Render("Perfect day! Tomorrow advances the streak.") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(countdownStyle.Render(fmt.Sprintf("%02d:%02d:%02d until midnight", m.countdown.Hours, m.countdown.Minutes, m.countdown.Seconds)))
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Started %s", m.challenge.StartDate)))
	b.WriteString("\n\n")

	if len(m.challenge.History) == 0 {
		b.WriteString("No days recorded yet.\n")
		return b.String()
	}

	for _, rec := range m.challenge.History {
		line := fmt.Sprintf("%s  %d/%d tasks", rec.DateString, rec.CompletedCount(), len(rec.Tasks))
		if rec.Perfect() {
			line = perfectStyle.Render(line + "  ★")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewConfirmReset() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render("Reset the challenge?"),
		"",
		"Your current attempt is archived and you restart at day 1.",
		"",
		"[y] Yes   [n] No",
	)
}

func mark(done bool) string {
	if done {
		return "x"
	}
	return " "
}
