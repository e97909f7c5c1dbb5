package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfiorito/hard75/internal/challenge"
	"github.com/mfiorito/hard75/internal/clock"
	"github.com/mfiorito/hard75/internal/models"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateConfirmReset
)

// tickMsg drives the midnight countdown and the in-place rollover check.
type tickMsg time.Time

type Model struct {
	engine *challenge.Engine
	clock  *clock.Clock

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	progress      progress.Model

	challenge models.ChallengeState
	plan      models.Plan
	countdown clock.Countdown
	cursor    int

	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(engine *challenge.Engine, clk *clock.Clock) Model {
	m := Model{
		engine:   engine,
		clock:    clk,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
	m.refresh()
	return m
}

// refresh re-runs the bootstrap so the model always reflects persisted state.
func (m *Model) refresh() {
	state, err := m.engine.Bootstrap()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.challenge = state
	m.plan = m.engine.CurrentPlan()
	m.countdown = m.clock.UntilMidnight()
	if rec := state.TodayRecord(); rec != nil && m.cursor >= len(rec.Tasks) {
		m.cursor = len(rec.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
