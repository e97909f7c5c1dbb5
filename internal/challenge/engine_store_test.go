package challenge

import (
	"errors"
	"testing"
	"time"

	"github.com/mfiorito/hard75/internal/clock"
	"github.com/mfiorito/hard75/internal/models"
	"github.com/mfiorito/hard75/internal/plan"
	"github.com/mfiorito/hard75/internal/storage"
)

// memStore is an in-memory Provider for engine tests.
type memStore struct {
	state       *models.ChallengeState
	sel         *models.PlanSelection
	customTasks []models.TaskDefinition
	attempts    []models.Attempt
	session     *models.Session
	saveErr     error
}

func (m *memStore) Init() error  { return nil }
func (m *memStore) Load() error  { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) GetChallengeState() (models.ChallengeState, error) {
	if m.state == nil {
		return models.ChallengeState{}, storage.ErrNotFound
	}
	return *m.state, nil
}

func (m *memStore) SaveChallengeState(s models.ChallengeState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = &s
	return nil
}

func (m *memStore) GetSelectedPlan() (models.PlanSelection, error) {
	if m.sel == nil {
		return models.PlanSelection{}, storage.ErrNotFound
	}
	return *m.sel, nil
}

func (m *memStore) SaveSelectedPlan(sel models.PlanSelection) error {
	m.sel = &sel
	return nil
}

func (m *memStore) GetCustomTasks() ([]models.TaskDefinition, error) {
	if m.customTasks == nil {
		return nil, storage.ErrNotFound
	}
	return m.customTasks, nil
}

func (m *memStore) SaveCustomTasks(defs []models.TaskDefinition) error {
	m.customTasks = defs
	return nil
}

func (m *memStore) AddAttempt(a models.Attempt) error {
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memStore) GetAttempts() ([]models.Attempt, error) { return m.attempts, nil }

func (m *memStore) GetSession() (models.Session, error) {
	if m.session == nil {
		return models.Session{}, storage.ErrNotFound
	}
	return *m.session, nil
}

func (m *memStore) SaveSession(s models.Session) error { m.session = &s; return nil }
func (m *memStore) ClearSession() error                { m.session = nil; return nil }
func (m *memStore) GetConfigPath() string              { return "/tmp/hard75-test" }

func engineAt(t *testing.T, store storage.Provider, date string) *Engine {
	t.Helper()
	instant, err := time.Parse("2006-01-02 15:04", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	// Interpret the test instant as UTC; noon UTC is always the same civil
	// day in Argentina.
	clk, err := clock.NewAt(func() time.Time { return instant.UTC() })
	if err != nil {
		t.Fatalf("clock setup failed: %v", err)
	}
	return New(clk, store)
}

func TestBootstrap_FirstRunCreatesDefaultState(t *testing.T) {
	store := &memStore{}
	e := engineAt(t, store, "2024-01-01 15:00")

	state, err := e.Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if state.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", state.CurrentDay)
	}
	if len(state.History) != 1 {
		t.Errorf("history length = %d, want 1", len(state.History))
	}
	if store.state == nil {
		t.Error("first-run state was not persisted")
	}
	// Default plan is the hard challenge: six tasks.
	if got := len(state.History[0].Tasks); got != 6 {
		t.Errorf("default task set has %d tasks, want 6", got)
	}
}

func TestBootstrap_PersistsAdvance(t *testing.T) {
	store := &memStore{}
	prior := stateAt(5, "2023-12-28", "2024-01-01", completedTasks())
	store.state = &prior

	e := engineAt(t, store, "2024-01-02 15:00")
	state, err := e.Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if state.CurrentDay != 6 {
		t.Errorf("CurrentDay = %d, want 6", state.CurrentDay)
	}
	if store.state.CurrentDay != 6 {
		t.Error("advanced state was not persisted")
	}
}

func TestBootstrap_SameDayDoesNotRewrite(t *testing.T) {
	store := &memStore{}
	prior := stateAt(5, "2023-12-28", "2024-01-01", freshTasks())
	store.state = &prior
	store.saveErr = errors.New("save must not be called")

	e := engineAt(t, store, "2024-01-01 18:00")
	if _, err := e.Bootstrap(); err != nil {
		t.Fatalf("same-day Bootstrap failed: %v", err)
	}
}

func TestBootstrap_ArchivesCompletedChallenge(t *testing.T) {
	store := &memStore{}
	store.sel = &models.PlanSelection{ID: "soft"} // 30 days
	prior := stateAt(30, "2023-12-03", "2024-01-01", nil)
	prior.History = []models.DailyRecord{{
		DateString: "2024-01-01",
		Tasks:      completedSoftTasks(),
	}}
	store.state = &prior

	e := engineAt(t, store, "2024-01-02 15:00")
	state, err := e.Bootstrap()
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if len(store.attempts) != 1 {
		t.Fatalf("archived %d attempts, want 1", len(store.attempts))
	}
	if store.attempts[0].Reason != models.AttemptCompleted {
		t.Errorf("attempt reason = %s, want completed", store.attempts[0].Reason)
	}
	if state.CurrentDay != 1 {
		t.Errorf("post-completion CurrentDay = %d, want a fresh day 1", state.CurrentDay)
	}
}

func completedSoftTasks() []models.Task {
	return []models.Task{
		{ID: "diet", Completed: true},
		{ID: "workout", Completed: true},
		{ID: "water", Completed: true},
		{ID: "reading", Completed: true},
	}
}

func TestToggle_PersistsFlip(t *testing.T) {
	store := &memStore{}
	prior := stateAt(1, "2024-01-01", "2024-01-01", freshTasks())
	store.state = &prior

	e := engineAt(t, store, "2024-01-01 15:00")
	state, err := e.Toggle("water")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	rec := state.TodayRecord()
	found := false
	for _, task := range rec.Tasks {
		if task.ID == "water" && task.Completed {
			found = true
		}
	}
	if !found {
		t.Error("water task was not persisted as completed")
	}
}

func TestToggle_UnknownTaskLeavesStateAlone(t *testing.T) {
	store := &memStore{}
	prior := stateAt(1, "2024-01-01", "2024-01-01", freshTasks())
	store.state = &prior

	e := engineAt(t, store, "2024-01-01 15:00")
	state, err := e.Toggle("no-such-task")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if state.TodayRecord().CompletedCount() != 0 {
		t.Error("unknown task toggle changed completion counts")
	}
}

func TestApplyPlan_ArchivesAndStartsFresh(t *testing.T) {
	store := &memStore{}
	prior := stateAt(12, "2023-12-21", "2024-01-01", completedTasks())
	store.state = &prior
	store.sel = &models.PlanSelection{ID: "hard"}

	e := engineAt(t, store, "2024-01-01 15:00")
	if got := e.CurrentPlan(); got.ID != "hard" {
		t.Fatalf("CurrentPlan = %s, want hard", got.ID)
	}

	softPlan, err := plan.Get("soft")
	if err != nil {
		t.Fatal(err)
	}

	state, err := e.ApplyPlan(softPlan)
	if err != nil {
		t.Fatalf("ApplyPlan failed: %v", err)
	}

	if len(store.attempts) != 1 || store.attempts[0].Reason != models.AttemptPlanSwitch {
		t.Errorf("plan switch did not archive the prior attempt: %+v", store.attempts)
	}
	if store.sel.ID != "soft" {
		t.Errorf("selection = %s, want soft", store.sel.ID)
	}
	if state.CurrentDay != 1 || len(state.History) != 1 {
		t.Error("plan switch did not start a fresh day-1 state")
	}
	if got := len(state.History[0].Tasks); got != 4 {
		t.Errorf("soft plan instantiated %d tasks, want 4", got)
	}
}

func TestReset_Finality(t *testing.T) {
	store := &memStore{}
	prior := stateAt(40, "2023-11-23", "2024-01-01", completedTasks())
	store.state = &prior

	e := engineAt(t, store, "2024-01-01 15:00")
	state, err := e.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if state.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", state.CurrentDay)
	}
	if len(state.History) != 1 {
		t.Errorf("history length = %d, want 1", len(state.History))
	}
	for _, task := range state.History[0].Tasks {
		if task.Completed {
			t.Errorf("task %s survived the reset as completed", task.ID)
		}
	}
	// The aborted run is preserved in the archive, not destroyed.
	if len(store.attempts) != 1 || store.attempts[0].Reason != models.AttemptReset {
		t.Error("reset did not archive the prior attempt")
	}
}

func TestCurrentPlan_CustomSelectionUsesStoredTasks(t *testing.T) {
	store := &memStore{}
	store.sel = &models.PlanSelection{ID: "custom"}
	store.customTasks = []models.TaskDefinition{
		{ID: "custom-guitar", Label: "Guitar", Icon: "star"},
	}

	e := engineAt(t, store, "2024-01-01 15:00")
	p := e.CurrentPlan()

	if p.ID != "custom" || len(p.Tasks) != 1 || p.Tasks[0].ID != "custom-guitar" {
		t.Errorf("custom plan not built from stored tasks: %+v", p.Tasks)
	}
}
