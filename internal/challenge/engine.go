package challenge

import (
	"errors"
	"fmt"

	"github.com/mfiorito/hard75/internal/clock"
	"github.com/mfiorito/hard75/internal/logger"
	"github.com/mfiorito/hard75/internal/models"
	"github.com/mfiorito/hard75/internal/plan"
	"github.com/mfiorito/hard75/internal/storage"
)

// Engine owns every write path into the challenge state: the day rollover,
// task toggles, plan switches and resets. The state transitions themselves
// are pure functions over ChallengeState values; the engine loads, applies
// and persists them.
type Engine struct {
	clock *clock.Clock
	store storage.Provider
}

func New(clk *clock.Clock, store storage.Provider) *Engine {
	return &Engine{clock: clk, store: store}
}

// NewState builds a fresh day-1 state for today.
func NewState(today string, tasks []models.Task) models.ChallengeState {
	return models.ChallengeState{
		CurrentDay:      1,
		StartDate:       today,
		History:         []models.DailyRecord{{DateString: today, Tasks: tasks}},
		LastVisitedDate: today,
	}
}

// Rollover computes the state transition for an observed date change.
//
// Same-day calls return the state unchanged. Otherwise the streak continues
// only when exactly one calendar day passed and the previous day was perfect;
// any larger gap, a non-monotonic date, or an incomplete day restarts the
// challenge at day 1. A fresh record for today is always appended and prior
// records are never touched.
func Rollover(state models.ChallengeState, today string, fresh []models.Task) models.ChallengeState {
	if state.LastVisitedDate == today {
		return state
	}

	gap, err := clock.DaysBetween(state.LastVisitedDate, today)
	if err != nil {
		logger.Warn("stored lastVisitedDate is malformed, restarting streak", "lastVisitedDate", state.LastVisitedDate)
	}

	last := state.Record(state.LastVisitedDate)
	wasCompleted := last != nil && last.Perfect()

	// ISO dates compare lexicographically, so this catches clock rewinds.
	monotonic := today > state.LastVisitedDate

	next := state
	if err == nil && monotonic && gap == 1 && wasCompleted {
		next.CurrentDay = state.CurrentDay + 1
	} else {
		next.CurrentDay = 1
		next.StartDate = today
	}

	history := make([]models.DailyRecord, len(state.History), len(state.History)+1)
	copy(history, state.History)
	next.History = append(history, models.DailyRecord{DateString: today, Tasks: fresh})
	next.LastVisitedDate = today

	return next
}

// ToggleTask flips the completion flag of one task in the record for today.
// All other tasks and records are left untouched. The second return value
// reports whether anything changed; a missing record or task id is a silent
// no-op because the rollover always runs before any toggle is possible.
func ToggleTask(state models.ChallengeState, today, taskID string) (models.ChallengeState, bool) {
	recordIdx := -1
	taskIdx := -1
	for i := range state.History {
		if state.History[i].DateString != today {
			continue
		}
		recordIdx = i
		for j := range state.History[i].Tasks {
			if state.History[i].Tasks[j].ID == taskID {
				taskIdx = j
				break
			}
		}
		break
	}

	if recordIdx < 0 || taskIdx < 0 {
		return state, false
	}

	next := state
	next.History = make([]models.DailyRecord, len(state.History))
	copy(next.History, state.History)

	tasks := make([]models.Task, len(state.History[recordIdx].Tasks))
	copy(tasks, state.History[recordIdx].Tasks)
	tasks[taskIdx].Completed = !tasks[taskIdx].Completed
	next.History[recordIdx].Tasks = tasks

	return next, true
}

// CurrentPlan resolves the active plan from the stored selection. A custom
// selection picks up the user-authored task definitions; an unknown or
// missing selection falls back to the default plan.
func (e *Engine) CurrentPlan() models.Plan {
	sel, err := e.store.GetSelectedPlan()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read plan selection, using default plan", "error", err)
		}
		return plan.Default()
	}

	if sel.ID == "custom" {
		defs, err := e.store.GetCustomTasks()
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read custom tasks, using seed set", "error", err)
		}
		return plan.Custom(defs)
	}

	return plan.GetOrDefault(sel.ID)
}

// Bootstrap loads the persisted state, runs the rollover for today and
// persists the result. On first run it creates the default day-1 state. When
// the rollover pushes the streak past the plan's duration, the finished
// attempt is archived and a fresh one begins.
func (e *Engine) Bootstrap() (models.ChallengeState, error) {
	today := e.clock.Today()
	active := e.CurrentPlan()

	state, err := e.store.GetChallengeState()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.ChallengeState{}, fmt.Errorf("failed to load challenge state: %w", err)
		}
		state = NewState(today, plan.Instantiate(active))
		if err := e.store.SaveChallengeState(state); err != nil {
			return models.ChallengeState{}, err
		}
		logger.Info("started new challenge", "plan", active.ID, "startDate", today)
		return state, nil
	}

	next := Rollover(state, today, plan.Instantiate(active))

	if next.CurrentDay > active.DurationDays {
		// The previous state holds the full completed run; today starts over.
		if err := e.archive(state, models.AttemptCompleted, active.ID); err != nil {
			return models.ChallengeState{}, err
		}
		next = NewState(today, plan.Instantiate(active))
		logger.Info("challenge completed", "plan", active.ID, "days", active.DurationDays)
	}

	if next.LastVisitedDate != state.LastVisitedDate || next.CurrentDay != state.CurrentDay {
		if err := e.store.SaveChallengeState(next); err != nil {
			return models.ChallengeState{}, err
		}
	}

	return next, nil
}

// Toggle flips one task in today's record and persists the result.
func (e *Engine) Toggle(taskID string) (models.ChallengeState, error) {
	state, err := e.Bootstrap()
	if err != nil {
		return models.ChallengeState{}, err
	}

	next, changed := ToggleTask(state, e.clock.Today(), taskID)
	if !changed {
		logger.Warn("toggle matched no task for today", "taskId", taskID)
		return state, nil
	}

	if err := e.store.SaveChallengeState(next); err != nil {
		return models.ChallengeState{}, err
	}
	return next, nil
}

// ApplyPlan switches the active plan. The running attempt is archived, the
// selection is persisted and a fresh day-1 state with the new plan's task set
// replaces the working state.
func (e *Engine) ApplyPlan(p models.Plan) (models.ChallengeState, error) {
	if err := e.archiveCurrent(models.AttemptPlanSwitch); err != nil {
		return models.ChallengeState{}, err
	}

	if err := e.store.SaveSelectedPlan(models.PlanSelection{ID: p.ID}); err != nil {
		return models.ChallengeState{}, fmt.Errorf("failed to save plan selection: %w", err)
	}

	state := NewState(e.clock.Today(), plan.Instantiate(p))
	if err := e.store.SaveChallengeState(state); err != nil {
		return models.ChallengeState{}, err
	}

	logger.Info("switched plan", "plan", p.ID)
	return state, nil
}

// Reset archives the running attempt and restarts the current plan at day 1.
func (e *Engine) Reset() (models.ChallengeState, error) {
	if err := e.archiveCurrent(models.AttemptReset); err != nil {
		return models.ChallengeState{}, err
	}

	state := NewState(e.clock.Today(), plan.Instantiate(e.CurrentPlan()))
	if err := e.store.SaveChallengeState(state); err != nil {
		return models.ChallengeState{}, err
	}

	return state, nil
}

func (e *Engine) archiveCurrent(reason models.AttemptReason) error {
	state, err := e.store.GetChallengeState()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load challenge state: %w", err)
	}
	return e.archive(state, reason, e.CurrentPlan().ID)
}

func (e *Engine) archive(state models.ChallengeState, reason models.AttemptReason, planID string) error {
	attempt := models.Attempt{
		PlanID:    planID,
		StartDate: state.StartDate,
		EndDate:   state.LastVisitedDate,
		Reason:    reason,
		State:     state,
	}
	if err := e.store.AddAttempt(attempt); err != nil {
		return fmt.Errorf("failed to archive attempt: %w", err)
	}
	return nil
}
