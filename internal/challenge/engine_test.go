package challenge

import (
	"reflect"
	"testing"

	"github.com/mfiorito/hard75/internal/models"
	"github.com/mfiorito/hard75/internal/plan"
)

func freshTasks() []models.Task {
	return plan.Instantiate(plan.Default())
}

func completedTasks() []models.Task {
	tasks := freshTasks()
	for i := range tasks {
		tasks[i].Completed = true
	}
	return tasks
}

func stateAt(day int, start, lastVisited string, tasks []models.Task) models.ChallengeState {
	return models.ChallengeState{
		CurrentDay:      day,
		StartDate:       start,
		History:         []models.DailyRecord{{DateString: lastVisited, Tasks: tasks}},
		LastVisitedDate: lastVisited,
	}
}

func TestRollover_SameDayIsNoOp(t *testing.T) {
	s := stateAt(5, "2023-12-28", "2024-01-01", freshTasks())

	got := Rollover(s, "2024-01-01", freshTasks())

	if !reflect.DeepEqual(got, s) {
		t.Error("same-day rollover changed the state")
	}
}

func TestRollover_SameDayIdempotent(t *testing.T) {
	s := stateAt(5, "2023-12-28", "2024-01-01", completedTasks())

	once := Rollover(s, "2024-01-02", freshTasks())
	twice := Rollover(once, "2024-01-02", freshTasks())

	if !reflect.DeepEqual(once, twice) {
		t.Error("repeated rollover with the same date changed the state again")
	}
}

func TestRollover_AdvanceOnPerfectDay(t *testing.T) {
	s := stateAt(5, "2023-12-28", "2024-01-01", completedTasks())

	got := Rollover(s, "2024-01-02", freshTasks())

	if got.CurrentDay != 6 {
		t.Errorf("CurrentDay = %d, want 6", got.CurrentDay)
	}
	if got.StartDate != "2023-12-28" {
		t.Errorf("StartDate changed to %s on advance", got.StartDate)
	}
	if got.LastVisitedDate != "2024-01-02" {
		t.Errorf("LastVisitedDate = %s, want 2024-01-02", got.LastVisitedDate)
	}

	rec := got.Record("2024-01-02")
	if rec == nil {
		t.Fatal("no record appended for the new day")
	}
	for _, task := range rec.Tasks {
		if task.Completed {
			t.Errorf("new day's task %s starts completed", task.ID)
		}
	}
}

func TestRollover_BreakOnIncompleteDay(t *testing.T) {
	tasks := completedTasks()
	tasks[0].Completed = false
	s := stateAt(5, "2023-12-28", "2024-01-01", tasks)

	got := Rollover(s, "2024-01-02", freshTasks())

	if got.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", got.CurrentDay)
	}
	if got.StartDate != "2024-01-02" {
		t.Errorf("StartDate = %s, want 2024-01-02", got.StartDate)
	}
}

func TestRollover_BreakOnSkippedDays(t *testing.T) {
	// Gap of four days breaks the streak even when the last day was perfect.
	s := stateAt(10, "2023-12-23", "2024-01-01", completedTasks())

	got := Rollover(s, "2024-01-05", freshTasks())

	if got.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", got.CurrentDay)
	}
	if got.StartDate != "2024-01-05" {
		t.Errorf("StartDate = %s, want 2024-01-05", got.StartDate)
	}
}

func TestRollover_BreakOnNonMonotonicDate(t *testing.T) {
	// Yesterday is one absolute day away, but going backwards is a clock
	// rewind, never a continuation.
	s := stateAt(5, "2023-12-28", "2024-01-02", completedTasks())

	got := Rollover(s, "2024-01-01", freshTasks())

	if got.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1 on backwards date", got.CurrentDay)
	}
}

func TestRollover_MissingLastRecordCountsAsIncomplete(t *testing.T) {
	s := models.ChallengeState{
		CurrentDay:      5,
		StartDate:       "2023-12-28",
		History:         nil, // no record for the last visited date
		LastVisitedDate: "2024-01-01",
	}

	got := Rollover(s, "2024-01-02", freshTasks())

	if got.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1 when the last record is absent", got.CurrentDay)
	}
}

func TestRollover_HistoryAppendOnly(t *testing.T) {
	s := stateAt(1, "2024-01-01", "2024-01-01", completedTasks())
	original := s.History[0]

	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	cur := s
	for i, d := range dates {
		cur = Rollover(cur, d, freshTasks())
		if len(cur.History) != i+2 {
			t.Fatalf("after %s: history length %d, want %d", d, len(cur.History), i+2)
		}
	}

	// The first record must be byte-for-byte what it was before any rollover.
	if !reflect.DeepEqual(cur.History[0], original) {
		t.Error("a superseded record was mutated by later rollovers")
	}
}

func TestRollover_DoesNotMutateInput(t *testing.T) {
	s := stateAt(5, "2023-12-28", "2024-01-01", completedTasks())
	snapshot := models.ChallengeState{
		CurrentDay:      s.CurrentDay,
		StartDate:       s.StartDate,
		History:         append([]models.DailyRecord(nil), s.History...),
		LastVisitedDate: s.LastVisitedDate,
	}

	_ = Rollover(s, "2024-01-02", freshTasks())

	if !reflect.DeepEqual(s, snapshot) {
		t.Error("Rollover mutated its input state")
	}
}

func TestToggleTask_FlipsOnlyTheTarget(t *testing.T) {
	s := stateAt(2, "2024-01-01", "2024-01-02", freshTasks())
	s.History = append([]models.DailyRecord{{DateString: "2024-01-01", Tasks: completedTasks()}}, s.History...)

	got, changed := ToggleTask(s, "2024-01-02", "water")
	if !changed {
		t.Fatal("toggle reported no change")
	}

	rec := got.Record("2024-01-02")
	for _, task := range rec.Tasks {
		if task.ID == "water" {
			if !task.Completed {
				t.Error("water task was not flipped")
			}
		} else if task.Completed {
			t.Errorf("task %s was flipped as a side effect", task.ID)
		}
	}

	// Yesterday's record is untouched.
	if !reflect.DeepEqual(got.Record("2024-01-01"), s.Record("2024-01-01")) {
		t.Error("a prior day's record changed during a toggle")
	}
}

func TestToggleTask_ToggleTwiceRestores(t *testing.T) {
	s := stateAt(1, "2024-01-01", "2024-01-01", freshTasks())

	once, _ := ToggleTask(s, "2024-01-01", "diet")
	twice, _ := ToggleTask(once, "2024-01-01", "diet")

	if !reflect.DeepEqual(twice, s) {
		t.Error("double toggle did not restore the original state")
	}
}

func TestToggleTask_NoOpOnMissingRecordOrTask(t *testing.T) {
	s := stateAt(1, "2024-01-01", "2024-01-01", freshTasks())

	if _, changed := ToggleTask(s, "2024-01-02", "diet"); changed {
		t.Error("toggle on a missing day reported a change")
	}
	if _, changed := ToggleTask(s, "2024-01-01", "no-such-task"); changed {
		t.Error("toggle of an unknown task reported a change")
	}
}

func TestToggleTask_DoesNotMutateInput(t *testing.T) {
	s := stateAt(1, "2024-01-01", "2024-01-01", freshTasks())
	before := s.Record("2024-01-01").Tasks[0].Completed

	_, _ = ToggleTask(s, "2024-01-01", s.History[0].Tasks[0].ID)

	if s.Record("2024-01-01").Tasks[0].Completed != before {
		t.Error("ToggleTask mutated its input state")
	}
}

func TestNewState(t *testing.T) {
	s := NewState("2024-01-01", freshTasks())

	if s.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", s.CurrentDay)
	}
	if len(s.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(s.History))
	}
	if s.History[0].DateString != "2024-01-01" || s.LastVisitedDate != "2024-01-01" {
		t.Error("fresh state is not anchored on today")
	}
	for _, task := range s.History[0].Tasks {
		if task.Completed {
			t.Errorf("fresh task %s starts completed", task.ID)
		}
	}
}
