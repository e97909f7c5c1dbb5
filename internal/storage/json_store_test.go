package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mfiorito/hard75/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "hard75.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func sampleState() models.ChallengeState {
	return models.ChallengeState{
		CurrentDay: 3,
		StartDate:  "2024-01-01",
		History: []models.DailyRecord{
			{DateString: "2024-01-01", Tasks: []models.Task{{ID: "diet", Label: "Strict Diet", Completed: true, Icon: "utensils", Type: models.TaskTypeDiet}}},
			{DateString: "2024-01-02", Tasks: []models.Task{{ID: "diet", Label: "Strict Diet", Icon: "utensils", Type: models.TaskTypeDiet}}},
		},
		LastVisitedDate: "2024-01-02",
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	s := newTestJSONStore(t)
	if err := s.Init(); err == nil {
		t.Error("second Init on the same path should fail")
	}
}

func TestJSONStore_LoadBeforeInit(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load on missing file = %v, want ErrNotInitialized", err)
	}
}

func TestJSONStore_ChallengeStateRoundtrip(t *testing.T) {
	s := newTestJSONStore(t)

	if _, err := s.GetChallengeState(); !errors.Is(err, ErrNotFound) {
		t.Errorf("fresh store GetChallengeState = %v, want ErrNotFound", err)
	}

	want := sampleState()
	if err := s.SaveChallengeState(want); err != nil {
		t.Fatalf("SaveChallengeState failed: %v", err)
	}

	// Reopen from disk to prove it was durably written.
	reopened := NewJSONStore(s.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.GetChallengeState()
	if err != nil {
		t.Fatalf("GetChallengeState failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("state did not survive the roundtrip:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestJSONStore_CorruptFileRecovers(t *testing.T) {
	s := newTestJSONStore(t)
	if err := s.SaveChallengeState(sampleState()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.GetConfigPath(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	reopened := NewJSONStore(s.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load of corrupt file should recover, got %v", err)
	}
	if _, err := reopened.GetChallengeState(); !errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt state should be discarded, got %v", err)
	}
}

func TestJSONStore_SelectedPlanAndCustomTasks(t *testing.T) {
	s := newTestJSONStore(t)

	if err := s.SaveSelectedPlan(models.PlanSelection{ID: "medium"}); err != nil {
		t.Fatal(err)
	}
	sel, err := s.GetSelectedPlan()
	if err != nil || sel.ID != "medium" {
		t.Errorf("GetSelectedPlan = %+v, %v", sel, err)
	}

	defs := []models.TaskDefinition{{ID: "custom-guitar", Label: "Guitar", Icon: "star"}}
	if err := s.SaveCustomTasks(defs); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetCustomTasks()
	if err != nil || !reflect.DeepEqual(got, defs) {
		t.Errorf("GetCustomTasks = %+v, %v", got, err)
	}
}

func TestJSONStore_AttemptsAppend(t *testing.T) {
	s := newTestJSONStore(t)

	a := models.Attempt{PlanID: "hard", StartDate: "2024-01-01", EndDate: "2024-01-10", Reason: models.AttemptReset, State: sampleState()}
	b := models.Attempt{PlanID: "soft", StartDate: "2024-01-11", EndDate: "2024-01-20", Reason: models.AttemptPlanSwitch}

	if err := s.AddAttempt(a); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAttempt(b); err != nil {
		t.Fatal(err)
	}

	attempts, err := s.GetAttempts()
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 2 || attempts[0].PlanID != "hard" || attempts[1].PlanID != "soft" {
		t.Errorf("attempts = %+v", attempts)
	}
}

func TestJSONStore_Session(t *testing.T) {
	s := newTestJSONStore(t)

	sess := models.Session{UserID: "u1", Name: "Ana", Email: "ana@example.com"}
	if err := s.SaveSession(sess); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetSession()
	if err != nil || got != sess {
		t.Errorf("GetSession = %+v, %v", got, err)
	}

	if err := s.ClearSession(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSession(); !errors.Is(err, ErrNotFound) {
		t.Errorf("cleared session should be ErrNotFound, got %v", err)
	}
}
