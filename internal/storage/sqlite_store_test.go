package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mfiorito/hard75/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "hard75.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_LoadBeforeInit(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load on missing file = %v, want ErrNotInitialized", err)
	}
}

func TestSQLiteStore_ChallengeStateRoundtrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	if _, err := s.GetChallengeState(); !errors.Is(err, ErrNotFound) {
		t.Errorf("fresh store GetChallengeState = %v, want ErrNotFound", err)
	}

	want := sampleState()
	if err := s.SaveChallengeState(want); err != nil {
		t.Fatalf("SaveChallengeState failed: %v", err)
	}

	got, err := s.GetChallengeState()
	if err != nil {
		t.Fatalf("GetChallengeState failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("state did not survive the roundtrip:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSQLiteStore_ReopenKeepsState(t *testing.T) {
	s := newTestSQLiteStore(t)
	path := s.GetConfigPath()

	if err := s.SaveSelectedPlan(models.PlanSelection{ID: "soft"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	sel, err := reopened.GetSelectedPlan()
	if err != nil || sel.ID != "soft" {
		t.Errorf("GetSelectedPlan after reopen = %+v, %v", sel, err)
	}
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	s := newTestSQLiteStore(t)

	first := sampleState()
	if err := s.SaveChallengeState(first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.CurrentDay = 9
	if err := s.SaveChallengeState(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetChallengeState()
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentDay != 9 {
		t.Errorf("CurrentDay = %d, want the overwritten value 9", got.CurrentDay)
	}
}

func TestSQLiteStore_CorruptValueDiscarded(t *testing.T) {
	s := newTestSQLiteStore(t)

	if _, err := s.db.Exec(`INSERT INTO app_state (key, value) VALUES ('challenge_state', '{broken')`); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetChallengeState(); !errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt value should read as ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_Attempts(t *testing.T) {
	s := newTestSQLiteStore(t)

	attempts, err := s.GetAttempts()
	if err != nil || attempts != nil {
		t.Errorf("fresh store attempts = %+v, %v", attempts, err)
	}

	if err := s.AddAttempt(models.Attempt{PlanID: "hard", Reason: models.AttemptReset}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAttempt(models.Attempt{PlanID: "hard", Reason: models.AttemptCompleted}); err != nil {
		t.Fatal(err)
	}

	attempts, err = s.GetAttempts()
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 2 || attempts[1].Reason != models.AttemptCompleted {
		t.Errorf("attempts = %+v", attempts)
	}
}
