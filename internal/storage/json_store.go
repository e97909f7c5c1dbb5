package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfiorito/hard75/internal/logger"
	"github.com/mfiorito/hard75/internal/models"
)

// document is the whole persisted JSON payload. Field names mirror the
// key-value layout of the SQLite store so state is portable between the two.
type document struct {
	Version        int                     `json:"version"`
	ChallengeState *models.ChallengeState  `json:"challenge_state,omitempty"`
	SelectedPlan   *models.PlanSelection   `json:"selected_plan,omitempty"`
	CustomTasks    []models.TaskDefinition `json:"custom_tasks,omitempty"`
	Attempts       []models.Attempt        `json:"attempts,omitempty"`
	Session        *models.Session         `json:"account_session,omitempty"`
}

// JSONStore persists all state as a single JSON document. It is the simple
// backend for users who want an inspectable file.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{Version: 1}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		// Corrupt state is recovered locally: start over with a fresh
		// document rather than surfacing a fatal error.
		logger.Warn("challenge state file is corrupt, starting fresh", "path", s.path, "error", err)
		s.doc = &document{Version: 1}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetChallengeState() (models.ChallengeState, error) {
	if s.doc == nil {
		return models.ChallengeState{}, ErrNotInitialized
	}
	if s.doc.ChallengeState == nil {
		return models.ChallengeState{}, ErrNotFound
	}
	return *s.doc.ChallengeState, nil
}

func (s *JSONStore) SaveChallengeState(state models.ChallengeState) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.ChallengeState = &state
	return s.save()
}

func (s *JSONStore) GetSelectedPlan() (models.PlanSelection, error) {
	if s.doc == nil {
		return models.PlanSelection{}, ErrNotInitialized
	}
	if s.doc.SelectedPlan == nil {
		return models.PlanSelection{}, ErrNotFound
	}
	return *s.doc.SelectedPlan, nil
}

func (s *JSONStore) SaveSelectedPlan(sel models.PlanSelection) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.SelectedPlan = &sel
	return s.save()
}

func (s *JSONStore) GetCustomTasks() ([]models.TaskDefinition, error) {
	if s.doc == nil {
		return nil, ErrNotInitialized
	}
	if s.doc.CustomTasks == nil {
		return nil, ErrNotFound
	}
	return s.doc.CustomTasks, nil
}

func (s *JSONStore) SaveCustomTasks(defs []models.TaskDefinition) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.CustomTasks = defs
	return s.save()
}

func (s *JSONStore) AddAttempt(attempt models.Attempt) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.Attempts = append(s.doc.Attempts, attempt)
	return s.save()
}

func (s *JSONStore) GetAttempts() ([]models.Attempt, error) {
	if s.doc == nil {
		return nil, ErrNotInitialized
	}
	return s.doc.Attempts, nil
}

func (s *JSONStore) GetSession() (models.Session, error) {
	if s.doc == nil {
		return models.Session{}, ErrNotInitialized
	}
	if s.doc.Session == nil {
		return models.Session{}, ErrNotFound
	}
	return *s.doc.Session, nil
}

func (s *JSONStore) SaveSession(sess models.Session) error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.Session = &sess
	return s.save()
}

func (s *JSONStore) ClearSession() error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	s.doc.Session = nil
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
