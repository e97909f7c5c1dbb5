package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mfiorito/hard75/internal/constants"
	"github.com/mfiorito/hard75/internal/logger"
	"github.com/mfiorito/hard75/internal/models"
)

const schemaVersion = 1

// SQLiteStore persists state in a key-value table, one JSON payload per key.
// The layout intentionally mirrors the original key-value storage
// (challenge_state, selected_plan, custom_tasks, ...) so companion keys like
// achievements can share the same table without schema changes.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	var version int
	err = s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = s.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion)
		return err
	}
	if err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("storage schema version %d is newer than this build supports (%d)", version, schemaVersion)
	}
	return nil
}

// getJSON loads and unmarshals the payload at key into out. A corrupt payload
// is treated like a missing one; the caller substitutes fresh defaults.
func (s *SQLiteStore) getJSON(key string, out any) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		logger.Warn("stored value is corrupt, discarding", "key", key, "error", err)
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) putJSON(key string, v any) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetChallengeState() (models.ChallengeState, error) {
	var state models.ChallengeState
	if err := s.getJSON(constants.KeyChallengeState, &state); err != nil {
		return models.ChallengeState{}, err
	}
	return state, nil
}

func (s *SQLiteStore) SaveChallengeState(state models.ChallengeState) error {
	return s.putJSON(constants.KeyChallengeState, state)
}

func (s *SQLiteStore) GetSelectedPlan() (models.PlanSelection, error) {
	var sel models.PlanSelection
	if err := s.getJSON(constants.KeySelectedPlan, &sel); err != nil {
		return models.PlanSelection{}, err
	}
	return sel, nil
}

func (s *SQLiteStore) SaveSelectedPlan(sel models.PlanSelection) error {
	return s.putJSON(constants.KeySelectedPlan, sel)
}

func (s *SQLiteStore) GetCustomTasks() ([]models.TaskDefinition, error) {
	var defs []models.TaskDefinition
	if err := s.getJSON(constants.KeyCustomTasks, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (s *SQLiteStore) SaveCustomTasks(defs []models.TaskDefinition) error {
	return s.putJSON(constants.KeyCustomTasks, defs)
}

func (s *SQLiteStore) AddAttempt(attempt models.Attempt) error {
	attempts, err := s.GetAttempts()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	attempts = append(attempts, attempt)
	return s.putJSON(constants.KeyAttempts, attempts)
}

func (s *SQLiteStore) GetAttempts() ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := s.getJSON(constants.KeyAttempts, &attempts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return attempts, nil
}

func (s *SQLiteStore) GetSession() (models.Session, error) {
	var sess models.Session
	if err := s.getJSON(constants.KeyAccountSession, &sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *SQLiteStore) SaveSession(sess models.Session) error {
	return s.putJSON(constants.KeyAccountSession, sess)
}

func (s *SQLiteStore) ClearSession() error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, constants.KeyAccountSession)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
