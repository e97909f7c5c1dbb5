package storage

import (
	"errors"

	"github.com/mfiorito/hard75/internal/models"
)

var (
	// ErrNotFound is returned when a stored value does not exist yet.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned when the backing store was never created.
	ErrNotInitialized = errors.New("storage not initialized, run 'hard75 init' first")
)

// Provider abstracts the durable key-value store behind the challenge state.
// There is exactly one logical writer (the active session), so no provider
// needs locking; every mutation saves whole values, last writer wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Challenge state
	GetChallengeState() (models.ChallengeState, error)
	SaveChallengeState(models.ChallengeState) error

	// Plan selection
	GetSelectedPlan() (models.PlanSelection, error)
	SaveSelectedPlan(models.PlanSelection) error

	// User-authored custom task definitions
	GetCustomTasks() ([]models.TaskDefinition, error)
	SaveCustomTasks([]models.TaskDefinition) error

	// Archived attempts
	AddAttempt(models.Attempt) error
	GetAttempts() ([]models.Attempt, error)

	// Cached account session (non-secret part; the token lives in the keyring)
	GetSession() (models.Session, error)
	SaveSession(models.Session) error
	ClearSession() error

	// Utils
	GetConfigPath() string
}
