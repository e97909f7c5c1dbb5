package challenge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/mfiorito/hard75/internal/constants"
	"github.com/mfiorito/hard75/internal/logger"
	"github.com/mfiorito/hard75/internal/models"
)

// DefaultWatchInterval is how often the watcher polls for a date change.
const DefaultWatchInterval = 10 * time.Second

// Watcher detects the midnight rollover while the app stays open. It polls
// the clock and re-invokes the engine in place; no reload of the whole
// process is ever needed.
type Watcher struct {
	engine     *Engine
	interval   time.Duration
	OnRollover func(models.ChallengeState)
}

func NewWatcher(engine *Engine, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{engine: engine, interval: interval}
}

// Run polls until the context is cancelled. Each tick compares today's date
// with the persisted lastVisitedDate and runs the rollover on mismatch.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.tick(); err != nil {
				logger.Error("rollover check failed", "error", err)
			}
		}
	}
}

func (w *Watcher) tick() error {
	state, err := w.engine.store.GetChallengeState()
	if err != nil {
		// First run or corrupt state: Bootstrap handles both.
		state = models.ChallengeState{}
	}

	today := w.engine.clock.Today()
	if state.LastVisitedDate == today {
		return nil
	}

	next, err := w.engine.Bootstrap()
	if err != nil {
		return err
	}

	logger.Info("day rolled over", "date", today, "currentDay", next.CurrentDay)
	if w.OnRollover != nil {
		w.OnRollover(next)
	}
	return nil
}

// AcquireLock takes the single-watcher lock in dir. A stale lockfile from a
// dead process is reclaimed; a live one fails the acquisition.
func AcquireLock(dir string) (release func(), err error) {
	path := filepath.Join(dir, constants.WatchLockfileName)

	if content, readErr := os.ReadFile(path); readErr == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(content)))
		if convErr == nil {
			if proc, _ := ps.FindProcess(pid); proc != nil {
				return nil, fmt.Errorf("another watcher is already running (pid %d)", pid)
			}
		}
		logger.Debug("reclaiming stale watcher lockfile", "path", path)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove watcher lockfile", "path", path, "error", err)
		}
	}, nil
}
