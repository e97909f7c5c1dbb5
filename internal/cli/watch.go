package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mfiorito/hard75/internal/challenge"
	"github.com/mfiorito/hard75/internal/models"
)

type WatchCmd struct {
	Interval time.Duration `help:"How often to check for a date change." default:"10s"`
}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Catch up before waiting for the next midnight.
	if _, err := ctx.Engine.Bootstrap(); err != nil {
		return err
	}

	release, err := challenge.AcquireLock(filepath.Dir(ctx.Store.GetConfigPath()))
	if err != nil {
		return err
	}
	defer release()

	watcher := challenge.NewWatcher(ctx.Engine, c.Interval)
	watcher.OnRollover = func(state models.ChallengeState) {
		fmt.Printf("New day! Now on day %d.\n", state.CurrentDay)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for midnight rollover every %s. Ctrl-C to stop.\n", c.Interval)
	if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
