package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mfiorito/hard75/internal/challenge"
	"github.com/mfiorito/hard75/internal/cli"
	"github.com/mfiorito/hard75/internal/clock"
	"github.com/mfiorito/hard75/internal/constants"
	apperrors "github.com/mfiorito/hard75/internal/errors"
	"github.com/mfiorito/hard75/internal/logger"
	"github.com/mfiorito/hard75/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Server  string `help:"Account backend URL." default:"${server_url}"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize hard75 storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive checklist." default:"1"`
	Status  cli.StatusCmd  `cmd:"" help:"Show today's progress."`
	Done    cli.DoneCmd    `cmd:"" help:"Mark a task complete."`
	Undo    cli.UndoCmd    `cmd:"" help:"Mark a task incomplete."`
	Plan    cli.PlanCmd    `cmd:"" help:"Browse and switch challenge plans."`
	Reset   cli.ResetCmd   `cmd:"" help:"Restart the challenge at day 1."`
	History cli.HistoryCmd `cmd:"" help:"Show the daily log."`
	Watch   cli.WatchCmd   `cmd:"" help:"Run the midnight rollover watcher."`
	Account cli.AccountCmd `cmd:"" help:"Manage the optional online account."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("75 Hard style challenge tracker"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"server_url":  constants.DefaultServerURL,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	clk, err := clock.New()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Clock:     clk,
		Engine:    challenge.New(clk, store),
		ServerURL: CLI.Server,
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
