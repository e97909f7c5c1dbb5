package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfiorito/hard75/internal/account"
	"github.com/mfiorito/hard75/internal/account/httpapi"
	"github.com/mfiorito/hard75/internal/account/postgres"
	"github.com/mfiorito/hard75/internal/config"
	"github.com/mfiorito/hard75/internal/server"
)

const sessionTTL = 30 * 24 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configPath := os.Getenv("HARD75_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := postgres.Connect(ctx, cfg.ConnString())
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := account.NewService(store, []byte(cfg.Server.JWTSecret), sessionTTL)

	router := server.NewRouter(func(r chi.Router) {
		httpapi.RegisterRoutes(r, svc, logger)
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
