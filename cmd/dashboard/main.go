package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/milan-air-quality/internal/adapter/archive"
	httpadapter "github.com/couchcryptid/milan-air-quality/internal/adapter/http"
	"github.com/couchcryptid/milan-air-quality/internal/config"
	"github.com/couchcryptid/milan-air-quality/internal/dataset"
	"github.com/couchcryptid/milan-air-quality/internal/observability"
)

func main() {
	// Best effort: a .env file is a local development convenience.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := archive.NewReader(cfg.DataDir, cfg.StationsFile, logger)
	loader := dataset.NewLoader(source, logger, metrics, clockwork.NewRealClock())
	store := dataset.NewStore(loader, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EagerLoad {
		if _, err := store.Get(ctx); err != nil {
			logger.Error("dataset load failed", "error", err, "data_dir", cfg.DataDir)
			os.Exit(1)
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
