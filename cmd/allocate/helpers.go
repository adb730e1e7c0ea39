package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/config"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/engine"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/metrics"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/report"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/storage"
)

// storeRetryOptions covers a Redis server that is still starting.
var storeRetryOptions = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
}

// openStore opens and migrates the configured backend. The returned cleanup
// closes it.
func openStore(ctx context.Context, cfg *config.Config) (service.Storage, func(), error) {
	var store service.Storage

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		store = storage.NewRedisStorage(client, cfg.Redis.KeyPrefix)
	case config.BackendMemory:
		store = storage.NewMemoryStorage()
	default:
		s, err := storage.NewSQLiteStorage(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store = s
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}

	migrate := func() error {
		err := store.Migrate(ctx)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: common.IsRetryable(err)}
		}
		return nil
	}
	if err := common.WithRetry(ctx, migrate, storeRetryOptions); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	slog.Debug("Storage ready", "backend", cfg.Storage.Backend)
	return store, cleanup, nil
}

// errNoResults is returned by commands that need a stored run.
var errNoResults = common.NewUserError("No matching results found. Run 'allocate run' first.", common.ErrNoMatches)

// loadRows reads the latest stored run and joins its matches with their
// records.
func loadRows(ctx context.Context, store service.Storage) (*model.Run, []service.ReportRow, error) {
	run, err := store.GetLatestRun(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil, errNoResults
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest run: %w", err)
	}

	matches, err := store.GetMatches(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load matches: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil, errNoResults
	}

	candidates, err := store.GetCandidates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	opportunities, err := store.GetOpportunities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load opportunities: %w", err)
	}

	rows, err := report.BuildRows(matches, candidates, opportunities)
	if err != nil {
		return nil, nil, err
	}
	return run, rows, nil
}

// newEngine builds an engine reporting progress to w, or silently when w is
// nil.
func newEngine(store service.Storage, w io.Writer, recorder *metrics.Recorder) *engine.Engine {
	cfg := engine.DefaultConfig()
	if w != nil {
		cfg.Progress = cli.NewProgress(w)
	}
	if recorder != nil {
		cfg.Metrics = recorder
	}
	return engine.NewWithConfig(store, nil, cfg)
}

func writeOut(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

// userMessage returns the operator facing text of err.
func userMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
