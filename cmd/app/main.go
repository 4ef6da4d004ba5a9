package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/osse101/DarkFrame_Go/internal/bootstrap"
	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/config"
	"github.com/osse101/DarkFrame_Go/internal/database"
	"github.com/osse101/DarkFrame_Go/internal/harvest"
	"github.com/osse101/DarkFrame_Go/internal/scheduler"
	"github.com/osse101/DarkFrame_Go/internal/server"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("DarkFrame exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return err
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}

	realClock := clock.Real{}
	repos := bootstrap.InitializeRepositories(dbPool)

	harvestSvc, err := harvest.NewService(repos.Harvest, cfg.HarvestConfig(), harvest.WithClock(realClock))
	if err != nil {
		dbPool.Close()
		return err
	}

	sched := scheduler.New(worker.WithClock(realClock))
	if err := bootstrap.RegisterJobs(sched, cfg, repos, realClock); err != nil {
		dbPool.Close()
		return err
	}
	sched.StartAll(ctx)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, harvestSvc, sched)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		DB:        dbPool,
	})

	return err
}
