package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/DarkFrame_Go/internal/database"
	"github.com/osse101/DarkFrame_Go/internal/scheduler"
	"github.com/osse101/DarkFrame_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	DB        database.Pool
}

// GracefulShutdown stops the HTTP server, then the periodic jobs, then
// closes the database pool. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	// in-flight ticks still need the pool
	if components.Scheduler != nil {
		slog.Info(LogMsgShuttingDownScheduler)
		if err := components.Scheduler.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSchedulerShutdownSlow, "error", err)
		}
	}

	if components.DB != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}
