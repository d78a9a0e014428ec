package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/scheduler"
	"github.com/osse101/ShadowArmy_Go/internal/server"
	"github.com/osse101/ShadowArmy_Go/internal/sse"
	"github.com/osse101/ShadowArmy_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Game               game.Service
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and workers (no more ticks)
// 3. Final checkpoint and save
// 4. SSE hub and event publisher (flush pending events)
// 5. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Game != nil {
		SaveOnShutdown(ctx, c.Game)
	}

	if c.SSEHub != nil {
		c.SSEHub.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}

// SaveOnShutdown checkpoints the game so offline time is measured from now,
// then writes the save slot
func SaveOnShutdown(ctx context.Context, svc game.Service) {
	svc.Checkpoint(ctx)
	err := svc.Save(ctx)
	switch {
	case errors.Is(err, game.ErrNoRepository):
		slog.Info(LogMsgFinalSaveNotStorage)
	case err != nil:
		slog.Error(LogMsgFinalSaveFailed, "error", err)
	default:
		slog.Info(LogMsgFinalSaveSucceeded)
	}
}
