package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/ShadowArmy_Go/internal/bootstrap"
	"github.com/osse101/ShadowArmy_Go/internal/config"
	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
	"github.com/osse101/ShadowArmy_Go/internal/scheduler"
	"github.com/osse101/ShadowArmy_Go/internal/server"
	"github.com/osse101/ShadowArmy_Go/internal/sse"
	"github.com/osse101/ShadowArmy_Go/internal/telemetry"
	"github.com/osse101/ShadowArmy_Go/internal/worker"
)

const (
	shutdownTimeout    = 15 * time.Second
	logCleanupInterval = time.Hour
)

// @title Shadow Army API
// @version 1.0
// @description Idle RPG progression core: hunting, shadow extraction and deployment.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.ValidateEnv(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.OTELEnabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("Telemetry shutdown failed", "error", err)
		}
	}()

	var extraHandlers []slog.Handler
	if cfg.OTELEnabled {
		extraHandlers = append(extraHandlers, telemetry.LogHandler())
	}
	logFile, err := bootstrap.SetupLogger(cfg, extraHandlers...)
	if err != nil {
		return err
	}
	defer logFile.Close()

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	activity := eventlog.NewService(repos.EventLog, cfg.SaveSlot)
	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        events.Bus,
		EventLogService: activity,
		SSEHub:          hub,
	}); err != nil {
		return err
	}

	svc, err := bootstrap.InitializeGame(ctx, cfg, events.Publisher, repos.Snapshot)
	if err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(worker.JobNameHuntTick, cfg.HuntTickInterval, worker.NewHuntTickJob(svc))
	sched.Schedule(worker.JobNameAccrualTick, cfg.AccrualTickInterval, worker.NewAccrualTickJob(svc))
	sched.Schedule(worker.JobNameCheckpoint, cfg.CheckpointInterval, worker.NewCheckpointJob(svc))
	sched.Schedule(worker.JobNameAutosave, cfg.AutosaveInterval, worker.NewAutosaveJob(svc))
	sched.Schedule(worker.JobNameLogCleanup, logCleanupInterval, eventlog.NewCleanupJob(activity, cfg.ActivityLogRetention))

	deps := server.Dependencies{Game: svc, Activity: activity, Hub: hub}
	if repos.Pool != nil {
		deps.DB = repos.Pool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			Scheduler:          sched,
			WorkerPool:         pool,
			Game:               svc,
			SSEHub:             hub,
			ResilientPublisher: events.Publisher,
			Repositories:       repos,
		})
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
