package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/bizdesk/pkg/app"
	"github.com/ghuser/bizdesk/pkg/cache"
	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/database"
	"github.com/ghuser/bizdesk/pkg/events"
	"github.com/ghuser/bizdesk/pkg/logger"
	"github.com/ghuser/bizdesk/pkg/telemetry"
	"github.com/ghuser/bizdesk/pkg/workflows"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
	"github.com/ghuser/bizdesk/services/employee/application/subscribers"
	employeeworkflows "github.com/ghuser/bizdesk/services/employee/application/workflows"
	employeeEvents "github.com/ghuser/bizdesk/services/employee/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("process", "worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	// The worker consumes the Postgres event bus, so it always needs the database.
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Tx:       database.NewTransactionManager(pool.Pool()),
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Presence: cache.NewPresenceBoard(redisClient),
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	var temporalWorker worker.Worker
	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		svcs := appsvcs.New(appConfig)
		temporalWorker = temporalClient.NewWorker(cfg.TemporalTaskQueue)
		employeeworkflows.Register(temporalWorker, svcs.Clock)
		if err := temporalWorker.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		log.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	if temporalWorker != nil {
		temporalWorker.Stop()
	}
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	presence := subscribers.NewPresenceProjector(a.Presence, a.Logger)
	if err := subscribe(ctx, a, employeeEvents.TopicEmployeeClocked, presence.Handle); err != nil {
		return err
	}

	a.Logger.Info("event subscribers registered", "topics", []string{employeeEvents.TopicEmployeeClocked})
	return nil
}

func subscribe(ctx context.Context, a *app.Application, topic string, handler func(context.Context, *message.Message) error) error {
	errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
		}
	}()
	return nil
}
