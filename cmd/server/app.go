package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mentorhub/mentorhub-api/internal/config"
	"github.com/mentorhub/mentorhub-api/internal/events"
	"github.com/mentorhub/mentorhub-api/internal/platform/calendar"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/platform/postgres"
	"github.com/mentorhub/mentorhub-api/internal/platform/rediscache"
	"github.com/mentorhub/mentorhub-api/internal/service/aggregates"
	"github.com/mentorhub/mentorhub-api/internal/service/auth"
	"github.com/mentorhub/mentorhub-api/internal/service/review"
	"github.com/mentorhub/mentorhub-api/internal/service/session"
	"github.com/mentorhub/mentorhub-api/internal/store"
	"github.com/mentorhub/mentorhub-api/internal/task"
)

// application holds the shared application dependencies so startup wiring and
// shutdown cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	profileStore store.ProfileStore
	sessionStore store.SessionStore
	reviewStore  store.ReviewStore

	jwtService        auth.JWTService
	aggregatesService *aggregates.Service
	sessionService    session.Service
	reviewService     review.Service

	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	statsCache *rediscache.StatsCache

	eventEmitter events.EventEmitter
	taskRunner   *task.Runner
	sweeper      *task.CompletionSweeper
}

// newApplication wires every dependency and starts the background workers.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.registry = prometheus.NewRegistry()
	app.metrics = metrics.New(app.registry)

	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewStore(db, logger)
	txRunner := &store.SQLTxRunner{DB: db}

	if cfg.Cache.Enabled {
		app.statsCache, err = rediscache.New(cfg.Cache, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize stats cache: %w", err)
		}
		logger.Info("Profile stats cache initialized", "addr", cfg.Cache.Addr)
	}

	// aggregates.Service tolerates a nil cache; passing the typed nil
	// pointer through the interface would not read as nil, so branch here.
	var statsCache aggregates.StatsCache
	if app.statsCache != nil {
		statsCache = app.statsCache
	}

	app.aggregatesService, err = aggregates.NewService(
		app.profileStore,
		app.sessionStore,
		app.reviewStore,
		statsCache,
		app.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregates service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.sessionService, err = session.NewService(
		app.profileStore,
		app.sessionStore,
		txRunner,
		app.aggregatesService,
		app.eventEmitter,
		app.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	app.reviewService, err = review.NewService(
		app.profileStore,
		app.sessionStore,
		app.reviewStore,
		txRunner,
		app.aggregatesService,
		app.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	calendarClient := calendar.NewHTTPClient(cfg.Calendar)
	taskFactory := task.NewCalendarEventTaskFactory(
		app.sessionStore,
		app.profileStore,
		calendarClient,
		app.metrics,
		logger,
	)
	handler := task.NewCalendarEventHandler(taskFactory, app.taskRunner, logger)

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(handler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register calendar handler")
	}

	app.sweeper = task.NewCompletionSweeper(
		app.sessionService,
		time.Duration(cfg.Task.SweepIntervalSeconds)*time.Second,
		cfg.Task.SweepBatchSize,
		logger,
	)
	app.sweeper.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.statsCache != nil {
		if err := app.statsCache.Close(); err != nil {
			app.logger.Error("Error closing stats cache", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
