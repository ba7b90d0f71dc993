package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	redisstore "github.com/phrazzld/tasks-api/internal/platform/redis"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Backend handles; at most one is set.
	db    *sql.DB
	redis *goredis.Client

	// taskStore is the backend wrapped with the timeout and metrics decorators.
	taskStore store.TaskStore

	metrics    *metrics.Metrics
	jwtService auth.JWTService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Auth.Enabled() {
		var err error
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	backend, err := app.openStore(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.taskStore = store.WithTimeout(backend, cfg.Store.Timeout)
	if cfg.Metrics.Enabled {
		app.metrics = metrics.New(cfg.Metrics.Namespace)
		app.taskStore = metrics.InstrumentStore(app.taskStore, app.metrics)
	}

	logger.Info("Application initialized successfully", "store_backend", cfg.Store.Backend)
	return app, nil
}

// openStore connects the configured backend.
func (app *application) openStore(ctx context.Context) (store.TaskStore, error) {
	cfg := app.config.Store

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewTaskStore(app.logger), nil

	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		app.db = db
		if err := postgres.Migrate(db, postgres.MigrateUp, app.logger); err != nil {
			return nil, err
		}
		return postgres.NewPostgresTaskStore(db, app.logger), nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		app.redis = client
		return redisstore.NewTaskStore(client, cfg.RedisKeyPrefix, app.logger), nil

	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

// openPostgres opens a pgx-backed database/sql pool and verifies it.
func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
		app.redis = nil
	}

	app.logger.Info("Application shutdown completed")
}
