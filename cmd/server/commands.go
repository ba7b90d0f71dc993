package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// loadConfigAndLogger is shared by every subcommand.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFromPath(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend,
		"auth_enabled", cfg.Auth.Enabled(),
		"metrics_enabled", cfg.Metrics.Enabled)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := postgres.MigrateUp
	if len(args) == 1 {
		command = args[0]
	}

	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if cfg.Store.PostgresURL == "" {
		return fmt.Errorf("store.postgres_url is required for migrations")
	}

	db, err := openPostgres(cmd.Context(), cfg.Store.PostgresURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("Error closing database connection", "error", cerr)
		}
	}()

	return postgres.Migrate(db, command, log)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	return writeToken(cmd.Context(), cmd, cfg.Auth, subjectFlag)
}

func writeToken(ctx context.Context, cmd *cobra.Command, cfg config.AuthConfig, subject string) error {
	if !cfg.Enabled() {
		return fmt.Errorf("auth.jwt_secret is not configured")
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := svc.GenerateToken(ctx, subject)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
