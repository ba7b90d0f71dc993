package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_MemoryBackend(t *testing.T) {
	app := testApp(t, testConfig())

	assert.NotNil(t, app.taskStore)
	assert.NotNil(t, app.metrics)
	assert.Nil(t, app.jwtService)
	assert.Nil(t, app.db)
	assert.Nil(t, app.redis)
}

func TestNewApplication_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.Store.Backend = "dynamo" },
			wantErr: "unknown store backend",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *config.Config) { c.Auth.JWTSecret = "short" },
			wantErr: "JWT service",
		},
		{
			name: "unreachable redis",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendRedis
				c.Store.RedisURL = "redis://127.0.0.1:1/0"
			},
			wantErr: "failed to connect to Redis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			app, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			require.Error(t, err)
			assert.Nil(t, app)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteToken(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	cfg := config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 5}
	require.NoError(t, writeToken(context.Background(), cmd, cfg, "ops"))

	token := strings.TrimSpace(out.String())
	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}

func TestWriteToken_RequiresSecret(t *testing.T) {
	err := writeToken(context.Background(), &cobra.Command{}, config.AuthConfig{TokenLifetimeMinutes: 5}, "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestRootCommand(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "token"})

	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"up"}))
	assert.NoError(t, migrateCmd.Args(migrateCmd, nil))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"sideways"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"up", "down"}))
}
