package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestValidateToken_Failures(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := newHMACService(testConfig(), func() time.Time { return base })
	require.NoError(t, err)
	ctx := context.Background()

	valid, err := issuer.GenerateToken(ctx, "ops")
	require.NoError(t, err)

	other, err := newHMACService(config.AuthConfig{
		JWTSecret:            "ffffffffffffffffffffffffffffffff",
		TokenLifetimeMinutes: 60,
	}, func() time.Time { return base })
	require.NoError(t, err)
	foreign, err := other.GenerateToken(ctx, "ops")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(base.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "ops",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		token   string
		wantErr error
	}{
		{"expired beyond leeway", base.Add(2 * time.Hour), valid, ErrExpiredToken},
		{"within leeway", base.Add(time.Hour + time.Minute), valid, nil},
		{"verifier clock behind issuer", base.Add(-10 * time.Minute), valid, nil},
		{"wrong key", base, foreign, ErrInvalidToken},
		{"malformed", base, "not.a.jwt", ErrInvalidToken},
		{"alg none", base, noneToken, ErrInvalidToken},
		{"missing exp", base, noExpiry, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			verifier, err := newHMACService(testConfig(), func() time.Time { return now })
			require.NoError(t, err)

			_, err = verifier.ValidateToken(ctx, tt.token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
