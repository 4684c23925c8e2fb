package auth

import (
	"testing"
	"time"

	"github.com/bizadmin/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-123",
		AccessTokenExpiration: expiration,
		Issuer:                "bizadmin-test",
	})
}

// ============================================================
// IssueToken / ValidateToken
// ============================================================

func TestJWTService_RoundTrip(t *testing.T) {
	t.Run("issued token validates back to the same admin", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		adminID := uuid.New()

		token, expiresAt, err := svc.IssueToken(adminID, "admin@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		gotID, gotEmail, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, adminID, gotID)
		assert.Equal(t, "admin@example.com", gotEmail)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Minute)
		token, _, err := svc.IssueToken(uuid.New(), "admin@example.com")
		require.NoError(t, err)

		_, _, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-456",
			AccessTokenExpiration: time.Hour,
			Issuer:                "bizadmin-test",
		})

		token, _, err := other.IssueToken(uuid.New(), "admin@example.com")
		require.NoError(t, err)

		_, _, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		_, _, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
