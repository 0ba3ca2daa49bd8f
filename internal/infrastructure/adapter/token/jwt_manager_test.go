package token

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/ticket-marketplace/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeProviderAt(at time.Time) *coremocks.MockTimeProvider {
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(at)
	return tp
}

func TestNewJWTManager(t *testing.T) {
	tp := timeProviderAt(time.Now())

	t.Run("empty secret is rejected", func(t *testing.T) {
		_, err := NewJWTManager("", time.Hour, tp)
		assert.Error(t, err)
	})

	t.Run("non-positive TTL falls back to the default", func(t *testing.T) {
		m, err := NewJWTManager("secret", 0, tp)
		require.NoError(t, err)
		assert.Equal(t, 168*time.Hour, m.tokenTTL)
	})
}

func TestGenerateAndVerify(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		m, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)

		signed, err := m.Generate(7, "jane@example.com")
		require.NoError(t, err)

		userID, email, err := m.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), userID)
		assert.Equal(t, "jane@example.com", email)
	})

	t.Run("expired token", func(t *testing.T) {
		issuer, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)
		signed, err := issuer.Generate(7, "jane@example.com")
		require.NoError(t, err)

		// verify with the clock two hours past issuance
		verifier, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt.Add(2*time.Hour)))
		require.NoError(t, err)

		_, _, err = verifier.Verify(signed)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("token still valid just before expiry", func(t *testing.T) {
		issuer, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)
		signed, err := issuer.Generate(7, "jane@example.com")
		require.NoError(t, err)

		verifier, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt.Add(59*time.Minute)))
		require.NoError(t, err)

		_, _, err = verifier.Verify(signed)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		issuer, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)
		signed, err := issuer.Generate(7, "jane@example.com")
		require.NoError(t, err)

		verifier, err := NewJWTManager("other-secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)

		_, _, err = verifier.Verify(signed)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		m, err := NewJWTManager("secret", time.Hour, timeProviderAt(issuedAt))
		require.NoError(t, err)

		_, _, err = m.Verify("not.a.token")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}
