package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	t.Run("Success: round trip", func(t *testing.T) {
		token, err := GenerateToken("district-office", "secret", time.Hour)
		require.NoError(t, err)

		claims, err := ValidateToken(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, "district-office", claims.Subject)
		assert.Equal(t, "school-dashboard", claims.Issuer)
	})

	t.Run("Error: wrong secret", func(t *testing.T) {
		token, err := GenerateToken("district-office", "secret", time.Hour)
		require.NoError(t, err)

		_, err = ValidateToken(token, "other")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Error: expired", func(t *testing.T) {
		token, err := GenerateToken("district-office", "secret", -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, "secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Error: unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: issuer}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ValidateToken(token, "secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Error: empty secret", func(t *testing.T) {
		_, err := GenerateToken("district-office", "", time.Hour)
		assert.Error(t, err)
	})
}
