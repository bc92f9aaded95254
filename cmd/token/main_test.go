package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-dashboard/utils"
)

func TestRunToken(t *testing.T) {
	t.Run("Success: prints a valid token", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"--sub", "district-office"})

		require.NoError(t, rootCmd.Execute())

		claims, err := utils.ValidateToken(strings.TrimSpace(out.String()), "secret")
		require.NoError(t, err)
		assert.Equal(t, "district-office", claims.Subject)
	})

	t.Run("Error: no secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{})

		assert.Error(t, rootCmd.Execute())
	})
}
