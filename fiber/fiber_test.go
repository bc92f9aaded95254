package fiberapp

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestSetupFiber(t *testing.T) {
	app := SetupFiber()
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	t.Run("Success: request values are copied", func(t *testing.T) {
		assert.True(t, app.Config().Immutable)
	})

	t.Run("Error: unknown route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "Cannot GET /missing", decode(t, resp.Body)["error"])
	})

	t.Run("Error: fiber error keeps its code", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
		require.NoError(t, err)
		assert.Equal(t, 418, resp.StatusCode)
		assert.Equal(t, "short and stout", decode(t, resp.Body)["error"])
	})

	t.Run("Error: panic is recovered", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, "Internal server error", decode(t, resp.Body)["error"])
	})
}
