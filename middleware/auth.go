package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"school-dashboard/utils"
)

// AuthRequired checks the bearer token and stores its claims under
// "claims". An empty secret lets every request through.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header"})
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
