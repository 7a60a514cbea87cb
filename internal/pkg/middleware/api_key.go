package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/atelier-heritage/market/internal/pkg/env"
)

// DashboardTokenMiddleware guards the internal analytics endpoints with a
// shared API token (X-API-Key header or Bearer authorization). When
// DASHBOARD_API_TOKEN is not configured the guard is disabled, which keeps
// local development and tests token-free; production deployments set it.
func DashboardTokenMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := env.GetEnv("DASHBOARD_API_TOKEN", "")
		if token == "" {
			return c.Next()
		}

		presented := extractAPIKeyFromHeader(c)
		if presented == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
		}
		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
