package middleware

import (
	"github.com/ferdian3456/leaguebot/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying trace_id and span_id for the request.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("logger", observability.WithContext(c.UserContext(), logger))

		return c.Next()
	}
}
