package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/knadh/koanf/v2"
)

const defaultAllowOrigins = "http://localhost:3000"

// SetupCORS allows read-only access to the operator API from the configured dashboard origins.
func SetupCORS(config *koanf.Koanf) fiber.Handler {
	origins := config.String("CORS_ALLOW_ORIGINS")
	if origins == "" {
		origins = defaultAllowOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	})
}
