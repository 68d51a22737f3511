package route

import (
	"github.com/ferdian3456/leaguebot/internal/delivery/http"
	"github.com/ferdian3456/leaguebot/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App               *fiber.App
	Log               *zap.Logger
	CatalogController *http.CatalogController
	TicketController  *http.TicketController
	HealthCheck       func() map[string]string
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(ctx *fiber.Ctx) error {
		status := fiber.Map{"status": "ok"}
		if c.HealthCheck != nil {
			for name, state := range c.HealthCheck() {
				status[name] = state
			}
		}
		return ctx.JSON(status)
	})

	limited := api.Group("", middleware.SetupRateLimiter(c.Log))
	limited.Get("/catalog", c.CatalogController.GetCatalog)
	limited.Get("/guilds/:guildId/members/:memberId/tickets", c.TicketController.GetTicketHistory)
}
