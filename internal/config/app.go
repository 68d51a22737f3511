package config

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/delivery/discord"
	discordRoute "github.com/ferdian3456/leaguebot/internal/delivery/discord/route"
	http "github.com/ferdian3456/leaguebot/internal/delivery/http"
	"github.com/ferdian3456/leaguebot/internal/delivery/http/route"
	"github.com/ferdian3456/leaguebot/internal/middleware"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type BotConfig struct {
	Session *discordgo.Session
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	Catalog *model.Catalog
}

func Bot(config *BotConfig) {
	guildRepository := repository.NewDiscordGuildRepository(config.Log, config.Session)
	eventGuardRepository := repository.NewEventGuardRepository(config.Log, config.DBCache)
	ticketAuditRepository := repository.NewTicketAuditRepository(config.Log, config.DB)

	botLogUsecase := usecase.NewBotLogUsecase(guildRepository, config.Log)
	accessUsecase := usecase.NewAccessUsecase(guildRepository, config.Catalog, config.Log)
	roleUsecase := usecase.NewRoleUsecase(guildRepository, config.Log)
	ticketUsecase := usecase.NewTicketUsecase(guildRepository, ticketAuditRepository, eventGuardRepository, config.Log, config.Config)
	onboardingUsecase := usecase.NewOnboardingUsecase(guildRepository, eventGuardRepository, accessUsecase, roleUsecase, ticketUsecase, botLogUsecase, config.Catalog, config.Log)
	adminUsecase := usecase.NewAdminUsecase(guildRepository, accessUsecase, roleUsecase, ticketUsecase, onboardingUsecase, botLogUsecase, config.Catalog, config.Log, config.Config)

	runner := middleware.NewEventRunner(config.Log, config.Config)
	onboardingController := discord.NewOnboardingController(onboardingUsecase, runner, config.Log)
	commandController := discord.NewCommandController(adminUsecase, guildRepository, runner, config.Log)

	discordRouteConfig := discordRoute.RouteConfig{
		Session:              config.Session,
		OnboardingController: onboardingController,
		CommandController:    commandController,
	}
	discordRouteConfig.SetupRoute()

	catalogController := http.NewCatalogController(config.Catalog, config.Log)
	ticketController := http.NewTicketController(ticketUsecase, config.Log)

	routeConfig := route.RouteConfig{
		App:               config.Router,
		Log:               config.Log,
		CatalogController: catalogController,
		TicketController:  ticketController,
		HealthCheck:       config.healthCheck,
	}
	routeConfig.SetupRoute()
}

func (config *BotConfig) healthCheck() map[string]string {
	status := map[string]string{"discord": "disconnected"}
	if config.Session.DataReady {
		status["discord"] = "connected"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if config.DBCache != nil {
		status["redis"] = "ok"
		if err := config.DBCache.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		}
	}
	if config.DB != nil {
		status["postgresql"] = "ok"
		if err := config.DB.Ping(ctx); err != nil {
			status["postgresql"] = err.Error()
		}
	}

	return status
}
