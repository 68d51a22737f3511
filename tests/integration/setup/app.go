package setup

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/ferdian3456/leaguebot/internal/delivery/http"
	"github.com/ferdian3456/leaguebot/internal/delivery/http/route"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/repository/repositorytest"
	"github.com/ferdian3456/leaguebot/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type TestApp struct {
	App           *fiber.App
	DB            *pgxpool.Pool
	DBCache       *redis.Client
	Guild         *repositorytest.MemoryGuildRepository
	TicketUsecase *usecase.TicketUsecase
}

// SetupTestApp wires the ticket service and the operator API against the test containers and an
// in-memory guild. mailhogSMTP may be empty to disable admin e-mail.
func SetupTestApp(t *testing.T, pgURL, redisURL, mailhogSMTP string, adminEmails string) *TestApp {
	t.Log("Setting up test application...")
	ctx := context.Background()
	log := zap.NewNop()

	testConfig := koanf.New(".")
	if mailhogSMTP != "" {
		smtpParts := strings.Split(mailhogSMTP, ":")
		smtpPort, _ := strconv.Atoi(smtpParts[1])

		_ = testConfig.Set("SMTP_HOST", smtpParts[0])
		_ = testConfig.Set("SMTP_PORT", smtpPort)
		_ = testConfig.Set("SENDER_NAME", "League Bot")
		_ = testConfig.Set("SENDER_EMAIL", "bot@league.test")
		_ = testConfig.Set("SENDER_PASSWORD", "")
		_ = testConfig.Set("ADMIN_EMAILS", adminEmails)
	}

	var dbPool *pgxpool.Pool
	if pgURL != "" {
		var err error
		dbPool, err = pgxpool.New(ctx, pgURL)
		if err != nil {
			t.Fatalf("failed to connect to test db: %v", err)
		}
	}

	var redisClient *redis.Client
	if redisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: redisURL})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			t.Fatalf("failed to connect to test redis: %v", err)
		}
	}

	guild := repositorytest.NewMemoryGuildRepository("500")
	guild.AddRole("Admin")

	catalog := model.NewCatalog([]model.Conference{
		{Name: "Big Ten", Teams: []model.Team{{Name: "Ohio State Buckeyes"}, {Name: "Michigan Wolverines"}}},
	})

	ticketUsecase := usecase.NewTicketUsecase(guild,
		repository.NewTicketAuditRepository(log, dbPool),
		repository.NewEventGuardRepository(log, redisClient),
		log, testConfig)

	app := fiber.New()
	routeConfig := route.RouteConfig{
		App:               app,
		Log:               log,
		CatalogController: http.NewCatalogController(catalog, log),
		TicketController:  http.NewTicketController(ticketUsecase, log),
	}
	routeConfig.SetupRoute()

	return &TestApp{
		App:           app,
		DB:            dbPool,
		DBCache:       redisClient,
		Guild:         guild,
		TicketUsecase: ticketUsecase,
	}
}

func (app *TestApp) Close() {
	if app.DB != nil {
		app.DB.Close()
	}
	if app.DBCache != nil {
		_ = app.DBCache.Close()
	}
}
