package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/leaguebot/internal/config"
	httpMiddleware "github.com/ferdian3456/leaguebot/internal/delivery/http/middleware"
	"github.com/ferdian3456/leaguebot/internal/exception"
	"github.com/ferdian3456/leaguebot/internal/middleware"
	"github.com/ferdian3456/leaguebot/internal/observability"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	zapLog "go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve the operator API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	bootstrap := config.NewZap("info")
	koanf := config.NewKoanf(bootstrap)
	zap := config.NewZap(koanf.String("LOG_LEVEL"))

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf), zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	var minioClient *minio.Client
	if koanf.String("CATALOG_SOURCE") == "minio" {
		minioClient = config.NewMinIO(koanf, zap)
	}
	catalog := config.LoadCatalog(koanf, zap, minioClient)

	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	session := config.NewDiscordSession(koanf, zap)

	fiber := config.NewFiber()
	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(middleware.TraceLoggerMiddleware(zap))
	fiber.Use(httpMiddleware.SetupCORS(koanf))
	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Bot(&config.BotConfig{
		Session: session,
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		Catalog: catalog,
	})

	err = session.Open()
	if err != nil {
		zap.Fatal("failed to open discord gateway", zapLog.Error(err))
	}
	zap.Info("discord gateway connected")

	GO_SERVER_PORT := koanf.String("GO_SERVER")
	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = session.Close(); err != nil {
		zap.Warn("failed to close discord gateway", zapLog.Error(err))
	}

	err = fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	if rds != nil {
		_ = rds.Close()
	}
	if postgresql != nil {
		postgresql.Close()
	}
	if err = shutdownTracer(ctx); err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("bot has shut down gracefully")
	_ = zap.Sync()
	return nil
}
