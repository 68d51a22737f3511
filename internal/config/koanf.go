package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var defaults = map[string]interface{}{
	"CATALOG_PATH":    "NCAA_FBS_conferences.json",
	"CATALOG_SOURCE":  "file",
	"GO_SERVER":       ":8080",
	"DISCORD_TIMEOUT": "30s",
	"SMTP_PORT":       587,
	"LOG_LEVEL":       "info",
}

func NewKoanf(log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults, "."), nil)
	if err != nil {
		log.Fatal("failed to load default config", zap.Error(err))
	}

	// .env is optional; deployments pass plain environment variables
	err = k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// Environment overrides .env
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	return k
}
