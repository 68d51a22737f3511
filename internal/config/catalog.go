package config

import (
	"context"
	"time"

	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// LoadCatalog reads the team catalog from CATALOG_SOURCE. The bot cannot run without it, so every
// failure is fatal.
func LoadCatalog(config *koanf.Koanf, log *zap.Logger, minioClient *minio.Client) *model.Catalog {
	catalogRepository := repository.NewCatalogRepository(log, minioClient)
	path := config.String("CATALOG_PATH")

	var catalog *model.Catalog
	var err error

	switch config.String("CATALOG_SOURCE") {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		catalog, err = catalogRepository.LoadFromObject(ctx, config.String("MINIO_BUCKET_NAME"), path)
	case "file":
		catalog, err = catalogRepository.LoadFromFile(path)
	default:
		log.Fatal("unknown CATALOG_SOURCE", zap.String("source", config.String("CATALOG_SOURCE")))
	}
	if err != nil {
		log.Fatal("failed to load team catalog", zap.String("path", path), zap.Error(err))
	}

	log.Info("team catalog loaded",
		zap.Int("conferences", len(catalog.Conferences)),
		zap.Int("teams", catalog.TeamCount()),
	)

	return catalog
}
