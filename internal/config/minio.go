package config

import (
	"context"

	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// NewMinIO is only called when the catalog is read from object storage. The bucket must already
// hold the catalog, so a missing bucket is fatal.
func NewMinIO(config *koanf.Koanf, log *zap.Logger) *minio.Client {
	minioClient, err := minio.New(config.String("MINIO_URL"), &minio.Options{
		Creds:  credentials.NewStaticV4(config.String("MINIO_USER"), config.String("MINIO_PASSWORD"), ""),
		Secure: config.Bool("MINIO_SECURE"),
	})
	if err != nil {
		log.Fatal("failed to initialize minio client", zap.Error(err))
	}

	bucketName := config.String("MINIO_BUCKET_NAME")
	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		log.Fatal("failed to check minio bucket", zap.String("bucket", bucketName), zap.Error(err))
	}
	if !exists {
		log.Fatal("minio bucket does not exist", zap.String("bucket", bucketName))
	}

	return minioClient
}
