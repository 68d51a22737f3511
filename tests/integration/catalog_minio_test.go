package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/tests/integration/setup"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogFromObjectStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t, false, false, true, false)
	defer func() { _ = infra.Terminate(ctx, t) }()
	require.NoError(t, err, "infrastructure should start successfully")

	client, err := minio.New(infra.MinioURL, &minio.Options{
		Creds: credentials.NewStaticV4(setup.MinioUser, setup.MinioPassword, ""),
	})
	require.NoError(t, err, "minio client should be created")
	require.NoError(t, client.MakeBucket(ctx, "leaguebot", minio.MakeBucketOptions{}), "bucket should be created")

	document := []byte(`{
		"SEC": [{"ScrapedName": "Alabama Crimson Tide", "LogoURL": "https://example.test/bama.png"}],
		"Big Ten": [{"ScrapedName": "Ohio State Buckeyes", "LogoURL": "https://example.test/osu.png"}]
	}`)
	_, err = client.PutObject(ctx, "leaguebot", "NCAA_FBS_conferences.json", bytes.NewReader(document), int64(len(document)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	require.NoError(t, err, "catalog upload should succeed")

	catalogRepository := repository.NewCatalogRepository(zap.NewNop(), client)

	t.Log("=== Test 1: Catalog Loads In Document Order ===")
	catalog, err := catalogRepository.LoadFromObject(ctx, "leaguebot", "NCAA_FBS_conferences.json")
	require.NoError(t, err, "catalog should load from object storage")
	require.Len(t, catalog.Conferences, 2)
	require.Equal(t, "SEC", catalog.Conferences[0].Name)
	require.Equal(t, "Big Ten", catalog.Conferences[1].Name)
	require.True(t, catalog.HasTeam("Ohio State Buckeyes"))

	t.Log("=== Test 2: Missing Object Fails ===")
	_, err = catalogRepository.LoadFromObject(ctx, "leaguebot", "missing.json")
	require.Error(t, err, "missing catalog object should fail")
}
