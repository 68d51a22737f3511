package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewKoanf(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("GO_SERVER", "")

	config := NewKoanf(zap.NewNop())

	assert.Equal(t, "debug", config.String("LOG_LEVEL"), "environment overrides defaults")
	assert.Equal(t, "file", config.String("CATALOG_SOURCE"))
	assert.Equal(t, 30*time.Second, config.Duration("DISCORD_TIMEOUT"))
	assert.Equal(t, 587, config.Int("SMTP_PORT"))

	observabilityConfig := LoadObservabilityConfig(config)
	assert.Equal(t, "leaguebot", observabilityConfig.ServiceName)
}

func TestNewZap(t *testing.T) {
	log := NewZap("debug")
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log = NewZap("warn")
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log = NewZap("nonsense")
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conferences.json")
	data := `{
		"SEC": [{"ScrapedName": "Alabama Crimson Tide", "LogoURL": "https://example.com/bama.png"}],
		"ACC": [{"ScrapedName": "Clemson Tigers", "LogoURL": ""}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("CATALOG_PATH", path)
	t.Setenv("CATALOG_SOURCE", "file")
	config := NewKoanf(zap.NewNop())

	catalog := LoadCatalog(config, zap.NewNop(), nil)
	require.Len(t, catalog.Conferences, 2)
	assert.Equal(t, "SEC", catalog.Conferences[0].Name, "file order is kept")
	assert.True(t, catalog.HasTeam("Clemson Tigers"))
	assert.Equal(t, 2, catalog.TeamCount())
}

func TestMigrateUpInvalidURL(t *testing.T) {
	err := MigrateUp("not-a-database-url", t.TempDir())
	assert.Error(t, err)
}
