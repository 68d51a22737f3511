package setup

import (
	"path/filepath"
	"testing"

	"github.com/ferdian3456/leaguebot/internal/config"
)

// RunMigration applies db/migrations from the project root (two levels above tests/integration).
func RunMigration(pgURL string, t *testing.T) error {
	t.Log("Running database migrations...")

	migrationPath := filepath.Join("..", "..", config.DefaultMigrationPath)
	err := config.MigrateUp(pgURL, migrationPath)
	if err != nil {
		return err
	}

	t.Log("Database migrations completed successfully")
	return nil
}
