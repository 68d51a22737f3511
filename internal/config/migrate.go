package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const DefaultMigrationPath = "db/migrations"

// MigrateUp applies every pending migration in migrationPath to databaseURL.
func MigrateUp(databaseURL string, migrationPath string) error {
	absPath, err := filepath.Abs(migrationPath)
	if err != nil {
		return fmt.Errorf("resolve migration path: %w", err)
	}

	m, err := migrate.New("file://"+absPath, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
