package main

import (
	"fmt"

	"github.com/ferdian3456/leaguebot/internal/config"
	"github.com/spf13/cobra"
)

var migrationPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the ticket audit schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

func init() {
	migrateUpCmd.Flags().StringVar(&migrationPath, "path", config.DefaultMigrationPath, "directory holding the migration files")
	migrateCmd.AddCommand(migrateUpCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	zap := config.NewZap("info")
	koanf := config.NewKoanf(zap)

	databaseURL := koanf.String("POSTGRES_URL")
	if databaseURL == "" {
		return fmt.Errorf("POSTGRES_URL is required")
	}

	err := config.MigrateUp(databaseURL, migrationPath)
	if err != nil {
		return err
	}

	zap.Info("migrate up: ok")
	_ = zap.Sync()
	return nil
}
