package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "leaguebot",
	Short:         "Discord onboarding bot for the college football league",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	time.Local = time.UTC

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
