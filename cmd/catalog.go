package main

import (
	"fmt"

	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the team catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a catalog file and print a per-conference summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	catalog, err := repository.NewCatalogRepository(zap.NewNop(), nil).LoadFromFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, conference := range catalog.Conferences {
		fmt.Fprintf(out, "%-30s %3d teams\n", conference.Name, len(conference.Teams))
	}
	fmt.Fprintf(out, "%d conferences, %d teams\n", len(catalog.Conferences), catalog.TeamCount())
	return nil
}
