package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE:  runMigrate,
	})
}

func runMigrate(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	url, err := config.DbURL()
	if err != nil {
		return err
	}
	version, err := database.Migrate(url, migrations)
	if err != nil {
		return err
	}
	logger.Info("database migrated", "version", version)
	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}
