package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finebook/finebook/migrations"
)

func migrateCmd() *cobra.Command {
	var dbURL string
	c := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		PreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
			if dbURL == "" {
				dbURL = os.Getenv("DATABASE_URL")
			}
		},
		RunE: func(c *cobra.Command, args []string) error {
			if dbURL == "" {
				return errors.New("DATABASE_URL required")
			}
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			pool, err := connect(c.Context(), dbURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			return migrations.Run(c.Context(), pool, command)
		},
	}
	c.Flags().StringVar(&dbURL, "database-url", "", "postgres connection string (default $DATABASE_URL)")
	return c
}
