package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "finebook",
		Short:        "Team fine tracking backend",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), tokenCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
