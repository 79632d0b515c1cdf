package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finebook/finebook/internal/auth"
)

// tokenCmd signs a caller token for local development against a server that
// shares JWT_SECRET.
func tokenCmd() *cobra.Command {
	var ttl time.Duration
	c := &cobra.Command{
		Use:   "token SUBJECT",
		Short: "Issue a development token for SUBJECT",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			_ = godotenv.Load()
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET required")
			}
			tok, err := auth.NewVerifier(secret, os.Getenv("JWT_ISSUER")).Issue(args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), tok)
			return nil
		},
	}
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return c
}
