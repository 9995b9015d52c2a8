package main

import (
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/config"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Long:  `Sign a token with JWT_SECRET. EDITOR tokens may call the mutating routes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			token, jti, err := auth.GenerateToken(cfg.JWTSecret, subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "jti=%s expires=%s\n", jti, time.Now().Add(ttl).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "Token subject, e.g. the editor's name")
	cmd.Flags().StringVar(&role, "role", auth.RoleEditor, "Role claim: EDITOR or VIEWER")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
