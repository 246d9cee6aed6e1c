package main

import (
	"fmt"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/spf13/cobra"
)

// marketctl token --user <uuid> --role buyer
func tokenCmd() *cobra.Command {
	var (
		user string
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tok, err := auth.NewTokens(cfg.JWTSecret, cfg.ServiceName).
				Issue(auth.Principal{UserID: user, Role: auth.Role(role)}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleBuyer), "buyer, seller or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
