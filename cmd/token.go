package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/permitpal/internal/config"
	"github.com/abhisek/permitpal/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id> [email]",
	Short: "Mint a bearer token for local development",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		auth, err := server.NewAuthenticator(cfg.Auth.JWTSecret, config.Duration(cfg.Auth.TokenTTL, 0))
		if err != nil {
			return fmt.Errorf("%w (set auth.jwt_secret or PERMITPAL_JWT_SECRET)", err)
		}

		email := ""
		if len(args) == 2 {
			email = args[1]
		}
		tok, err := auth.IssueToken(args[0], email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}
