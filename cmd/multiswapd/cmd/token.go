package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/multiswap/api"
)

const (
	flagSubject = "subject"
	flagRole    = "role"
	flagTTL     = "ttl"
)

// TokenCmd mints an API token signed with the configured api.jwt-secret.
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token",
		Long: `Mint an API bearer token signed with api.jwt-secret.

Traders use their account address as subject:
  multiswapd token --subject paw1... --role trader
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			secret := cast.ToString(nc.Viper.Get(keyAPISecret))
			if secret == "" {
				return errors.New("api.jwt-secret is not configured")
			}

			subject, _ := cmd.Flags().GetString(flagSubject)
			role, _ := cmd.Flags().GetString(flagRole)
			ttl, _ := cmd.Flags().GetDuration(flagTTL)

			tok, err := api.NewAuthService([]byte(secret), ttl).GenerateToken(subject, role)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}

	cmd.Flags().String(flagSubject, "", "token subject (account address for traders)")
	cmd.Flags().String(flagRole, api.RoleTrader, "token role (trader|custodian)")
	cmd.Flags().Duration(flagTTL, 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired(flagSubject)
	return cmd
}
