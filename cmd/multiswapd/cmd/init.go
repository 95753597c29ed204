package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/spf13/cobra"

	"github.com/paw-chain/multiswap/app"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

const flagChainID = "chain-id"

// InitCmd writes a default app.toml and genesis.json under --home.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and genesis files",
		Long: `Write a default app.toml and an empty genesis.json.

Example:
  multiswapd init --chain-id multiswap-1 --home ~/.multiswap
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetString(flagChainID)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			if err := cmtos.EnsureDir(configDir(nc.Home), 0o700); err != nil {
				return err
			}
			if err := cmtos.EnsureDir(dataDir(nc.Home), 0o700); err != nil {
				return err
			}

			genFile := genesisPath(nc.Home)
			if !overwrite && fileExists(genFile) {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			bz, err := json.MarshalIndent(types.DefaultGenesis(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(genFile, bz, 0o600); err != nil {
				return fmt.Errorf("failed to write genesis: %w", err)
			}

			configFile := appConfigPath(nc.Home)
			if overwrite || !fileExists(configFile) {
				if err := writeAppConfig(configFile, DefaultAppConfig(chainID)); err != nil {
					return fmt.Errorf("failed to write %s: %w", appConfigFile, err)
				}
			}

			nc.Logger.Info("initialized node home", "home", nc.Home, "chain_id", chainID)
			return nil
		},
	}

	cmd.Flags().String(flagChainID, app.DefaultChainID, "chain id recorded in app.toml")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing genesis.json and app.toml")
	return cmd
}
