package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmtos "github.com/cometbft/cometbft/libs/os"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/paw-chain/multiswap/api"
	"github.com/paw-chain/multiswap/app"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

const dbName = "application"

// StartCmd opens the state under --home and serves the HTTP API until
// SIGINT or SIGTERM.
func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the multiswap engine and its HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			a, err := openApp(nc)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					nc.Logger.Error("failed to close database", "err", err)
				}
			}()

			if !a.Initialized() {
				genState, err := readGenesis(genesisPath(nc.Home))
				if err != nil {
					return err
				}
				if err := a.InitChain(genState); err != nil {
					return fmt.Errorf("InitChain: %w", err)
				}
				nc.Logger.Info("genesis loaded", "pools", len(genState.Pools), "deposits", len(genState.Deposits))
			}

			telCfg, err := telemetryConfig(nc.Viper)
			if err != nil {
				return err
			}
			tel, err := app.InitTelemetry(telCfg, a.ChainID())
			if err != nil {
				return fmt.Errorf("failed to start telemetry: %w", err)
			}
			defer func() {
				if err := tel.Shutdown(context.Background()); err != nil {
					nc.Logger.Error("failed to flush traces", "err", err)
				}
			}()

			cfg, err := apiConfig(nc.Viper)
			if err != nil {
				return err
			}
			server, err := api.NewServer(a, nc.Logger, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
}

// openApp opens the goleveldb state database under --home.
func openApp(nc *nodeContext) (*app.App, error) {
	dir := dataDir(nc.Home)
	if err := cmtos.EnsureDir(dir, 0o700); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a, err := app.New(nc.Logger, db, nil, nc.Viper)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// readGenesis decodes and validates a genesis file.
func readGenesis(path string) (types.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return types.GenesisState{}, fmt.Errorf("failed to read genesis: %w", err)
	}
	var genState types.GenesisState
	if err := json.Unmarshal(bz, &genState); err != nil {
		return types.GenesisState{}, fmt.Errorf("failed to decode genesis %s: %w", path, err)
	}
	if err := genState.Validate(); err != nil {
		return types.GenesisState{}, fmt.Errorf("invalid genesis %s: %w", path, err)
	}
	return genState, nil
}
