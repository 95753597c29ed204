package cmd

import (
	"context"
	"errors"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/multiswap/app"
)

type contextKey struct{}

// nodeContext is what PersistentPreRunE resolves for every subcommand.
type nodeContext struct {
	Home   string
	Viper  *viper.Viper
	Logger log.Logger
}

// NewRootCmd creates the multiswapd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           app.AppName,
		Short:         "Multi-pool AMM engine daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			app.SetConfig()

			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			v, err := loadViper(home, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cmd.ErrOrStderr(), v.GetString(flagLogLevel), v.GetString(flagLogFormat))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, contextKey{}, &nodeContext{Home: home, Viper: v, Logger: logger}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagLogFormat, app.LogFormatPlain, "log format (plain|json)")

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		ExportCmd(),
		ValidateGenesisCmd(),
		TokenCmd(),
	)
	return rootCmd
}

func getNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if nc, ok := ctx.Value(contextKey{}).(*nodeContext); ok {
			return nc, nil
		}
	}
	return nil, errors.New("node context not initialised")
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
