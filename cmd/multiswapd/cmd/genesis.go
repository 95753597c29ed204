package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ExportCmd prints the committed state as genesis JSON.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to genesis JSON on stdout",
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
			defer a.Close()

			if !a.Initialized() {
				return fmt.Errorf("no state under %s", dataDir(nc.Home))
			}
			genState, err := a.ExportGenesis()
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(genState, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
}

// ValidateGenesisCmd checks a genesis file, by default the one under --home.
func ValidateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}
			path := genesisPath(nc.Home)
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := readGenesis(path); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "File at %s is a valid genesis file\n", path)
			return err
		},
	}
}
