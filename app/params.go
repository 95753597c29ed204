package app

import (
	"os"
	"path/filepath"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// AppName is the name of the daemon and its home directory.
	AppName = "multiswapd"

	// Bech32PrefixAccAddr defines the Bech32 prefix of an account's address
	Bech32PrefixAccAddr = "paw"
	// Bech32PrefixAccPub defines the Bech32 prefix of an account's public key
	Bech32PrefixAccPub = "pawpub"

	// CoinType is the PAW coin type as defined in SLIP44
	CoinType = 118
)

// Option keys read from AppOptions.
const (
	FlagChainID        = "chain-id"
	FlagInvCheckPeriod = "inv-check-period"
	FlagPruning        = "pruning"
	DefaultChainID     = "multiswap-1"
	DefaultPruning     = "default"
)

// DefaultNodeHome is the default home directory of multiswapd.
var DefaultNodeHome string

var configOnce sync.Once

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".multiswap")
}

// SetConfig installs the PAW address prefixes. It is safe to call more than once.
func SetConfig() {
	configOnce.Do(func() {
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(Bech32PrefixAccAddr, Bech32PrefixAccPub)
		config.SetCoinType(CoinType)
		config.Seal()
	})
}
