package types

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func genesisWithPool(t *testing.T) *GenesisState {
	t.Helper()
	pool, _, _ := seededPool(t, []string{"tokena", "tokenb"}, 3, 5_000_000, 10_000_000)
	gs := DefaultGenesis()
	gs.Pools = []Pool{*pool}
	gs.Shares = []ShareRecord{{PoolId: 0, Provider: providerA.String(), Shares: InitSharesSupply}}
	gs.Deposits = []DepositRecord{{Account: providerB.String(), Denom: "tokena", Amount: math.NewInt(42)}}
	gs.PendingWithdrawals = []PendingWithdrawal{{Id: 0, Account: providerB.String(), Denom: "tokenb", Amount: math.NewInt(7)}}
	gs.NextWithdrawalId = 1
	return gs
}

func TestGenesisValidate(t *testing.T) {
	tests := []struct {
		name     string
		malleate func(gs *GenesisState)
		valid    bool
	}{
		{"default", nil, true},
		{"populated", func(gs *GenesisState) {}, true},
		{"zero max swap actions", func(gs *GenesisState) { gs.Params.MaxSwapActions = 0 }, false},
		{"too many pools", func(gs *GenesisState) { gs.Params.MaxPools = 0 }, false},
		{"non-contiguous pool id", func(gs *GenesisState) { gs.Pools[0].Id = 1 }, false},
		{"share sum mismatch", func(gs *GenesisState) { gs.Shares[0].Shares = math.NewInt(1) }, false},
		{"shares for unknown pool", func(gs *GenesisState) {
			gs.Shares = append(gs.Shares, ShareRecord{PoolId: 9, Provider: providerB.String(), Shares: math.NewInt(1)})
		}, false},
		{"duplicate shares", func(gs *GenesisState) { gs.Shares = append(gs.Shares, gs.Shares[0]) }, false},
		{"duplicate shares under uppercase spelling", func(gs *GenesisState) {
			half := InitSharesSupply.QuoRaw(2)
			gs.Shares = []ShareRecord{
				{PoolId: 0, Provider: providerA.String(), Shares: half},
				{PoolId: 0, Provider: strings.ToUpper(providerA.String()), Shares: InitSharesSupply.Sub(half)},
			}
		}, false},
		{"bad provider", func(gs *GenesisState) { gs.Shares[0].Provider = "nope" }, false},
		{"zero deposit", func(gs *GenesisState) { gs.Deposits[0].Amount = math.ZeroInt() }, false},
		{"duplicate deposit", func(gs *GenesisState) { gs.Deposits = append(gs.Deposits, gs.Deposits[0]) }, false},
		{"duplicate deposit under uppercase spelling", func(gs *GenesisState) {
			dup := gs.Deposits[0]
			dup.Account = strings.ToUpper(dup.Account)
			gs.Deposits = append(gs.Deposits, dup)
		}, false},
		{"withdrawal id not below next", func(gs *GenesisState) { gs.NextWithdrawalId = 0 }, false},
		{"duplicate withdrawal", func(gs *GenesisState) {
			gs.PendingWithdrawals = append(gs.PendingWithdrawals, gs.PendingWithdrawals[0])
		}, false},
		{"zero withdrawal", func(gs *GenesisState) { gs.PendingWithdrawals[0].Amount = math.ZeroInt() }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := DefaultGenesis()
			if tc.malleate != nil {
				gs = genesisWithPool(t)
				tc.malleate(gs)
			}
			err := gs.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
