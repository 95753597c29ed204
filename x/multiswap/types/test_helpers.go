package types

import (
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TestAddr generates a random account address for testing
func TestAddr() sdk.AccAddress {
	privKey := secp256k1.GenPrivKey()
	return sdk.AccAddress(privKey.PubKey().Address())
}

// MemShareLedger is an in-memory ShareLedger for exercising pool engines
// without a store.
type MemShareLedger map[string]math.Int

func NewMemShareLedger() MemShareLedger {
	return MemShareLedger{}
}

func (m MemShareLedger) GetShares(provider sdk.AccAddress) math.Int {
	if s, ok := m[provider.String()]; ok {
		return s
	}
	return math.ZeroInt()
}

func (m MemShareLedger) SetShares(provider sdk.AccAddress, shares math.Int) {
	if shares.IsZero() {
		delete(m, provider.String())
		return
	}
	m[provider.String()] = shares
}

// Sum returns the total of all balances in the ledger.
func (m MemShareLedger) Sum() math.Int {
	sum := math.ZeroInt()
	for _, s := range m {
		sum = sum.Add(s)
	}
	return sum
}
