package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ShareRecord is an exported LP share balance.
type ShareRecord struct {
	PoolId   uint64   `json:"pool_id"`
	Provider string   `json:"provider"`
	Shares   math.Int `json:"shares"`
}

// DepositRecord is an exported ledger balance.
type DepositRecord struct {
	Account string   `json:"account"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the multiswap module's genesis state.
type GenesisState struct {
	Params             Params              `json:"params"`
	Pools              []Pool              `json:"pools"`
	Shares             []ShareRecord       `json:"shares"`
	Deposits           []DepositRecord     `json:"deposits"`
	PendingWithdrawals []PendingWithdrawal `json:"pending_withdrawals"`
	NextWithdrawalId   uint64              `json:"next_withdrawal_id"`
}

// DefaultGenesis returns the default genesis state for the multiswap module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:             DefaultParams(),
		Pools:              []Pool{},
		Shares:             []ShareRecord{},
		Deposits:           []DepositRecord{},
		PendingWithdrawals: []PendingWithdrawal{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if uint64(len(gs.Pools)) > gs.Params.MaxPools {
		return fmt.Errorf("%d pools exceed max pools %d", len(gs.Pools), gs.Params.MaxPools)
	}

	for i, pool := range gs.Pools {
		if pool.Id != uint64(i) {
			return fmt.Errorf("pool at index %d has id %d: ids must be contiguous from 0", i, pool.Id)
		}
		if err := pool.Validate(); err != nil {
			return err
		}
	}

	shareSums := make(map[uint64]math.Int, len(gs.Pools))
	seenShares := make(map[string]struct{}, len(gs.Shares))
	for _, rec := range gs.Shares {
		if rec.PoolId >= uint64(len(gs.Pools)) {
			return fmt.Errorf("shares for unknown pool %d", rec.PoolId)
		}
		provider, err := sdk.AccAddressFromBech32(rec.Provider)
		if err != nil {
			return fmt.Errorf("pool %d: invalid provider %q: %w", rec.PoolId, rec.Provider, err)
		}
		if err := CheckAmount(rec.Shares); err != nil || !rec.Shares.IsPositive() {
			return fmt.Errorf("pool %d: provider %s: shares must be positive", rec.PoolId, rec.Provider)
		}
		// bech32 admits an all-uppercase spelling, so duplicates are keyed by the decoded bytes.
		key := fmt.Sprintf("%d/%x", rec.PoolId, provider.Bytes())
		if _, dup := seenShares[key]; dup {
			return fmt.Errorf("duplicate shares for provider %s in pool %d", rec.Provider, rec.PoolId)
		}
		seenShares[key] = struct{}{}
		sum, ok := shareSums[rec.PoolId]
		if !ok {
			sum = math.ZeroInt()
		}
		shareSums[rec.PoolId] = sum.Add(rec.Shares)
	}
	for _, pool := range gs.Pools {
		info, err := pool.Info()
		if err != nil {
			return err
		}
		sum, ok := shareSums[pool.Id]
		if !ok {
			sum = math.ZeroInt()
		}
		if !sum.Equal(info.TotalShares) {
			return fmt.Errorf("pool %d: provider shares sum to %s, total shares is %s", pool.Id, sum, info.TotalShares)
		}
	}

	seenDeposits := make(map[string]struct{}, len(gs.Deposits))
	for _, d := range gs.Deposits {
		account, err := sdk.AccAddressFromBech32(d.Account)
		if err != nil {
			return fmt.Errorf("invalid deposit account %q: %w", d.Account, err)
		}
		if err := sdk.ValidateDenom(d.Denom); err != nil {
			return fmt.Errorf("deposit of %s: %w", d.Account, err)
		}
		if err := CheckAmount(d.Amount); err != nil || !d.Amount.IsPositive() {
			return fmt.Errorf("deposit %s/%s: amount must be positive", d.Account, d.Denom)
		}
		key := fmt.Sprintf("%x/%s", account.Bytes(), d.Denom)
		if _, dup := seenDeposits[key]; dup {
			return fmt.Errorf("duplicate deposit %s/%s", d.Account, d.Denom)
		}
		seenDeposits[key] = struct{}{}
	}

	seenWithdrawals := make(map[uint64]struct{}, len(gs.PendingWithdrawals))
	for _, w := range gs.PendingWithdrawals {
		if err := w.Validate(); err != nil {
			return err
		}
		if w.Id >= gs.NextWithdrawalId {
			return fmt.Errorf("withdrawal id %d not below next withdrawal id %d", w.Id, gs.NextWithdrawalId)
		}
		if _, dup := seenWithdrawals[w.Id]; dup {
			return fmt.Errorf("duplicate withdrawal id %d", w.Id)
		}
		seenWithdrawals[w.Id] = struct{}{}
	}
	return nil
}
