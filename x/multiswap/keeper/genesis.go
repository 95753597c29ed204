package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// InitGenesis initializes the multiswap module's state from a genesis state.
// Custody totals are derived from the balances the state accounts for.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return types.ErrInvalidConfiguration.Wrapf("genesis: %s", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
	}
	k.setPoolCount(ctx, uint64(len(genState.Pools)))

	for _, rec := range genState.Shares {
		provider, err := sdk.AccAddressFromBech32(rec.Provider)
		if err != nil {
			return fmt.Errorf("shares of %s: %w", rec.Provider, err)
		}
		k.shareStore(ctx, rec.PoolId).SetShares(provider, rec.Shares)
	}

	for _, d := range genState.Deposits {
		account, err := sdk.AccAddressFromBech32(d.Account)
		if err != nil {
			return fmt.Errorf("deposit of %s: %w", d.Account, err)
		}
		k.setBalance(ctx, account, d.Denom, d.Amount)
	}

	for _, w := range genState.PendingWithdrawals {
		if err := k.setPendingWithdrawal(ctx, w); err != nil {
			return err
		}
	}
	k.getStore(ctx).Set(types.WithdrawalSeqKey, sdk.Uint64ToBigEndian(genState.NextWithdrawalId))

	accounted, err := k.accountedFunds(sdk.UnwrapSDKContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to derive custody: %w", err)
	}
	for denom, amount := range accounted {
		if err := types.CheckAmount(amount); err != nil {
			return fmt.Errorf("custody of %s: %w", denom, err)
		}
		k.setCustody(ctx, denom, amount)
	}
	return nil
}

// ExportGenesis returns the multiswap module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	shares := []types.ShareRecord{}
	if err := k.IterateShares(ctx, func(poolID uint64, provider sdk.AccAddress, amount math.Int) bool {
		shares = append(shares, types.ShareRecord{PoolId: poolID, Provider: provider.String(), Shares: amount})
		return false
	}); err != nil {
		return nil, err
	}

	deposits := []types.DepositRecord{}
	if err := k.IterateDeposits(ctx, func(account sdk.AccAddress, denom string, amount math.Int) bool {
		deposits = append(deposits, types.DepositRecord{Account: account.String(), Denom: denom, Amount: amount})
		return false
	}); err != nil {
		return nil, err
	}

	pending, err := k.GetPendingWithdrawals(ctx)
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:             params,
		Pools:              pools,
		Shares:             shares,
		Deposits:           deposits,
		PendingWithdrawals: pending,
		NextWithdrawalId:   k.GetNextWithdrawalID(ctx),
	}, nil
}
