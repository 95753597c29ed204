package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// Keeper of the multiswap store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	custodian  types.AssetCustodian
	metrics    *MultiswapMetrics
}

// NewKeeper creates a new multiswap Keeper instance. bankKeeper may be nil
// when the host moves assets through its own custodian.
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	custodian types.AssetCustodian,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		custodian:  custodian,
		metrics:    NewMultiswapMetrics(),
	}
}

// SetCustodian replaces the asset custodian used for withdrawals.
func (k *Keeper) SetCustodian(custodian types.AssetCustodian) {
	k.custodian = custodian
}

// getStore returns the KVStore for the multiswap module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// atomically runs fn on a branch of the store. The branch, and the events it
// emitted, reach the parent context only when fn returns nil.
func (k Keeper) atomically(ctx context.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
