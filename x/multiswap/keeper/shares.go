package keeper

import (
	"context"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// poolShareStore persists the LP share balances of one pool.
type poolShareStore struct {
	store prefix.Store
}

var _ types.ShareLedger = poolShareStore{}

func (k Keeper) shareStore(ctx context.Context, poolID uint64) poolShareStore {
	return poolShareStore{store: prefix.NewStore(k.getStore(ctx), types.PoolSharesPrefix(poolID))}
}

func (s poolShareStore) GetShares(provider sdk.AccAddress) math.Int {
	bz := s.store.Get(address.MustLengthPrefix(provider))
	if bz == nil {
		return math.ZeroInt()
	}
	return mustUnmarshalInt(bz)
}

func (s poolShareStore) SetShares(provider sdk.AccAddress, shares math.Int) {
	key := address.MustLengthPrefix(provider)
	if shares.IsZero() {
		s.store.Delete(key)
		return
	}
	s.store.Set(key, marshalInt(shares))
}

// GetShareBalance returns a provider's shares in a pool.
func (k Keeper) GetShareBalance(ctx context.Context, poolID uint64, provider sdk.AccAddress) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	engine, err := pool.Engine(k.shareStore(ctx, poolID))
	if err != nil {
		return math.Int{}, err
	}
	return engine.ShareBalanceOf(provider), nil
}

// IterateShares walks every share balance of every pool.
func (k Keeper) IterateShares(ctx context.Context, cb func(poolID uint64, provider sdk.AccAddress, shares math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.ShareKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		poolID, provider, ok := types.ParseShareKey(iterator.Key()[len(types.ShareKeyPrefix):])
		if !ok {
			return types.ErrInvariantViolation.Wrapf("malformed share key %X", iterator.Key())
		}
		shares, err := unmarshalInt(iterator.Value())
		if err != nil {
			return err
		}
		if cb(poolID, provider, shares) {
			break
		}
	}
	return nil
}
