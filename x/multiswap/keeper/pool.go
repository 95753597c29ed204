package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// MaxPoolsPageSize bounds a single GetPools page.
const MaxPoolsPageSize = 100

// GetPoolCount returns the number of pools ever created, which is also the next pool id.
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setPoolCount(ctx context.Context, count uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, sdk.Uint64ToBigEndian(count))
}

// CreatePool registers a new constant-product pool and returns its id.
// Ids are assigned in creation order starting at 0 and never reused.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, tokens []string, fee uint32) (uint64, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}

	var poolID uint64
	err = k.atomically(ctx, func(ctx sdk.Context) error {
		poolID = k.GetPoolCount(ctx)
		if poolID >= params.MaxPools {
			return types.ErrInvalidConfiguration.Wrapf("pool limit %d reached", params.MaxPools)
		}

		pool, err := types.NewConstantProductPoolRecord(poolID, tokens, fee)
		if err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		k.setPoolCount(ctx, poolID+1)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePoolCreated,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
				sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
				sdk.NewAttribute(types.AttributeKeyTokens, strings.Join(tokens, ",")),
				sdk.NewAttribute(types.AttributeKeyFee, strconv.FormatUint(uint64(fee), 10)),
			),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}

	k.Logger(ctx).Debug("pool created", "pool_id", poolID, "tokens", tokens, "fee", fee, "creator", creator.String())
	return poolID, nil
}

// GetPool returns a pool by its ID
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrNotFound.Wrapf("pool %d not found", poolID)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// SetPool stores a pool record
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.Id), bz)
	return nil
}

// IteratePools iterates over pools in id order, stopping when cb returns true
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := []types.Pool{}
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// GetPoolInfo returns the read-only view of a pool.
func (k Keeper) GetPoolInfo(ctx context.Context, poolID uint64) (types.PoolInfo, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.PoolInfo{}, err
	}
	return pool.Info()
}

// GetPools returns up to limit pools starting at id offset.
func (k Keeper) GetPools(ctx context.Context, offset, limit uint64) ([]types.PoolInfo, error) {
	if limit == 0 || limit > MaxPoolsPageSize {
		limit = MaxPoolsPageSize
	}
	count := k.GetPoolCount(ctx)
	infos := []types.PoolInfo{}
	for id := offset; id < count && uint64(len(infos)) < limit; id++ {
		info, err := k.GetPoolInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
