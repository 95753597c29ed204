package keeper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func joinInts(xs []math.Int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ",")
}

// AddLiquidity moves amounts (one per pool token, in pool order) from the
// provider's ledger into the pool and mints LP shares.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, amounts []math.Int) (math.Int, error) {
	var minted math.Int
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		pool, err := k.GetPool(ctx, poolID)
		if err != nil {
			return err
		}
		engine, err := pool.Engine(k.shareStore(ctx, poolID))
		if err != nil {
			return err
		}
		tokens := engine.Tokens()
		if len(amounts) != len(tokens) {
			return types.ErrInvalidRequest.Wrapf("pool %d holds %d tokens, got %d amounts", poolID, len(tokens), len(amounts))
		}
		for i, amount := range amounts {
			if err := types.CheckAmount(amount); err != nil {
				return err
			}
			if amount.IsZero() {
				continue
			}
			if _, err := k.Debit(ctx, provider, tokens[i], amount); err != nil {
				return err
			}
		}

		if minted, err = engine.AddLiquidity(provider, amounts); err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityAdded,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
				sdk.NewAttribute(types.AttributeKeyAccount, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAmounts, joinInts(amounts)),
				sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.Int{}, fmt.Errorf("AddLiquidity: pool %d: %w", poolID, err)
	}

	k.Logger(ctx).Debug("liquidity added", "pool_id", poolID, "provider", provider.String(), "shares", minted.String())
	return minted, nil
}

// RemoveLiquidity burns shares and credits the proportional reserves to the
// provider's ledger. minAmountsOut may be empty.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, shares math.Int, minAmountsOut []math.Int) ([]math.Int, error) {
	var amounts []math.Int
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		pool, err := k.GetPool(ctx, poolID)
		if err != nil {
			return err
		}
		engine, err := pool.Engine(k.shareStore(ctx, poolID))
		if err != nil {
			return err
		}
		if amounts, err = engine.RemoveLiquidity(provider, shares, minAmountsOut); err != nil {
			return err
		}
		tokens := engine.Tokens()
		for i, amount := range amounts {
			if amount.IsZero() {
				continue
			}
			if err := k.Credit(ctx, provider, tokens[i], amount); err != nil {
				return err
			}
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityRemoved,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
				sdk.NewAttribute(types.AttributeKeyAccount, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAmounts, joinInts(amounts)),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: pool %d: %w", poolID, err)
	}

	k.Logger(ctx).Debug("liquidity removed", "pool_id", poolID, "provider", provider.String(), "shares", shares.String())
	return amounts, nil
}

// GetRequiredAmounts returns the deposit that mints exactly shares in a pool.
func (k Keeper) GetRequiredAmounts(ctx context.Context, poolID uint64, shares math.Int) ([]math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	engine, err := pool.Engine(nil)
	if err != nil {
		return nil, err
	}
	return engine.RequiredAmountsForShares(shares)
}
