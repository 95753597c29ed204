package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// GetReturn previews the output of swapping amountIn of tokenIn for tokenOut
// in a pool. Nothing is written.
func (k Keeper) GetReturn(ctx context.Context, poolID uint64, tokenIn string, amountIn math.Int, tokenOut string) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	engine, err := pool.Engine(nil)
	if err != nil {
		return math.Int{}, err
	}
	return engine.Quote(tokenIn, amountIn, tokenOut)
}

// applySwap runs one action against the caller's ledger: the input is debited,
// the pool is swapped and the output credited.
func (k Keeper) applySwap(ctx sdk.Context, account sdk.AccAddress, action types.SwapAction) (amountIn, amountOut math.Int, err error) {
	if action.AmountIn != nil {
		amountIn = *action.AmountIn
	} else {
		amountIn = k.BalanceOf(ctx, account, action.TokenIn)
		if amountIn.IsZero() {
			return math.Int{}, math.Int{}, types.ErrInsufficientBalance.Wrapf("%s has no %s to swap", account, action.TokenIn)
		}
	}

	pool, err := k.GetPool(ctx, action.PoolId)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	engine, err := pool.Engine(nil)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if _, err := k.Debit(ctx, account, action.TokenIn, amountIn); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountOut, err = engine.Swap(action.TokenIn, amountIn, action.TokenOut, action.MinOut()); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.Credit(ctx, account, action.TokenOut, amountOut); err != nil {
		return math.Int{}, math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(action.PoolId, 10)),
			sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, action.TokenIn),
			sdk.NewAttribute(types.AttributeKeyTokenOut, action.TokenOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
		),
	)
	return amountIn, amountOut, nil
}

// Swap executes a single-pool swap funded from the caller's ledger.
func (k Keeper) Swap(ctx context.Context, account sdk.AccAddress, action types.SwapAction) (math.Int, error) {
	outs, err := k.Execute(ctx, account, []types.SwapAction{action})
	if err != nil {
		return math.Int{}, err
	}
	return outs[0], nil
}
