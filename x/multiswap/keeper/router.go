package keeper

import (
	"context"
	"fmt"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// Execute runs a sequence of swap actions for account as one unit. Either every
// action succeeds and all ledger and pool changes commit together, or the first
// failure discards all of them and is returned. Outputs are credited to the
// ledger as independent balances; an action with no AmountIn spends the whole
// balance of its input token, which is how hops are chained.
func (k Keeper) Execute(ctx context.Context, account sdk.AccAddress, actions []types.SwapAction) ([]math.Int, error) {
	start := time.Now()
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateSwapActions(actions, params.MaxSwapActions); err != nil {
		k.metrics.RoutesTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var amountsOut []math.Int
	err = k.atomically(ctx, func(ctx sdk.Context) error {
		amountsOut = make([]math.Int, 0, len(actions))
		for i, action := range actions {
			_, out, err := k.applySwap(ctx, account, action)
			if err != nil {
				return errorsmod.Wrapf(err, "action %d (pool %d, %s -> %s)", i, action.PoolId, action.TokenIn, action.TokenOut)
			}
			amountsOut = append(amountsOut, out)
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRouteExecuted,
				sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
				sdk.NewAttribute(types.AttributeKeyActions, strconv.Itoa(len(actions))),
				sdk.NewAttribute(types.AttributeKeyAmounts, joinInts(amountsOut)),
			),
		)
		return nil
	})
	if err != nil {
		k.metrics.RoutesTotal.WithLabelValues("aborted").Inc()
		k.Logger(ctx).Debug("route aborted", "account", account.String(), "actions", len(actions), "error", err.Error())
		return nil, fmt.Errorf("Execute: %w", err)
	}

	k.metrics.RouteLatency.Observe(time.Since(start).Seconds())
	return amountsOut, nil
}
