package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/multiswap/testutil/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func TestAddLiquidityFromLedger(t *testing.T) {
	k, ctx := setupTwoPools(t)
	keepertest.Fund(t, k, ctx, trader, coin("tokena", 1_500_000), coin("tokenb", 2_000_000))

	shares, err := k.AddLiquidity(ctx, trader, 0, []math.Int{amt(1_000_000), amt(2_000_000)})
	require.NoError(t, err)
	require.Equal(t, math.NewIntWithDecimal(2, 23).String(), shares.String())

	require.Equal(t, int64(500_000), k.BalanceOf(ctx, trader, "tokena").Int64())
	require.True(t, k.BalanceOf(ctx, trader, "tokenb").IsZero())

	info, err := k.GetPoolInfo(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "6000000", info.Reserves[0].String())
	require.Equal(t, "12000000", info.Reserves[1].String())

	balance, err := k.GetShareBalance(ctx, 0, trader)
	require.NoError(t, err)
	require.True(t, shares.Equal(balance))
	keepertest.RequireInvariants(t, k, ctx)
}

func TestAddLiquidityFailuresLeaveNoTrace(t *testing.T) {
	tests := []struct {
		name      string
		fund      []int64
		amounts   []int64
		expectErr error
	}{
		{"not matching ratio", []int64{1_000_000, 3_000_000}, []int64{1_000_000, 3_000_000}, types.ErrInvariantViolation},
		{"ledger short", []int64{1_000_000, 1_000_000}, []int64{1_000_000, 2_000_000}, types.ErrInsufficientBalance},
		{"wrong arity", []int64{1_000_000, 2_000_000}, []int64{1_000_000}, types.ErrInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ctx := setupTwoPools(t)
			keepertest.Fund(t, k, ctx, trader, coin("tokena", tc.fund[0]), coin("tokenb", tc.fund[1]))
			before := snapshot(t, k, ctx)

			amounts := make([]math.Int, len(tc.amounts))
			for i, a := range tc.amounts {
				amounts[i] = amt(a)
			}
			_, err := k.AddLiquidity(ctx, trader, 0, amounts)
			require.ErrorIs(t, err, tc.expectErr)
			require.Equal(t, before, snapshot(t, k, ctx))
		})
	}
}

func TestAddLiquidityUnknownPool(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	_, err := k.AddLiquidity(ctx, trader, 3, []math.Int{amt(1), amt(1)})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestRemoveAllLiquidity(t *testing.T) {
	k, ctx := setupTwoPools(t)
	before := k.GetDeposits(ctx, provider)

	amounts, err := k.RemoveLiquidity(ctx, provider, 0, types.InitSharesSupply, nil)
	require.NoError(t, err)
	require.Equal(t, "5000000", amounts[0].String())
	require.Equal(t, "10000000", amounts[1].String())

	info, err := k.GetPoolInfo(ctx, 0)
	require.NoError(t, err)
	require.True(t, info.Reserves[0].IsZero())
	require.True(t, info.Reserves[1].IsZero())
	require.True(t, info.TotalShares.IsZero())

	shares, err := k.GetShareBalance(ctx, 0, provider)
	require.NoError(t, err)
	require.True(t, shares.IsZero())

	after := k.GetDeposits(ctx, provider)
	require.Equal(t, before.AmountOf("tokena").AddRaw(5_000_000).String(), after.AmountOf("tokena").String())
	require.Equal(t, before.AmountOf("tokenb").AddRaw(10_000_000).String(), after.AmountOf("tokenb").String())
	keepertest.RequireInvariants(t, k, ctx)

	// an emptied pool bootstraps again
	_, err = k.AddLiquidity(ctx, provider, 0, []math.Int{amt(1_000), amt(3_000)})
	require.NoError(t, err)
	keepertest.RequireInvariants(t, k, ctx)
}

func TestRemoveLiquidityFailures(t *testing.T) {
	k, ctx := setupTwoPools(t)
	before := snapshot(t, k, ctx)

	_, err := k.RemoveLiquidity(ctx, trader, 0, amt(1), nil)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	_, err = k.RemoveLiquidity(ctx, provider, 0, types.InitSharesSupply, []math.Int{amt(5_000_001), amt(0)})
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	_, err = k.RemoveLiquidity(ctx, provider, 0, math.ZeroInt(), nil)
	require.ErrorIs(t, err, types.ErrInvariantViolation)

	require.Equal(t, before, snapshot(t, k, ctx))
}
