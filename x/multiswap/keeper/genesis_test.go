package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/multiswap/testutil/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	custodian := &keepertest.MockCustodian{}
	k, ctx := keepertest.MultiswapKeeperWithCustodian(t, nil, custodian)
	keepertest.CreateTestPool(t, k, ctx, provider, 3, []string{"tokena", "tokenb"}, []math.Int{amt(5_000_000), amt(10_000_000)})
	keepertest.Fund(t, k, ctx, trader, coin("tokena", 1_000_000), coin("tokenc", 5))
	_, err := k.Swap(ctx, trader, types.SwapAction{PoolId: 0, TokenIn: "tokena", AmountIn: amtPtr(400_000), TokenOut: "tokenb"})
	require.NoError(t, err)
	_, _, err = k.RequestWithdrawal(ctx, trader, coin("tokenc", 2))
	require.NoError(t, err)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 1)
	require.Len(t, exported.PendingWithdrawals, 1)
	require.Equal(t, uint64(1), exported.NextWithdrawalId)

	k2, ctx2 := keepertest.MultiswapKeeperWithCustodian(t, nil, custodian)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))
	require.Equal(t, snapshot(t, k, ctx), snapshot(t, k2, ctx2))
	require.Equal(t, uint64(1), k2.GetPoolCount(ctx2))
	keepertest.RequireInvariants(t, k2, ctx2)

	// ids continue where the exported state left off
	id, err := k2.CreatePool(ctx2, provider, []string{"tokenb", "tokenc"}, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
	w, _, err := k2.RequestWithdrawal(ctx2, trader, coin("tokenc", 1))
	require.NoError(t, err)
	require.Equal(t, uint64(1), w.Id)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	gs := types.DefaultGenesis()
	gs.Params.MaxSwapActions = 0
	require.ErrorIs(t, k.InitGenesis(ctx, *gs), types.ErrInvalidConfiguration)
}
