package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/multiswap/testutil/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func TestCreatePoolAssignsSequentialIDs(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	require.Equal(t, uint64(0), k.GetPoolCount(ctx))

	for i := uint64(0); i < 3; i++ {
		id, err := k.CreatePool(ctx, provider, []string{"tokena", "tokenb"}, 3)
		require.NoError(t, err)
		require.Equal(t, i, id)
	}
	require.Equal(t, uint64(3), k.GetPoolCount(ctx))

	info, err := k.GetPoolInfo(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"tokena", "tokenb"}, info.Tokens)
	require.Equal(t, uint32(3), info.Fee)
	require.True(t, info.TotalShares.IsZero())

	events := ctx.EventManager().Events()
	require.NotEmpty(t, events)
	require.Equal(t, types.EventTypePoolCreated, events[len(events)-1].Type)
}

func TestCreatePoolInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		fee    uint32
	}{
		{"one token", []string{"tokena"}, 3},
		{"duplicate", []string{"tokena", "tokena"}, 3},
		{"fee too high", []string{"tokena", "tokenb"}, 1000},
		{"bad denom", []string{"tokena", "!"}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ctx := keepertest.MultiswapKeeper(t)
			_, err := k.CreatePool(ctx, provider, tc.tokens, tc.fee)
			require.ErrorIs(t, err, types.ErrInvalidConfiguration)
			require.Equal(t, uint64(0), k.GetPoolCount(ctx))
		})
	}
}

func TestCreatePoolLimit(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	params := types.DefaultParams()
	params.MaxPools = 1
	require.NoError(t, k.SetParams(ctx, params))

	_, err := k.CreatePool(ctx, provider, []string{"tokena", "tokenb"}, 3)
	require.NoError(t, err)
	_, err = k.CreatePool(ctx, provider, []string{"tokena", "tokenc"}, 3)
	require.ErrorIs(t, err, types.ErrInvalidConfiguration)
	require.Equal(t, uint64(1), k.GetPoolCount(ctx))
}

func TestGetPoolNotFound(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	_, err := k.GetPool(ctx, 0)
	require.ErrorIs(t, err, types.ErrNotFound)
	_, err = k.GetShareBalance(ctx, 4, provider)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetPoolsPaging(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)
	for i := 0; i < 5; i++ {
		_, err := k.CreatePool(ctx, provider, []string{"tokena", "tokenb"}, uint32(i))
		require.NoError(t, err)
	}

	page, err := k.GetPools(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, uint64(1), page[0].Id)
	require.Equal(t, uint64(2), page[1].Id)

	page, err = k.GetPools(ctx, 4, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)

	page, err = k.GetPools(ctx, 9, 10)
	require.NoError(t, err)
	require.Empty(t, page)

	all, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestShareBalances(t *testing.T) {
	k, ctx := setupTwoPools(t)

	shares, err := k.GetShareBalance(ctx, 0, provider)
	require.NoError(t, err)
	require.True(t, types.InitSharesSupply.Equal(shares))

	shares, err = k.GetShareBalance(ctx, 0, trader)
	require.NoError(t, err)
	require.True(t, shares.IsZero())

	required, err := k.GetRequiredAmounts(ctx, 0, math.NewIntWithDecimal(1, 23))
	require.NoError(t, err)
	require.Len(t, required, 2)
	require.Equal(t, "500000", required[0].String())
	require.Equal(t, "1000000", required[1].String())
}
