package keeper_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/multiswap/testutil/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

var (
	provider = sdk.AccAddress([]byte("provider____________"))
	trader   = sdk.AccAddress([]byte("trader______________"))
	other    = sdk.AccAddress([]byte("other_______________"))
)

func amt(v int64) math.Int { return math.NewInt(v) }

func amtPtr(v int64) *math.Int {
	x := math.NewInt(v)
	return &x
}

func coin(denom string, v int64) sdk.Coin { return sdk.NewCoin(denom, math.NewInt(v)) }

// setupTwoPools creates pool 0 (tokena/tokenb, 5M/10M) and pool 1
// (tokenb/tokenc, 8M/4M), both with fee 3/1000.
func setupTwoPools(t *testing.T) (*keeper.Keeper, sdk.Context) {
	t.Helper()
	k, ctx := keepertest.MultiswapKeeper(t)
	p0 := keepertest.CreateTestPool(t, k, ctx, provider, 3, []string{"tokena", "tokenb"}, []math.Int{amt(5_000_000), amt(10_000_000)})
	p1 := keepertest.CreateTestPool(t, k, ctx, provider, 3, []string{"tokenb", "tokenc"}, []math.Int{amt(8_000_000), amt(4_000_000)})
	require.Equal(t, uint64(0), p0)
	require.Equal(t, uint64(1), p1)
	return k, ctx
}

// snapshot captures the full module state for bit-for-bit comparison.
func snapshot(t *testing.T, k *keeper.Keeper, ctx sdk.Context) string {
	t.Helper()
	gs, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	bz, err := json.Marshal(gs)
	require.NoError(t, err)
	custody := map[string]string{}
	k.IterateCustody(ctx, func(denom string, amount math.Int) bool {
		custody[denom] = amount.String()
		return false
	})
	cbz, err := json.Marshal(custody)
	require.NoError(t, err)
	return string(bz) + string(cbz)
}

func TestParams(t *testing.T) {
	k, ctx := keepertest.MultiswapKeeper(t)

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), params)

	params.MaxSwapActions = 2
	require.NoError(t, k.SetParams(ctx, params))
	got, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(2), got.MaxSwapActions)

	err = k.SetParams(ctx, types.Params{})
	require.ErrorIs(t, err, types.ErrInvalidConfiguration)
}

func keeperInvariants(k *keeper.Keeper, ctx sdk.Context) (string, bool) {
	return keeper.AllInvariants(*k)(ctx)
}
