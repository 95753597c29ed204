package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// MultiswapKeeper creates a test keeper backed by an in-memory IAVL store,
// initialised with the default genesis.
func MultiswapKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	return MultiswapKeeperWithCustodian(t, nil, nil)
}

// MultiswapKeeperWithCustodian is MultiswapKeeper with explicit bank keeper and custodian.
func MultiswapKeeperWithCustodian(t testing.TB, bank types.BankKeeper, custodian types.AssetCustodian) (*keeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	k := keeper.NewKeeper(storeKey, bank, custodian)
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))
	return k, ctx
}

// Fund credits coins to an account's ledger as a confirmed deposit.
func Fund(t testing.TB, k *keeper.Keeper, ctx sdk.Context, account sdk.AccAddress, coins ...sdk.Coin) {
	t.Helper()
	for _, c := range coins {
		require.NoError(t, k.NotifyDeposit(ctx, account, c))
	}
}

// CreateTestPool creates a constant-product pool and seeds it with the given
// reserves deposited by provider.
func CreateTestPool(t testing.TB, k *keeper.Keeper, ctx sdk.Context, provider sdk.AccAddress, fee uint32, tokens []string, reserves []math.Int) uint64 {
	t.Helper()
	poolID, err := k.CreatePool(ctx, provider, tokens, fee)
	require.NoError(t, err)
	for i, token := range tokens {
		Fund(t, k, ctx, provider, sdk.NewCoin(token, reserves[i]))
	}
	_, err = k.AddLiquidity(ctx, provider, poolID, reserves)
	require.NoError(t, err)
	return poolID
}

// RequireInvariants fails the test if any module invariant is broken.
func RequireInvariants(t testing.TB, k *keeper.Keeper, ctx sdk.Context) {
	t.Helper()
	msg, broken := keeper.AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
}

// MockCustodian records dispatched withdrawals and answers with a fixed outcome.
type MockCustodian struct {
	Settle     bool
	Err        error
	Dispatched []types.PendingWithdrawal
}

func (m *MockCustodian) DispatchWithdrawal(_ context.Context, w types.PendingWithdrawal) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.Dispatched = append(m.Dispatched, w)
	return m.Settle, nil
}

// MockBankKeeper keeps account and module balances in memory.
type MockBankKeeper struct {
	Balances map[string]sdk.Coins
}

func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{Balances: map[string]sdk.Coins{}}
}

func (b *MockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, sender sdk.AccAddress, module string, amt sdk.Coins) error {
	have := b.Balances[sender.String()]
	remaining, negative := have.SafeSub(amt...)
	if negative {
		return types.ErrInsufficientBalance.Wrapf("bank: %s has %s, needs %s", sender, have, amt)
	}
	b.Balances[sender.String()] = remaining
	b.Balances[module] = b.Balances[module].Add(amt...)
	return nil
}

func (b *MockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, module string, recipient sdk.AccAddress, amt sdk.Coins) error {
	have := b.Balances[module]
	remaining, negative := have.SafeSub(amt...)
	if negative {
		return types.ErrInsufficientBalance.Wrapf("bank: module %s has %s, needs %s", module, have, amt)
	}
	b.Balances[module] = remaining
	b.Balances[recipient.String()] = b.Balances[recipient.String()].Add(amt...)
	return nil
}
