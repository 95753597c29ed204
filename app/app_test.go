package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

type mapOptions map[string]interface{}

func (m mapOptions) Get(key string) interface{} { return m[key] }

func newTestApp(t *testing.T, db dbm.DB, opts mapOptions) *App {
	t.Helper()
	a, err := New(log.NewNopLogger(), db, nil, opts)
	require.NoError(t, err)
	return a
}

func initializedApp(t *testing.T, opts mapOptions) *App {
	t.Helper()
	a := newTestApp(t, dbm.NewMemDB(), opts)
	require.NoError(t, a.InitChain(*types.DefaultGenesis()))
	return a
}

func TestInitChain(t *testing.T) {
	a := newTestApp(t, dbm.NewMemDB(), mapOptions{FlagChainID: "test-1"})
	require.False(t, a.Initialized())
	require.Equal(t, "test-1", a.ChainID())

	require.NoError(t, a.InitChain(*types.DefaultGenesis()))
	require.True(t, a.Initialized())
	require.Equal(t, int64(1), a.Height())

	require.ErrorIs(t, a.InitChain(*types.DefaultGenesis()), ErrAlreadyInitialized)

	genState, err := a.ExportGenesis()
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), genState.Params)
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	a := initializedApp(t, nil)
	addr := types.TestAddr()

	err := a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 500))
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), a.Height())

	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		require.Equal(t, "500", k.BalanceOf(ctx, addr, "tokena").String())
		return nil
	}))
}

func TestExecuteDiscardsOnError(t *testing.T) {
	a := initializedApp(t, nil)
	addr := types.TestAddr()
	boom := errors.New("boom")

	err := a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		if err := k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 500)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int64(1), a.Height())

	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		require.True(t, k.BalanceOf(ctx, addr, "tokena").IsZero())
		require.True(t, k.GetCustody(ctx, "tokena").IsZero())
		return nil
	}))
}

func TestQueryDoesNotPersist(t *testing.T) {
	a := initializedApp(t, nil)
	addr := types.TestAddr()

	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 1))
	}))
	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		require.True(t, k.BalanceOf(ctx, addr, "tokena").IsZero())
		return nil
	}))
}

func TestReopenKeepsState(t *testing.T) {
	db := dbm.NewMemDB()
	addr := types.TestAddr()

	first := newTestApp(t, db, nil)
	require.NoError(t, first.InitChain(*types.DefaultGenesis()))
	require.NoError(t, first.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 42))
	}))

	second := newTestApp(t, db, nil)
	require.True(t, second.Initialized())
	require.Equal(t, first.Height(), second.Height())
	require.NoError(t, second.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		require.Equal(t, "42", k.BalanceOf(ctx, addr, "tokena").String())
		return nil
	}))
}

func TestInvariantCheckDiscardsBrokenState(t *testing.T) {
	a := initializedApp(t, mapOptions{FlagInvCheckPeriod: 1})

	err := a.Execute(func(ctx sdk.Context, _ *keeper.Keeper) error {
		bz, err := math.NewInt(5).Marshal()
		if err != nil {
			return err
		}
		ctx.KVStore(a.key).Set(types.CustodyKey("tokena"), bz)
		return nil
	})
	require.Error(t, err)
	require.Equal(t, types.KindInvariantViolation, types.ErrorKind(err))

	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		require.True(t, k.GetCustody(ctx, "tokena").IsZero())
		return nil
	}))
}

func TestWithdrawalOutboxLeavesPending(t *testing.T) {
	a := initializedApp(t, nil)
	addr := types.TestAddr()

	require.NoError(t, a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 100))
	}))

	var settled bool
	require.NoError(t, a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		_, settled, err = k.RequestWithdrawal(ctx, addr, sdk.NewInt64Coin("tokena", 60))
		return err
	}))
	require.False(t, settled)

	require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		pending, err := k.GetPendingWithdrawals(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, "40", k.BalanceOf(ctx, addr, "tokena").String())
		require.Equal(t, "100", k.GetCustody(ctx, "tokena").String())
		return nil
	}))
}

// recordingCustodian checks that every withdrawal it receives is already
// committed as pending, then answers with settled/err.
type recordingCustodian struct {
	t       *testing.T
	app     *App
	settled bool
	err     error
	calls   []types.PendingWithdrawal
}

func (c *recordingCustodian) DispatchWithdrawal(ctx context.Context, w types.PendingWithdrawal) (bool, error) {
	stored, err := c.app.keeper.GetPendingWithdrawal(ctx, w.Id)
	require.NoError(c.t, err)
	require.Equal(c.t, w, stored)
	c.calls = append(c.calls, w)
	return c.settled, c.err
}

func custodiedApp(t *testing.T, opts mapOptions) (*App, *recordingCustodian) {
	t.Helper()
	custodian := &recordingCustodian{t: t}
	a, err := New(log.NewNopLogger(), dbm.NewMemDB(), custodian, opts)
	require.NoError(t, err)
	custodian.app = a
	require.NoError(t, a.InitChain(*types.DefaultGenesis()))
	return a, custodian
}

func requestWithdrawal(a *App, addr sdk.AccAddress, amount int64) error {
	return a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		_, _, err := k.RequestWithdrawal(ctx, addr, sdk.NewInt64Coin("tokena", amount))
		return err
	})
}

func TestCustodianDispatchedAfterCommit(t *testing.T) {
	tests := []struct {
		name      string
		settled   bool
		err       error
		expectErr bool
		pending   int
		balance   string
		custody   string
	}{
		{name: "settled", settled: true, pending: 0, balance: "40", custody: "40"},
		{name: "left pending", pending: 1, balance: "40", custody: "100"},
		{name: "dispatch error reverts", err: errors.New("bridge down"), expectErr: true, pending: 0, balance: "100", custody: "100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, custodian := custodiedApp(t, mapOptions{FlagInvCheckPeriod: 1})
			custodian.settled, custodian.err = tc.settled, tc.err
			addr := types.TestAddr()
			require.NoError(t, a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
				return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 100))
			}))

			err := requestWithdrawal(a, addr, 60)
			if tc.expectErr {
				require.ErrorContains(t, err, "bridge down")
			} else {
				require.NoError(t, err)
			}
			require.Len(t, custodian.calls, 1)

			require.NoError(t, a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
				pending, err := k.GetPendingWithdrawals(ctx)
				require.NoError(t, err)
				require.Len(t, pending, tc.pending)
				require.Equal(t, tc.balance, k.BalanceOf(ctx, addr, "tokena").String())
				require.Equal(t, tc.custody, k.GetCustody(ctx, "tokena").String())
				return nil
			}))
		})
	}
}

func TestCustodianSkipsDiscardedRequest(t *testing.T) {
	a, custodian := custodiedApp(t, mapOptions{FlagInvCheckPeriod: 1})
	custodian.settled = true
	addr := types.TestAddr()
	require.NoError(t, a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 100))
	}))

	err := a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		if _, _, err := k.RequestWithdrawal(ctx, addr, sdk.NewInt64Coin("tokena", 60)); err != nil {
			return err
		}
		bz, err := math.NewInt(5).Marshal()
		if err != nil {
			return err
		}
		ctx.KVStore(a.key).Set(types.CustodyKey("tokena"), bz)
		return nil
	})
	require.Equal(t, types.KindInvariantViolation, types.ErrorKind(err))
	require.Empty(t, custodian.calls)
}

func TestMetricsFollowCommits(t *testing.T) {
	a := initializedApp(t, mapOptions{FlagInvCheckPeriod: 1})
	deposits := a.keeper.Metrics().DepositsTotal.WithLabelValues("tokenm")
	before := testutil.ToFloat64(deposits)
	addr := types.TestAddr()

	require.NoError(t, a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokenm", 10))
	}))
	require.Equal(t, before+1, testutil.ToFloat64(deposits))

	err := a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		if err := k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokenm", 10)); err != nil {
			return err
		}
		bz, err := math.NewInt(1).Marshal()
		if err != nil {
			return err
		}
		ctx.KVStore(a.key).Set(types.CustodyKey("tokenm"), bz)
		return nil
	})
	require.Error(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(deposits))

	err = a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		if err := k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokenm", 10)); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(deposits))
}

func TestReopenSeedsGauges(t *testing.T) {
	db := dbm.NewMemDB()
	addr := types.TestAddr()

	first := newTestApp(t, db, nil)
	require.NoError(t, first.InitChain(*types.DefaultGenesis()))
	require.NoError(t, first.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		if _, err := k.CreatePool(ctx, addr, []string{"tokena", "tokenb"}, 3); err != nil {
			return err
		}
		if _, err := k.CreatePool(ctx, addr, []string{"tokenb", "tokenc"}, 3); err != nil {
			return err
		}
		return k.NotifyDeposit(ctx, addr, sdk.NewInt64Coin("tokena", 100))
	}))
	require.NoError(t, requestWithdrawal(first, addr, 30))

	m := first.keeper.Metrics()
	require.Equal(t, float64(2), testutil.ToFloat64(m.PoolsTotal))
	require.Equal(t, float64(1), testutil.ToFloat64(m.PendingWithdrawals))

	m.PoolsTotal.Set(0)
	m.PendingWithdrawals.Set(0)

	second := newTestApp(t, db, nil)
	require.Equal(t, float64(2), testutil.ToFloat64(m.PoolsTotal))
	require.Equal(t, float64(1), testutil.ToFloat64(m.PendingWithdrawals))

	require.NoError(t, second.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		_, err := k.ConfirmWithdrawal(ctx, 0, true)
		return err
	}))
	require.Equal(t, float64(0), testutil.ToFloat64(m.PendingWithdrawals))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info", LogFormatJSON)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"k":"v"`)

	_, err = NewLogger(&buf, "loud", LogFormatPlain)
	require.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	require.Error(t, err)
}

func TestTelemetry(t *testing.T) {
	tel, err := InitTelemetry(TelemetryConfig{}, "test-1")
	require.NoError(t, err)
	require.NoError(t, tel.Shutdown(context.Background()))

	tel, err = InitTelemetry(TelemetryConfig{Enabled: true, OTLPEndpoint: "http://localhost:4318", SampleRate: 1}, "test-1")
	require.NoError(t, err)
	require.NotNil(t, tel.provider)
	require.NoError(t, tel.Shutdown(context.Background()))
}
