package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// RegisterInvariants registers all multiswap invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-shares", PoolSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "custody-conservation", CustodyConservationInvariant(k))
}

// AllInvariants runs all invariants of the multiswap module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolSharesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return CustodyConservationInvariant(k)(ctx)
	}
}

// PoolSharesInvariant checks that provider share balances sum to each pool's total shares
func PoolSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		sums := make(map[uint64]math.Int)
		if err := k.IterateShares(ctx, func(poolID uint64, _ sdk.AccAddress, shares math.Int) bool {
			if sum, ok := sums[poolID]; ok {
				sums[poolID] = sum.Add(shares)
			} else {
				sums[poolID] = shares
			}
			return false
		}); err != nil {
			count++
			msg += fmt.Sprintf("iterate shares: %s\n", err)
		}

		if err := k.IteratePools(ctx, func(pool types.Pool) bool {
			info, err := pool.Info()
			if err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %s\n", pool.Id, err)
				return false
			}
			sum, ok := sums[pool.Id]
			if !ok {
				sum = math.ZeroInt()
			}
			if !sum.Equal(info.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: provider shares sum to %s, total shares is %s\n", pool.Id, sum, info.TotalShares)
			}
			delete(sums, pool.Id)
			return false
		}); err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %s\n", err)
		}

		for poolID := range sums {
			count++
			msg += fmt.Sprintf("shares recorded for unknown pool %d\n", poolID)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-shares",
			fmt.Sprintf("found %d share accounting problems\n%s", count, msg),
		), broken
	}
}

// PoolStateInvariant checks every pool record is internally consistent: reserves and
// shares inside the balance domain, and total shares zero exactly when the pool is empty.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		poolCount := k.GetPoolCount(ctx)
		seen := uint64(0)
		if err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.Id != seen {
				count++
				msg += fmt.Sprintf("expected pool id %d, found %d\n", seen, pool.Id)
			}
			seen++
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("%s\n", err)
			}
			return false
		}); err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %s\n", err)
		}
		if seen != poolCount {
			count++
			msg += fmt.Sprintf("pool count is %d but %d pools are stored\n", poolCount, seen)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d inconsistent pools\n%s", count, msg),
		), broken
	}
}

// CustodyConservationInvariant checks that, for every denom, the custody total equals
// ledger balances plus pool reserves plus pending withdrawals.
func CustodyConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		accounted, err := k.accountedFunds(ctx)
		if err != nil {
			count++
			msg += fmt.Sprintf("%s\n", err)
		}

		k.IterateCustody(ctx, func(denom string, amount math.Int) bool {
			held, ok := accounted[denom]
			if !ok {
				held = math.ZeroInt()
			}
			if !held.Equal(amount) {
				count++
				msg += fmt.Sprintf("%s: custody %s, accounted %s\n", denom, amount, held)
			}
			delete(accounted, denom)
			return false
		})
		for denom, held := range accounted {
			if !held.IsZero() {
				count++
				msg += fmt.Sprintf("%s: custody 0, accounted %s\n", denom, held)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "custody-conservation",
			fmt.Sprintf("found %d custody mismatches\n%s", count, msg),
		), broken
	}
}

// accountedFunds sums, per denom, everything the module owes: ledger balances,
// pool reserves and pending withdrawals.
func (k Keeper) accountedFunds(ctx sdk.Context) (map[string]math.Int, error) {
	totals := make(map[string]math.Int)
	add := func(denom string, amount math.Int) {
		if sum, ok := totals[denom]; ok {
			totals[denom] = sum.Add(amount)
		} else {
			totals[denom] = amount
		}
	}

	if err := k.IterateDeposits(ctx, func(_ sdk.AccAddress, denom string, amount math.Int) bool {
		add(denom, amount)
		return false
	}); err != nil {
		return totals, err
	}

	var poolErr error
	if err := k.IteratePools(ctx, func(pool types.Pool) bool {
		info, err := pool.Info()
		if err != nil {
			poolErr = err
			return true
		}
		for i, denom := range info.Tokens {
			add(denom, info.Reserves[i])
		}
		return false
	}); err != nil {
		return totals, err
	}
	if poolErr != nil {
		return totals, poolErr
	}

	pending, err := k.GetPendingWithdrawals(ctx)
	if err != nil {
		return totals, err
	}
	for _, w := range pending {
		add(w.Denom, w.Amount)
	}
	return totals, nil
}
