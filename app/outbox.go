package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// WithdrawalOutbox is the custodian the keeper sees while an operation runs.
// It never settles, so every withdrawal request commits as pending and the
// real custodian is only reached from dispatchWithdrawals.
type WithdrawalOutbox struct{}

var _ types.AssetCustodian = WithdrawalOutbox{}

func (WithdrawalOutbox) DispatchWithdrawal(context.Context, types.PendingWithdrawal) (bool, error) {
	return false, nil
}

// requestedWithdrawals returns the ids of withdrawals requested in events, in
// order.
func requestedWithdrawals(events sdk.Events) []uint64 {
	var ids []uint64
	for _, ev := range events {
		if ev.Type != types.EventTypeWithdrawalRequested {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key != types.AttributeKeyWithdrawalID {
				continue
			}
			if id, err := strconv.ParseUint(attr.Value, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// dispatchWithdrawals hands committed withdrawal requests to the custodian.
// A settled transfer is completed in its own commit. A custodian error reverts
// the withdrawal, crediting the funds back, and is returned. Without a
// custodian the requests stay pending. Callers hold a.mu.
func (a *App) dispatchWithdrawals(events sdk.Events) error {
	ids := requestedWithdrawals(events)
	if a.custodian == nil || len(ids) == 0 {
		return nil
	}

	var errs []error
	for _, id := range ids {
		ctx := a.committedContext()
		w, err := a.keeper.GetPendingWithdrawal(ctx, id)
		if err != nil {
			// already resolved
			continue
		}

		settled, dispatchErr := a.custodian.DispatchWithdrawal(ctx, w)
		if dispatchErr == nil && !settled {
			continue
		}
		if dispatchErr != nil {
			a.logger.Error("withdrawal dispatch failed, reverting", "id", id, "error", dispatchErr.Error())
		}

		success := dispatchErr == nil
		if _, err := a.commit(func(ctx sdk.Context, k *keeper.Keeper) error {
			_, err := k.ConfirmWithdrawal(ctx, id, success)
			return err
		}); err != nil {
			errs = append(errs, fmt.Errorf("withdrawal %d: confirm after dispatch: %w", id, err))
			continue
		}
		if dispatchErr != nil {
			errs = append(errs, fmt.Errorf("withdrawal %d reverted: %w", id, dispatchErr))
		}
	}
	return errors.Join(errs...)
}
