package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// NotifyDeposit is called by the custody layer once an inbound transfer has
// settled. The funds become available in the account's ledger.
func (k Keeper) NotifyDeposit(ctx context.Context, account sdk.AccAddress, coin sdk.Coin) error {
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		if err := k.Credit(ctx, account, coin.Denom, coin.Amount); err != nil {
			return err
		}
		if err := k.addCustody(ctx, coin.Denom, coin.Amount); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDeposit,
				sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
				sdk.NewAttribute(types.AttributeKeyDenom, coin.Denom),
				sdk.NewAttribute(types.AttributeKeyAmount, coin.Amount.String()),
			),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("NotifyDeposit: %w", err)
	}
	return nil
}

func (k Keeper) nextWithdrawalID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	var id uint64
	if bz := store.Get(types.WithdrawalSeqKey); bz != nil {
		id = sdk.BigEndianToUint64(bz)
	}
	store.Set(types.WithdrawalSeqKey, sdk.Uint64ToBigEndian(id+1))
	return id
}

// GetNextWithdrawalID returns the id the next withdrawal will receive.
func (k Keeper) GetNextWithdrawalID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.WithdrawalSeqKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func (k Keeper) setPendingWithdrawal(ctx context.Context, w types.PendingWithdrawal) error {
	bz, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("setPendingWithdrawal: marshal %d: %w", w.Id, err)
	}
	k.getStore(ctx).Set(types.PendingWithdrawalKey(w.Id), bz)
	return nil
}

// GetPendingWithdrawal returns a withdrawal that is awaiting confirmation.
func (k Keeper) GetPendingWithdrawal(ctx context.Context, id uint64) (types.PendingWithdrawal, error) {
	bz := k.getStore(ctx).Get(types.PendingWithdrawalKey(id))
	if bz == nil {
		return types.PendingWithdrawal{}, types.ErrNotFound.Wrapf("pending withdrawal %d not found", id)
	}
	var w types.PendingWithdrawal
	if err := json.Unmarshal(bz, &w); err != nil {
		return types.PendingWithdrawal{}, fmt.Errorf("GetPendingWithdrawal: unmarshal %d: %w", id, err)
	}
	return w, nil
}

// GetPendingWithdrawals returns every withdrawal awaiting confirmation, oldest first.
func (k Keeper) GetPendingWithdrawals(ctx context.Context) ([]types.PendingWithdrawal, error) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PendingWithdrawalKeyPrefix)
	defer iterator.Close()

	pending := []types.PendingWithdrawal{}
	for ; iterator.Valid(); iterator.Next() {
		var w types.PendingWithdrawal
		if err := json.Unmarshal(iterator.Value(), &w); err != nil {
			return nil, fmt.Errorf("GetPendingWithdrawals: unmarshal: %w", err)
		}
		pending = append(pending, w)
	}
	return pending, nil
}

// RequestWithdrawal takes coin out of the account's ledger and hands it to the
// asset custodian. If the custodian settles within the call the withdrawal is
// final. Otherwise it stays pending until ConfirmWithdrawal. While pending, the
// funds are in neither the ledger nor any pool. A custodian error aborts the
// request and the ledger balance is untouched.
func (k Keeper) RequestWithdrawal(ctx context.Context, account sdk.AccAddress, coin sdk.Coin) (types.PendingWithdrawal, bool, error) {
	if k.custodian == nil {
		return types.PendingWithdrawal{}, false, types.ErrInvalidConfiguration.Wrap("no asset custodian configured")
	}

	var (
		w       types.PendingWithdrawal
		settled bool
	)
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		if _, err := k.Debit(ctx, account, coin.Denom, coin.Amount); err != nil {
			return err
		}
		w = types.PendingWithdrawal{
			Id:      k.nextWithdrawalID(ctx),
			Account: account.String(),
			Denom:   coin.Denom,
			Amount:  coin.Amount,
		}
		if err := k.setPendingWithdrawal(ctx, w); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeWithdrawalRequested,
				sdk.NewAttribute(types.AttributeKeyWithdrawalID, strconv.FormatUint(w.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyAccount, w.Account),
				sdk.NewAttribute(types.AttributeKeyDenom, w.Denom),
				sdk.NewAttribute(types.AttributeKeyAmount, w.Amount.String()),
			),
		)

		var err error
		if settled, err = k.custodian.DispatchWithdrawal(ctx, w); err != nil {
			return fmt.Errorf("dispatch withdrawal %d: %w", w.Id, err)
		}
		if settled {
			return k.completeWithdrawal(ctx, w)
		}
		return nil
	})
	if err != nil {
		k.metrics.WithdrawalsTotal.WithLabelValues(coin.Denom, "aborted").Inc()
		return types.PendingWithdrawal{}, false, fmt.Errorf("RequestWithdrawal: %w", err)
	}
	k.Logger(ctx).Debug("withdrawal requested", "id", w.Id, "account", w.Account, "denom", w.Denom, "amount", w.Amount.String(), "settled", settled)
	return w, settled, nil
}

// ConfirmWithdrawal resolves a pending withdrawal. success finalises it and
// releases the funds from custody; failure credits them back to the ledger.
func (k Keeper) ConfirmWithdrawal(ctx context.Context, id uint64, success bool) (types.PendingWithdrawal, error) {
	var w types.PendingWithdrawal
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		var err error
		if w, err = k.GetPendingWithdrawal(ctx, id); err != nil {
			return err
		}
		if success {
			return k.completeWithdrawal(ctx, w)
		}
		return k.revertWithdrawal(ctx, w)
	})
	if err != nil {
		return types.PendingWithdrawal{}, fmt.Errorf("ConfirmWithdrawal: %w", err)
	}

	k.Logger(ctx).Debug("withdrawal confirmed", "id", id, "success", success)
	return w, nil
}

func (k Keeper) completeWithdrawal(ctx sdk.Context, w types.PendingWithdrawal) error {
	k.getStore(ctx).Delete(types.PendingWithdrawalKey(w.Id))
	if err := k.subCustody(ctx, w.Denom, w.Amount); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawalCompleted,
			sdk.NewAttribute(types.AttributeKeyWithdrawalID, strconv.FormatUint(w.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyAccount, w.Account),
			sdk.NewAttribute(types.AttributeKeyDenom, w.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, w.Amount.String()),
		),
	)
	return nil
}

func (k Keeper) revertWithdrawal(ctx sdk.Context, w types.PendingWithdrawal) error {
	account, err := sdk.AccAddressFromBech32(w.Account)
	if err != nil {
		return fmt.Errorf("revertWithdrawal: %w", err)
	}
	k.getStore(ctx).Delete(types.PendingWithdrawalKey(w.Id))
	if err := k.Credit(ctx, account, w.Denom, w.Amount); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawalReverted,
			sdk.NewAttribute(types.AttributeKeyWithdrawalID, strconv.FormatUint(w.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyAccount, w.Account),
			sdk.NewAttribute(types.AttributeKeyDenom, w.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, w.Amount.String()),
		),
	)
	return nil
}
