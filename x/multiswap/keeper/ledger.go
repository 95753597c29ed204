package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func validateLedgerAmount(denom string, amount math.Int) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidRequest.Wrap(err.Error())
	}
	if err := types.CheckAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return types.ErrInvariantViolation.Wrapf("zero %s amount", denom)
	}
	return nil
}

// BalanceOf returns the ledger balance of account in denom, zero when absent.
func (k Keeper) BalanceOf(ctx context.Context, account sdk.AccAddress, denom string) math.Int {
	bz := k.getStore(ctx).Get(types.DepositKey(account, denom))
	if bz == nil {
		return math.ZeroInt()
	}
	return mustUnmarshalInt(bz)
}

func (k Keeper) setBalance(ctx context.Context, account sdk.AccAddress, denom string, amount math.Int) {
	store := k.getStore(ctx)
	key := types.DepositKey(account, denom)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, marshalInt(amount))
}

// Credit adds amount to the account's ledger balance.
func (k Keeper) Credit(ctx context.Context, account sdk.AccAddress, denom string, amount math.Int) error {
	if err := validateLedgerAmount(denom, amount); err != nil {
		return err
	}
	balance, err := types.CheckedAdd(k.BalanceOf(ctx, account, denom), amount)
	if err != nil {
		return err
	}
	k.setBalance(ctx, account, denom, balance)
	return nil
}

// Debit removes amount from the account's ledger balance and returns what is
// left. A balance that reaches zero is deleted.
func (k Keeper) Debit(ctx context.Context, account sdk.AccAddress, denom string, amount math.Int) (math.Int, error) {
	if err := validateLedgerAmount(denom, amount); err != nil {
		return math.Int{}, err
	}
	balance := k.BalanceOf(ctx, account, denom)
	if balance.LT(amount) {
		return math.Int{}, types.ErrInsufficientBalance.Wrapf("%s has %s%s, needs %s%s", account, balance, denom, amount, denom)
	}
	remaining := balance.Sub(amount)
	k.setBalance(ctx, account, denom, remaining)
	return remaining, nil
}

// GetDeposits returns every ledger balance of an account, sorted by denom.
func (k Keeper) GetDeposits(ctx context.Context, account sdk.AccAddress) sdk.Coins {
	prefixKey := types.AccountDepositsPrefix(account)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefixKey)
	defer iterator.Close()

	coins := sdk.Coins{}
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(prefixKey):])
		coins = append(coins, sdk.Coin{Denom: denom, Amount: mustUnmarshalInt(iterator.Value())})
	}
	return coins
}

// IterateDeposits walks every ledger balance.
func (k Keeper) IterateDeposits(ctx context.Context, cb func(account sdk.AccAddress, denom string, amount math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.DepositKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		account, denom, ok := types.ParseDepositKey(iterator.Key()[len(types.DepositKeyPrefix):])
		if !ok {
			return types.ErrInvariantViolation.Wrapf("malformed deposit key %X", iterator.Key())
		}
		amount, err := unmarshalInt(iterator.Value())
		if err != nil {
			return err
		}
		if cb(account, denom, amount) {
			break
		}
	}
	return nil
}

// GetCustody returns the total of denom the module holds in custody.
func (k Keeper) GetCustody(ctx context.Context, denom string) math.Int {
	bz := k.getStore(ctx).Get(types.CustodyKey(denom))
	if bz == nil {
		return math.ZeroInt()
	}
	return mustUnmarshalInt(bz)
}

func (k Keeper) setCustody(ctx context.Context, denom string, amount math.Int) {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(types.CustodyKey(denom))
		return
	}
	store.Set(types.CustodyKey(denom), marshalInt(amount))
}

func (k Keeper) addCustody(ctx context.Context, denom string, amount math.Int) error {
	total, err := types.CheckedAdd(k.GetCustody(ctx, denom), amount)
	if err != nil {
		return err
	}
	k.setCustody(ctx, denom, total)
	return nil
}

func (k Keeper) subCustody(ctx context.Context, denom string, amount math.Int) error {
	total := k.GetCustody(ctx, denom)
	if total.LT(amount) {
		return types.ErrInvariantViolation.Wrapf("custody of %s is %s, cannot release %s", denom, total, amount)
	}
	k.setCustody(ctx, denom, total.Sub(amount))
	return nil
}

// IterateCustody walks the custody totals by denom.
func (k Keeper) IterateCustody(ctx context.Context, cb func(denom string, amount math.Int) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.CustodyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(types.CustodyKeyPrefix):])
		if cb(denom, mustUnmarshalInt(iterator.Value())) {
			break
		}
	}
}
