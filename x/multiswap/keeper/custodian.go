package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// BankCustodian settles withdrawals synchronously from the module account
// through the bank keeper.
type BankCustodian struct {
	bank types.BankKeeper
}

var _ types.AssetCustodian = BankCustodian{}

func NewBankCustodian(bank types.BankKeeper) BankCustodian {
	return BankCustodian{bank: bank}
}

func (c BankCustodian) DispatchWithdrawal(ctx context.Context, w types.PendingWithdrawal) (bool, error) {
	recipient, err := sdk.AccAddressFromBech32(w.Account)
	if err != nil {
		return false, types.ErrInvalidRequest.Wrapf("withdrawal %d: %s", w.Id, err)
	}
	if err := c.bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(w.Coin())); err != nil {
		return false, err
	}
	return true, nil
}

// DepositCoins pulls coins from an account into the module account and credits
// them to the same account's ledger.
func (k Keeper) DepositCoins(ctx context.Context, from sdk.AccAddress, coins sdk.Coins) error {
	if k.bankKeeper == nil {
		return types.ErrInvalidConfiguration.Wrap("no bank keeper configured")
	}
	if !coins.IsValid() || coins.IsZero() {
		return types.ErrInvalidRequest.Wrapf("invalid deposit %s", coins)
	}
	return k.atomically(ctx, func(ctx sdk.Context) error {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, coins); err != nil {
			return fmt.Errorf("DepositCoins: %w", err)
		}
		for _, coin := range coins {
			if err := k.NotifyDeposit(ctx, from, coin); err != nil {
				return err
			}
		}
		return nil
	})
}
