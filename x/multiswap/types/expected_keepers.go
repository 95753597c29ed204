package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the bank keeper the bank-backed custodian moves funds with.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// AssetCustodian performs the outbound leg of a withdrawal.
//
// DispatchWithdrawal reports settled=true when the transfer completed within the
// call. settled=false leaves the withdrawal pending until the custodian confirms
// it through the keeper. A non-nil error aborts the request and restores the
// caller's ledger balance.
//
// The keeper calls DispatchWithdrawal inside the request's store branch, so an
// implementation given to the keeper must confine its effects to that store, as
// BankCustodian does. Custodians that move assets outside the store belong to
// the host, which dispatches only after the request has committed.
type AssetCustodian interface {
	DispatchWithdrawal(ctx context.Context, w PendingWithdrawal) (settled bool, err error)
}
