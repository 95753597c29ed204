package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PendingWithdrawal is an outbound transfer the custody layer has not yet
// confirmed. Its amount has left the ledger and cannot be traded or pooled.
type PendingWithdrawal struct {
	Id      uint64   `json:"id"`
	Account string   `json:"account"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// Coin returns the withdrawn funds as a coin.
func (w PendingWithdrawal) Coin() sdk.Coin {
	return sdk.NewCoin(w.Denom, w.Amount)
}

// Validate performs stateless checks on the withdrawal.
func (w PendingWithdrawal) Validate() error {
	if _, err := sdk.AccAddressFromBech32(w.Account); err != nil {
		return ErrInvalidRequest.Wrapf("withdrawal %d: invalid account: %s", w.Id, err)
	}
	if err := sdk.ValidateDenom(w.Denom); err != nil {
		return ErrInvalidRequest.Wrapf("withdrawal %d: %s", w.Id, err)
	}
	if err := CheckAmount(w.Amount); err != nil {
		return err
	}
	if w.Amount.IsZero() {
		return ErrInvariantViolation.Wrapf("withdrawal %d: amount must be positive", w.Id)
	}
	return nil
}
