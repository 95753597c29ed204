package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SwapAction is one step of a routed trade. A nil AmountIn spends the caller's
// whole ledger balance of TokenIn at the time the action runs, which is how the
// output of an earlier action is fed into a later one.
type SwapAction struct {
	PoolId       uint64    `json:"pool_id"`
	TokenIn      string    `json:"token_in"`
	AmountIn     *math.Int `json:"amount_in,omitempty"`
	TokenOut     string    `json:"token_out"`
	MinAmountOut math.Int  `json:"min_amount_out"`
}

// MinOut returns MinAmountOut, treating an unset value as zero.
func (a SwapAction) MinOut() math.Int {
	if a.MinAmountOut.IsNil() {
		return math.ZeroInt()
	}
	return a.MinAmountOut
}

// ValidateBasic performs stateless checks on the action.
func (a SwapAction) ValidateBasic() error {
	if err := sdk.ValidateDenom(a.TokenIn); err != nil {
		return ErrInvalidRequest.Wrapf("token in: %s", err)
	}
	if err := sdk.ValidateDenom(a.TokenOut); err != nil {
		return ErrInvalidRequest.Wrapf("token out: %s", err)
	}
	if a.TokenIn == a.TokenOut {
		return ErrInvariantViolation.Wrapf("cannot swap %s for itself", a.TokenIn)
	}
	if a.AmountIn != nil {
		if err := CheckAmount(*a.AmountIn); err != nil {
			return err
		}
		if a.AmountIn.IsZero() {
			return ErrInvariantViolation.Wrap("swap amount must be positive")
		}
	}
	return CheckAmount(a.MinOut())
}

// ValidateSwapActions checks the shape of a route against the action limit.
func ValidateSwapActions(actions []SwapAction, maxActions uint32) error {
	if len(actions) == 0 {
		return ErrInvalidRequest.Wrap("route has no actions")
	}
	if uint64(len(actions)) > uint64(maxActions) {
		return ErrInvalidRequest.Wrapf("route has %d actions, limit is %d", len(actions), maxActions)
	}
	for i, a := range actions {
		if err := a.ValidateBasic(); err != nil {
			return errorsmod.Wrapf(err, "action %d", i)
		}
	}
	return nil
}
