package api

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// CreatePoolRequest creates a constant-product pool.
type CreatePoolRequest struct {
	Tokens []string `json:"tokens" binding:"required,min=2"`
	Fee    uint32   `json:"fee"`
}

// CreatePoolResponse carries the id of a new pool.
type CreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// PoolsResponse is one page of pools.
type PoolsResponse struct {
	Pools  []types.PoolInfo `json:"pools"`
	Offset uint64           `json:"offset"`
	Total  uint64           `json:"total"`
}

// AddLiquidityRequest deposits amounts, one per pool token in pool order.
type AddLiquidityRequest struct {
	Amounts []math.Int `json:"amounts" binding:"required"`
}

// AddLiquidityResponse reports the shares minted.
type AddLiquidityResponse struct {
	Shares math.Int `json:"shares"`
}

// RemoveLiquidityRequest burns shares for a proportional payout.
type RemoveLiquidityRequest struct {
	Shares        math.Int   `json:"shares"`
	MinAmountsOut []math.Int `json:"min_amounts_out"`
}

// RemoveLiquidityResponse lists the amounts paid to the ledger.
type RemoveLiquidityResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// SwapResponse is the output of a single swap.
type SwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// ExecuteRequest is a routed trade.
type ExecuteRequest struct {
	Actions []types.SwapAction `json:"actions" binding:"required"`
}

// ExecuteResponse lists the output of every action.
type ExecuteResponse struct {
	AmountsOut []math.Int `json:"amounts_out"`
}

// QuoteResponse is a read-only swap quote.
type QuoteResponse struct {
	PoolId    uint64   `json:"pool_id"`
	TokenIn   string   `json:"token_in"`
	AmountIn  math.Int `json:"amount_in"`
	TokenOut  string   `json:"token_out"`
	AmountOut math.Int `json:"amount_out"`
}

// RequiredAmountsResponse lists the deposit that mints the requested shares.
type RequiredAmountsResponse struct {
	PoolId  uint64     `json:"pool_id"`
	Shares  math.Int   `json:"shares"`
	Amounts []math.Int `json:"amounts"`
}

// SharesResponse is a provider's LP balance.
type SharesResponse struct {
	PoolId   uint64   `json:"pool_id"`
	Provider string   `json:"provider"`
	Shares   math.Int `json:"shares"`
}

// DepositsResponse is an account's ledger.
type DepositsResponse struct {
	Account  string    `json:"account"`
	Balances sdk.Coins `json:"balances"`
}

// WithdrawalRequest asks for funds to leave the ledger.
type WithdrawalRequest struct {
	Denom  string   `json:"denom" binding:"required"`
	Amount math.Int `json:"amount"`
}

// WithdrawalResponse reports the withdrawal and whether it already settled.
type WithdrawalResponse struct {
	Withdrawal types.PendingWithdrawal `json:"withdrawal"`
	Settled    bool                    `json:"settled"`
}

// CustodyDepositRequest reports funds that arrived for an account.
type CustodyDepositRequest struct {
	Account string   `json:"account" binding:"required"`
	Denom   string   `json:"denom" binding:"required"`
	Amount  math.Int `json:"amount"`
}

// ConfirmWithdrawalRequest resolves a pending withdrawal.
type ConfirmWithdrawalRequest struct {
	Success *bool `json:"success" binding:"required"`
}
