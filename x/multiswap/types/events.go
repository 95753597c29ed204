package types

// Event types for the multiswap module
const (
	EventTypePoolCreated         = "pool_created"
	EventTypeSwap                = "swap"
	EventTypeRouteExecuted       = "route_executed"
	EventTypeLiquidityAdded      = "liquidity_added"
	EventTypeLiquidityRemoved    = "liquidity_removed"
	EventTypeDeposit             = "deposit"
	EventTypeWithdrawalRequested = "withdrawal_requested"
	EventTypeWithdrawalCompleted = "withdrawal_completed"
	EventTypeWithdrawalReverted  = "withdrawal_reverted"
)

// Event attribute keys
const (
	AttributeKeyPoolID       = "pool_id"
	AttributeKeyCreator      = "creator"
	AttributeKeyTokens       = "tokens"
	AttributeKeyFee          = "fee"
	AttributeKeyAccount      = "account"
	AttributeKeyTokenIn      = "token_in"
	AttributeKeyTokenOut     = "token_out"
	AttributeKeyAmountIn     = "amount_in"
	AttributeKeyAmountOut    = "amount_out"
	AttributeKeyAmounts      = "amounts"
	AttributeKeyShares       = "shares"
	AttributeKeyActions      = "actions"
	AttributeKeyDenom        = "denom"
	AttributeKeyAmount       = "amount"
	AttributeKeyWithdrawalID = "withdrawal_id"
)
