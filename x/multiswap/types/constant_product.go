package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ConstantProductPool holds an N-token pool priced by the product of its reserves.
// Token order is fixed at creation and defines the index space of Reserves.
type ConstantProductPool struct {
	Tokens      []string   `json:"tokens"`
	Reserves    []math.Int `json:"reserves"`
	Fee         uint32     `json:"fee"`
	TotalShares math.Int   `json:"total_shares"`
}

// NewConstantProductPool validates the configuration and returns an empty pool.
func NewConstantProductPool(tokens []string, fee uint32) (*ConstantProductPool, error) {
	if err := validatePoolConfig(tokens, fee); err != nil {
		return nil, err
	}
	reserves := make([]math.Int, len(tokens))
	for i := range reserves {
		reserves[i] = math.ZeroInt()
	}
	return &ConstantProductPool{
		Tokens:      append([]string(nil), tokens...),
		Reserves:    reserves,
		Fee:         fee,
		TotalShares: math.ZeroInt(),
	}, nil
}

func validatePoolConfig(tokens []string, fee uint32) error {
	if len(tokens) < MinPoolTokens || len(tokens) > MaxPoolTokens {
		return ErrInvalidConfiguration.Wrapf("pool must hold between %d and %d tokens, got %d",
			MinPoolTokens, MaxPoolTokens, len(tokens))
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if err := sdk.ValidateDenom(t); err != nil {
			return ErrInvalidConfiguration.Wrapf("token %q: %s", t, err)
		}
		if _, dup := seen[t]; dup {
			return ErrInvalidConfiguration.Wrapf("duplicate token %s", t)
		}
		seen[t] = struct{}{}
	}
	if fee >= FeeDenominator {
		return ErrInvalidConfiguration.Wrapf("fee %d must be below %d", fee, FeeDenominator)
	}
	return nil
}

func (p *ConstantProductPool) tokenIndex(denom string) (int, error) {
	for i, t := range p.Tokens {
		if t == denom {
			return i, nil
		}
	}
	return -1, ErrNotFound.Wrapf("token %s is not in pool", denom)
}

func (p *ConstantProductPool) pairIndices(tokenIn, tokenOut string) (int, int, error) {
	if tokenIn == tokenOut {
		return 0, 0, ErrInvariantViolation.Wrapf("cannot swap %s for itself", tokenIn)
	}
	in, err := p.tokenIndex(tokenIn)
	if err != nil {
		return 0, 0, err
	}
	out, err := p.tokenIndex(tokenOut)
	if err != nil {
		return 0, 0, err
	}
	return in, out, nil
}

// amountOut prices a swap of amountIn of token in against token out:
//
//	inWithFee = amountIn * (D - fee)
//	out       = inWithFee * rOut / (D * rIn + inWithFee)
func (p *ConstantProductPool) amountOut(in int, amountIn math.Int, out int) (math.Int, error) {
	if err := CheckAmount(amountIn); err != nil {
		return math.Int{}, err
	}
	if !amountIn.IsPositive() {
		return math.Int{}, ErrInvariantViolation.Wrap("swap amount must be positive")
	}
	rIn, rOut := p.Reserves[in], p.Reserves[out]
	if rIn.IsZero() || rOut.IsZero() {
		return math.Int{}, ErrInvariantViolation.Wrapf("pool has no liquidity for %s/%s", p.Tokens[in], p.Tokens[out])
	}
	inWithFee := amountIn.MulRaw(int64(FeeDenominator - p.Fee))
	denominator := rIn.MulRaw(FeeDenominator).Add(inWithFee)
	return MulDiv(inWithFee, rOut, denominator)
}

type constantProductEngine struct {
	pool   *ConstantProductPool
	shares ShareLedger
}

var _ PoolEngine = (*constantProductEngine)(nil)

func (e *constantProductEngine) Tokens() []string {
	return append([]string(nil), e.pool.Tokens...)
}

func (e *constantProductEngine) Reserves() []math.Int {
	return append([]math.Int(nil), e.pool.Reserves...)
}

func (e *constantProductEngine) Fee() uint32 { return e.pool.Fee }

func (e *constantProductEngine) TotalShares() math.Int { return e.pool.TotalShares }

// Quote returns the output of a swap without changing the pool.
func (e *constantProductEngine) Quote(tokenIn string, amountIn math.Int, tokenOut string) (math.Int, error) {
	in, out, err := e.pool.pairIndices(tokenIn, tokenOut)
	if err != nil {
		return math.Int{}, err
	}
	return e.pool.amountOut(in, amountIn, out)
}

// Swap prices the trade, enforces minAmountOut and moves the reserves.
func (e *constantProductEngine) Swap(tokenIn string, amountIn math.Int, tokenOut string, minAmountOut math.Int) (math.Int, error) {
	if minAmountOut.IsNil() {
		minAmountOut = math.ZeroInt()
	}
	if minAmountOut.IsNegative() {
		return math.Int{}, ErrInvalidRequest.Wrapf("min amount out %s must be non-negative", minAmountOut)
	}
	in, out, err := e.pool.pairIndices(tokenIn, tokenOut)
	if err != nil {
		return math.Int{}, err
	}
	amountOut, err := e.pool.amountOut(in, amountIn, out)
	if err != nil {
		return math.Int{}, err
	}
	if amountOut.LT(minAmountOut) {
		return math.Int{}, ErrSlippageExceeded.Wrapf("amount out %s%s below minimum %s", amountOut, tokenOut, minAmountOut)
	}
	if amountOut.IsZero() {
		return math.Int{}, ErrInvariantViolation.Wrapf("swap of %s%s rounds to zero output", amountIn, tokenIn)
	}
	newIn, err := CheckedAdd(e.pool.Reserves[in], amountIn)
	if err != nil {
		return math.Int{}, err
	}

	e.pool.Reserves[in] = newIn
	e.pool.Reserves[out] = e.pool.Reserves[out].Sub(amountOut)
	return amountOut, nil
}

// AddLiquidity deposits amounts (one per token, in pool order) and mints shares.
// The first deposit sets the price and mints InitSharesSupply. Later deposits
// must match the current reserve ratio exactly.
func (e *constantProductEngine) AddLiquidity(provider sdk.AccAddress, amounts []math.Int) (math.Int, error) {
	if e.shares == nil {
		return math.Int{}, ErrInvalidConfiguration.Wrap("pool engine has no share ledger")
	}
	if len(amounts) != len(e.pool.Tokens) {
		return math.Int{}, ErrInvalidRequest.Wrapf("expected %d amounts, got %d", len(e.pool.Tokens), len(amounts))
	}
	for _, a := range amounts {
		if err := CheckAmount(a); err != nil {
			return math.Int{}, err
		}
	}

	if e.pool.TotalShares.IsZero() {
		for i, a := range amounts {
			if !a.IsPositive() {
				return math.Int{}, ErrInvariantViolation.Wrapf("initial deposit of %s must be positive", e.pool.Tokens[i])
			}
		}
		for i, a := range amounts {
			e.pool.Reserves[i] = a
		}
		e.pool.TotalShares = InitSharesSupply
		e.shares.SetShares(provider, InitSharesSupply)
		return InitSharesSupply, nil
	}

	var minted math.Int
	for i, a := range amounts {
		if e.pool.Reserves[i].IsZero() {
			return math.Int{}, ErrInvariantViolation.Wrapf("pool reserve of %s is zero", e.pool.Tokens[i])
		}
		s, err := MulDiv(a, e.pool.TotalShares, e.pool.Reserves[i])
		if err != nil {
			return math.Int{}, err
		}
		if minted.IsNil() || s.LT(minted) {
			minted = s
		}
	}
	if minted.IsZero() {
		return math.Int{}, ErrInvariantViolation.Wrap("deposit too small to mint shares")
	}

	required, err := e.RequiredAmountsForShares(minted)
	if err != nil {
		return math.Int{}, err
	}
	for i := range amounts {
		if !amounts[i].Equal(required[i]) {
			return math.Int{}, ErrInvariantViolation.Wrapf("deposit does not match pool ratio: %s requires %s, got %s",
				e.pool.Tokens[i], required[i], amounts[i])
		}
	}

	newReserves := make([]math.Int, len(amounts))
	for i := range amounts {
		if newReserves[i], err = CheckedAdd(e.pool.Reserves[i], amounts[i]); err != nil {
			return math.Int{}, err
		}
	}
	newTotal, err := CheckedAdd(e.pool.TotalShares, minted)
	if err != nil {
		return math.Int{}, err
	}
	balance, err := CheckedAdd(e.ShareBalanceOf(provider), minted)
	if err != nil {
		return math.Int{}, err
	}

	e.pool.Reserves = newReserves
	e.pool.TotalShares = newTotal
	e.shares.SetShares(provider, balance)
	return minted, nil
}

// RemoveLiquidity burns shares and pays out the proportional part of every
// reserve, rounded down. An empty minAmountsOut means no minimums.
func (e *constantProductEngine) RemoveLiquidity(provider sdk.AccAddress, shares math.Int, minAmountsOut []math.Int) ([]math.Int, error) {
	if e.shares == nil {
		return nil, ErrInvalidConfiguration.Wrap("pool engine has no share ledger")
	}
	if len(minAmountsOut) != 0 && len(minAmountsOut) != len(e.pool.Tokens) {
		return nil, ErrInvalidRequest.Wrapf("expected %d minimum amounts, got %d", len(e.pool.Tokens), len(minAmountsOut))
	}
	if shares.IsNil() || !shares.IsPositive() {
		return nil, ErrInvariantViolation.Wrap("shares to burn must be positive")
	}
	balance := e.ShareBalanceOf(provider)
	if balance.LT(shares) {
		return nil, ErrInsufficientBalance.Wrapf("provider holds %s shares, requested %s", balance, shares)
	}

	amounts := make([]math.Int, len(e.pool.Tokens))
	for i, r := range e.pool.Reserves {
		out, err := MulDiv(r, shares, e.pool.TotalShares)
		if err != nil {
			return nil, err
		}
		if len(minAmountsOut) != 0 && out.LT(minAmountsOut[i]) {
			return nil, ErrSlippageExceeded.Wrapf("%s out %s below minimum %s", e.pool.Tokens[i], out, minAmountsOut[i])
		}
		amounts[i] = out
	}

	for i := range amounts {
		e.pool.Reserves[i] = e.pool.Reserves[i].Sub(amounts[i])
	}
	e.pool.TotalShares = e.pool.TotalShares.Sub(shares)
	e.shares.SetShares(provider, balance.Sub(shares))
	return amounts, nil
}

// ShareBalanceOf returns the provider's shares, zero when absent.
func (e *constantProductEngine) ShareBalanceOf(provider sdk.AccAddress) math.Int {
	if e.shares == nil {
		return math.ZeroInt()
	}
	return e.shares.GetShares(provider)
}

// RequiredAmountsForShares returns what must be deposited, rounded up, to mint
// exactly shares at the current reserves.
func (e *constantProductEngine) RequiredAmountsForShares(shares math.Int) ([]math.Int, error) {
	if e.pool.TotalShares.IsZero() {
		return nil, ErrInvariantViolation.Wrap("pool has no liquidity")
	}
	if shares.IsNil() || !shares.IsPositive() {
		return nil, ErrInvariantViolation.Wrap("shares must be positive")
	}
	required := make([]math.Int, len(e.pool.Reserves))
	for i, r := range e.pool.Reserves {
		need, err := MulDivCeil(r, shares, e.pool.TotalShares)
		if err != nil {
			return nil, err
		}
		required[i] = need
	}
	return required, nil
}

func (e *constantProductEngine) Validate() error {
	p := e.pool
	if err := validatePoolConfig(p.Tokens, p.Fee); err != nil {
		return err
	}
	if len(p.Reserves) != len(p.Tokens) {
		return ErrInvalidConfiguration.Wrapf("%d reserves for %d tokens", len(p.Reserves), len(p.Tokens))
	}
	if err := CheckAmount(p.TotalShares); err != nil {
		return fmt.Errorf("total shares: %w", err)
	}
	empty := true
	for i, r := range p.Reserves {
		if err := CheckAmount(r); err != nil {
			return fmt.Errorf("reserve of %s: %w", p.Tokens[i], err)
		}
		if !r.IsZero() {
			empty = false
		}
	}
	if p.TotalShares.IsZero() != empty {
		return ErrInvariantViolation.Wrapf("total shares %s inconsistent with reserves %v", p.TotalShares, p.Reserves)
	}
	return nil
}
