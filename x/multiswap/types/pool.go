package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// FeeDenominator is the denominator of every pool fee.
	FeeDenominator = 1000

	// MinPoolTokens and MaxPoolTokens bound the number of tokens a pool may hold.
	MinPoolTokens = 2
	MaxPoolTokens = 10
)

// InitSharesSupply is the share supply minted to the first liquidity provider.
var InitSharesSupply = math.NewIntWithDecimal(1, 24)

// PoolType tags the pricing variant of a pool.
type PoolType string

const (
	PoolTypeConstantProduct PoolType = "constant_product"
)

// Pool is the stored pool record. Exactly one variant body is set, matching Type.
type Pool struct {
	Id              uint64               `json:"id"`
	Type            PoolType             `json:"type"`
	ConstantProduct *ConstantProductPool `json:"constant_product,omitempty"`
}

// PoolInfo is the read-only view of a pool returned by queries.
type PoolInfo struct {
	Id          uint64     `json:"id"`
	Type        PoolType   `json:"type"`
	Tokens      []string   `json:"tokens"`
	Reserves    []math.Int `json:"reserves"`
	Fee         uint32     `json:"fee"`
	TotalShares math.Int   `json:"total_shares"`
}

// ShareLedger stores the LP share balances of a single pool.
// Setting a zero balance removes the entry.
type ShareLedger interface {
	GetShares(provider sdk.AccAddress) math.Int
	SetShares(provider sdk.AccAddress, shares math.Int)
}

// PoolEngine is the pricing and accounting behaviour shared by every pool variant.
// Engines mutate the record they were built from; callers persist it afterwards.
type PoolEngine interface {
	Tokens() []string
	Reserves() []math.Int
	Fee() uint32
	TotalShares() math.Int

	Quote(tokenIn string, amountIn math.Int, tokenOut string) (math.Int, error)
	Swap(tokenIn string, amountIn math.Int, tokenOut string, minAmountOut math.Int) (math.Int, error)
	AddLiquidity(provider sdk.AccAddress, amounts []math.Int) (math.Int, error)
	RemoveLiquidity(provider sdk.AccAddress, shares math.Int, minAmountsOut []math.Int) ([]math.Int, error)
	ShareBalanceOf(provider sdk.AccAddress) math.Int
	RequiredAmountsForShares(shares math.Int) ([]math.Int, error)

	Validate() error
}

// NewConstantProductPoolRecord builds an empty constant-product pool record.
func NewConstantProductPoolRecord(id uint64, tokens []string, fee uint32) (Pool, error) {
	body, err := NewConstantProductPool(tokens, fee)
	if err != nil {
		return Pool{}, err
	}
	return Pool{Id: id, Type: PoolTypeConstantProduct, ConstantProduct: body}, nil
}

// Engine returns the engine for the pool's variant. shares may be nil for
// read-only use; liquidity operations then fail.
func (p *Pool) Engine(shares ShareLedger) (PoolEngine, error) {
	switch p.Type {
	case PoolTypeConstantProduct:
		if p.ConstantProduct == nil {
			return nil, ErrInvalidConfiguration.Wrapf("pool %d: missing constant product body", p.Id)
		}
		return &constantProductEngine{pool: p.ConstantProduct, shares: shares}, nil
	default:
		return nil, ErrInvalidConfiguration.Wrapf("pool %d: unknown pool type %q", p.Id, p.Type)
	}
}

// Info returns the read-only view of the pool.
func (p Pool) Info() (PoolInfo, error) {
	engine, err := p.Engine(nil)
	if err != nil {
		return PoolInfo{}, err
	}
	return PoolInfo{
		Id:          p.Id,
		Type:        p.Type,
		Tokens:      engine.Tokens(),
		Reserves:    engine.Reserves(),
		Fee:         engine.Fee(),
		TotalShares: engine.TotalShares(),
	}, nil
}

// Validate checks the record for internal consistency.
func (p Pool) Validate() error {
	engine, err := p.Engine(nil)
	if err != nil {
		return err
	}
	if err := engine.Validate(); err != nil {
		return fmt.Errorf("pool %d: %w", p.Id, err)
	}
	return nil
}

// HasToken reports whether denom is one of the pool's tokens.
func (p Pool) HasToken(denom string) bool {
	engine, err := p.Engine(nil)
	if err != nil {
		return false
	}
	for _, t := range engine.Tokens() {
		if t == denom {
			return true
		}
	}
	return false
}
