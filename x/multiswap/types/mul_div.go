package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// AmountBits is the width of the balance domain. Reserves, ledger balances
// and share supplies must all fit in an unsigned integer of this width.
const AmountBits = 128

// MaxAmount is the largest balance the module can represent (2^128 - 1).
var MaxAmount = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), AmountBits), big.NewInt(1)))

// CheckAmount verifies that x is a non-negative value inside the balance domain.
func CheckAmount(x math.Int) error {
	if x.IsNil() || x.IsNegative() {
		return ErrInvalidRequest.Wrapf("amount %s must be non-negative", x)
	}
	if x.GT(MaxAmount) {
		return ErrOverflow.Wrapf("amount %s exceeds %d bits", x, AmountBits)
	}
	return nil
}

// CheckedAdd returns a+b, failing when the sum leaves the balance domain.
func CheckedAdd(a, b math.Int) (math.Int, error) {
	if err := CheckAmount(a); err != nil {
		return math.Int{}, err
	}
	if err := CheckAmount(b); err != nil {
		return math.Int{}, err
	}
	sum := a.Add(b)
	if sum.GT(MaxAmount) {
		return math.Int{}, ErrOverflow.Wrapf("%s + %s exceeds %d bits", a, b, AmountBits)
	}
	return sum, nil
}

func toUint256(x math.Int) (*uint256.Int, error) {
	if x.IsNil() || x.IsNegative() {
		return nil, ErrInvalidRequest.Wrapf("operand %s must be non-negative", x)
	}
	// math.Int is capped at 256 bits, so a non-negative value always fits.
	v, _ := uint256.FromBig(x.BigInt())
	return v, nil
}

func mulDivOperands(a, b, c math.Int) (x, y, d *uint256.Int, err error) {
	if x, err = toUint256(a); err != nil {
		return nil, nil, nil, err
	}
	if y, err = toUint256(b); err != nil {
		return nil, nil, nil, err
	}
	if d, err = toUint256(c); err != nil {
		return nil, nil, nil, err
	}
	if d.IsZero() {
		return nil, nil, nil, ErrInvariantViolation.Wrap("division by zero")
	}
	return x, y, d, nil
}

func fromUint256(z *uint256.Int) (math.Int, error) {
	if z.BitLen() > AmountBits {
		return math.Int{}, ErrOverflow.Wrapf("result exceeds %d bits", AmountBits)
	}
	return math.NewIntFromBigInt(z.ToBig()), nil
}

// MulDiv computes floor(a*b/c) with a 512-bit intermediate product, so the
// multiplication never overflows. The result must fit the balance domain.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	x, y, d, err := mulDivOperands(a, b, c)
	if err != nil {
		return math.Int{}, err
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return math.Int{}, ErrOverflow.Wrapf("%s * %s / %s exceeds 256 bits", a, b, c)
	}
	return fromUint256(z)
}

// MulDivCeil computes ceil(a*b/c). Used wherever rounding has to favour the pool
// on amounts a caller owes it.
func MulDivCeil(a, b, c math.Int) (math.Int, error) {
	x, y, d, err := mulDivOperands(a, b, c)
	if err != nil {
		return math.Int{}, err
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return math.Int{}, ErrOverflow.Wrapf("%s * %s / %s exceeds 256 bits", a, b, c)
	}
	if !new(uint256.Int).MulMod(x, y, d).IsZero() {
		if _, overflow = z.AddOverflow(z, uint256.NewInt(1)); overflow {
			return math.Int{}, ErrOverflow.Wrapf("ceil(%s * %s / %s) exceeds 256 bits", a, b, c)
		}
	}
	return fromUint256(z)
}
