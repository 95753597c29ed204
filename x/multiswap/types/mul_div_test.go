package types

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pow2(n uint) math.Int {
	return math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), n))
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name      string
		a, b, c   math.Int
		floor     math.Int
		ceil      math.Int
		expectErr error
	}{
		{
			name:  "exact",
			a:     math.NewInt(6),
			b:     math.NewInt(4),
			c:     math.NewInt(3),
			floor: math.NewInt(8),
			ceil:  math.NewInt(8),
		},
		{
			name:  "rounds",
			a:     math.NewInt(997_000_000),
			b:     math.NewInt(10_000_000),
			c:     math.NewInt(5_997_000_000),
			floor: math.NewInt(1_662_497),
			ceil:  math.NewInt(1_662_498),
		},
		{
			name:  "512-bit intermediate",
			a:     pow2(180),
			b:     pow2(180),
			c:     pow2(240),
			floor: pow2(120),
			ceil:  pow2(120),
		},
		{
			name:  "max amount squared over max amount",
			a:     MaxAmount,
			b:     MaxAmount,
			c:     MaxAmount,
			floor: MaxAmount,
			ceil:  MaxAmount,
		},
		{
			name:      "division by zero",
			a:         math.NewInt(1),
			b:         math.NewInt(1),
			c:         math.ZeroInt(),
			expectErr: ErrInvariantViolation,
		},
		{
			name:      "result exceeds balance domain",
			a:         MaxAmount,
			b:         math.NewInt(2),
			c:         math.NewInt(1),
			expectErr: ErrOverflow,
		},
		{
			name:      "result exceeds 256 bits",
			a:         pow2(255),
			b:         pow2(255),
			c:         math.NewInt(1),
			expectErr: ErrOverflow,
		},
		{
			name:      "negative operand",
			a:         math.NewInt(-1),
			b:         math.NewInt(1),
			c:         math.NewInt(1),
			expectErr: ErrInvalidRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			floor, err := MulDiv(tc.a, tc.b, tc.c)
			ceil, errCeil := MulDivCeil(tc.a, tc.b, tc.c)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				require.ErrorIs(t, errCeil, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, errCeil)
			require.True(t, tc.floor.Equal(floor), "floor: expected %s, got %s", tc.floor, floor)
			require.True(t, tc.ceil.Equal(ceil), "ceil: expected %s, got %s", tc.ceil, ceil)
		})
	}
}

func TestMulDivMatchesBigInt(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint64().Draw(t, "a")
		b := rapid.Uint64().Draw(t, "b")
		c := rapid.Uint64Range(1, ^uint64(0)).Draw(t, "c")

		x := new(big.Int).SetUint64(a)
		y := new(big.Int).SetUint64(b)
		d := new(big.Int).SetUint64(c)
		q, r := new(big.Int).QuoRem(new(big.Int).Mul(x, y), d, new(big.Int))

		floor, err := MulDiv(math.NewIntFromBigInt(x), math.NewIntFromBigInt(y), math.NewIntFromBigInt(d))
		require.NoError(t, err)
		require.Equal(t, q.String(), floor.String())

		ceil, err := MulDivCeil(math.NewIntFromBigInt(x), math.NewIntFromBigInt(y), math.NewIntFromBigInt(d))
		require.NoError(t, err)
		if r.Sign() == 0 {
			require.True(t, ceil.Equal(floor))
		} else {
			require.True(t, ceil.Equal(floor.AddRaw(1)))
		}
	})
}

func TestCheckedAdd(t *testing.T) {
	sum, err := CheckedAdd(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, int64(5), sum.Int64())

	_, err = CheckedAdd(MaxAmount, math.OneInt())
	require.ErrorIs(t, err, ErrOverflow)

	_, err = CheckedAdd(math.NewInt(-1), math.OneInt())
	require.ErrorIs(t, err, ErrInvalidRequest)
}
