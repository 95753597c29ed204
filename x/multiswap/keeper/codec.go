package keeper

import (
	"fmt"

	"cosmossdk.io/math"
)

func marshalInt(x math.Int) []byte {
	bz, err := x.Marshal()
	if err != nil {
		panic(fmt.Errorf("marshal int %s: %w", x, err))
	}
	return bz
}

func unmarshalInt(bz []byte) (math.Int, error) {
	var x math.Int
	if err := x.Unmarshal(bz); err != nil {
		return math.Int{}, err
	}
	return x, nil
}

// mustUnmarshalInt decodes a stored balance. A value that does not decode means
// the store is corrupt, which no caller can recover from.
func mustUnmarshalInt(bz []byte) math.Int {
	x, err := unmarshalInt(bz)
	if err != nil {
		panic(fmt.Errorf("corrupt balance in store: %w", err))
	}
	return x
}
