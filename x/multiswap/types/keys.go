package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "multiswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	PoolKeyPrefix              = []byte{0x01} // pool records by id
	PoolCountKey               = []byte{0x02} // next pool id, equal to the pool count
	ShareKeyPrefix             = []byte{0x03} // LP share balances by pool id and provider
	DepositKeyPrefix           = []byte{0x04} // ledger balances by account and denom
	ParamsKey                  = []byte{0x05} // module params
	PendingWithdrawalKeyPrefix = []byte{0x06} // withdrawals awaiting custody confirmation
	WithdrawalSeqKey           = []byte{0x07} // next withdrawal id
	CustodyKeyPrefix           = []byte{0x08} // total funds held in custody by denom
)

func concatKey(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// PoolKey returns the store key for a pool
func PoolKey(poolID uint64) []byte {
	return concatKey(PoolKeyPrefix, sdk.Uint64ToBigEndian(poolID))
}

// PoolSharesPrefix returns the prefix under which all share balances of a pool live
func PoolSharesPrefix(poolID uint64) []byte {
	return concatKey(ShareKeyPrefix, sdk.Uint64ToBigEndian(poolID))
}

// ShareKey returns the store key for a provider's share balance in a pool
func ShareKey(poolID uint64, provider sdk.AccAddress) []byte {
	return concatKey(PoolSharesPrefix(poolID), address.MustLengthPrefix(provider))
}

// AccountDepositsPrefix returns the prefix for every ledger balance of an account
func AccountDepositsPrefix(account sdk.AccAddress) []byte {
	return concatKey(DepositKeyPrefix, address.MustLengthPrefix(account))
}

// DepositKey returns the store key for an account's ledger balance of denom
func DepositKey(account sdk.AccAddress, denom string) []byte {
	return concatKey(AccountDepositsPrefix(account), []byte(denom))
}

// ParseDepositKey splits a key taken from under DepositKeyPrefix (prefix stripped)
// into the account and denom it encodes.
func ParseDepositKey(key []byte) (sdk.AccAddress, string, bool) {
	if len(key) == 0 {
		return nil, "", false
	}
	addrLen := int(key[0])
	if len(key) < 1+addrLen {
		return nil, "", false
	}
	return sdk.AccAddress(key[1 : 1+addrLen]), string(key[1+addrLen:]), true
}

// ParseShareKey splits a key taken from under ShareKeyPrefix (prefix stripped)
// into the pool id and provider it encodes.
func ParseShareKey(key []byte) (uint64, sdk.AccAddress, bool) {
	if len(key) < 9 {
		return 0, nil, false
	}
	poolID := sdk.BigEndianToUint64(key[:8])
	addrLen := int(key[8])
	if len(key) != 9+addrLen {
		return 0, nil, false
	}
	return poolID, sdk.AccAddress(key[9:]), true
}

// PendingWithdrawalKey returns the store key for a pending withdrawal
func PendingWithdrawalKey(id uint64) []byte {
	return concatKey(PendingWithdrawalKeyPrefix, sdk.Uint64ToBigEndian(id))
}

// CustodyKey returns the store key for the custody total of denom
func CustodyKey(denom string) []byte {
	return concatKey(CustodyKeyPrefix, []byte(denom))
}
