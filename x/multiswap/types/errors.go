package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Multiswap module sentinel errors. Every failure the module reports wraps
// exactly one of these, so callers can tell failure kinds apart with errors.Is.
var (
	ErrInvalidConfiguration = errorsmod.Register(ModuleName, 2, "invalid configuration")
	ErrNotFound             = errorsmod.Register(ModuleName, 3, "not found")
	ErrInsufficientBalance  = errorsmod.Register(ModuleName, 4, "insufficient balance")
	ErrInvariantViolation   = errorsmod.Register(ModuleName, 5, "invariant violation")
	ErrSlippageExceeded     = errorsmod.Register(ModuleName, 6, "slippage exceeded")
	ErrOverflow             = errorsmod.Register(ModuleName, 7, "arithmetic overflow")
	ErrInvalidRequest       = errorsmod.Register(ModuleName, 8, "invalid request")
	ErrUnauthorized         = errorsmod.Register(ModuleName, 9, "unauthorized")
)

// Stable, machine readable error kinds.
const (
	KindInvalidConfiguration = "INVALID_CONFIGURATION"
	KindNotFound             = "NOT_FOUND"
	KindInsufficientBalance  = "INSUFFICIENT_BALANCE"
	KindInvariantViolation   = "INVARIANT_VIOLATION"
	KindSlippageExceeded     = "SLIPPAGE_EXCEEDED"
	KindOverflow             = "ARITHMETIC_OVERFLOW"
	KindInvalidRequest       = "INVALID_REQUEST"
	KindUnauthorized         = "UNAUTHORIZED"
	KindInternal             = "INTERNAL"
)

var errorKinds = []struct {
	err  *errorsmod.Error
	kind string
}{
	{ErrInvalidConfiguration, KindInvalidConfiguration},
	{ErrNotFound, KindNotFound},
	{ErrInsufficientBalance, KindInsufficientBalance},
	{ErrInvariantViolation, KindInvariantViolation},
	{ErrSlippageExceeded, KindSlippageExceeded},
	{ErrOverflow, KindOverflow},
	{ErrInvalidRequest, KindInvalidRequest},
	{ErrUnauthorized, KindUnauthorized},
}

// ErrorKind maps err to its kind. Errors that do not wrap a module sentinel
// are reported as KindInternal.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, ek := range errorKinds {
		if errorsmod.IsOf(err, ek.err) {
			return ek.kind
		}
	}
	return KindInternal
}
