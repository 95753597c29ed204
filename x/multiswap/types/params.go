package types

import "fmt"

// Params defines the tunable limits of the module.
type Params struct {
	// MaxSwapActions caps the number of actions in one routed trade.
	MaxSwapActions uint32 `json:"max_swap_actions"`
	// MaxPools caps the number of pools the registry will ever hold.
	MaxPools uint64 `json:"max_pools"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		MaxSwapActions: 16,
		MaxPools:       10_000,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.MaxSwapActions == 0 {
		return fmt.Errorf("max swap actions must be positive")
	}
	if p.MaxPools == 0 {
		return fmt.Errorf("max pools must be positive")
	}
	return nil
}
