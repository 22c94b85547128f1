package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrAlreadyExists               = errors.Register(ModuleName, 2, "pool already exists")
	ErrInvalidAmount               = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientAmount          = errors.Register(ModuleName, 4, "insufficient amount")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 5, "insufficient liquidity")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 6, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 7, "insufficient liquidity burned")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 8, "insufficient input amount")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 9, "insufficient output amount")
	ErrKInvariantViolation         = errors.Register(ModuleName, 10, "constant product invariant violated")
	ErrNotAdmin                    = errors.Register(ModuleName, 11, "caller is not the admin")
	ErrNotCreator                  = errors.Register(ModuleName, 12, "caller is not the pool creator")
	ErrNotFeeRecipient             = errors.Register(ModuleName, 13, "caller is not the fee recipient")
	ErrExcessiveFee                = errors.Register(ModuleName, 14, "fee exceeds maximum")
	ErrSameAdmin                   = errors.Register(ModuleName, 15, "value unchanged")
	ErrSameFee                     = errors.Register(ModuleName, 16, "fee unchanged")
	ErrNoFeeWithdraw               = errors.Register(ModuleName, 17, "no fee to withdraw")
	ErrNotInitialized              = errors.Register(ModuleName, 18, "module not initialized")

	ErrPoolNotFound     = errors.Register(ModuleName, 30, "pool not found")
	ErrInvalidTokenPair = errors.Register(ModuleName, 31, "invalid token pair")
	ErrOverflow         = errors.Register(ModuleName, 32, "arithmetic overflow")
	ErrInvalidGenesis   = errors.Register(ModuleName, 33, "invalid genesis state")
)
