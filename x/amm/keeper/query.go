package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/amm/x/amm/types"
)

// Read-only accessors. None of them write to the store.

// GetReserves returns the settled reserves of a pool.
func (k Keeper) GetReserves(ctx context.Context, assetA, assetB string) (types.Reserves, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.Reserves{}, err
	}
	return pool.Reserves, nil
}

// GetBalances returns the tradable balances of a pool.
func (k Keeper) GetBalances(ctx context.Context, assetA, assetB string) (types.Balances, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.Balances{}, err
	}
	return pool.Balances, nil
}

// GetFeeParams returns the fee tiers of a pool.
func (k Keeper) GetFeeParams(ctx context.Context, assetA, assetB string) (types.FeeParams, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.FeeParams{}, err
	}
	return pool.Fees, nil
}

// GetFeeBalances returns the accrued fee balances of a pool.
func (k Keeper) GetFeeBalances(ctx context.Context, assetA, assetB string) (types.FeeBalances, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.FeeBalances{}, err
	}
	return pool.FeeBalances, nil
}

// GetLPSupply returns the LP units outstanding, locked minimum included.
func (k Keeper) GetLPSupply(ctx context.Context, assetA, assetB string) (uint64, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return 0, err
	}
	return pool.LPSupply, nil
}

// QuoteExactIn returns the output SwapExactIn would pay for amountIn of
// tokenIn at the current reserves.
func (k Keeper) QuoteExactIn(ctx context.Context, tokenIn, tokenOut string, amountIn uint64) (uint64, error) {
	pool, dir, err := k.tradePool(ctx, tokenIn, tokenOut)
	if err != nil {
		return 0, err
	}
	return types.GetAmountOut(amountIn, pool.Reserves.Get(dir.In()), pool.Reserves.Get(dir.Out()), pool.Fees.EffectiveSwapFeeBps())
}

// QuoteExactOut returns the input SwapExactOut needs to buy amountOut of
// tokenOut at the current reserves.
func (k Keeper) QuoteExactOut(ctx context.Context, tokenIn, tokenOut string, amountOut uint64) (uint64, error) {
	pool, dir, err := k.tradePool(ctx, tokenIn, tokenOut)
	if err != nil {
		return 0, err
	}
	return types.GetAmountIn(amountOut, pool.Reserves.Get(dir.In()), pool.Reserves.Get(dir.Out()), pool.Fees.EffectiveSwapFeeBps())
}

// GetSpotPrice returns the price of base in units of quote, the reserve
// ratio reserve(quote)/reserve(base).
func (k Keeper) GetSpotPrice(ctx context.Context, base, quote string) (math.LegacyDec, error) {
	pool, dir, err := k.tradePool(ctx, base, quote)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveBase := pool.Reserves.Get(dir.In())
	reserveQuote := pool.Reserves.Get(dir.Out())
	if reserveBase == 0 || reserveQuote == 0 {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no reserves", pool.Id)
	}
	return math.LegacyNewDecFromInt(math.NewIntFromUint64(reserveQuote)).
		Quo(math.LegacyNewDecFromInt(math.NewIntFromUint64(reserveBase))), nil
}

func (k Keeper) tradePool(ctx context.Context, tokenIn, tokenOut string) (types.Pool, types.SwapDirection, error) {
	pair, dir, err := resolveDirection(tokenIn, tokenOut)
	if err != nil {
		return types.Pool{}, 0, err
	}
	pool, err := k.getPool(ctx, pair)
	if err != nil {
		return types.Pool{}, 0, err
	}
	return pool, dir, nil
}
