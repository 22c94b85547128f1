package keeper

import (
	"context"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// optimalAmounts returns the part of the desired amounts that matches the
// pool's reserve ratio. An empty pool takes the desired amounts as they are.
func optimalAmounts(reserves types.Reserves, xDesired, yDesired uint64) (uint64, uint64, error) {
	if reserves.IsEmpty() {
		return xDesired, yDesired, nil
	}

	yOptimal, err := types.Quote(xDesired, reserves.ReserveX, reserves.ReserveY)
	if err != nil {
		return 0, 0, err
	}
	if yOptimal <= yDesired {
		return xDesired, yOptimal, nil
	}

	xOptimal, err := types.Quote(yDesired, reserves.ReserveY, reserves.ReserveX)
	if err != nil {
		return 0, 0, err
	}
	if xOptimal > xDesired {
		return 0, 0, types.ErrInvalidAmount.Wrapf("optimal x %d exceeds desired %d", xOptimal, xDesired)
	}
	return xOptimal, yDesired, nil
}

// liquidityToMint computes the LP units for a deposit of (x, y).
func liquidityToMint(pool types.Pool, x, y uint64) (uint64, error) {
	if pool.LPSupply == 0 {
		root := types.SqrtProduct(x, y)
		if root <= types.MinimumLiquidity {
			return 0, types.ErrInsufficientLiquidityMinted.Wrapf(
				"sqrt(%d*%d) = %d does not exceed minimum liquidity %d", x, y, root, types.MinimumLiquidity)
		}
		return root - types.MinimumLiquidity, nil
	}

	fromX, err := types.MulDiv(x, pool.LPSupply, pool.Reserves.ReserveX)
	if err != nil {
		return 0, err
	}
	fromY, err := types.MulDiv(y, pool.LPSupply, pool.Reserves.ReserveY)
	if err != nil {
		return 0, err
	}
	liquidity := min(fromX, fromY)
	if liquidity == 0 {
		return 0, types.ErrInsufficientLiquidityMinted.Wrapf("deposit %d/%d mints no liquidity", x, y)
	}
	return liquidity, nil
}

// AddLiquidity deposits up to the desired amounts of both assets into the
// pool of (assetA, assetB) and mints LP tokens to the caller. Amounts are in
// the caller's asset order. Only the amounts matching the reserve ratio are
// taken from the caller; the surplus never leaves the caller's account.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	caller sdk.AccAddress,
	assetA, assetB string,
	amountADesired, amountBDesired uint64,
) (usedA, usedB, minted uint64, err error) {
	pair, flipped, err := types.NewPair(assetA, assetB)
	if err != nil {
		return 0, 0, 0, err
	}
	xDesired, yDesired := amountADesired, amountBDesired
	if flipped {
		xDesired, yDesired = yDesired, xDesired
	}
	if xDesired == 0 || yDesired == 0 {
		return 0, 0, 0, types.ErrInvalidAmount.Wrap("desired amounts must be positive")
	}

	var (
		pool         types.Pool
		usedX, usedY uint64
	)
	err = k.atomically(ctx, "add_liquidity", func(ctx sdk.Context) error {
		var err error
		pool, err = k.getPool(ctx, pair)
		if err != nil {
			return err
		}

		usedX, usedY, err = optimalAmounts(pool.Reserves, xDesired, yDesired)
		if err != nil {
			return err
		}
		liquidity, err := liquidityToMint(pool, usedX, usedY)
		if err != nil {
			return err
		}

		if err := k.deposit(ctx, &pool, types.SideX, caller, usedX); err != nil {
			return err
		}
		if err := k.deposit(ctx, &pool, types.SideY, caller, usedY); err != nil {
			return err
		}

		if pool.LPSupply == 0 {
			if err := k.mintLP(ctx, &pool, types.LockedLiquidityAddress, types.MinimumLiquidity); err != nil {
				return err
			}
		}
		if err := k.mintLP(ctx, &pool, caller, liquidity); err != nil {
			return err
		}

		if err := k.settleLiquidity(ctx, &pool); err != nil {
			return err
		}
		if liquidity == 0 {
			return types.ErrInsufficientLiquidity.Wrap("no liquidity minted")
		}
		minted = liquidity

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyProvider, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, strconv.FormatUint(usedX, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountY, strconv.FormatUint(usedY, 10)),
				sdk.NewAttribute(types.AttributeKeyLiquidity, strconv.FormatUint(liquidity, 10)),
				sdk.NewAttribute(types.AttributeKeyKLast, pool.KLast.String()),
			),
		)
		return nil
	})
	if err != nil {
		return 0, 0, 0, err
	}

	poolID := strconv.FormatUint(pool.Id, 10)
	k.metrics.LiquidityAdded.WithLabelValues(poolID, pair.X).Add(float64(usedX))
	k.metrics.LiquidityAdded.WithLabelValues(poolID, pair.Y).Add(float64(usedY))
	k.metrics.recordPoolState(pool)

	if flipped {
		return usedY, usedX, minted, nil
	}
	return usedX, usedY, minted, nil
}

// RemoveLiquidity burns lpAmount of the caller's LP tokens and pays out the
// proportional share of both balances. Amounts are returned in the caller's
// asset order.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	caller sdk.AccAddress,
	assetA, assetB string,
	lpAmount uint64,
) (amountA, amountB uint64, err error) {
	pair, flipped, err := types.NewPair(assetA, assetB)
	if err != nil {
		return 0, 0, err
	}

	var (
		pool             types.Pool
		amountX, amountY uint64
	)
	err = k.atomically(ctx, "remove_liquidity", func(ctx sdk.Context) error {
		var err error
		pool, err = k.getPool(ctx, pair)
		if err != nil {
			return err
		}
		if pool.LPSupply == 0 {
			return types.ErrInsufficientLiquidity.Wrapf("pool %d has no liquidity", pool.Id)
		}
		if lpAmount > pool.LPSupply {
			return types.ErrInsufficientLiquidityBurned.Wrapf("burn %d exceeds supply %d", lpAmount, pool.LPSupply)
		}

		// shares are taken from balances before the burn
		amountX, err = types.MulDiv(pool.Balances.X, lpAmount, pool.LPSupply)
		if err != nil {
			return err
		}
		amountY, err = types.MulDiv(pool.Balances.Y, lpAmount, pool.LPSupply)
		if err != nil {
			return err
		}
		if amountX == 0 || amountY == 0 {
			return types.ErrInsufficientLiquidityBurned.Wrapf("burning %d returns %d/%d", lpAmount, amountX, amountY)
		}

		if err := k.burnLP(ctx, &pool, caller, lpAmount); err != nil {
			return err
		}
		if err := k.extract(ctx, &pool, types.SideX, caller, amountX); err != nil {
			return err
		}
		if err := k.extract(ctx, &pool, types.SideY, caller, amountY); err != nil {
			return err
		}
		if err := k.settleLiquidity(ctx, &pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyProvider, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, strconv.FormatUint(amountX, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountY, strconv.FormatUint(amountY, 10)),
				sdk.NewAttribute(types.AttributeKeyLiquidity, strconv.FormatUint(lpAmount, 10)),
				sdk.NewAttribute(types.AttributeKeyKLast, pool.KLast.String()),
			),
		)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	poolID := strconv.FormatUint(pool.Id, 10)
	k.metrics.LiquidityRemoved.WithLabelValues(poolID, pair.X).Add(float64(amountX))
	k.metrics.LiquidityRemoved.WithLabelValues(poolID, pair.Y).Add(float64(amountY))
	k.metrics.recordPoolState(pool)

	if flipped {
		return amountY, amountX, nil
	}
	return amountX, amountY, nil
}

// settleLiquidity settles the pool and snapshots k_last from the new reserves.
func (k Keeper) settleLiquidity(ctx sdk.Context, pool *types.Pool) error {
	pool.Settle(ctx.BlockTime())
	pool.KLast = types.Product(pool.Reserves.ReserveX, pool.Reserves.ReserveY)
	if err := k.SetPool(ctx, *pool); err != nil {
		return fmt.Errorf("settleLiquidity: %w", err)
	}
	return nil
}
