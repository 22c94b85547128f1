package keeper

import (
	"context"
	"errors"
	"strconv"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// swapAmounts are the per-side flows of one swap, in canonical order.
type swapAmounts struct {
	XIn, YIn   uint64
	XOut, YOut uint64
}

func (a swapAmounts) in(side types.Side) uint64 {
	if side == types.SideX {
		return a.XIn
	}
	return a.YIn
}

func (a swapAmounts) out(side types.Side) uint64 {
	if side == types.SideX {
		return a.XOut
	}
	return a.YOut
}

// swapResult is what a committed swap reports to metrics.
type swapResult struct {
	pool   types.Pool
	shares types.FeeShares
	feeIn  types.Side
}

// swap is the low-level constant product swap on a staged context:
//
//  1. both outputs zero -> ErrInsufficientOutputAmount
//  2. any output >= its reserve -> ErrInsufficientLiquidity
//  3. deposit inputs from trader
//  4. skim treasury, team and rewards shares of each input into fee balances
//  5. pay outputs to recipient
//  6. K check against the pre-swap reserves
//  7. settle
//
// Any failure leaves the staged context to be discarded by the caller.
func (k Keeper) swap(ctx sdk.Context, pool *types.Pool, trader, recipient sdk.AccAddress, amounts swapAmounts) (types.FeeShares, error) {
	if amounts.XOut == 0 && amounts.YOut == 0 {
		return types.FeeShares{}, types.ErrInsufficientOutputAmount.Wrap("both outputs are zero")
	}
	reserves := pool.Reserves
	if amounts.XOut >= reserves.ReserveX || amounts.YOut >= reserves.ReserveY {
		return types.FeeShares{}, types.ErrInsufficientLiquidity.Wrapf(
			"outputs %d/%d not below reserves %d/%d", amounts.XOut, amounts.YOut, reserves.ReserveX, reserves.ReserveY)
	}
	if amounts.XIn == 0 && amounts.YIn == 0 {
		return types.FeeShares{}, types.ErrInsufficientInputAmount.Wrap("both inputs are zero")
	}

	var skimmed types.FeeShares
	for _, side := range []types.Side{types.SideX, types.SideY} {
		amountIn := amounts.in(side)
		if amountIn == 0 {
			continue
		}
		if err := k.deposit(ctx, pool, side, trader, amountIn); err != nil {
			return types.FeeShares{}, err
		}
		shares, err := pool.Fees.ComputeFeeShares(amountIn)
		if err != nil {
			return types.FeeShares{}, err
		}
		if err := skimFees(pool, side, shares); err != nil {
			return types.FeeShares{}, err
		}
		skimmed = shares
	}

	for _, side := range []types.Side{types.SideX, types.SideY} {
		if err := k.extract(ctx, pool, side, recipient, amounts.out(side)); err != nil {
			return types.FeeShares{}, err
		}
	}

	check := types.KCheck{
		BalanceX:       pool.Balances.X,
		BalanceY:       pool.Balances.Y,
		AmountXIn:      amounts.XIn,
		AmountYIn:      amounts.YIn,
		ReserveX:       reserves.ReserveX,
		ReserveY:       reserves.ReserveY,
		FeeDenominator: pool.Fees.FeeDenominator(),
	}
	if err := check.Verify(); err != nil {
		return types.FeeShares{}, err
	}

	if err := k.settle(ctx, pool); err != nil {
		return types.FeeShares{}, err
	}
	return skimmed, nil
}

// skimFees moves the fee shares of an input out of the tradable balance into
// the pool's fee balances.
func skimFees(pool *types.Pool, side types.Side, shares types.FeeShares) error {
	total := shares.Total()
	if total == 0 {
		return nil
	}
	if err := pool.Extract(side, total); err != nil {
		return err
	}
	return pool.FeeBalances.Credit(side, shares)
}

// executeSwap runs one directional swap atomically. amountIn is deposited
// in full; amountOut is the output of the requested side. A nonzero output
// on the input side is a defect and aborts the swap.
func (k Keeper) executeSwap(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	pair types.Pair,
	dir types.SwapDirection,
	amountIn uint64,
	price func(pool types.Pool) (uint64, error),
) (amountOut uint64, err error) {
	start := time.Now()
	var result swapResult

	err = k.atomically(ctx, "swap", func(ctx sdk.Context) error {
		pool, err := k.getPool(ctx, pair)
		if err != nil {
			return err
		}
		if pool.Reserves.IsEmpty() {
			return types.ErrInsufficientLiquidity.Wrapf("pool %d has no reserves", pool.Id)
		}

		amountOut, err = price(pool)
		if err != nil {
			return err
		}

		var amounts swapAmounts
		if dir == types.XToY {
			amounts = swapAmounts{XIn: amountIn, YOut: amountOut}
		} else {
			amounts = swapAmounts{YIn: amountIn, XOut: amountOut}
		}
		if residual := amounts.out(dir.In()); residual != 0 {
			return types.ErrInsufficientOutputAmount.Wrapf("residual output %d on input side", residual)
		}

		shares, err := k.swap(ctx, &pool, trader, recipient, amounts)
		if err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmountXIn, strconv.FormatUint(amounts.XIn, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountYIn, strconv.FormatUint(amounts.YIn, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountXOut, strconv.FormatUint(amounts.XOut, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountYOut, strconv.FormatUint(amounts.YOut, 10)),
			),
		)
		result = swapResult{pool: pool, shares: shares, feeIn: dir.In()}
		return nil
	})

	k.recordSwap(ctx, pair, dir, amountIn, result, err, time.Since(start))
	if err != nil {
		return 0, err
	}
	return amountOut, nil
}

func (k Keeper) recordSwap(ctx context.Context, pair types.Pair, dir types.SwapDirection, amountIn uint64, result swapResult, err error, elapsed time.Duration) {
	k.metrics.SwapLatency.Observe(elapsed.Seconds())
	if err != nil {
		poolID := k.poolLabel(ctx, pair)
		if errors.Is(err, types.ErrKInvariantViolation) {
			k.metrics.KInvariantRejects.WithLabelValues(poolID).Inc()
			k.Logger(ctx).Error("swap rejected by constant product check", "pair", poolID, "direction", dir.String(), "error", err)
		}
		k.metrics.SwapsTotal.WithLabelValues(poolID, dir.String(), "failed").Inc()
		return
	}

	pool := result.pool
	poolID := strconv.FormatUint(pool.Id, 10)
	inDenom := pool.Pair.Denom(result.feeIn)
	k.metrics.SwapsTotal.WithLabelValues(poolID, dir.String(), "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(poolID, inDenom).Add(float64(amountIn))
	k.metrics.FeesAccrued.WithLabelValues(poolID, inDenom, types.FeeClassTreasury).Add(float64(result.shares.Treasury))
	k.metrics.FeesAccrued.WithLabelValues(poolID, inDenom, types.FeeClassTeam).Add(float64(result.shares.Team))
	k.metrics.FeesAccrued.WithLabelValues(poolID, inDenom, types.FeeClassRewards).Add(float64(result.shares.Rewards))
	k.metrics.recordPoolState(pool)
}

// poolLabel returns the metrics label of the pair's pool, or the pair itself
// when no pool exists.
func (k Keeper) poolLabel(ctx context.Context, pair types.Pair) string {
	pool, err := k.getPool(ctx, pair)
	if err != nil {
		return pair.String()
	}
	return strconv.FormatUint(pool.Id, 10)
}

// exactInPrice prices amountIn with the pool's effective swap fee.
func exactInPrice(dir types.SwapDirection, amountIn uint64) func(types.Pool) (uint64, error) {
	return func(pool types.Pool) (uint64, error) {
		return types.GetAmountOut(
			amountIn,
			pool.Reserves.Get(dir.In()),
			pool.Reserves.Get(dir.Out()),
			pool.Fees.EffectiveSwapFeeBps(),
		)
	}
}

// exactOutPrice returns the requested output as is. The K check is the
// only guard that the supplied input pays for it.
func exactOutPrice(amountOut uint64) func(types.Pool) (uint64, error) {
	return func(types.Pool) (uint64, error) {
		return amountOut, nil
	}
}

// SwapExactXForY sells exactly amountIn of the pair's X asset and sends the
// priced Y output to recipient.
func (k Keeper) SwapExactXForY(ctx context.Context, trader sdk.AccAddress, pair types.Pair, amountIn uint64, recipient sdk.AccAddress) (uint64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}
	return k.executeSwap(ctx, trader, recipient, pair, types.XToY, amountIn, exactInPrice(types.XToY, amountIn))
}

// SwapExactYForX sells exactly amountIn of the pair's Y asset.
func (k Keeper) SwapExactYForX(ctx context.Context, trader sdk.AccAddress, pair types.Pair, amountIn uint64, recipient sdk.AccAddress) (uint64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}
	return k.executeSwap(ctx, trader, recipient, pair, types.YToX, amountIn, exactInPrice(types.YToX, amountIn))
}

// SwapXForExactY deposits all of amountIn of X and buys exactly amountOut of
// Y. The whole input is consumed, so callers should size it with
// QuoteExactOut. Returns the input consumed.
func (k Keeper) SwapXForExactY(ctx context.Context, trader sdk.AccAddress, pair types.Pair, amountIn, amountOut uint64, recipient sdk.AccAddress) (uint64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}
	if _, err := k.executeSwap(ctx, trader, recipient, pair, types.XToY, amountIn, exactOutPrice(amountOut)); err != nil {
		return 0, err
	}
	return amountIn, nil
}

// SwapYForExactX deposits all of amountIn of Y and buys exactly amountOut of X.
func (k Keeper) SwapYForExactX(ctx context.Context, trader sdk.AccAddress, pair types.Pair, amountIn, amountOut uint64, recipient sdk.AccAddress) (uint64, error) {
	if err := pair.Validate(); err != nil {
		return 0, err
	}
	if _, err := k.executeSwap(ctx, trader, recipient, pair, types.YToX, amountIn, exactOutPrice(amountOut)); err != nil {
		return 0, err
	}
	return amountIn, nil
}

// resolveDirection maps a (tokenIn, tokenOut) trade onto its canonical pair.
func resolveDirection(tokenIn, tokenOut string) (types.Pair, types.SwapDirection, error) {
	pair, flipped, err := types.NewPair(tokenIn, tokenOut)
	if err != nil {
		return types.Pair{}, 0, err
	}
	if flipped {
		return pair, types.YToX, nil
	}
	return pair, types.XToY, nil
}

// SwapExactIn sells exactly amountIn of tokenIn for tokenOut.
func (k Keeper) SwapExactIn(ctx context.Context, trader sdk.AccAddress, tokenIn, tokenOut string, amountIn uint64, recipient sdk.AccAddress) (uint64, error) {
	pair, dir, err := resolveDirection(tokenIn, tokenOut)
	if err != nil {
		return 0, err
	}
	if dir == types.XToY {
		return k.SwapExactXForY(ctx, trader, pair, amountIn, recipient)
	}
	return k.SwapExactYForX(ctx, trader, pair, amountIn, recipient)
}

// SwapExactOut buys exactly amountOut of tokenOut with all of amountIn of tokenIn.
func (k Keeper) SwapExactOut(ctx context.Context, trader sdk.AccAddress, tokenIn, tokenOut string, amountIn, amountOut uint64, recipient sdk.AccAddress) (uint64, error) {
	pair, dir, err := resolveDirection(tokenIn, tokenOut)
	if err != nil {
		return 0, err
	}
	if dir == types.XToY {
		return k.SwapXForExactY(ctx, trader, pair, amountIn, amountOut, recipient)
	}
	return k.SwapYForExactX(ctx, trader, pair, amountIn, amountOut, recipient)
}
