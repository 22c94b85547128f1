package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// SetPoolFees sets the liquidity, team and rewards fee tiers of a pool.
// Only the pool creator may call it, and their sum is capped at MaxPoolFeeBps.
func (k Keeper) SetPoolFees(ctx context.Context, caller sdk.AccAddress, assetA, assetB string, liquidityBps, teamBps, rewardsBps uint64) error {
	pair, _, err := types.NewPair(assetA, assetB)
	if err != nil {
		return err
	}

	var pool types.Pool
	err = k.atomically(ctx, "set_pool_fees", func(ctx sdk.Context) error {
		var err error
		pool, err = k.getPool(ctx, pair)
		if err != nil {
			return err
		}
		if !pool.IsCreator(caller) {
			return types.ErrNotCreator.Wrapf("%s did not create pool %d", caller, pool.Id)
		}
		if err := types.ValidatePoolFees(liquidityBps, teamBps, rewardsBps); err != nil {
			return err
		}

		old := pool.Fees
		if old.LiquidityFeeBps == liquidityBps && old.TeamFeeBps == teamBps && old.RewardsFeeBps == rewardsBps {
			return types.ErrSameFee.Wrapf("pool %d already has fees %s", pool.Id, old)
		}
		pool.Fees.LiquidityFeeBps = liquidityBps
		pool.Fees.TeamFeeBps = teamBps
		pool.Fees.RewardsFeeBps = rewardsBps
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePoolFeesUpdated,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyLiquidityFee, strconv.FormatUint(liquidityBps, 10)),
				sdk.NewAttribute(types.AttributeKeyTeamFee, strconv.FormatUint(teamBps, 10)),
				sdk.NewAttribute(types.AttributeKeyRewardsFee, strconv.FormatUint(rewardsBps, 10)),
				sdk.NewAttribute(types.AttributeKeyOldValue, old.String()),
				sdk.NewAttribute(types.AttributeKeyNewValue, pool.Fees.String()),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.metrics.recordFeeTiers(pool)
	return nil
}

// SetTreasuryFee sets the treasury fee tier of a pool. Admin only, capped at
// MaxTreasuryFeeBps.
func (k Keeper) SetTreasuryFee(ctx context.Context, caller sdk.AccAddress, assetA, assetB string, treasuryBps uint64) error {
	pair, _, err := types.NewPair(assetA, assetB)
	if err != nil {
		return err
	}

	var pool types.Pool
	err = k.atomically(ctx, "set_treasury_fee", func(ctx sdk.Context) error {
		cfg, err := k.GetConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.IsAdmin(caller) {
			return types.ErrNotAdmin.Wrapf("%s is not the admin", caller)
		}
		pool, err = k.getPool(ctx, pair)
		if err != nil {
			return err
		}
		if err := types.ValidateTreasuryFee(treasuryBps); err != nil {
			return err
		}

		old := pool.Fees.TreasuryFeeBps
		if old == treasuryBps {
			return types.ErrSameFee.Wrapf("pool %d treasury fee already %d bps", pool.Id, old)
		}
		pool.Fees.TreasuryFeeBps = treasuryBps
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeTreasuryFeeUpdated,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyOldValue, strconv.FormatUint(old, 10)),
				sdk.NewAttribute(types.AttributeKeyNewValue, strconv.FormatUint(treasuryBps, 10)),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.metrics.recordFeeTiers(pool)
	return nil
}

// WithdrawTreasuryFee pays the pool's whole treasury balance to the fee
// recipient, who must be the caller. Returns the amounts in the caller's
// asset order.
func (k Keeper) WithdrawTreasuryFee(ctx context.Context, caller sdk.AccAddress, assetA, assetB string) (amountA, amountB uint64, err error) {
	return k.withdrawFee(ctx, caller, assetA, assetB, types.FeeClassTreasury,
		func(ctx sdk.Context, pool types.Pool) error {
			cfg, err := k.GetConfig(ctx)
			if err != nil {
				return err
			}
			if !cfg.IsFeeRecipient(caller) {
				return types.ErrNotFeeRecipient.Wrapf("%s is not the fee recipient", caller)
			}
			return nil
		},
		func(b *types.FeeBalances) (*uint64, *uint64) { return &b.TreasuryX, &b.TreasuryY },
	)
}

// WithdrawTeamFee pays the pool's whole team balance to its creator, who
// must be the caller.
func (k Keeper) WithdrawTeamFee(ctx context.Context, caller sdk.AccAddress, assetA, assetB string) (amountA, amountB uint64, err error) {
	return k.withdrawFee(ctx, caller, assetA, assetB, types.FeeClassTeam,
		func(_ sdk.Context, pool types.Pool) error {
			if !pool.IsCreator(caller) {
				return types.ErrNotCreator.Wrapf("%s did not create pool %d", caller, pool.Id)
			}
			return nil
		},
		func(b *types.FeeBalances) (*uint64, *uint64) { return &b.TeamX, &b.TeamY },
	)
}

// withdrawFee drains one fee class of a pool to the caller once authorize
// accepts them.
func (k Keeper) withdrawFee(
	ctx context.Context,
	caller sdk.AccAddress,
	assetA, assetB string,
	class string,
	authorize func(ctx sdk.Context, pool types.Pool) error,
	balances func(b *types.FeeBalances) (x, y *uint64),
) (amountA, amountB uint64, err error) {
	pair, flipped, err := types.NewPair(assetA, assetB)
	if err != nil {
		return 0, 0, err
	}

	var (
		pool             types.Pool
		amountX, amountY uint64
	)
	err = k.atomically(ctx, "withdraw_"+class+"_fee", func(ctx sdk.Context) error {
		var err error
		pool, err = k.getPool(ctx, pair)
		if err != nil {
			return err
		}
		if err := authorize(ctx, pool); err != nil {
			return err
		}

		x, y := balances(&pool.FeeBalances)
		amountX, amountY = *x, *y
		if amountX == 0 && amountY == 0 {
			return types.ErrNoFeeWithdraw.Wrapf("pool %d has no %s fees", pool.Id, class)
		}
		*x, *y = 0, 0
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.payout(ctx, caller, pair.X, amountX); err != nil {
			return err
		}
		if err := k.payout(ctx, caller, pair.Y, amountY); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeeWithdrawn,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyFeeClass, class),
				sdk.NewAttribute(types.AttributeKeyRecipient, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, strconv.FormatUint(amountX, 10)),
				sdk.NewAttribute(types.AttributeKeyAmountY, strconv.FormatUint(amountY, 10)),
			),
		)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	poolID := strconv.FormatUint(pool.Id, 10)
	k.metrics.FeesWithdrawn.WithLabelValues(poolID, pair.X, class).Add(float64(amountX))
	k.metrics.FeesWithdrawn.WithLabelValues(poolID, pair.Y, class).Add(float64(amountY))
	k.Logger(ctx).Info("fees withdrawn", "pool_id", pool.Id, "class", class, "recipient", caller.String())

	if flipped {
		return amountY, amountX, nil
	}
	return amountX, amountY, nil
}
