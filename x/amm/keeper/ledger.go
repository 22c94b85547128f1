package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// coinsOf builds the coins of a single denom, empty for a zero amount.
func coinsOf(denom string, amount uint64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(denom, math.NewIntFromUint64(amount)))
}

// deposit pulls amount of one side's asset from payer into the module
// account and credits it to the pool's balances.
func (k Keeper) deposit(ctx sdk.Context, pool *types.Pool, side types.Side, payer sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := pool.Deposit(side, amount); err != nil {
		return err
	}
	denom := pool.Pair.Denom(side)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, payer, types.ModuleName, coinsOf(denom, amount)); err != nil {
		return fmt.Errorf("deposit: transfer %d%s from %s: %w", amount, denom, payer, err)
	}
	return nil
}

// extract debits amount from the pool's balances and pays it to recipient.
// The pool side must stay non-empty.
func (k Keeper) extract(ctx sdk.Context, pool *types.Pool, side types.Side, recipient sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := pool.Extract(side, amount); err != nil {
		return err
	}
	return k.payout(ctx, recipient, pool.Pair.Denom(side), amount)
}

// payout sends custodied assets from the module account.
func (k Keeper) payout(ctx sdk.Context, recipient sdk.AccAddress, denom string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coinsOf(denom, amount)); err != nil {
		return fmt.Errorf("payout: transfer %d%s to %s: %w", amount, denom, recipient, err)
	}
	return nil
}

// settle snapshots the pool's balances into its reserves at block time and
// persists the pool.
func (k Keeper) settle(ctx sdk.Context, pool *types.Pool) error {
	pool.Settle(ctx.BlockTime())
	return k.SetPool(ctx, *pool)
}

// mintLP mints LP units of the pool to recipient.
func (k Keeper) mintLP(ctx sdk.Context, pool *types.Pool, recipient sdk.AccAddress, amount uint64) error {
	supply, err := types.SafeAdd(pool.LPSupply, amount)
	if err != nil {
		return err
	}
	coins := coinsOf(pool.LPDenom(), amount)
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return fmt.Errorf("mintLP: mint %s: %w", coins, err)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
		return fmt.Errorf("mintLP: send %s to %s: %w", coins, recipient, err)
	}
	pool.LPSupply = supply
	return nil
}

// burnLP takes LP units of the pool from owner and burns them. The ledger
// rejects the transfer when owner holds fewer units.
func (k Keeper) burnLP(ctx sdk.Context, pool *types.Pool, owner sdk.AccAddress, amount uint64) error {
	supply, err := types.SafeSub(pool.LPSupply, amount)
	if err != nil {
		return types.ErrInsufficientLiquidityBurned.Wrapf("burn %d exceeds supply %d", amount, pool.LPSupply)
	}
	coins := coinsOf(pool.LPDenom(), amount)
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, owner, types.ModuleName, coins); err != nil {
		return fmt.Errorf("burnLP: collect %s from %s: %w", coins, owner, err)
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins); err != nil {
		return fmt.Errorf("burnLP: burn %s: %w", coins, err)
	}
	pool.LPSupply = supply
	return nil
}
