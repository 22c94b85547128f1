package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "settled-reserves", SettledReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-account-balance", ModuleAccountBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "lp-supply", LPSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "minimum-liquidity", MinimumLiquidityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "constant-product", ConstantProductInvariant(k))
}

// AllInvariants runs all invariants of the AMM module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			SettledReservesInvariant(k),
			ModuleAccountBalanceInvariant(k),
			LPSupplyInvariant(k),
			MinimumLiquidityInvariant(k),
			ConstantProductInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// poolsInvariant runs check on every pool and formats the collected failures.
func poolsInvariant(k Keeper, route string, check func(ctx sdk.Context, pool types.Pool) string) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if failure := check(ctx, pool); failure != "" {
				count++
				msg += fmt.Sprintf("pool %d (%s): %s\n", pool.Id, pool.Pair, failure)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, route,
			fmt.Sprintf("found %d pools violating %s\n%s", count, route, msg),
		), broken
	}
}

// SettledReservesInvariant checks that every pool's reserves equal its
// tradable balances. Every operation settles before it commits.
func SettledReservesInvariant(k Keeper) sdk.Invariant {
	return poolsInvariant(k, "settled-reserves", func(_ sdk.Context, pool types.Pool) string {
		if pool.Reserves.ReserveX != pool.Balances.X || pool.Reserves.ReserveY != pool.Balances.Y {
			return fmt.Sprintf("reserves %d/%d differ from balances %d/%d",
				pool.Reserves.ReserveX, pool.Reserves.ReserveY, pool.Balances.X, pool.Balances.Y)
		}
		return ""
	})
}

// ModuleAccountBalanceInvariant checks that the module account holds at
// least the custody of all pools, per denom. Custody is the tradable balance
// plus every accrued fee class.
func ModuleAccountBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		custody := make(map[string]math.Int)
		var denoms []string
		var msg string

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			for _, side := range []types.Side{types.SideX, types.SideY} {
				held, err := pool.Custody(side)
				if err != nil {
					msg += fmt.Sprintf("pool %d: custody %s: %v\n", pool.Id, side, err)
					continue
				}
				denom := pool.Pair.Denom(side)
				if _, ok := custody[denom]; !ok {
					custody[denom] = math.ZeroInt()
					denoms = append(denoms, denom)
				}
				custody[denom] = custody[denom].Add(math.NewIntFromUint64(held))
			}
			return false
		})
		if err != nil {
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		moduleAddr := k.GetModuleAddress()
		for _, denom := range denoms {
			balance := k.bankKeeper.GetBalance(ctx, moduleAddr, denom)
			if balance.Amount.LT(custody[denom]) {
				msg += fmt.Sprintf("module balance %s%s below pool custody %s\n", balance.Amount, denom, custody[denom])
			}
		}

		broken := msg != ""
		return sdk.FormatInvariant(
			types.ModuleName, "module-account-balance",
			fmt.Sprintf("module account balance does not cover pool custody\n%s", msg),
		), broken
	}
}

// LPSupplyInvariant checks that each pool's LP supply matches the ledger's
// supply of its LP denom.
func LPSupplyInvariant(k Keeper) sdk.Invariant {
	return poolsInvariant(k, "lp-supply", func(ctx sdk.Context, pool types.Pool) string {
		supply := k.bankKeeper.GetSupply(ctx, pool.LPDenom())
		if !supply.Amount.Equal(math.NewIntFromUint64(pool.LPSupply)) {
			return fmt.Sprintf("lp supply %d, ledger supply %s", pool.LPSupply, supply.Amount)
		}
		return ""
	})
}

// MinimumLiquidityInvariant checks that a pool with liquidity keeps the
// locked minimum at the sink address.
func MinimumLiquidityInvariant(k Keeper) sdk.Invariant {
	return poolsInvariant(k, "minimum-liquidity", func(ctx sdk.Context, pool types.Pool) string {
		if pool.LPSupply == 0 {
			if !pool.Reserves.IsEmpty() {
				return "reserves without lp supply"
			}
			return ""
		}
		locked := k.bankKeeper.GetBalance(ctx, types.LockedLiquidityAddress, pool.LPDenom())
		if locked.Amount.LT(math.NewIntFromUint64(types.MinimumLiquidity)) {
			return fmt.Sprintf("locked liquidity %s below %d", locked.Amount, types.MinimumLiquidity)
		}
		if pool.Reserves.ReserveX == 0 || pool.Reserves.ReserveY == 0 {
			return fmt.Sprintf("empty reserve side %d/%d", pool.Reserves.ReserveX, pool.Reserves.ReserveY)
		}
		return ""
	})
}

// ConstantProductInvariant checks that the reserve product never fell below
// k_last. Swaps only grow it and mint/burn reset k_last to it.
func ConstantProductInvariant(k Keeper) sdk.Invariant {
	return poolsInvariant(k, "constant-product", func(_ sdk.Context, pool types.Pool) string {
		product := types.Product(pool.Reserves.ReserveX, pool.Reserves.ReserveY)
		if product.LT(pool.KLast) {
			return fmt.Sprintf("reserve product %s below k_last %s", product, pool.KLast)
		}
		return ""
	})
}
