package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	metrics    *AMMMetrics

	moduleAddressCache sdk.AccAddress
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(key storetypes.StoreKey, bankKeeper types.BankKeeper) Keeper {
	return Keeper{
		storeKey:           key,
		bankKeeper:         bankKeeper,
		metrics:            NewAMMMetrics(),
		moduleAddressCache: authtypes.NewModuleAddress(types.ModuleName),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetModuleAddress returns the address of the module account that custodies
// every pool's assets.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddressCache
}
