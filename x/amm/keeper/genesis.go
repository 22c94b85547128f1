package keeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/paw-chain/amm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}

	if genState.Config != nil {
		if err := k.SetConfig(ctx, *genState.Config); err != nil {
			return fmt.Errorf("InitGenesis: set config: %w", err)
		}
	}

	k.SetNextPoolID(ctx, genState.NextPoolId)

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("InitGenesis: set pool %d: %w", pool.Id, err)
		}
		k.metrics.recordPoolState(pool)
		k.metrics.recordFeeTiers(pool)
	}
	k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))

	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	cfg, err := k.GetConfig(ctx)
	switch {
	case err == nil:
		genesis.Config = &cfg
	case !errors.Is(err, types.ErrNotInitialized):
		return nil, fmt.Errorf("ExportGenesis: get config: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: %w", err)
	}
	if pools != nil {
		genesis.Pools = pools
	}
	genesis.NextPoolId = k.GetNextPoolID(ctx)

	return genesis, nil
}
