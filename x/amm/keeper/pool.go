package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// nextPoolID returns the next pool id and increments the counter
func (k Keeper) nextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	poolID := k.GetNextPoolID(ctx)

	nextBz := make([]byte, 8)
	binary.BigEndian.PutUint64(nextBz, poolID+1)
	store.Set(types.NextPoolIDKey, nextBz)
	return poolID
}

// GetNextPoolID returns the id the next created pool will get.
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.NextPoolIDKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID sets the pool id counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	k.getStore(ctx).Set(types.NextPoolIDKey, bz)
}

// CreatePool registers an empty pool for the canonical pair of assetA and
// assetB, with the caller as creator. Returns ErrAlreadyExists if the pair
// already has a pool in either order.
func (k Keeper) CreatePool(ctx context.Context, caller sdk.AccAddress, assetA, assetB string) (uint64, error) {
	pair, _, err := types.NewPair(assetA, assetB)
	if err != nil {
		return 0, err
	}

	var pool types.Pool
	err = k.atomically(ctx, "create_pool", func(ctx sdk.Context) error {
		// roles must be assigned before pools can accrue treasury fees
		if _, err := k.GetConfig(ctx); err != nil {
			return err
		}
		if k.PoolExists(ctx, assetA, assetB) {
			return types.ErrAlreadyExists.Wrapf("pool for pair %s already exists", pair)
		}

		pool = types.NewPool(k.nextPoolID(ctx), pair, caller)
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePoolCreated,
				sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
				sdk.NewAttribute(types.AttributeKeyAssetX, pair.X),
				sdk.NewAttribute(types.AttributeKeyAssetY, pair.Y),
				sdk.NewAttribute(types.AttributeKeyCreator, caller.String()),
			),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}

	k.metrics.PoolsTotal.Inc()
	k.metrics.recordFeeTiers(pool)
	k.Logger(ctx).Info("pool created", "pool_id", pool.Id, "pair", pair.String(), "creator", caller.String())
	return pool.Id, nil
}

// PoolExists reports whether a pool exists for the pair, in either order.
func (k Keeper) PoolExists(ctx context.Context, assetA, assetB string) bool {
	pair, _, err := types.NewPair(assetA, assetB)
	if err != nil {
		return false
	}
	return k.getStore(ctx).Has(types.PoolKey(pair))
}

// GetPool retrieves the pool of a pair (order-independent).
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	pair, _, err := types.NewPair(assetA, assetB)
	if err != nil {
		return types.Pool{}, err
	}
	return k.getPool(ctx, pair)
}

func (k Keeper) getPool(ctx context.Context, pair types.Pair) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(pair))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool not found for pair %s", pair)
	}

	var pool types.Pool
	if err := types.ModuleCdc.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %s: %w", pair, err)
	}
	return pool, nil
}

// GetPoolByID retrieves a pool by its numeric id.
func (k Keeper) GetPoolByID(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolByIDKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pair types.Pair
	if err := types.ModuleCdc.Unmarshal(bz, &pair); err != nil {
		return types.Pool{}, fmt.Errorf("GetPoolByID: unmarshal pair of pool %d: %w", poolID, err)
	}
	return k.getPool(ctx, pair)
}

// SetPool saves a pool and its id index to the store
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	store := k.getStore(ctx)
	bz, err := types.ModuleCdc.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	pairBz, err := types.ModuleCdc.Marshal(pool.Pair)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pair of pool %d: %w", pool.Id, err)
	}
	store.Set(types.PoolKey(pool.Pair), bz)
	store.Set(types.PoolByIDKey(pool.Id), pairBz)
	return nil
}

// IteratePools iterates over all pools in pair-key order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := types.ModuleCdc.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}
