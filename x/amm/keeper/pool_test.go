package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestCreatePool(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := keepertest.TestAddr("creator")

	poolID, err := f.Keeper.CreatePool(f.Ctx, creator, denomY, denomX)
	require.NoError(t, err)
	require.Equal(t, uint64(1), poolID)

	pool, err := f.Keeper.GetPool(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	require.Equal(t, types.Pair{X: denomX, Y: denomY}, pool.Pair)
	require.Equal(t, creator.String(), pool.Creator)
	require.Equal(t, types.DefaultFeeParams(), pool.Fees)
	require.True(t, pool.Reserves.IsEmpty())
	require.Equal(t, types.Balances{}, pool.Balances)
	require.Zero(t, pool.LPSupply)
	require.True(t, pool.KLast.IsZero())

	require.True(t, f.Keeper.PoolExists(f.Ctx, denomX, denomY))
	require.True(t, f.Keeper.PoolExists(f.Ctx, denomY, denomX))
	require.False(t, f.Keeper.PoolExists(f.Ctx, denomX, "uosmo"))
	require.True(t, hasEvent(f.Ctx.EventManager().Events(), types.EventTypePoolCreated))

	poolID, err = f.Keeper.CreatePool(f.Ctx, creator, "uosmo", denomX)
	require.NoError(t, err)
	require.Equal(t, uint64(2), poolID)
	require.Equal(t, uint64(3), f.Keeper.GetNextPoolID(f.Ctx))

	byID, err := f.Keeper.GetPoolByID(f.Ctx, 2)
	require.NoError(t, err)
	require.Equal(t, types.Pair{X: denomX, Y: "uosmo"}, byID.Pair)

	pools, err := f.Keeper.GetAllPools(f.Ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
}

func TestCreatePoolErrors(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := keepertest.TestAddr("creator")
	_, err := f.Keeper.CreatePool(f.Ctx, creator, denomX, denomY)
	require.NoError(t, err)

	tests := []struct {
		name           string
		assetA, assetB string
		wantErr        error
	}{
		{name: "duplicate", assetA: denomX, assetB: denomY, wantErr: types.ErrAlreadyExists},
		{name: "duplicate reversed", assetA: denomY, assetB: denomX, wantErr: types.ErrAlreadyExists},
		{name: "same asset", assetA: denomX, assetB: denomX, wantErr: types.ErrInvalidTokenPair},
		{name: "empty asset", assetA: "", assetB: denomX, wantErr: types.ErrInvalidTokenPair},
		{name: "invalid denom", assetA: "0bad", assetB: denomX, wantErr: types.ErrInvalidTokenPair},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := f.Snapshot()
			_, err := f.Keeper.CreatePool(f.Ctx, creator, tc.assetA, tc.assetB)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, before, f.Snapshot())
		})
	}
	require.Equal(t, uint64(2), f.Keeper.GetNextPoolID(f.Ctx))
}

func TestGetPoolNotFound(t *testing.T) {
	f := keepertest.AmmKeeper(t)

	_, err := f.Keeper.GetPool(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetPoolByID(f.Ctx, 99)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	pools, err := f.Keeper.GetAllPools(f.Ctx)
	require.NoError(t, err)
	require.Empty(t, pools)
}
