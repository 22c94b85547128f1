package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestUninitializedModule(t *testing.T) {
	f := keepertest.AmmKeeperUninitialized(t)
	someone := keepertest.TestAddr("someone")

	_, err := f.Keeper.GetConfig(f.Ctx)
	require.ErrorIs(t, err, types.ErrNotInitialized)

	_, err = f.Keeper.CreatePool(f.Ctx, someone, denomX, denomY)
	require.ErrorIs(t, err, types.ErrNotInitialized)
	require.False(t, f.Keeper.PoolExists(f.Ctx, denomX, denomY))

	require.ErrorIs(t, f.Keeper.SetAdmin(f.Ctx, f.Admin, someone), types.ErrNotInitialized)
	require.ErrorIs(t, f.Keeper.SetFeeRecipient(f.Ctx, f.Admin, someone), types.ErrNotInitialized)

	require.Equal(t, uint64(1), f.Keeper.GetNextPoolID(f.Ctx))
}

func TestSetAdmin(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	newAdmin := keepertest.TestAddr("new-admin")

	require.ErrorIs(t, f.Keeper.SetAdmin(f.Ctx, newAdmin, newAdmin), types.ErrNotAdmin)
	require.ErrorIs(t, f.Keeper.SetAdmin(f.Ctx, f.Admin, f.Admin), types.ErrSameAdmin)

	require.NoError(t, f.Keeper.SetAdmin(f.Ctx, f.Admin, newAdmin))
	cfg, err := f.Keeper.GetConfig(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, newAdmin.String(), cfg.Admin)
	require.Equal(t, f.FeeRecipient.String(), cfg.FeeRecipient)
	require.True(t, hasEvent(f.Ctx.EventManager().Events(), types.EventTypeAdminChanged))

	// the old admin lost every admin-gated operation
	require.ErrorIs(t, f.Keeper.SetAdmin(f.Ctx, f.Admin, f.Admin), types.ErrNotAdmin)
	require.ErrorIs(t, f.Keeper.SetFeeRecipient(f.Ctx, f.Admin, f.Admin), types.ErrNotAdmin)

	creator := keepertest.TestAddr("creator")
	_, err = f.Keeper.CreatePool(f.Ctx, creator, denomX, denomY)
	require.NoError(t, err)
	require.ErrorIs(t, f.Keeper.SetTreasuryFee(f.Ctx, f.Admin, denomX, denomY, 1), types.ErrNotAdmin)
	require.NoError(t, f.Keeper.SetTreasuryFee(f.Ctx, newAdmin, denomX, denomY, 1))
}

func TestSetFeeRecipient(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	newRecipient := keepertest.TestAddr("new-recipient")

	require.ErrorIs(t, f.Keeper.SetFeeRecipient(f.Ctx, f.FeeRecipient, newRecipient), types.ErrNotAdmin)
	require.ErrorIs(t, f.Keeper.SetFeeRecipient(f.Ctx, f.Admin, f.FeeRecipient), types.ErrSameAdmin)

	require.NoError(t, f.Keeper.SetFeeRecipient(f.Ctx, f.Admin, newRecipient))
	cfg, err := f.Keeper.GetConfig(f.Ctx)
	require.NoError(t, err)
	require.True(t, cfg.IsFeeRecipient(newRecipient))
	require.False(t, cfg.IsFeeRecipient(f.FeeRecipient))
	require.True(t, cfg.IsAdmin(f.Admin))
	require.True(t, hasEvent(f.Ctx.EventManager().Events(), types.EventTypeFeeRecipientChanged))
}

func TestSetConfigValidates(t *testing.T) {
	f := keepertest.AmmKeeperUninitialized(t)
	require.Error(t, f.Keeper.SetConfig(f.Ctx, types.GlobalConfig{Admin: "not-an-address"}))

	_, err := f.Keeper.GetConfig(f.Ctx)
	require.ErrorIs(t, err, types.ErrNotInitialized)

	require.NoError(t, f.Keeper.SetConfig(f.Ctx, types.NewGlobalConfig(f.Admin, f.FeeRecipient)))
	cfg, err := f.Keeper.GetConfig(f.Ctx)
	require.NoError(t, err)
	require.True(t, cfg.IsAdmin(f.Admin))
}
