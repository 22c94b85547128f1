package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestQueriesDoNotMutate(t *testing.T) {
	f, _, _ := setupSwapPool(t)
	before := f.Snapshot()
	events := len(f.Ctx.EventManager().Events())

	_, err := f.Keeper.GetReserves(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	_, err = f.Keeper.GetBalances(f.Ctx, denomY, denomX)
	require.NoError(t, err)
	_, err = f.Keeper.GetFeeParams(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	_, err = f.Keeper.GetFeeBalances(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	_, err = f.Keeper.GetLPSupply(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	_, err = f.Keeper.QuoteExactIn(f.Ctx, denomX, denomY, 1_000)
	require.NoError(t, err)
	_, err = f.Keeper.QuoteExactOut(f.Ctx, denomY, denomX, 1_000)
	require.NoError(t, err)
	_, err = f.Keeper.GetSpotPrice(f.Ctx, denomX, denomY)
	require.NoError(t, err)

	require.Equal(t, before, f.Snapshot())
	require.Len(t, f.Ctx.EventManager().Events(), events)
}

func TestQueriesUnknownPool(t *testing.T) {
	f := keepertest.AmmKeeper(t)

	_, err := f.Keeper.GetReserves(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetBalances(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetFeeParams(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetFeeBalances(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetLPSupply(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.QuoteExactIn(f.Ctx, denomX, denomY, 1)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetSpotPrice(f.Ctx, denomX, denomX)
	require.ErrorIs(t, err, types.ErrInvalidTokenPair)
}

func TestQuoteMatchesExecution(t *testing.T) {
	f, _, _ := setupSwapPool(t)
	trader := keepertest.TestAddr("trader")
	f.FundAmounts(t, trader, 100_000, denomX, denomY)

	quotedOut, err := f.Keeper.QuoteExactIn(f.Ctx, denomX, denomY, 25_000)
	require.NoError(t, err)
	out, err := f.Keeper.SwapExactIn(f.Ctx, trader, denomX, denomY, 25_000, trader)
	require.NoError(t, err)
	require.Equal(t, quotedOut, out)

	// the quoted input prices to at least the requested output
	quotedIn, err := f.Keeper.QuoteExactOut(f.Ctx, denomY, denomX, 12_345)
	require.NoError(t, err)
	outForQuoted, err := f.Keeper.QuoteExactIn(f.Ctx, denomY, denomX, quotedIn)
	require.NoError(t, err)
	require.GreaterOrEqual(t, outForQuoted, uint64(12_345))

	consumed, err := f.Keeper.SwapExactOut(f.Ctx, trader, denomY, denomX, quotedIn, 12_345, trader)
	require.NoError(t, err)
	require.Equal(t, quotedIn, consumed)
	requireInvariantsHold(t, f)
}

func TestGetSpotPrice(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := keepertest.TestAddr("creator")

	_, err := f.Keeper.CreatePool(f.Ctx, creator, denomX, denomY)
	require.NoError(t, err)
	_, err = f.Keeper.GetSpotPrice(f.Ctx, denomX, denomY)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	f.FundAmounts(t, creator, 20_000, denomX, denomY)
	_, _, _, err = f.Keeper.AddLiquidity(f.Ctx, creator, denomX, denomY, 10_000, 20_000)
	require.NoError(t, err)

	price, err := f.Keeper.GetSpotPrice(f.Ctx, denomX, denomY)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(2)), price.String())

	price, err = f.Keeper.GetSpotPrice(f.Ctx, denomY, denomX)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDecWithPrec(5, 1)), price.String())
}
