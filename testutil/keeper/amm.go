package keeper

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdkstd "github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

// GenesisTime is the block time of every test context.
var GenesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// AmmFixture bundles an amm keeper with the bank it settles against and the
// protocol roles assigned at genesis.
type AmmFixture struct {
	Keeper       keeper.Keeper
	Bank         bankkeeper.BaseKeeper
	Ctx          sdk.Context
	Admin        sdk.AccAddress
	FeeRecipient sdk.AccAddress

	storeKeys []storetypes.StoreKey
}

// AmmKeeper creates a test keeper for the AMM module backed by real auth and
// bank keepers on an in-memory IAVL store. The global config is initialised
// with fresh admin and fee recipient addresses. t may be a *rapid.T.
func AmmKeeper(t require.TestingT) *AmmFixture {
	f := AmmKeeperUninitialized(t)

	cfg := types.NewGlobalConfig(f.Admin, f.FeeRecipient)
	gen := types.DefaultGenesis()
	gen.Config = &cfg
	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, *gen))
	return f
}

// AmmKeeperUninitialized is AmmKeeper without genesis, so no global config.
func AmmKeeperUninitialized(t require.TestingT) *AmmFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		minttypes.ModuleName: {authtypes.Minter},
		types.ModuleName:     types.ModuleAccountPermissions,
	}
	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)
	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	k := keeper.NewKeeper(storeKey, bankKeeper)
	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())

	return &AmmFixture{
		Keeper:       k,
		Bank:         bankKeeper,
		Ctx:          ctx,
		Admin:        TestAddr("amm-admin"),
		FeeRecipient: TestAddr("amm-fee-recipient"),
		storeKeys:    []storetypes.StoreKey{storeKey, authStoreKey, bankStoreKey},
	}
}

// TestAddr derives a deterministic 20-byte address from a seed.
func TestAddr(seed string) sdk.AccAddress {
	return authtypes.NewModuleAddress("test/" + seed)
}

// Fund mints coins to addr through the mint module account.
func (f *AmmFixture) Fund(t require.TestingT, addr sdk.AccAddress, coins ...sdk.Coin) {
	amt := sdk.NewCoins(coins...)
	require.NoError(t, f.Bank.MintCoins(f.Ctx, minttypes.ModuleName, amt))
	require.NoError(t, f.Bank.SendCoinsFromModuleToAccount(f.Ctx, minttypes.ModuleName, addr, amt))
}

// FundAmounts mints amount of each denom to addr.
func (f *AmmFixture) FundAmounts(t require.TestingT, addr sdk.AccAddress, amount uint64, denoms ...string) {
	coins := make([]sdk.Coin, 0, len(denoms))
	for _, denom := range denoms {
		coins = append(coins, sdk.NewCoin(denom, math.NewIntFromUint64(amount)))
	}
	f.Fund(t, addr, coins...)
}

// Balance returns addr's balance of denom as uint64.
func (f *AmmFixture) Balance(t require.TestingT, addr sdk.AccAddress, denom string) uint64 {
	amt := f.Bank.GetBalance(f.Ctx, addr, denom).Amount
	require.True(t, amt.IsUint64(), "balance %s of %s overflows uint64", amt, denom)
	return amt.Uint64()
}

// SetupPool creates a pool for (assetA, assetB) owned by creator and seeds
// it with the given liquidity, funding the creator first. Returns the pool id
// and the LP units minted to the creator.
func (f *AmmFixture) SetupPool(t require.TestingT, creator sdk.AccAddress, assetA, assetB string, amountA, amountB uint64) (uint64, uint64) {
	poolID, err := f.Keeper.CreatePool(f.Ctx, creator, assetA, assetB)
	require.NoError(t, err)

	f.Fund(t, creator,
		sdk.NewCoin(assetA, math.NewIntFromUint64(amountA)),
		sdk.NewCoin(assetB, math.NewIntFromUint64(amountB)),
	)
	_, _, minted, err := f.Keeper.AddLiquidity(f.Ctx, creator, assetA, assetB, amountA, amountB)
	require.NoError(t, err)
	return poolID, minted
}

// Snapshot returns every key/value of the amm, auth and bank stores, for
// byte-level comparison of state before and after an operation.
func (f *AmmFixture) Snapshot() map[string][]byte {
	snapshot := make(map[string][]byte)
	for _, key := range f.storeKeys {
		it := f.Ctx.KVStore(key).Iterator(nil, nil)
		for ; it.Valid(); it.Next() {
			snapshot[key.Name()+"/"+string(it.Key())] = append([]byte{}, it.Value()...)
		}
		it.Close()
	}
	return snapshot
}
