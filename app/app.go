// Package app hosts the AMM module on a committed multistore.
//
// The App wires the x/auth and x/bank keepers, which serve as the asset
// ledger, together with the amm keeper on a single IAVL multistore backed by
// cosmos-db. Every access to the working state goes through the App, which
// serialises it under one lock: Deliver runs a state transition, Query reads,
// and Commit persists the working state as a new version.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
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

	ammkeeper "github.com/paw-chain/amm/x/amm/keeper"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

const Name = "amm"

// ErrAlreadyInitialized is returned by InitChain on a store that already
// holds committed state.
var ErrAlreadyInitialized = errors.New("chain already initialized")

// module account permissions
var maccPerms = map[string][]string{
	authtypes.FeeCollectorName: nil,
	ammtypes.ModuleName:        ammtypes.ModuleAccountPermissions,
}

const shutdownTimeout = 5 * time.Second

// App is the AMM node state machine.
type App struct {
	logger log.Logger
	db     dbm.DB
	cdc    codec.Codec
	keys   map[string]*storetypes.KVStoreKey

	// mu guards cms. The IAVL working trees are not safe for concurrent use.
	mu  sync.Mutex
	cms storetypes.CommitMultiStore

	telemetry *Telemetry
	metrics   *MetricsServer

	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	AmmKeeper     ammkeeper.Keeper
}

// New opens the database named by cfg, loads the latest committed state and
// starts the tracing exporter and metrics server when cfg enables them.
func New(cfg Config, logger log.Logger) (*App, error) {
	db, err := dbm.NewDB(defaultDBName, dbm.BackendType(cfg.DBBackend), cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database in %s: %w", cfg.DBBackend, cfg.DataDir, err)
	}

	app, err := NewWithDB(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := app.startServices(cfg); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// NewWithDB builds the App on an already opened database.
func NewWithDB(db dbm.DB, logger log.Logger) (*App, error) {
	keys := storetypes.NewKVStoreKeys(authtypes.StoreKey, banktypes.StoreKey, ammtypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	bech32Prefix := sdk.GetConfig().GetBech32AccountAddrPrefix()

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(bech32Prefix),
		bech32Prefix,
		authority,
	)
	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		accountKeeper,
		BlockedModuleAccountAddrs(),
		authority,
		logger,
	)

	return &App{
		logger:        logger,
		db:            db,
		cms:           cms,
		cdc:           cdc,
		keys:          keys,
		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
		AmmKeeper:     ammkeeper.NewKeeper(keys[ammtypes.StoreKey], bankKeeper),
	}, nil
}

// BlockedModuleAccountAddrs returns the module accounts that may not receive
// funds from user sends. The amm module account stays open: a donation to it
// only raises the surplus above pool custody.
func BlockedModuleAccountAddrs() map[string]bool {
	blocked := make(map[string]bool)
	for name := range maccPerms {
		if name == ammtypes.ModuleName {
			continue
		}
		blocked[authtypes.NewModuleAddress(name).String()] = true
	}
	return blocked
}

func (a *App) startServices(cfg Config) error {
	telemetry, err := InitTelemetry(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	a.telemetry = telemetry

	if cfg.MetricsEnabled {
		srv, err := StartMetricsServer(cfg.MetricsAddress, a.logger)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		a.metrics = srv
	}
	return nil
}

// MetricsAddr is the address the metrics server listens on, empty when
// metrics are disabled.
func (a *App) MetricsAddr() string {
	if a.metrics == nil {
		return ""
	}
	return a.metrics.Addr()
}

// Codec returns the proto codec used for auth and bank state.
func (a *App) Codec() codec.Codec {
	return a.cdc
}

// Logger returns the node logger.
func (a *App) Logger() log.Logger {
	return a.logger
}

// LastCommitID returns the id of the latest committed version.
func (a *App) LastCommitID() storetypes.CommitID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cms.LastCommitID()
}

// newContext returns a context for the next block at blockTime. Callers must
// hold mu for as long as the context is in use.
func (a *App) newContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  a.cms.LastCommitID().Version + 1,
		Time:    blockTime,
	}
	return sdk.NewContext(a.cms, header, false, a.logger)
}

// Deliver runs fn as one state transition of the block at blockTime. Its
// writes reach the working state only if fn returns nil; Commit persists
// them. Concurrent calls are serialised.
func (a *App) Deliver(blockTime time.Time, fn func(ctx sdk.Context) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cacheCtx, writeFn := a.newContext(blockTime).CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

// Query runs fn against the working state. Writes made by fn are discarded.
func (a *App) Query(fn func(ctx sdk.Context) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cacheCtx, _ := a.newContext(time.Time{}).CacheContext()
	return fn(cacheCtx)
}

// InitChain loads genesis into a fresh store and commits it as the first
// version.
func (a *App) InitChain(genesisTime time.Time, genesis GenesisState) (storetypes.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cms.LastCommitID().Version != 0 {
		return storetypes.CommitID{}, ErrAlreadyInitialized
	}

	decoded, err := decodeGenesis(a.cdc, genesis)
	if err != nil {
		return storetypes.CommitID{}, fmt.Errorf("InitChain: %w", err)
	}

	ctx, writeFn := a.newContext(genesisTime).CacheContext()
	a.AccountKeeper.InitGenesis(ctx, decoded.auth)
	a.BankKeeper.InitGenesis(ctx, &decoded.bank)
	if err := a.AmmKeeper.InitGenesis(ctx, decoded.amm); err != nil {
		return storetypes.CommitID{}, fmt.Errorf("InitChain: %w", err)
	}

	if err := a.assertInvariants(ctx); err != nil {
		return storetypes.CommitID{}, fmt.Errorf("InitChain: %w", err)
	}

	writeFn()
	cid := a.cms.Commit()
	a.logger.Info("chain initialized", "version", cid.Version, "pools", len(decoded.amm.Pools))
	return cid, nil
}

// Commit persists the working state as a new version.
func (a *App) Commit() storetypes.CommitID {
	a.mu.Lock()
	defer a.mu.Unlock()

	cid := a.cms.Commit()
	a.logger.Debug("committed state", "version", cid.Version, "hash", fmt.Sprintf("%X", cid.Hash))
	return cid
}

// AssertInvariants runs every amm invariant against the working state.
func (a *App) AssertInvariants() error {
	return a.Query(a.assertInvariants)
}

func (a *App) assertInvariants(ctx sdk.Context) error {
	if msg, broken := ammkeeper.AllInvariants(a.AmmKeeper)(ctx); broken {
		a.logger.Error("invariant broken", "report", msg)
		return fmt.Errorf("invariant broken: %s", msg)
	}
	return nil
}

// ExportGenesis exports the working state in the format InitChain reads.
func (a *App) ExportGenesis() (genesis GenesisState, err error) {
	err = a.Query(func(ctx sdk.Context) error {
		genesis, err = a.exportGenesis(ctx)
		return err
	})
	return genesis, err
}

func (a *App) exportGenesis(ctx sdk.Context) (GenesisState, error) {
	genesis := make(GenesisState)

	authGenesis, err := a.cdc.MarshalJSON(a.AccountKeeper.ExportGenesis(ctx))
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: auth: %w", err)
	}
	genesis[authtypes.ModuleName] = authGenesis

	bankGenesis, err := a.cdc.MarshalJSON(a.BankKeeper.ExportGenesis(ctx))
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: bank: %w", err)
	}
	genesis[banktypes.ModuleName] = bankGenesis

	ammGenesis, err := a.AmmKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	bz, err := ammtypes.ModuleCdc.Marshal(ammGenesis)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: amm: %w", err)
	}
	genesis[ammtypes.ModuleName] = bz

	return genesis, nil
}

// Close stops the metrics server, flushes pending spans and releases the
// database.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.Stop(ctx))
	}
	if a.telemetry != nil {
		errs = append(errs, a.telemetry.Shutdown(ctx))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	errs = append(errs, a.db.Close())
	return errors.Join(errs...)
}
