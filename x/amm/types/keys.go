package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// LPDenomPrefix prefixes the denom of every pool's LP token
	LPDenomPrefix = "amm/pool/"
)

// Store key prefixes
var (
	PoolKeyPrefix     = []byte{0x01} // prefix for pools keyed by canonical pair
	PoolByIDKeyPrefix = []byte{0x02} // prefix for pool id -> pair index
	NextPoolIDKey     = []byte{0x03} // key for the pool id counter
	ConfigKey         = []byte{0x04} // key for the global config
)

// ModuleAccountPermissions are the ledger permissions of the amm module
// account: it mints and burns LP tokens.
var ModuleAccountPermissions = []string{authtypes.Minter, authtypes.Burner}

// LockedLiquidityAddress receives the minimum liquidity minted on pool genesis.
// It is the all-zero address, so no key can ever sign for it.
var LockedLiquidityAddress = sdk.AccAddress(make([]byte, 20))

// PoolKey returns the store key for the pool of a canonical pair. The length
// prefix on X keeps keys of different pairs from colliding.
func PoolKey(pair Pair) []byte {
	key := make([]byte, 0, len(PoolKeyPrefix)+1+len(pair.X)+len(pair.Y))
	key = append(key, PoolKeyPrefix...)
	key = append(key, byte(len(pair.X)))
	key = append(key, pair.X...)
	return append(key, pair.Y...)
}

// PoolByIDKey returns the store key for the pool id index
func PoolByIDKey(poolID uint64) []byte {
	return append(append([]byte{}, PoolByIDKeyPrefix...), sdk.Uint64ToBigEndian(poolID)...)
}
