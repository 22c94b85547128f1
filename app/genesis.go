package app

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// GenesisState is the genesis state of the node, keyed by module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns the default genesis of every module. When
// cfg names the protocol roles the amm config is seeded with them.
func NewDefaultGenesisState(cdc codec.JSONCodec, cfg Config) (GenesisState, error) {
	genesis := make(GenesisState)
	genesis[authtypes.ModuleName] = cdc.MustMarshalJSON(authtypes.DefaultGenesisState())
	genesis[banktypes.ModuleName] = cdc.MustMarshalJSON(banktypes.DefaultGenesisState())

	ammGenesis := ammtypes.DefaultGenesis()
	if cfg.Admin != "" {
		admin, err := sdk.AccAddressFromBech32(cfg.Admin)
		if err != nil {
			return nil, fmt.Errorf("admin: %w", err)
		}
		feeRecipient, err := sdk.AccAddressFromBech32(cfg.FeeRecipient)
		if err != nil {
			return nil, fmt.Errorf("fee recipient: %w", err)
		}
		ammConfig := ammtypes.NewGlobalConfig(admin, feeRecipient)
		ammGenesis.Config = &ammConfig
	}
	bz, err := ammtypes.ModuleCdc.Marshal(ammGenesis)
	if err != nil {
		return nil, fmt.Errorf("marshal amm genesis: %w", err)
	}
	genesis[ammtypes.ModuleName] = bz

	return genesis, nil
}

// decodedGenesis holds the typed module genesis states.
type decodedGenesis struct {
	auth authtypes.GenesisState
	bank banktypes.GenesisState
	amm  ammtypes.GenesisState
}

// decodeGenesis unmarshals and validates every module's genesis. A missing
// module falls back to its default.
func decodeGenesis(cdc codec.JSONCodec, gs GenesisState) (decodedGenesis, error) {
	decoded := decodedGenesis{
		auth: *authtypes.DefaultGenesisState(),
		bank: *banktypes.DefaultGenesisState(),
		amm:  *ammtypes.DefaultGenesis(),
	}

	if raw, ok := gs[authtypes.ModuleName]; ok {
		if err := cdc.UnmarshalJSON(raw, &decoded.auth); err != nil {
			return decodedGenesis{}, fmt.Errorf("auth genesis: %w", err)
		}
	}
	if err := authtypes.ValidateGenesis(decoded.auth); err != nil {
		return decodedGenesis{}, fmt.Errorf("auth genesis: %w", err)
	}

	if raw, ok := gs[banktypes.ModuleName]; ok {
		if err := cdc.UnmarshalJSON(raw, &decoded.bank); err != nil {
			return decodedGenesis{}, fmt.Errorf("bank genesis: %w", err)
		}
	}
	if err := decoded.bank.Validate(); err != nil {
		return decodedGenesis{}, fmt.Errorf("bank genesis: %w", err)
	}

	if raw, ok := gs[ammtypes.ModuleName]; ok {
		if err := ammtypes.ModuleCdc.Unmarshal(raw, &decoded.amm); err != nil {
			return decodedGenesis{}, fmt.Errorf("amm genesis: %w", err)
		}
	}
	if err := decoded.amm.Validate(); err != nil {
		return decodedGenesis{}, fmt.Errorf("amm genesis: %w", err)
	}

	return decoded, nil
}
