package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// GetConfig returns the global config, or ErrNotInitialized before genesis
// assigned the protocol roles.
func (k Keeper) GetConfig(ctx context.Context) (types.GlobalConfig, error) {
	bz := k.getStore(ctx).Get(types.ConfigKey)
	if bz == nil {
		return types.GlobalConfig{}, types.ErrNotInitialized.Wrap("global config not set")
	}

	var cfg types.GlobalConfig
	if err := types.ModuleCdc.Unmarshal(bz, &cfg); err != nil {
		return types.GlobalConfig{}, fmt.Errorf("GetConfig: unmarshal: %w", err)
	}
	return cfg, nil
}

// SetConfig stores the global config
func (k Keeper) SetConfig(ctx context.Context, cfg types.GlobalConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("SetConfig: %w", err)
	}
	bz, err := types.ModuleCdc.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("SetConfig: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ConfigKey, bz)
	return nil
}

// SetAdmin hands the admin role to newAdmin. Only the current admin may call it.
func (k Keeper) SetAdmin(ctx context.Context, caller, newAdmin sdk.AccAddress) error {
	return k.atomically(ctx, "set_admin", func(ctx sdk.Context) error {
		cfg, err := k.GetConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.IsAdmin(caller) {
			return types.ErrNotAdmin.Wrapf("%s is not the admin", caller)
		}
		if cfg.IsAdmin(newAdmin) {
			return types.ErrSameAdmin.Wrapf("%s is already the admin", newAdmin)
		}

		old := cfg.Admin
		cfg.Admin = newAdmin.String()
		if err := k.SetConfig(ctx, cfg); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAdminChanged,
				sdk.NewAttribute(types.AttributeKeyOldValue, old),
				sdk.NewAttribute(types.AttributeKeyNewValue, cfg.Admin),
			),
		)
		return nil
	})
}

// SetFeeRecipient changes the treasury fee recipient. Admin only.
func (k Keeper) SetFeeRecipient(ctx context.Context, caller, newRecipient sdk.AccAddress) error {
	return k.atomically(ctx, "set_fee_recipient", func(ctx sdk.Context) error {
		cfg, err := k.GetConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.IsAdmin(caller) {
			return types.ErrNotAdmin.Wrapf("%s is not the admin", caller)
		}
		if cfg.IsFeeRecipient(newRecipient) {
			return types.ErrSameAdmin.Wrapf("%s is already the fee recipient", newRecipient)
		}

		old := cfg.FeeRecipient
		cfg.FeeRecipient = newRecipient.String()
		if err := k.SetConfig(ctx, cfg); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeeRecipientChanged,
				sdk.NewAttribute(types.AttributeKeyOldValue, old),
				sdk.NewAttribute(types.AttributeKeyNewValue, cfg.FeeRecipient),
			),
		)
		return nil
	})
}
