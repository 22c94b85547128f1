package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GlobalConfig holds the protocol roles.
type GlobalConfig struct {
	Admin        string `json:"admin"`
	FeeRecipient string `json:"fee_recipient"`
}

// NewGlobalConfig builds a config from two addresses.
func NewGlobalConfig(admin, feeRecipient sdk.AccAddress) GlobalConfig {
	return GlobalConfig{Admin: admin.String(), FeeRecipient: feeRecipient.String()}
}

// Validate checks both roles are valid addresses.
func (c GlobalConfig) Validate() error {
	if _, err := sdk.AccAddressFromBech32(c.Admin); err != nil {
		return fmt.Errorf("invalid admin %q: %w", c.Admin, err)
	}
	if _, err := sdk.AccAddressFromBech32(c.FeeRecipient); err != nil {
		return fmt.Errorf("invalid fee recipient %q: %w", c.FeeRecipient, err)
	}
	return nil
}

// IsAdmin reports whether addr is the admin.
func (c GlobalConfig) IsAdmin(addr sdk.AccAddress) bool {
	return c.Admin == addr.String()
}

// IsFeeRecipient reports whether addr is the fee recipient.
func (c GlobalConfig) IsFeeRecipient(addr sdk.AccAddress) bool {
	return c.FeeRecipient == addr.String()
}
