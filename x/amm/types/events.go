package types

// Event types for the AMM module
const (
	EventTypePoolCreated         = "amm_pool_created"
	EventTypeAddLiquidity        = "amm_add_liquidity"
	EventTypeRemoveLiquidity     = "amm_remove_liquidity"
	EventTypeSwap                = "amm_swap"
	EventTypePoolFeesUpdated     = "amm_pool_fees_updated"
	EventTypeTreasuryFeeUpdated  = "amm_treasury_fee_updated"
	EventTypeFeeWithdrawn        = "amm_fee_withdrawn"
	EventTypeAdminChanged        = "amm_admin_changed"
	EventTypeFeeRecipientChanged = "amm_fee_recipient_changed"
)

// Event attribute keys
const (
	AttributeKeyPoolID       = "pool_id"
	AttributeKeyAssetX       = "asset_x"
	AttributeKeyAssetY       = "asset_y"
	AttributeKeyCreator      = "creator"
	AttributeKeyProvider     = "provider"
	AttributeKeyTrader       = "trader"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyAmountX      = "amount_x"
	AttributeKeyAmountY      = "amount_y"
	AttributeKeyAmountXIn    = "amount_x_in"
	AttributeKeyAmountYIn    = "amount_y_in"
	AttributeKeyAmountXOut   = "amount_x_out"
	AttributeKeyAmountYOut   = "amount_y_out"
	AttributeKeyLiquidity    = "liquidity"
	AttributeKeyKLast        = "k_last"
	AttributeKeyLiquidityFee = "liquidity_fee_bps"
	AttributeKeyTreasuryFee  = "treasury_fee_bps"
	AttributeKeyTeamFee      = "team_fee_bps"
	AttributeKeyRewardsFee   = "rewards_fee_bps"
	AttributeKeyFeeClass     = "fee_class"
	AttributeKeyOldValue     = "old_value"
	AttributeKeyNewValue     = "new_value"
)

// Fee recipient classes used in events and metrics
const (
	FeeClassTreasury = "treasury"
	FeeClassTeam     = "team"
	FeeClassRewards  = "rewards"
)
