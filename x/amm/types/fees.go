package types

import "fmt"

const (
	// BpsDenominator is the basis point scale: 10000 bps = 100%.
	BpsDenominator uint64 = 10_000

	// MaxPoolFeeBps caps liquidity + team + rewards fees of a pool.
	MaxPoolFeeBps uint64 = 1_500

	// MaxTreasuryFeeBps caps the treasury fee of a pool.
	MaxTreasuryFeeBps uint64 = 10

	// DefaultTreasuryFeeBps is the treasury fee of a freshly created pool.
	DefaultTreasuryFeeBps uint64 = 10

	// ProtocolFeeFloorBps is added to the configured fee in the K check, so
	// a trade priced below it can never satisfy the invariant.
	ProtocolFeeFloorBps uint64 = 20
)

// FeeParams are the per-pool fee rates in basis points.
type FeeParams struct {
	LiquidityFeeBps uint64 `json:"liquidity_fee_bps"`
	TreasuryFeeBps  uint64 `json:"treasury_fee_bps"`
	TeamFeeBps      uint64 `json:"team_fee_bps"`
	RewardsFeeBps   uint64 `json:"rewards_fee_bps"`
}

// DefaultFeeParams returns the fees a pool starts with.
func DefaultFeeParams() FeeParams {
	return FeeParams{TreasuryFeeBps: DefaultTreasuryFeeBps}
}

// Validate enforces both fee ceilings.
func (f FeeParams) Validate() error {
	if err := ValidatePoolFees(f.LiquidityFeeBps, f.TeamFeeBps, f.RewardsFeeBps); err != nil {
		return err
	}
	return ValidateTreasuryFee(f.TreasuryFeeBps)
}

// ValidatePoolFees checks the creator-controlled tiers against MaxPoolFeeBps.
func ValidatePoolFees(liquidity, team, rewards uint64) error {
	// each tier is bounded first so the sum cannot wrap
	if liquidity > MaxPoolFeeBps || team > MaxPoolFeeBps || rewards > MaxPoolFeeBps ||
		liquidity+team+rewards > MaxPoolFeeBps {
		return ErrExcessiveFee.Wrapf("liquidity %d + team %d + rewards %d bps exceeds %d",
			liquidity, team, rewards, MaxPoolFeeBps)
	}
	return nil
}

// ValidateTreasuryFee checks the treasury tier against MaxTreasuryFeeBps.
func ValidateTreasuryFee(treasury uint64) error {
	if treasury > MaxTreasuryFeeBps {
		return ErrExcessiveFee.Wrapf("treasury fee %d bps exceeds %d", treasury, MaxTreasuryFeeBps)
	}
	return nil
}

// TotalBps is the sum of all four tiers.
func (f FeeParams) TotalBps() uint64 {
	return f.LiquidityFeeBps + f.TreasuryFeeBps + f.TeamFeeBps + f.RewardsFeeBps
}

// SkimmedBps is the part of the fee that leaves the tradable balance on
// every swap (treasury, team and rewards shares).
func (f FeeParams) SkimmedBps() uint64 {
	return f.TreasuryFeeBps + f.TeamFeeBps + f.RewardsFeeBps
}

// FeeDenominator is the per-unit input charge used by the K check.
func (f FeeParams) FeeDenominator() uint64 {
	return f.TotalBps() + ProtocolFeeFloorBps
}

// EffectiveSwapFeeBps is the fee the engine prices exact-input trades with.
// The K check deducts FeeDenominator from the input after the skimmed shares
// have already left the balance, so a quote must charge both to be accepted.
func (f FeeParams) EffectiveSwapFeeBps() uint64 {
	return f.FeeDenominator() + f.SkimmedBps()
}

func (f FeeParams) String() string {
	return fmt.Sprintf("liquidity=%d treasury=%d team=%d rewards=%d",
		f.LiquidityFeeBps, f.TreasuryFeeBps, f.TeamFeeBps, f.RewardsFeeBps)
}

// FeeShares are the skimmed amounts of one swap input.
type FeeShares struct {
	Treasury uint64
	Team     uint64
	Rewards  uint64
}

// Total returns the sum of the shares.
func (s FeeShares) Total() uint64 {
	return s.Treasury + s.Team + s.Rewards
}

// ComputeFeeShares splits amountIn into floor(amountIn * bps / 10000) per tier.
func (f FeeParams) ComputeFeeShares(amountIn uint64) (FeeShares, error) {
	treasury, err := MulDiv(amountIn, f.TreasuryFeeBps, BpsDenominator)
	if err != nil {
		return FeeShares{}, err
	}
	team, err := MulDiv(amountIn, f.TeamFeeBps, BpsDenominator)
	if err != nil {
		return FeeShares{}, err
	}
	rewards, err := MulDiv(amountIn, f.RewardsFeeBps, BpsDenominator)
	if err != nil {
		return FeeShares{}, err
	}
	return FeeShares{Treasury: treasury, Team: team, Rewards: rewards}, nil
}

// FeeBalances are the accrued fee shares of a pool, per recipient class.
type FeeBalances struct {
	TreasuryX uint64 `json:"treasury_x"`
	TreasuryY uint64 `json:"treasury_y"`
	TeamX     uint64 `json:"team_x"`
	TeamY     uint64 `json:"team_y"`
	RewardsX  uint64 `json:"rewards_x"`
	RewardsY  uint64 `json:"rewards_y"`
}

// Credit adds shares skimmed from the given side.
func (b *FeeBalances) Credit(side Side, shares FeeShares) error {
	var err error
	if side == SideX {
		if b.TreasuryX, err = SafeAdd(b.TreasuryX, shares.Treasury); err != nil {
			return err
		}
		if b.TeamX, err = SafeAdd(b.TeamX, shares.Team); err != nil {
			return err
		}
		b.RewardsX, err = SafeAdd(b.RewardsX, shares.Rewards)
		return err
	}
	if b.TreasuryY, err = SafeAdd(b.TreasuryY, shares.Treasury); err != nil {
		return err
	}
	if b.TeamY, err = SafeAdd(b.TeamY, shares.Team); err != nil {
		return err
	}
	b.RewardsY, err = SafeAdd(b.RewardsY, shares.Rewards)
	return err
}

// Side returns the summed fee balances held on one side.
func (b FeeBalances) Side(side Side) (uint64, error) {
	if side == SideX {
		sum, err := SafeAdd(b.TreasuryX, b.TeamX)
		if err != nil {
			return 0, err
		}
		return SafeAdd(sum, b.RewardsX)
	}
	sum, err := SafeAdd(b.TreasuryY, b.TeamY)
	if err != nil {
		return 0, err
	}
	return SafeAdd(sum, b.RewardsY)
}
