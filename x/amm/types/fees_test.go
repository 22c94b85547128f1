package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePoolFees(t *testing.T) {
	tests := []struct {
		name                     string
		liquidity, team, rewards uint64
		wantErr                  bool
	}{
		{name: "all zero", liquidity: 0, team: 0, rewards: 0},
		{name: "sum exactly at cap", liquidity: 1000, team: 300, rewards: 200},
		{name: "sum above cap", liquidity: 1000, team: 400, rewards: 200, wantErr: true},
		{name: "single tier above cap", liquidity: 1501, wantErr: true},
		{name: "sum wraps uint64", liquidity: 1, team: ^uint64(0), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePoolFees(tc.liquidity, tc.team, tc.rewards)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrExcessiveFee)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTreasuryFee(t *testing.T) {
	require.NoError(t, ValidateTreasuryFee(0))
	require.NoError(t, ValidateTreasuryFee(MaxTreasuryFeeBps))
	require.ErrorIs(t, ValidateTreasuryFee(MaxTreasuryFeeBps+1), ErrExcessiveFee)
}

func TestFeeParamsDerivedRates(t *testing.T) {
	fees := DefaultFeeParams()
	require.Equal(t, uint64(10), fees.TotalBps())
	require.Equal(t, uint64(30), fees.FeeDenominator())
	require.Equal(t, uint64(40), fees.EffectiveSwapFeeBps())
	require.NoError(t, fees.Validate())

	fees = FeeParams{LiquidityFeeBps: 25, TreasuryFeeBps: 5, TeamFeeBps: 10, RewardsFeeBps: 5}
	require.Equal(t, uint64(45), fees.TotalBps())
	require.Equal(t, uint64(20), fees.SkimmedBps())
	require.Equal(t, uint64(65), fees.FeeDenominator())
	require.Equal(t, uint64(85), fees.EffectiveSwapFeeBps())
}

func TestComputeFeeShares(t *testing.T) {
	fees := FeeParams{TreasuryFeeBps: 10, TeamFeeBps: 20, RewardsFeeBps: 5}

	shares, err := fees.ComputeFeeShares(10_000)
	require.NoError(t, err)
	require.Equal(t, FeeShares{Treasury: 10, Team: 20, Rewards: 5}, shares)
	require.Equal(t, uint64(35), shares.Total())

	// floors per tier
	shares, err = fees.ComputeFeeShares(999)
	require.NoError(t, err)
	require.Equal(t, FeeShares{Treasury: 0, Team: 1, Rewards: 0}, shares)
}

func TestFeeBalancesCredit(t *testing.T) {
	var balances FeeBalances
	require.NoError(t, balances.Credit(SideX, FeeShares{Treasury: 1, Team: 2, Rewards: 3}))
	require.NoError(t, balances.Credit(SideY, FeeShares{Treasury: 4, Team: 5, Rewards: 6}))
	require.NoError(t, balances.Credit(SideX, FeeShares{Treasury: 1}))

	require.Equal(t, FeeBalances{TreasuryX: 2, TeamX: 2, RewardsX: 3, TreasuryY: 4, TeamY: 5, RewardsY: 6}, balances)

	x, err := balances.Side(SideX)
	require.NoError(t, err)
	require.Equal(t, uint64(7), x)
	y, err := balances.Side(SideY)
	require.NoError(t, err)
	require.Equal(t, uint64(15), y)

	balances.TeamX = ^uint64(0)
	require.ErrorIs(t, balances.Credit(SideX, FeeShares{Team: 1}), ErrOverflow)
}
