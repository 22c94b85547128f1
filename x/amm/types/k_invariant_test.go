package types

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestKCheckVerify(t *testing.T) {
	tests := []struct {
		name    string
		check   KCheck
		wantErr bool
	}{
		{
			name:  "untouched pool",
			check: KCheck{BalanceX: 1000, BalanceY: 1000, ReserveX: 1000, ReserveY: 1000, FeeDenominator: 50},
		},
		{
			// (1100*1e4 - 100*50) * 910*1e4 = 10995000 * 9100000 >= 1e14
			name: "priced trade",
			check: KCheck{
				BalanceX: 1100, BalanceY: 910, AmountXIn: 100,
				ReserveX: 1000, ReserveY: 1000, FeeDenominator: 50,
			},
		},
		{
			// 10995000 * 9090000 < 1e14
			name: "one unit too much output",
			check: KCheck{
				BalanceX: 1100, BalanceY: 909, AmountXIn: 100,
				ReserveX: 1000, ReserveY: 1000, FeeDenominator: 50,
			},
			wantErr: true,
		},
		{
			name: "fee charge exceeds balance",
			check: KCheck{
				BalanceX: 1, BalanceY: 1000, AmountXIn: 1000,
				ReserveX: 1000, ReserveY: 1000, FeeDenominator: 50,
			},
			wantErr: true,
		},
		{
			name: "wide path untouched",
			check: KCheck{
				BalanceX: math.MaxUint64, BalanceY: math.MaxUint64,
				ReserveX: math.MaxUint64, ReserveY: math.MaxUint64, FeeDenominator: 20,
			},
		},
		{
			name: "wide path one unit short",
			check: KCheck{
				BalanceX: math.MaxUint64, BalanceY: math.MaxUint64 - 1,
				ReserveX: math.MaxUint64, ReserveY: math.MaxUint64, FeeDenominator: 20,
			},
			wantErr: true,
		},
		{
			name: "zero fee floor still charges input",
			check: KCheck{
				BalanceX: 2000, BalanceY: 500, AmountXIn: 1000,
				ReserveX: 1000, ReserveY: 1000, FeeDenominator: ProtocolFeeFloorBps,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check.Verify()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrKInvariantViolation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNarrowAndWideProductsAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint64().Draw(t, "a")
		b := rapid.Uint64().Draw(t, "b")
		c := rapid.Uint64().Draw(t, "c")
		d := rapid.Uint64().Draw(t, "d")

		narrow := narrowProductLess(a, b, c, d)
		wide := wideProductLess(uint256.NewInt(a), uint256.NewInt(b), uint256.NewInt(c), uint256.NewInt(d))
		require.Equal(t, wide, narrow)
	})
}

func TestWideProductOfLargeFactors(t *testing.T) {
	// 2^127 * 2^127 = 2^254 fits, and exceeds 2^127 * (2^127 - 1)
	big := new(uint256.Int).Lsh(uint256.NewInt(1), 127)
	smaller := new(uint256.Int).Sub(big, uint256.NewInt(1))

	require.True(t, productLess(big, smaller, big, big))
	require.False(t, productLess(big, big, big, smaller))
	require.False(t, productLess(big, big, big, big))
}

func TestKCheckAcceptsPricedTrades(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := rapid.Uint64Range(1, 1<<62).Draw(t, "reserveIn")
		reserveOut := rapid.Uint64Range(1, 1<<62).Draw(t, "reserveOut")
		amountIn := rapid.Uint64Range(1, 1<<62).Draw(t, "amountIn")
		fees := FeeParams{
			LiquidityFeeBps: rapid.Uint64Range(0, 500).Draw(t, "liquidity"),
			TreasuryFeeBps:  rapid.Uint64Range(0, MaxTreasuryFeeBps).Draw(t, "treasury"),
			TeamFeeBps:      rapid.Uint64Range(0, 500).Draw(t, "team"),
			RewardsFeeBps:   rapid.Uint64Range(0, 500).Draw(t, "rewards"),
		}

		out, err := GetAmountOut(amountIn, reserveIn, reserveOut, fees.EffectiveSwapFeeBps())
		require.NoError(t, err)
		shares, err := fees.ComputeFeeShares(amountIn)
		require.NoError(t, err)

		check := KCheck{
			BalanceX:       reserveIn + amountIn - shares.Total(),
			BalanceY:       reserveOut - out,
			AmountXIn:      amountIn,
			ReserveX:       reserveIn,
			ReserveY:       reserveOut,
			FeeDenominator: fees.FeeDenominator(),
		}
		require.NoError(t, check.Verify())
	})
}
