package types

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

var testCreator = sdk.AccAddress([]byte("amm-test-creator____"))

func TestPoolDepositExtractSettle(t *testing.T) {
	pool := NewPool(1, MustNewPair("uatom", "upaw"), testCreator)
	require.Equal(t, "amm/pool/1", pool.LPDenom())
	require.Equal(t, DefaultTreasuryFeeBps, pool.Fees.TreasuryFeeBps)
	require.True(t, pool.KLast.IsZero())

	require.NoError(t, pool.Deposit(SideX, 500))
	require.NoError(t, pool.Deposit(SideY, 700))

	// extraction must leave the side non-empty
	require.ErrorIs(t, pool.Extract(SideX, 500), ErrInsufficientAmount)
	require.NoError(t, pool.Extract(SideX, 499))
	require.Equal(t, Balances{X: 1, Y: 700}, pool.Balances)

	// reserves only move on settle
	require.True(t, pool.Reserves.IsEmpty())
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	pool.Settle(now)
	require.Equal(t, Reserves{ReserveX: 1, ReserveY: 700, LastSyncTime: now}, pool.Reserves)

	require.ErrorIs(t, pool.Deposit(SideY, ^uint64(0)), ErrOverflow)
}

func TestPoolCustody(t *testing.T) {
	pool := NewPool(1, MustNewPair("uatom", "upaw"), testCreator)
	pool.Balances = Balances{X: 100, Y: 200}
	pool.FeeBalances = FeeBalances{TreasuryX: 1, TeamX: 2, RewardsX: 3, TreasuryY: 4}

	x, err := pool.Custody(SideX)
	require.NoError(t, err)
	require.Equal(t, uint64(106), x)
	y, err := pool.Custody(SideY)
	require.NoError(t, err)
	require.Equal(t, uint64(204), y)
}

func TestPoolValidate(t *testing.T) {
	valid := func() Pool {
		pool := NewPool(1, MustNewPair("uatom", "upaw"), testCreator)
		pool.Balances = Balances{X: 10_000, Y: 10_000}
		pool.Settle(time.Unix(0, 0))
		pool.LPSupply = 10_000
		pool.KLast = math.NewInt(100_000_000)
		return pool
	}

	tests := []struct {
		name   string
		mutate func(*Pool)
	}{
		{name: "non canonical pair", mutate: func(p *Pool) { p.Pair = Pair{X: "upaw", Y: "uatom"} }},
		{name: "bad creator", mutate: func(p *Pool) { p.Creator = "nope" }},
		{name: "excessive fee", mutate: func(p *Pool) { p.Fees.TeamFeeBps = 2000 }},
		{name: "reserves above balances", mutate: func(p *Pool) { p.Reserves.ReserveX = 10_001 }},
		{name: "negative k_last", mutate: func(p *Pool) { p.KLast = math.NewInt(-1) }},
		{name: "reserves without supply", mutate: func(p *Pool) { p.LPSupply = 0 }},
		{name: "supply below locked minimum", mutate: func(p *Pool) { p.LPSupply = MinimumLiquidity - 1 }},
		{name: "custody overflows", mutate: func(p *Pool) { p.FeeBalances.TreasuryX = ^uint64(0) }},
	}

	require.NoError(t, valid().Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool := valid()
			tc.mutate(&pool)
			require.Error(t, pool.Validate())
		})
	}
}
