package keeper

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/amm/x/amm/types"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	KInvariantRejects *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	LPTokenSupply    *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal  prometheus.Gauge
	PoolFeeTier *prometheus.GaugeVec

	// Fee metrics
	FeesAccrued   *prometheus.CounterVec
	FeesWithdrawn *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted",
				},
				[]string{"pool_id", "direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			KInvariantRejects: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "k_invariant_rejects_total",
					Help:      "Swaps rejected by the constant product check",
				},
				[]string{"pool_id"},
			),

			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "lp_token_supply",
					Help:      "LP token supply per pool",
				},
				[]string{"pool_id"},
			),

			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Total number of liquidity pools",
				},
			),
			PoolFeeTier: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_fee_tier",
					Help:      "Pool fee tier in basis points",
				},
				[]string{"pool_id", "tier"},
			),

			FeesAccrued: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "fees_accrued_total",
					Help:      "Fee shares skimmed from swap inputs",
				},
				[]string{"pool_id", "denom", "class"},
			),
			FeesWithdrawn: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "fees_withdrawn_total",
					Help:      "Fee balances paid out to recipients",
				},
				[]string{"pool_id", "denom", "class"},
			),
		}
	})
	return ammMetrics
}

// recordPoolState refreshes the gauges of a pool after it settled.
func (m *AMMMetrics) recordPoolState(pool types.Pool) {
	if m == nil {
		return
	}
	poolID := strconv.FormatUint(pool.Id, 10)
	m.PoolReserves.WithLabelValues(poolID, pool.Pair.X).Set(float64(pool.Reserves.ReserveX))
	m.PoolReserves.WithLabelValues(poolID, pool.Pair.Y).Set(float64(pool.Reserves.ReserveY))
	m.LPTokenSupply.WithLabelValues(poolID).Set(float64(pool.LPSupply))
}

// recordFeeTiers refreshes the fee tier gauges of a pool.
func (m *AMMMetrics) recordFeeTiers(pool types.Pool) {
	if m == nil {
		return
	}
	poolID := strconv.FormatUint(pool.Id, 10)
	m.PoolFeeTier.WithLabelValues(poolID, "liquidity").Set(float64(pool.Fees.LiquidityFeeBps))
	m.PoolFeeTier.WithLabelValues(poolID, types.FeeClassTreasury).Set(float64(pool.Fees.TreasuryFeeBps))
	m.PoolFeeTier.WithLabelValues(poolID, types.FeeClassTeam).Set(float64(pool.Fees.TeamFeeBps))
	m.PoolFeeTier.WithLabelValues(poolID, types.FeeClassRewards).Set(float64(pool.Fees.RewardsFeeBps))
}
