package keeper

import (
	"context"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// MultiswapMetrics holds all Prometheus metrics for the multiswap module
type MultiswapMetrics struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Routing metrics
	RoutesTotal  *prometheus.CounterVec
	RouteActions prometheus.Histogram
	RouteLatency prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	PoolsTotal       prometheus.Gauge

	// Custody metrics
	DepositsTotal      *prometheus.CounterVec
	WithdrawalsTotal   *prometheus.CounterVec
	PendingWithdrawals prometheus.Gauge
}

var (
	multiswapMetricsOnce sync.Once
	multiswapMetrics     *MultiswapMetrics
)

// NewMultiswapMetrics creates and registers multiswap metrics (singleton pattern)
func NewMultiswapMetrics() *MultiswapMetrics {
	multiswapMetricsOnce.Do(func() {
		multiswapMetrics = &MultiswapMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "swaps_total",
					Help:      "Total number of committed swaps",
				},
				[]string{"pool_id", "token_in", "token_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			RoutesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "routes_total",
					Help:      "Routed trades by outcome",
				},
				[]string{"status"},
			),
			RouteActions: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "route_actions",
					Help:      "Number of actions in committed routes",
					Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
				},
			),
			RouteLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "route_latency_seconds",
					Help:      "Route execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "liquidity_added_total",
					Help:      "Liquidity provisions by pool",
				},
				[]string{"pool_id"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "liquidity_removed_total",
					Help:      "Liquidity removals by pool",
				},
				[]string{"pool_id"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
			DepositsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "deposits_total",
					Help:      "Confirmed deposits by denom",
				},
				[]string{"denom"},
			),
			WithdrawalsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "withdrawals_total",
					Help:      "Withdrawals by denom and outcome",
				},
				[]string{"denom", "status"},
			),
			PendingWithdrawals: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "multiswap",
					Name:      "pending_withdrawals",
					Help:      "Withdrawals awaiting custody confirmation",
				},
			),
		}
	})
	return multiswapMetrics
}

// approxFloat converts a balance for reporting only. Metrics are the one place
// amounts leave integer arithmetic.
func approxFloat(x math.Int) float64 {
	f, _ := x.ToLegacyDec().Float64()
	return f
}

func (m *MultiswapMetrics) recordSwap(poolID uint64, tokenIn, tokenOut string, amountIn math.Int) {
	id := strconv.FormatUint(poolID, 10)
	m.SwapsTotal.WithLabelValues(id, tokenIn, tokenOut).Inc()
	m.SwapVolume.WithLabelValues(id, tokenIn).Add(approxFloat(amountIn))
}

// observePool refreshes the reserve gauges of a pool from committed state.
func (k Keeper) observePool(ctx context.Context, poolID uint64) {
	info, err := k.GetPoolInfo(ctx, poolID)
	if err != nil {
		return
	}
	id := strconv.FormatUint(poolID, 10)
	for i, denom := range info.Tokens {
		k.metrics.PoolReserves.WithLabelValues(id, denom).Set(approxFloat(info.Reserves[i]))
	}
}

// Metrics returns the module's Prometheus collectors.
func (k Keeper) Metrics() *MultiswapMetrics {
	return k.metrics
}

// SyncGauges sets the state-derived gauges from the store ctx reads. Hosts call
// it after loading state, since gauges start at zero in a fresh process.
func (k Keeper) SyncGauges(ctx context.Context) {
	k.metrics.PoolsTotal.Set(float64(k.GetPoolCount(ctx)))

	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PendingWithdrawalKeyPrefix)
	defer iterator.Close()
	var pending int
	for ; iterator.Valid(); iterator.Next() {
		pending++
	}
	k.metrics.PendingWithdrawals.Set(float64(pending))
}

// RecordCommitted accounts for the events of a committed operation. Counters
// and Info-level audit logs are written here, never from inside an operation.
// ctx must read the state the events produced.
func (k Keeper) RecordCommitted(ctx context.Context, events sdk.Events) {
	logger := k.Logger(ctx)
	touched := make(map[uint64]struct{})

	for _, ev := range events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		poolID, hasPool := parsePoolID(attrs)
		if hasPool {
			touched[poolID] = struct{}{}
		}

		switch ev.Type {
		case types.EventTypePoolCreated:
			logger.Info("pool created", "pool_id", poolID, "tokens", attrs[types.AttributeKeyTokens],
				"fee", attrs[types.AttributeKeyFee], "creator", attrs[types.AttributeKeyCreator])
		case types.EventTypeSwap:
			amountIn, ok := math.NewIntFromString(attrs[types.AttributeKeyAmountIn])
			if hasPool && ok {
				k.metrics.recordSwap(poolID, attrs[types.AttributeKeyTokenIn], attrs[types.AttributeKeyTokenOut], amountIn)
			}
		case types.EventTypeRouteExecuted:
			k.metrics.RoutesTotal.WithLabelValues("committed").Inc()
			if n, err := strconv.Atoi(attrs[types.AttributeKeyActions]); err == nil {
				k.metrics.RouteActions.Observe(float64(n))
			}
		case types.EventTypeLiquidityAdded:
			k.metrics.LiquidityAdded.WithLabelValues(attrs[types.AttributeKeyPoolID]).Inc()
		case types.EventTypeLiquidityRemoved:
			k.metrics.LiquidityRemoved.WithLabelValues(attrs[types.AttributeKeyPoolID]).Inc()
		case types.EventTypeDeposit:
			k.metrics.DepositsTotal.WithLabelValues(attrs[types.AttributeKeyDenom]).Inc()
			logger.Info("deposit credited", "account", attrs[types.AttributeKeyAccount],
				"denom", attrs[types.AttributeKeyDenom], "amount", attrs[types.AttributeKeyAmount])
		case types.EventTypeWithdrawalRequested:
			logger.Info("withdrawal requested", "id", attrs[types.AttributeKeyWithdrawalID], "account", attrs[types.AttributeKeyAccount],
				"denom", attrs[types.AttributeKeyDenom], "amount", attrs[types.AttributeKeyAmount])
		case types.EventTypeWithdrawalCompleted:
			k.metrics.WithdrawalsTotal.WithLabelValues(attrs[types.AttributeKeyDenom], "completed").Inc()
			logger.Info("withdrawal completed", "id", attrs[types.AttributeKeyWithdrawalID], "account", attrs[types.AttributeKeyAccount])
		case types.EventTypeWithdrawalReverted:
			k.metrics.WithdrawalsTotal.WithLabelValues(attrs[types.AttributeKeyDenom], "reverted").Inc()
			logger.Info("withdrawal reverted", "id", attrs[types.AttributeKeyWithdrawalID], "account", attrs[types.AttributeKeyAccount])
		}
	}

	for id := range touched {
		k.observePool(ctx, id)
	}
	k.SyncGauges(ctx)
}

func parsePoolID(attrs map[string]string) (uint64, bool) {
	v, ok := attrs[types.AttributeKeyPoolID]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 64)
	return id, err == nil
}
