package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	return recorder
}

func TestOperationsAreTraced(t *testing.T) {
	recorder := recordSpans(t)

	f, _, _ := setupSwapPool(t)
	trader := keepertest.TestAddr("trader")
	f.FundAmounts(t, trader, 10_000, denomX)

	_, err := f.Keeper.SwapExactIn(f.Ctx, trader, denomX, denomY, 10_000, trader)
	require.NoError(t, err)
	_, err = f.Keeper.SwapExactIn(f.Ctx, trader, denomX, denomY, 10_000, trader)
	require.Error(t, err)

	spans := recorder.Ended()
	names := make([]string, 0, len(spans))
	for _, span := range spans {
		names = append(names, span.Name())
	}
	require.Equal(t, []string{
		"module.amm.create_pool",
		"module.amm.add_liquidity",
		"module.amm.swap",
		"module.amm.swap",
	}, names)

	ok, failed := spans[2], spans[3]
	require.Equal(t, codes.Ok, ok.Status().Code)
	require.Contains(t, ok.Attributes(), attribute.String("module.operation", "swap"))
	require.Equal(t, codes.Error, failed.Status().Code)
	require.Len(t, failed.Events(), 1, "error recorded on the span")
}

func TestFailedOperationSpanLeavesStateUntouched(t *testing.T) {
	recorder := recordSpans(t)

	f := keepertest.AmmKeeper(t)
	creator := keepertest.TestAddr("creator")
	_, err := f.Keeper.CreatePool(f.Ctx, creator, denomX, denomY)
	require.NoError(t, err)

	before := f.Snapshot()
	_, _, _, err = f.Keeper.AddLiquidity(f.Ctx, creator, denomX, denomY, 1_000, 1_000)
	require.Error(t, err)
	require.Equal(t, before, f.Snapshot())

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "module.amm.add_liquidity", spans[1].Name())
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Contains(t, spans[1].Attributes(), attribute.String("module.name", types.ModuleName))
}
