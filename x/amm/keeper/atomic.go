package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/amm/x/amm/types"
)

// atomically runs fn on a cache context. Store writes, ledger transfers and
// events reach the parent context only if fn returns nil, so a failed
// operation leaves no trace.
//
// Every call is traced as module.amm.<op> on the global tracer provider,
// which is a no-op until the host installs one.
func (k Keeper) atomically(ctx context.Context, op string, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	spanCtx, span := otel.Tracer(types.ModuleName).Start(sdkCtx.Context(), fmt.Sprintf("module.%s.%s", types.ModuleName, op),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("module.name", types.ModuleName),
			attribute.String("module.operation", op),
			attribute.Int64("block.height", sdkCtx.BlockHeight()),
		),
	)
	defer span.End()

	cacheCtx, writeFn := sdkCtx.WithContext(spanCtx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	writeFn()
	span.SetStatus(codes.Ok, "")
	return nil
}
