package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("puzzle-league/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entry points only. Middleware and
// response helpers share the handler's span, and requests the otelhttp filter
// skipped (health checks) have no parent to attach to.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	op, ok := handlerOperation(name)
	if !ok {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attribute.String("league.operation", op)))
}

// handlerOperation returns the handler method behind a span name.
func handlerOperation(name string) (string, bool) {
	op, ok := strings.CutPrefix(name, handlerSpanPrefix)
	if !ok || op == "" {
		return "", false
	}
	return op, true
}
