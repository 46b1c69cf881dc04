package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestHandlerOperation(t *testing.T) {
	tests := []struct {
		span   string
		wantOp string
		wantOK bool
	}{
		{span: "httpapi.Handler.LeagueStandings", wantOp: "LeagueStandings", wantOK: true},
		{span: "httpapi.Handler.ParseShareBatch", wantOp: "ParseShareBatch", wantOK: true},
		{span: "httpapi.Handler.", wantOK: false},
		{span: "httpapi.RequestLogging", wantOK: false},
		{span: "httpapi.mapError", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			op, ok := handlerOperation(tt.span)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOp, op)
		})
	}
}

func TestStartSpan_WithoutParentKeepsContext(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.SubmitScore")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
}

func TestStartSpan_HelperReusesParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, _ := startSpan(ctx, "httpapi.writeError")
	assert.Equal(t, ctx, got)
	assert.Equal(t, parent, trace.SpanContextFromContext(got))
}
