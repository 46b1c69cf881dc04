package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	require.True(t, shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}))
	require.False(t, shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/games"}))
	require.False(t, shouldSkipUptraceLog("standings recomputed", map[string]any{"path": "/healthz"}))
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes("httpapi", map[string]any{
		"league_id": "demo-league",
		"attempt":   int64(2),
		"payload":   nil,
	})
	require.Len(t, attrs, 4)
	require.Equal(t, "logger", attrs[0].Key)
	require.Equal(t, "httpapi", attrs[0].Value.AsString())
	require.Equal(t, "attempt", attrs[1].Key)
	require.Equal(t, int64(2), attrs[1].Value.AsInt64())
	require.Equal(t, "league_id", attrs[2].Key)
	require.Equal(t, "payload", attrs[3].Key)
	require.Equal(t, otellog.KindEmpty, attrs[3].Value.Kind())
}

func TestToOTelLogValue(t *testing.T) {
	v := toOTelLogValue(map[string]any{"score": 3.0, "solved": true}, 0)
	require.Equal(t, otellog.KindMap, v.Kind())
	require.Len(t, v.AsMap(), 2)

	require.Equal(t, "1.5s", toOTelLogValue(1500*time.Millisecond, 0).AsString())
	require.Equal(t, otellog.KindSlice, toOTelLogValue([]any{"a", int64(1)}, 0).Kind())
}

func TestUptraceLogCore_RespectsLevelAndAccumulatesFields(t *testing.T) {
	core := newUptraceLogCore("test", zapcore.WarnLevel)
	require.False(t, core.Enabled(zapcore.InfoLevel))
	require.True(t, core.Enabled(zapcore.ErrorLevel))

	scoped := core.With([]zapcore.Field{zap.String("component", "standings")}).(*uptraceLogCore)
	require.Len(t, scoped.fields, 1)
	require.Empty(t, core.fields)

	require.NoError(t, scoped.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom", Time: time.Now()}, nil))
}

func TestLoggerTee_WritesToMirrorCore(t *testing.T) {
	logger := logging.NewNop().Tee(newUptraceLogCore("test", zapcore.DebugLevel))
	logger.Info("http request", "path", "/healthz")
	logger.Warn("score rejected", "game_id", "wordle")
	require.NoError(t, logger.Sync())
}
