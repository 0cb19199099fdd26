package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func Test_NewLogger_InjectsContext(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := NewLogger(&buf, &config.OTLPConfig{ServiceName: "catalog-api", Environment: "test"}, "info")

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-1")
	ctx = WithHTTPRoute(ctx, "/api/products/{id}")

	// when
	logger.InfoContext(ctx, "hello", slog.Int("count", 3))

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "catalog-api", record["service.name"])
	assert.Equal(t, "test", record["environment"])
	assert.Equal(t, spanCtx.TraceID().String(), record["trace_id"])
	assert.Equal(t, spanCtx.SpanID().String(), record["span_id"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "/api/products/{id}", record["http.route"])
	assert.EqualValues(t, 3, record["count"])
}

func Test_NewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &config.OTLPConfig{}, "warn")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func Test_ParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}
