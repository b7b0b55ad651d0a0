package telemetry

import (
	"context"
	"fmt"
	"testing"

	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, config.TelemetryConfig{ServiceName: "jpashop"}, "test", zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NotNil(t, tp.Provider())
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", Sampler(1).Description())
	assert.Equal(t, "AlwaysOffSampler", Sampler(0).Description())
	assert.Contains(t, Sampler(0.25).Description(), "TraceIDRatioBased")
}

type tracedRow struct {
	ID   int64
	Name string
}

func TestDBTracing_Register(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := NewSDKProvider(1, sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))

	cfg := config.TelemetryConfig{DBTraceEnabled: true}
	require.NoError(t, NewDBTracing(cfg, "sqlite", provider, zaptest.NewLogger(t)).Register(db))

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "a"}).Error)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
}

func TestDBTracing_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:tracing_disabled?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	require.NoError(t, NewDBTracing(config.TelemetryConfig{}, "sqlite", nil, nil).Register(db))
	assert.Nil(t, db.Callback().Create().Get("trace_timing:before_create"))
}
