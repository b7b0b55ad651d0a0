package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartKey contextKey = "otel_query_start"

// DBTracing registers otelgorm on a database and annotates each statement
// span with the table, rows affected and a slow-query marker.
type DBTracing struct {
	enabled  bool
	fullSQL  bool
	slow     time.Duration
	dbSystem string
	provider trace.TracerProvider
	logger   *zap.Logger
}

// NewDBTracing creates the tracing setup from the telemetry config. dbSystem
// is the driver name ("postgres" or "sqlite"). A nil provider means the
// global one.
func NewDBTracing(cfg config.TelemetryConfig, dbSystem string, provider trace.TracerProvider, logger *zap.Logger) *DBTracing {
	slow := cfg.DBSlowQueryThresh
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracing{
		enabled:  cfg.DBTraceEnabled,
		fullSQL:  cfg.DBLogFullSQL,
		slow:     slow,
		dbSystem: dbSystem,
		provider: provider,
		logger:   logger,
	}
}

// Register installs the plugin and the timing callbacks. It is a no-op when
// database tracing is disabled.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(t.dbSystem)}
	if !t.fullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if t.provider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(t.provider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("trace_timing:before_create", markStart),
		cb.Query().Before("gorm:query").Register("trace_timing:before_query", markStart),
		cb.Update().Before("gorm:update").Register("trace_timing:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("trace_timing:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("trace_timing:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("trace_timing:before_raw", markStart),
		cb.Create().After("gorm:create").Register("trace_timing:after_create", t.annotate),
		cb.Query().After("gorm:query").Register("trace_timing:after_query", t.annotate),
		cb.Update().After("gorm:update").Register("trace_timing:after_update", t.annotate),
		cb.Delete().After("gorm:delete").Register("trace_timing:after_delete", t.annotate),
		cb.Row().After("gorm:row").Register("trace_timing:after_row", t.annotate),
		cb.Raw().After("gorm:raw").Register("trace_timing:after_raw", t.annotate),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	t.logger.Info("Database tracing enabled",
		zap.String("db_system", t.dbSystem),
		zap.Bool("log_full_sql", t.fullSQL),
		zap.Duration("slow_query_threshold", t.slow),
	)
	return nil
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

func (t *DBTracing) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > t.slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
