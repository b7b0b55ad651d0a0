package event

import (
	"context"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LogHandler writes one structured log line per event.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a LogHandler
func NewLogHandler(l *zap.Logger) *LogHandler {
	return &LogHandler{logger: l}
}

// Handle logs the event with the request-scoped fields of ctx
func (h *LogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	l := h.logger
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		l = l.With(zap.String("request_id", requestID))
	}
	l.Info("Domain event",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.String("auditor", logger.GetAuditor(ctx)),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler receives every event
func (h *LogHandler) EventTypes() []string {
	return nil
}
