package event

import (
	"context"

	"github.com/jpashop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Dispatcher publishes the events recorded on aggregates after they have been
// persisted. Publishing failures are logged and never undo the write.
type Dispatcher struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil publisher turns Dispatch into a no-op
// that only clears the recorded events.
func NewDispatcher(publisher shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{publisher: publisher, logger: logger}
}

// Dispatch publishes and clears the pending events of every aggregate.
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if len(events) == 0 || d.publisher == nil {
			continue
		}
		if err := d.publisher.Publish(ctx, events...); err != nil {
			d.logger.Warn("Failed to publish domain events",
				zap.Int("count", len(events)),
				zap.String("first_event_type", events[0].EventType()),
				zap.Error(err),
			)
		}
	}
}
