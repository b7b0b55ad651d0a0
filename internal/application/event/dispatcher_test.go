package event

import (
	"context"
	"errors"
	"testing"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type testAggregate struct {
	shared.EventRecorder
}

func newAggregate(types ...string) *testAggregate {
	a := &testAggregate{}
	for _, typ := range types {
		e := shared.NewBaseDomainEvent(typ, "Test", "1")
		a.AddDomainEvent(&e)
	}
	return a
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Run("publishes and clears events", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 2
		})).Return(nil).Once()

		agg := newAggregate("A", "B")
		NewDispatcher(pub, nil).Dispatch(context.Background(), agg)

		assert.Empty(t, agg.GetDomainEvents())
		pub.AssertExpectations(t)
	})

	t.Run("skips aggregates without events", func(t *testing.T) {
		pub := new(mockPublisher)
		NewDispatcher(pub, nil).Dispatch(context.Background(), newAggregate())
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("logs publish failures", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus stopped"))

		agg := newAggregate("A")
		NewDispatcher(pub, zap.New(core)).Dispatch(context.Background(), agg)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to publish domain events").Len())
		assert.Empty(t, agg.GetDomainEvents())
	})

	t.Run("nil publisher only clears", func(t *testing.T) {
		agg := newAggregate("A")
		NewDispatcher(nil, nil).Dispatch(context.Background(), agg)
		assert.Empty(t, agg.GetDomainEvents())
	})
}
