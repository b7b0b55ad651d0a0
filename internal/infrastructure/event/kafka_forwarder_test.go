package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaForwarder_Handle(t *testing.T) {
	t.Run("writes keyed json message", func(t *testing.T) {
		w := &fakeWriter{}
		f := NewKafkaForwarder(w, "OrderPlaced")
		ctx := logger.WithRequestID(context.Background(), "req-1")

		event := newTestEvent("OrderPlaced", "42")
		require.NoError(t, f.Handle(ctx, event))

		require.Len(t, w.messages, 1)
		msg := w.messages[0]
		assert.Equal(t, "42", string(msg.Key))
		assert.Equal(t, "OrderPlaced", header(msg, "event_type"))
		assert.Equal(t, "Order", header(msg, "aggregate_type"))
		assert.Equal(t, "req-1", header(msg, "request_id"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &body))
		assert.Equal(t, "payload", body["data"])
		assert.Equal(t, []string{"OrderPlaced"}, f.EventTypes())
	})

	t.Run("wraps writer errors", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("broker down")}
		f := NewKafkaForwarder(w)

		err := f.Handle(context.Background(), newTestEvent("OrderPlaced", "1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
	})

	t.Run("unreachable broker cannot hold the caller past the timeout", func(t *testing.T) {
		f := NewKafkaForwarder(blockingWriter{}).WithTimeout(50 * time.Millisecond)

		start := time.Now()
		err := f.Handle(context.Background(), newTestEvent("OrderPlaced", "1"))

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("close closes the writer", func(t *testing.T) {
		w := &fakeWriter{}
		require.NoError(t, NewKafkaForwarder(w).Close())
		assert.True(t, w.closed)
	})
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "jpashop.events",
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  2,
	})
	assert.Equal(t, "jpashop.events", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.Equal(t, 2*time.Second, w.WriteTimeout)
	assert.Equal(t, 2, w.MaxAttempts)
	assert.False(t, w.Async)
}

// blockingWriter stands in for a broker that never answers
type blockingWriter struct{}

func (blockingWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingWriter) Close() error { return nil }
