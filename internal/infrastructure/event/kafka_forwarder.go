package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of kafka.Writer the forwarder uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder forwards domain events to a kafka topic. Messages are keyed
// by aggregate ID so the events of one order stay in one partition.
type KafkaForwarder struct {
	writer     MessageWriter
	eventTypes []string
	timeout    time.Duration
}

// NewKafkaWriter creates the writer for the configured brokers and topic.
// Writes are synchronous and run inside the request that raised the event, so
// the batch timeout is short and retries are capped by kafka.max_attempts.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.WriteTimeout,
		ReadTimeout:            cfg.WriteTimeout,
		MaxAttempts:            cfg.MaxAttempts,
		WriteBackoffMin:        50 * time.Millisecond,
		WriteBackoffMax:        200 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaForwarder creates a forwarder. With no event types it forwards every event.
func NewKafkaForwarder(writer MessageWriter, eventTypes ...string) *KafkaForwarder {
	return &KafkaForwarder{writer: writer, eventTypes: eventTypes}
}

// WithTimeout caps each Handle call, retries included. Zero leaves the
// caller's deadline in charge.
func (f *KafkaForwarder) WithTimeout(timeout time.Duration) *KafkaForwarder {
	f.timeout = timeout
	return f
}

// Handle encodes the event as JSON and writes it to the topic
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventType(), err)
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(event.EventType())},
		{Key: "aggregate_type", Value: []byte(event.AggregateType())},
		{Key: "event_id", Value: []byte(event.EventID().String())},
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		headers = append(headers, kafka.Header{Key: "request_id", Value: []byte(requestID)})
	}

	msg := kafka.Message{
		Key:     []byte(event.AggregateID()),
		Value:   payload,
		Headers: headers,
		Time:    event.OccurredAt(),
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event %s to kafka: %w", event.EventType(), err)
	}
	return nil
}

// EventTypes returns the forwarded event types
func (f *KafkaForwarder) EventTypes() []string {
	return f.eventTypes
}

// Close closes the underlying writer
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}
