// Package events publishes order lifecycle events for downstream consumers
// (fulfilment, notifications).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"print-kart/internal/config"
	"print-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
)

// OrderEvent is the wire format of a published order event.
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   string          `json:"order_id"`
	UserID    int64           `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes order events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *model.Order) error
	Close() error
}

// kafkaPublisher publishes order events to Kafka.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "order-events").Logger(),
	}
}

// PublishOrderCreated publishes an order-created event keyed by order ID.
func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, order *model.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	event := OrderEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeOrderCreated,
		OrderID:   order.ID.String(),
		UserID:    order.UserID,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: payload,
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to publish order created event")
		return fmt.Errorf("failed to publish order created event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created event published")
	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// nopPublisher discards all events. Used when Kafka is disabled.
type nopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderCreated(ctx context.Context, order *model.Order) error { return nil }
func (nopPublisher) Close() error                                                      { return nil }
