package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceChangeEvent is published once per recorded price history entry.
type PriceChangeEvent struct {
	ProductID       string          `json:"productId"`
	ExternalID      string          `json:"externalId"`
	ProviderID      string          `json:"providerId"`
	Name            string          `json:"name"`
	OldPrice        decimal.Decimal `json:"oldPrice"`
	NewPrice        decimal.Decimal `json:"newPrice"`
	Currency        string          `json:"currency"`
	OldAvailability bool            `json:"oldAvailability"`
	NewAvailability bool            `json:"newAvailability"`
	ChangedAt       time.Time       `json:"changedAt"`
}

// Publisher delivers price-change events downstream.
type Publisher interface {
	Publish(ctx context.Context, events []PriceChangeEvent) error
	Close() error
}

// NewPublisher returns a Kafka publisher, or a no-op one when publishing is disabled.
func NewPublisher(cfg Config, logger *zap.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}

	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, errors.New("events enabled but no brokers configured")
	}

	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewKafkaPublisher(producer, cfg.Topic, logger), nil
}

// KafkaPublisher publishes events through a Sarama sync producer.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaPublisher wraps an existing producer.
func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends all events in one batch, keyed by product ID so that changes
// of the same product land on the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, events []PriceChangeEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event for product %s: %w", e.ProductID, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(e.ProductID),
			Value:     sarama.ByteEncoder(payload),
			Timestamp: e.ChangedAt,
			Headers: []sarama.RecordHeader{
				{Key: []byte("provider"), Value: []byte(e.ProviderID)},
			},
		})
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("failed to publish %d price changes: %w", len(msgs), err)
	}

	p.logger.Debug("Published price changes", zap.Int("count", len(msgs)), zap.String("topic", p.topic))
	return nil
}

// Close closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher discards events.
type NoopPublisher struct{}

// Publish drops the events and always succeeds.
func (NoopPublisher) Publish(context.Context, []PriceChangeEvent) error { return nil }

// Close has nothing to release.
func (NoopPublisher) Close() error { return nil }
