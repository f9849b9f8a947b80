// README: Kafka publisher for delivery quote events wrapped in a CloudEvent envelope.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"motofrete/internal/modules/delivery"
)

const (
	DeliveryQuoted = "delivery.quoted"
	sourceName     = "motofrete-api"
)

// CloudEvent is the envelope every message on the topic carries.
type CloudEvent struct {
	SpecVersion string          `json:"specversion"`
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	Time        time.Time       `json:"time"`
	Data        json.RawMessage `json:"data"`
}

func NewCloudEvent(source, eventType string, data any) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("marshal event data: %w", err)
	}
	return CloudEvent{
		SpecVersion: "1.0",
		ID:          uuid.NewString(),
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
		Data:        raw,
	}, nil
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
	log    *zap.Logger
}

func NewKafkaPublisher(writer MessageWriter, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaPublisher{writer: writer, log: log}
}

// PublishQuoted writes the event keyed by quote ID so retries of the same
// quote land on the same partition.
func (p *KafkaPublisher) PublishQuoted(ctx context.Context, evt delivery.QuotedEvent) error {
	ce, err := NewCloudEvent(sourceName, DeliveryQuoted, evt)
	if err != nil {
		return err
	}
	value, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(evt.QuoteID),
		Value: value,
		Time:  ce.Time,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", DeliveryQuoted, err)
	}
	p.log.Debug("event published",
		zap.String("type", DeliveryQuoted),
		zap.String("quote_id", string(evt.QuoteID)),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishQuoted(context.Context, delivery.QuotedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
