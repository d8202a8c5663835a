package audit

import (
	"context"
	"time"

	"pawbook/pkg/kafka"
	kafka_config "pawbook/pkg/kafka/config"
	kafka_middleware "pawbook/pkg/kafka/middleware"
	"pawbook/pkg/logger"
	"pawbook/pkg/middleware"
)

// Publisher is the audit sink consumed by the booking services.
type Publisher interface {
	Record(ctx context.Context, event Event) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

// NewKafkaPublisher builds the production audit sink. Events are keyed by
// booking id so the per-booking order on the topic matches commit order.
func NewKafkaPublisher(kafkaCfg *kafka_config.Config, topic, dlqTopic, source string, log *logger.Logger) (Publisher, error) {
	producer, err := kafka.NewProducer(kafkaCfg, topic, dlqTopic)
	if err != nil {
		return nil, err
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(log))

	return &kafkaPublisher{producer: producer, source: source}, nil
}

func (p *kafkaPublisher) Record(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher discards events. Used when a deployment runs without Kafka.
type NopPublisher struct{}

func (NopPublisher) Record(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                        { return nil }
