package notifier

import (
	"context"
	"fmt"

	"pawbook/internal/audit"
	"pawbook/pkg/kafka"
	kafka_config "pawbook/pkg/kafka/config"
	kafka_middleware "pawbook/pkg/kafka/middleware"
	"pawbook/pkg/logger"
)

// Worker consumes the audit topic and emits notifications. Delivery here is
// structured log lines; channel integrations hang off the same handler.
type Worker struct {
	consumer *kafka.Consumer
	log      *logger.Logger
}

func NewWorker(kafkaCfg *kafka_config.Config, topic, groupID, dlqTopic string, log *logger.Logger) (*Worker, error) {
	w := &Worker{log: log}

	consumer, err := kafka.NewConsumer(kafkaCfg, topic, groupID, dlqTopic, w.handle)
	if err != nil {
		return nil, err
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))

	w.consumer = consumer
	return w, nil
}

// handle decodes one audit event and renders its notifications. A payload
// that does not decode is handed to the consumer's retry/DLQ path.
func (w *Worker) handle(ctx context.Context, msg kafka.Message) error {
	var event audit.Event
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode audit event: %w", err)
	}

	notifications := Render(event)
	if len(notifications) == 0 {
		w.log.Debug("No notification for event",
			"event_type", event.Type,
			"booking_id", event.BookingID,
		)
		return nil
	}

	for _, n := range notifications {
		w.log.Info("Notification dispatched",
			"audience", n.Audience,
			"shop_id", n.ShopID,
			"booking_id", n.BookingID,
			"title", n.Title,
			"body", n.Body,
			"correlation_id", msg.GetCorrelationID(),
		)
	}
	return nil
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Notifier worker starting")
	return w.consumer.Start(ctx)
}

func (w *Worker) Close() error {
	return w.consumer.Close()
}
