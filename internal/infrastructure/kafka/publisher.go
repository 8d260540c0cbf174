package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/premialabs/premia/internal/domain/event"
)

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer *Producer
	logger   *slog.Logger
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer *Producer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka. The aggregate ID is used as the
// message key so events for one aggregate stay ordered.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...event.DomainEvent) error {
	messages := make([]Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type": eventType,
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}

	return nil
}
