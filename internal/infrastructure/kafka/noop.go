package kafka

import (
	"context"
	"log/slog"

	"github.com/premialabs/premia/internal/domain/event"
)

// NoopPublisher drops events. Used when event publishing is disabled.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that only logs.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// Publish logs the dropped events at debug level.
func (p *NoopPublisher) Publish(ctx context.Context, domainEvents ...event.DomainEvent) error {
	for _, evt := range domainEvents {
		p.logger.DebugContext(ctx, "event publishing disabled, dropping event",
			slog.String("event_type", evt.EventType()),
		)
	}
	return nil
}
