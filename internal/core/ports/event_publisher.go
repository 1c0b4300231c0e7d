package ports

import (
	"context"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// EventPublisher delivers a customer lifecycle event to the message channel,
// keyed by customer id.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CustomerEvent) error
}

// EventEmitter is the fire-and-forget contract the orchestrator depends on:
// Emit never blocks the caller on delivery and never surfaces an error.
// Publish failures are observed through logs only.
type EventEmitter interface {
	Emit(event domain.CustomerEvent)
}
