package shared

import (
	"context"
	"time"
)

// Event is a fact published to in-process subscribers once the transaction
// that produced it is underway. Delivery is at-least-once; handlers are
// expected to be idempotent.
type Event interface {
	// EventName identifies the event type for handler registration
	EventName() string

	// OccurredAt is when the fact happened according to the publisher's clock
	OccurredAt() time.Time
}

// EventsPublisher delivers events to registered in-process handlers,
// synchronously and in registration order. Handler failures propagate to the
// publisher.
type EventsPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// UnitOfWork wraps an operation in a transaction. Nested invocations join the
// ambient transaction rather than opening a new one.
type UnitOfWork interface {
	InTransaction(ctx context.Context, operation func(ctx context.Context) error) error
}
