// Package events provides the in-process event bus. Publishing a typed event
// invokes every registered handler synchronously, in registration order, within
// the publisher's call; handler failures propagate to the publisher. Delivery
// is at-least-once, so handlers must be idempotent.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// Handler processes one published event.
type Handler func(ctx context.Context, event shared.Event) error

// InProcessPublisher is a registry-based event bus keyed by event name.
type InProcessPublisher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      zerolog.Logger
}

// NewInProcessPublisher creates an empty bus.
func NewInProcessPublisher(log zerolog.Logger) *InProcessPublisher {
	return &InProcessPublisher{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

var _ shared.EventsPublisher = (*InProcessPublisher)(nil)

// Subscribe registers a handler for the named event type. Registration order
// is the invocation order.
func (p *InProcessPublisher) Subscribe(eventName string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventName] = append(p.handlers[eventName], handler)
}

// Publish delivers the event to every registered handler. The first handler
// error stops delivery and propagates to the caller.
func (p *InProcessPublisher) Publish(ctx context.Context, event shared.Event) error {
	p.mu.RLock()
	handlers := p.handlers[event.EventName()]
	p.mu.RUnlock()

	p.log.Debug().
		Str("event", event.EventName()).
		Int("handlers", len(handlers)).
		Msg("publishing event")

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handling %s: %w", event.EventName(), err)
		}
	}
	return nil
}

// SubscribeTyped registers a handler for a concrete event type, hiding the
// type assertion from subscribers.
func SubscribeTyped[T shared.Event](p *InProcessPublisher, eventName string, handler func(ctx context.Context, event T) error) {
	p.Subscribe(eventName, func(ctx context.Context, event shared.Event) error {
		typed, ok := event.(T)
		if !ok {
			return fmt.Errorf("event %s has unexpected type %T", eventName, event)
		}
		return handler(ctx, typed)
	})
}
