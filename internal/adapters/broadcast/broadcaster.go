// Package broadcast fans alert events out to live subscribers.
//
// Delivery is fire-and-forget: events reach the snapshot of subscribers
// registered at publish time, a full subscriber buffer drops that delivery
// only, and nothing is persisted or replayed.
package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/pkg/logger"
	"github.com/deeparex/Food-monitoring-System/pkg/metrics"
)

// Default broadcaster configuration constants.
const defaultSubscriberBuffer = 16

// Subscription is a live subscriber handle. Events arrive on Events until
// the subscription is cancelled via Unsubscribe or the broadcaster closes.
type Subscription struct {
	id     uuid.UUID
	events chan model.AlertEvent
}

// ID returns the unique handle identity.
func (s *Subscription) ID() uuid.UUID { return s.id }

// Events returns the receive channel. It is closed on unsubscribe.
func (s *Subscription) Events() <-chan model.AlertEvent { return s.events }

// Broadcaster maintains the subscriber set and delivers alert events.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]*Subscription
	buffer int
	closed bool
	logger logger.Logger
}

// New creates a broadcaster with configuration options.
func New(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		subs:   make(map[uuid.UUID]*Subscription),
		buffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a new subscriber and returns its handle. Subscribing
// to a closed broadcaster yields a handle whose channel is already closed.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		id:     uuid.New(),
		events: make(chan model.AlertEvent, b.buffer),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.events)
		return sub
	}
	b.subs[sub.id] = sub
	n := len(b.subs)
	b.mu.Unlock()

	metrics.UpdateSubscriberCount(n)
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Unsubscribing a
// handle twice, or one the broadcaster never issued, is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	registered, ok := b.subs[sub.id]
	if !ok || registered != sub {
		b.mu.Unlock()
		return
	}
	delete(b.subs, sub.id)
	n := len(b.subs)
	close(sub.events)
	b.mu.Unlock()

	metrics.UpdateSubscriberCount(n)
}

// Publish delivers the event to every currently registered subscriber. A
// subscriber whose buffer is full is skipped for this event; the drop is
// counted and never surfaces to the publisher.
func (b *Broadcaster) Publish(ctx context.Context, event model.AlertEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	metrics.RecordEventPublished()
	for _, sub := range b.subs {
		select {
		case sub.events <- event:
		default:
			metrics.RecordDeliveryDropped()
			if b.logger != nil {
				b.logger.Debug(ctx, "dropped alert delivery",
					logger.String("subscription", sub.id.String()),
					logger.String("traceID", event.TraceID),
				)
			}
		}
	}
}

// Count returns the number of registered subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close removes and closes every subscription. Further publishes are
// ignored and further subscribes return closed handles.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.events)
	}
	metrics.UpdateSubscriberCount(0)
	return nil
}
