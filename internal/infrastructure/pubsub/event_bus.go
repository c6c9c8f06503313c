package pubsub

import (
	"context"
	"fmt"
	"sync"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/ports"

	"github.com/rs/zerolog"
)

// Subscription is one sink registered on the bus
type Subscription struct {
	ID     string
	Name   string
	Filter *EventFilter
	sink   ports.EventPublisher
}

// EventFilter filters sync events
type EventFilter struct {
	Types []domain.SyncEventType // Filter by event type
	Shop  string                 // Filter by shop name
}

// EventBus fans sync events out to the registered sinks
type EventBus struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	order  []string
	logger zerolog.Logger
	nextID int64
}

// NewEventBus creates an empty bus
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subs:   make(map[string]*Subscription),
		logger: logger,
	}
}

// Subscribe registers sink under name; events are delivered in subscription order
func (b *EventBus) Subscribe(name string, sink ports.EventPublisher, filter *EventFilter) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		ID:     fmt.Sprintf("sink-%d", b.nextID),
		Name:   name,
		Filter: filter,
		sink:   sink,
	}
	b.subs[sub.ID] = sub
	b.order = append(b.order, sub.ID)

	b.logger.Debug().
		Str("subscriptionId", sub.ID).
		Str("sink", name).
		Interface("filter", filter).
		Msg("Event sink subscribed")

	return sub
}

// Unsubscribe removes a sink
func (b *EventBus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subs[id]; !exists {
		return
	}
	delete(b.subs, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}

	b.logger.Debug().Str("subscriptionId", id).Msg("Event sink removed")
}

// Publish delivers event to every matching sink.
// Sink failures are logged and never returned: events must not break a sync.
func (b *EventBus) Publish(ctx context.Context, event *domain.SyncEvent) error {
	b.mu.RLock()
	targets := make([]*Subscription, 0, len(b.order))
	for _, id := range b.order {
		if sub := b.subs[id]; matchesFilter(event, sub.Filter) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range targets {
		if err := sub.sink.Publish(ctx, event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("sink", sub.Name).
				Str("type", string(event.Type)).
				Msg("Failed to publish sync event")
			continue
		}
		delivered++
	}

	if delivered > 0 {
		b.logger.Debug().
			Str("type", string(event.Type)).
			Str("shop", event.Shop).
			Int("sinks", delivered).
			Msg("Published sync event")
	}
	return nil
}

// Len returns the number of registered sinks
func (b *EventBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func matchesFilter(event *domain.SyncEvent, filter *EventFilter) bool {
	if filter == nil {
		return true
	}

	if len(filter.Types) > 0 {
		match := false
		for _, t := range filter.Types {
			if event.Type == t {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	if filter.Shop != "" && event.Shop != filter.Shop {
		return false
	}

	return true
}
