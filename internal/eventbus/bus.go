// Package eventbus delivers tracker events to in-process subscribers.
package eventbus

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Handler receives one event. It runs on the publisher's goroutine.
type Handler func(ctx context.Context, event domain.Event)

type subscription struct {
	id      uint64
	kind    domain.EventKind // empty matches every kind
	handler Handler
}

// Bus is a synchronous publish/subscribe hub. Delivery is best-effort: a
// panicking handler is logged and does not stop delivery to the others.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// New creates an empty bus. A nil logger means slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers h for events of kind. The returned func removes it.
func (b *Bus) Subscribe(kind domain.EventKind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
	}
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) func() {
	return b.Subscribe("", h)
}

// Publish delivers event to every matching subscriber in subscription order.
func (b *Bus) Publish(ctx context.Context, event domain.Event) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == "" || s.kind == event.Kind {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range targets {
		b.deliver(ctx, h, event)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"kind", event.Kind,
				"event_id", event.ID,
				"panic", r)
		}
	}()
	h(ctx, event)
}
