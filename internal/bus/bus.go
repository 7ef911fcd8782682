// Package bus fans engine events out to any number of subscribers.
package bus

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBuffer = 32

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[*chan T]struct{}),
	}
}

// Hub broadcasts events of one type. Subscribers that fall behind lose events instead
// of stalling the publisher.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case *sub <- event:
		default:
			slog.Debug("Dropped event for slow subscriber", "package", "bus")
		}
	}

	return nil
}

// Subscribe returns a channel of events and a function that unsubscribes it. The
// subscription also ends when ctx is done.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, subscriberBuffer)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, key)
			h.mu.Unlock()
		})
	}
	context.AfterFunc(ctx, unsubscribe)

	return c, unsubscribe
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}
