// Package events distributes category change events between the category
// management endpoints, the registry and connected editors.
package events

import (
	"context"
	"sync"

	"erpBack/internal/catalog"
)

// Logger is the minimal logging interface required by the buses.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// Local delivers events to in-process handlers synchronously.
type Local struct {
	mu       sync.RWMutex
	handlers []catalog.Handler
}

// NewLocal constructs an empty in-process bus.
func NewLocal() *Local {
	return &Local{}
}

// Subscribe registers h for every subsequent event.
func (b *Local) Subscribe(h catalog.Handler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Publish hands ev to every handler in registration order.
func (b *Local) Publish(ctx context.Context, ev catalog.Event) error {
	b.mu.RLock()
	handlers := make([]catalog.Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
	return nil
}
