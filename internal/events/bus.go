// Package events implements the typed publish/subscribe mechanism that
// connects the host's save path to the enrichment handlers.
package events

import (
	"context"
	"sync"

	"github.com/janboddez/scrobbble-addon/internal/listens"
)

// ListenSaved is published after a listen record has been created for a
// played track.
type ListenSaved struct {
	ListenID int64
	Track    listens.Track
}

// ListenSavedHandler reacts to a saved listen. Handlers are independent
// of each other and must contain their own failures; the bus does not
// interpret anything they do.
type ListenSavedHandler func(ctx context.Context, ev ListenSaved)

// Bus dispatches events to subscribed handlers.
type Bus struct {
	mu          sync.RWMutex
	listenSaved []ListenSavedHandler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeListenSaved registers a handler for ListenSaved events.
func (b *Bus) SubscribeListenSaved(h ListenSavedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listenSaved = append(b.listenSaved, h)
}

// PublishListenSaved delivers the event to every subscribed handler, in
// subscription order. No ordering guarantee is part of the contract;
// handlers must not rely on their position.
func (b *Bus) PublishListenSaved(ctx context.Context, ev ListenSaved) {
	b.mu.RLock()
	handlers := make([]ListenSavedHandler, len(b.listenSaved))
	copy(handlers, b.listenSaved)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
}
