// Package events implements the change notifications published by the gallery stores.
package events

import (
	"sync"
	"time"
)

// Store names carried by events.
const (
	StoreSession    = "session"
	StoreCatalog    = "catalog"
	StoreCart       = "cart"
	StoreAppearance = "appearance"
)

// Event describes one committed mutation.
type Event struct {
	Store string    `json:"store"`
	Kind  string    `json:"kind"`
	At    time.Time `json:"at"`
}

// Listener receives events synchronously on the publishing goroutine.
type Listener func(Event)

// Hub fans events out to registered listeners. The zero value is ready to use.
type Hub struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

// Subscribe registers l and returns a func that removes it. Calling the returned
// func more than once is harmless.
func (h *Hub) Subscribe(l Listener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listeners == nil {
		h.listeners = make(map[int]Listener)
	}
	id := h.next
	h.next++
	h.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers an event for store/kind to every listener.
func (h *Hub) Publish(store, kind string) {
	event := Event{Store: store, Kind: kind, At: time.Now().UTC()}

	h.mu.RLock()
	listeners := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		listeners = append(listeners, l)
	}
	h.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}

// Len returns the number of registered listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
