// Package cart keeps a workspace's pending acquisitions.
package cart

import (
	"context"
	"sync"

	"artvista/internal/events"
	applog "artvista/internal/log"
	"artvista/internal/storage"
	"artvista/models"
)

// Store is an ordered list of artwork snapshots. Entries are copies taken when the
// artwork was added, and the same artwork may appear more than once.
type Store struct {
	mu    sync.RWMutex
	kv    storage.Store
	items []models.Artwork
	hub   events.Hub
}

// NewStore builds an empty cart over kv. Call Load to rehydrate it.
func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Subscribe registers l for cart changes.
func (s *Store) Subscribe(l events.Listener) func() {
	return s.hub.Subscribe(l)
}

// Load rehydrates the persisted cart. An absent record is an empty cart.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.Artwork
	if _, err := storage.LoadJSON(ctx, s.kv, storage.KeyCart, &items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// Add appends a snapshot of artwork.
func (s *Store) Add(ctx context.Context, artwork models.Artwork) error {
	s.mu.Lock()
	next := append(clone(s.items), artwork)
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	applog.Debug(ctx, "cart item added", "artworkID", artwork.ID)
	s.hub.Publish(events.StoreCart, "added")
	return nil
}

// Remove drops the first entry whose id matches. It reports whether anything was removed.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	idx := -1
	for i, item := range s.items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false, nil
	}
	next := make([]models.Artwork, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	applog.Debug(ctx, "cart item removed", "artworkID", id)
	s.hub.Publish(events.StoreCart, "removed")
	return true, nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.save(ctx, []models.Artwork{}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.hub.Publish(events.StoreCart, "cleared")
	return nil
}

// Settle removes one entry for every paid artwork, matching by id, and keeps anything
// added after the payment snapshot was taken. It returns how many entries were removed.
func (s *Store) Settle(ctx context.Context, paid []models.Artwork) (int, error) {
	owed := make(map[int64]int, len(paid))
	for _, item := range paid {
		owed[item.ID]++
	}

	s.mu.Lock()
	next := make([]models.Artwork, 0, len(s.items))
	for _, item := range s.items {
		if owed[item.ID] > 0 {
			owed[item.ID]--
			continue
		}
		next = append(next, item)
	}
	removed := len(s.items) - len(next)
	if removed == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.mu.Unlock()

	applog.Debug(ctx, "cart settled", "removed", removed, "remaining", len(next))
	s.hub.Publish(events.StoreCart, "settled")
	return removed, nil
}

// Items returns the cart entries in the order they were added.
func (s *Store) Items() []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total sums the add-time prices of every entry.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Price
	}
	return total
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context, items []models.Artwork) error {
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyCart, items); err != nil {
		return err
	}
	s.items = items
	return nil
}

func clone(in []models.Artwork) []models.Artwork {
	out := make([]models.Artwork, len(in))
	copy(out, in)
	return out
}
