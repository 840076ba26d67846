// Package catalog maintains the shared artwork and exhibition catalogue.
package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"artvista/internal/events"
	applog "artvista/internal/log"
	"artvista/internal/storage"
	"artvista/models"
)

// ErrArtworkNotFound is returned when an artwork id is not in the catalogue.
var ErrArtworkNotFound = errors.New("artwork not found")

// Store holds the artworks and exhibitions, writing every change through to kv.
type Store struct {
	mu              sync.RWMutex
	kv              storage.Store
	now             func() time.Time
	seedArtworks    []models.Artwork
	seedExhibitions []models.Exhibition
	artworks        []models.Artwork
	exhibitions     []models.Exhibition
	hub             events.Hub
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the clock used to mint ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSeed replaces the built-in seed catalogue.
func WithSeed(artworks []models.Artwork, exhibitions []models.Exhibition) Option {
	return func(s *Store) {
		s.seedArtworks = artworks
		s.seedExhibitions = exhibitions
	}
}

// NewStore builds an empty catalogue over kv. Call Load before use.
func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:              kv,
		now:             time.Now,
		seedArtworks:    SeedArtworks(),
		seedExhibitions: SeedExhibitions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for catalogue changes.
func (s *Store) Subscribe(l events.Listener) func() {
	return s.hub.Subscribe(l)
}

// Subscribers returns the number of registered listeners.
func (s *Store) Subscribers() int {
	return s.hub.Len()
}

// Load reads the persisted catalogue. A missing artwork list is replaced by the seed set;
// an existing one is reconciled against it: seed ids that are missing are appended and
// stored records whose image differs from the seed take the seed's fields. The merged
// list is written back only when its length changed. Exhibitions are seeded once and
// never merged.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []models.Artwork
	found, err := storage.LoadJSON(ctx, s.kv, storage.KeyArtworks, &stored)
	if err != nil {
		return err
	}
	if !found {
		s.artworks = cloneArtworks(s.seedArtworks)
		if err := storage.SaveJSON(ctx, s.kv, storage.KeyArtworks, s.artworks); err != nil {
			return err
		}
		applog.Info(ctx, "catalogue seeded", "artworks", len(s.artworks))
	} else {
		merged := reconcile(stored, s.seedArtworks)
		if len(merged) != len(stored) {
			if err := storage.SaveJSON(ctx, s.kv, storage.KeyArtworks, merged); err != nil {
				return err
			}
			applog.Info(ctx, "catalogue reconciled", "added", len(merged)-len(stored))
		}
		s.artworks = merged
	}

	var exhibitions []models.Exhibition
	found, err = storage.LoadJSON(ctx, s.kv, storage.KeyExhibitions, &exhibitions)
	if err != nil {
		return err
	}
	if !found {
		exhibitions = cloneExhibitions(s.seedExhibitions)
	}
	s.exhibitions = exhibitions
	return nil
}

func reconcile(stored, seed []models.Artwork) []models.Artwork {
	merged := cloneArtworks(stored)
	for _, initial := range seed {
		idx := indexOf(merged, initial.ID)
		switch {
		case idx == -1:
			merged = append(merged, initial)
		case merged[idx].Image != initial.Image:
			merged[idx] = initial
		}
	}
	return merged
}

// AddArtwork appends artwork under a fresh id. The status defaults to pending.
func (s *Store) AddArtwork(ctx context.Context, artwork models.Artwork) (models.Artwork, error) {
	s.mu.Lock()
	artwork.ID = s.nextArtworkID()
	if artwork.Status == "" {
		artwork.Status = models.StatusPending
	}
	next := append(cloneArtworks(s.artworks), artwork)
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyArtworks, next); err != nil {
		s.mu.Unlock()
		return models.Artwork{}, err
	}
	s.artworks = next
	s.mu.Unlock()

	applog.Debug(ctx, "artwork added", "artworkID", artwork.ID, "status", artwork.Status)
	s.hub.Publish(events.StoreCatalog, "artwork_added")
	return artwork, nil
}

// Submit validates an artwork coming from submitter and adds it. Artists always submit
// under their own name; curator and admin submissions skip review and everything else
// waits for approval.
func (s *Store) Submit(ctx context.Context, submitter models.Session, artwork models.Artwork) (models.Artwork, error) {
	artwork.Status = models.StatusPending
	if submitter.Role == models.RoleArtist {
		artwork.Artist = submitter.Name
	}
	if submitter.Role.CanCurate() {
		artwork.Status = models.StatusApproved
	}
	artwork = trimArtwork(artwork)
	if err := ValidateArtwork(artwork); err != nil {
		return models.Artwork{}, err
	}
	return s.AddArtwork(ctx, artwork)
}

// ApproveArtwork marks the artwork approved. Approving an approved artwork is a no-op.
func (s *Store) ApproveArtwork(ctx context.Context, id int64) (models.Artwork, error) {
	s.mu.Lock()
	idx := indexOf(s.artworks, id)
	if idx == -1 {
		s.mu.Unlock()
		return models.Artwork{}, ErrArtworkNotFound
	}
	if s.artworks[idx].Approved() {
		artwork := s.artworks[idx]
		s.mu.Unlock()
		return artwork, nil
	}
	next := cloneArtworks(s.artworks)
	next[idx].Status = models.StatusApproved
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyArtworks, next); err != nil {
		s.mu.Unlock()
		return models.Artwork{}, err
	}
	s.artworks = next
	artwork := next[idx]
	s.mu.Unlock()

	applog.Debug(ctx, "artwork approved", "artworkID", id)
	s.hub.Publish(events.StoreCatalog, "artwork_approved")
	return artwork, nil
}

// AddExhibition appends exhibition under a fresh id.
func (s *Store) AddExhibition(ctx context.Context, exhibition models.Exhibition) (models.Exhibition, error) {
	exhibition.Title = strings.TrimSpace(exhibition.Title)
	exhibition.Description = strings.TrimSpace(exhibition.Description)
	exhibition.Curator = strings.TrimSpace(exhibition.Curator)
	if err := ValidateExhibition(exhibition); err != nil {
		return models.Exhibition{}, err
	}

	s.mu.Lock()
	exhibition.ID = s.nextExhibitionID()
	next := append(cloneExhibitions(s.exhibitions), exhibition)
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyExhibitions, next); err != nil {
		s.mu.Unlock()
		return models.Exhibition{}, err
	}
	s.exhibitions = next
	s.mu.Unlock()

	applog.Debug(ctx, "exhibition added", "exhibitionID", exhibition.ID)
	s.hub.Publish(events.StoreCatalog, "exhibition_added")
	return exhibition, nil
}

// Artworks returns every artwork in catalogue order.
func (s *Store) Artworks() []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArtworks(s.artworks)
}

// Artwork returns the artwork with id.
func (s *Store) Artwork(id int64) (models.Artwork, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.artworks, id)
	if idx == -1 {
		return models.Artwork{}, false
	}
	return s.artworks[idx], true
}

// Approved returns the artworks visible in the public gallery.
func (s *Store) Approved() []models.Artwork {
	return s.filter(func(a models.Artwork) bool { return a.Approved() })
}

// Pending returns the artworks awaiting review.
func (s *Store) Pending() []models.Artwork {
	return s.filter(func(a models.Artwork) bool { return a.Status == models.StatusPending })
}

// ByArtist returns every artwork attributed to name, ignoring case.
func (s *Store) ByArtist(name string) []models.Artwork {
	name = strings.TrimSpace(name)
	return s.filter(func(a models.Artwork) bool { return strings.EqualFold(a.Artist, name) })
}

// Search matches term against the title and artist of approved artworks, ignoring case.
// An empty term returns every approved artwork.
func (s *Store) Search(term string) []models.Artwork {
	term = strings.ToLower(strings.TrimSpace(term))
	return s.filter(func(a models.Artwork) bool {
		if !a.Approved() {
			return false
		}
		return term == "" ||
			strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Artist), term)
	})
}

// Exhibitions returns every exhibition.
func (s *Store) Exhibitions() []models.Exhibition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExhibitions(s.exhibitions)
}

func (s *Store) filter(keep func(models.Artwork) bool) []models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Artwork, 0, len(s.artworks))
	for _, a := range s.artworks {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// nextArtworkID must be called with mu held.
func (s *Store) nextArtworkID() int64 {
	ids := make([]int64, len(s.artworks))
	for i, a := range s.artworks {
		ids[i] = a.ID
	}
	return nextID(s.now(), ids)
}

// nextExhibitionID must be called with mu held.
func (s *Store) nextExhibitionID() int64 {
	ids := make([]int64, len(s.exhibitions))
	for i, e := range s.exhibitions {
		ids[i] = e.ID
	}
	return nextID(s.now(), ids)
}

// nextID is the current time in milliseconds, bumped past the largest existing id.
func nextID(now time.Time, existing []int64) int64 {
	id := now.UnixMilli()
	if len(existing) == 0 {
		return id
	}
	max := existing[0]
	for _, v := range existing[1:] {
		if v > max {
			max = v
		}
	}
	if id <= max {
		id = max + 1
	}
	return id
}

func indexOf(artworks []models.Artwork, id int64) int {
	for i, a := range artworks {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneArtworks(in []models.Artwork) []models.Artwork {
	out := make([]models.Artwork, len(in))
	copy(out, in)
	return out
}

func cloneExhibitions(in []models.Exhibition) []models.Exhibition {
	out := make([]models.Exhibition, len(in))
	copy(out, in)
	return out
}

