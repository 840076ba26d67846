// Package appearance tracks the two-layer theme selection of a workspace: a UI theme
// picked by the visitor and an optional gallery theme override picked by curators.
package appearance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"artvista/internal/events"
	applog "artvista/internal/log"
	"artvista/internal/storage"
	"artvista/models"
)

// ErrInvalidTheme is returned when a theme id is not part of the relevant catalogue.
var ErrInvalidTheme = errors.New("unknown theme")

// Applier receives the effective theme whenever it may have changed.
type Applier interface {
	Apply(theme string)
}

// ApplierFunc adapts a func to Applier.
type ApplierFunc func(theme string)

// Apply calls f(theme).
func (f ApplierFunc) Apply(theme string) {
	f(theme)
}

// Store holds the theme selection and writes it through to kv.
type Store struct {
	mu      sync.RWMutex
	kv      storage.Store
	applier Applier
	ui      string
	gallery string
	hub     events.Hub
}

// Option customises a Store.
type Option func(*Store)

// WithApplier registers the presentation layer that renders the effective theme.
func WithApplier(a Applier) Option {
	return func(s *Store) {
		s.applier = a
	}
}

// NewStore builds a Store using the default UI theme and no override.
func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{kv: kv, ui: models.DefaultTheme}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for theme changes.
func (s *Store) Subscribe(l events.Listener) func() {
	return s.hub.Subscribe(l)
}

// Load reads the persisted selection. An unknown UI theme falls back to the default and
// an unknown gallery theme is ignored.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	ui, err := s.readString(ctx, storage.KeyUITheme)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	gallery, err := s.readString(ctx, storage.KeyGalleryTheme)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.ui = models.NormalizeUITheme(ui)
	s.gallery = ""
	if models.ValidGalleryTheme(gallery) {
		s.gallery = gallery
	}
	effective := s.effective()
	s.mu.Unlock()

	s.apply(effective)
	return nil
}

// ToggleTheme selects a UI theme and clears any gallery override.
func (s *Store) ToggleTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !models.ValidUITheme(theme) {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	if err := storage.SaveJSON(ctx, s.kv, storage.KeyUITheme, theme); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.kv.Delete(ctx, storage.KeyGalleryTheme); err != nil {
		if rbErr := storage.SaveJSON(ctx, s.kv, storage.KeyUITheme, s.ui); rbErr != nil {
			applog.Warn(ctx, "failed to restore ui theme", "theme", s.ui, "error", rbErr)
		}
		s.mu.Unlock()
		return fmt.Errorf("clear gallery theme: %w", err)
	}
	s.ui = theme
	s.gallery = ""
	effective := s.effective()
	s.mu.Unlock()

	applog.Debug(ctx, "ui theme selected", "theme", theme)
	s.apply(effective)
	s.hub.Publish(events.StoreAppearance, "ui_theme")
	return nil
}

// SetGalleryTheme selects a gallery override. Selecting the active override again
// clears it so the UI theme shows through.
func (s *Store) SetGalleryTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))

	s.mu.Lock()
	if theme != "" && theme == s.gallery {
		if err := s.kv.Delete(ctx, storage.KeyGalleryTheme); err != nil {
			s.mu.Unlock()
			return err
		}
		s.gallery = ""
	} else {
		if !models.ValidGalleryTheme(theme) {
			s.mu.Unlock()
			return ErrInvalidTheme
		}
		if err := storage.SaveJSON(ctx, s.kv, storage.KeyGalleryTheme, theme); err != nil {
			s.mu.Unlock()
			return err
		}
		s.gallery = theme
	}
	gallery := s.gallery
	effective := s.effective()
	s.mu.Unlock()

	applog.Debug(ctx, "gallery theme selected", "theme", gallery)
	s.apply(effective)
	s.hub.Publish(events.StoreAppearance, "gallery_theme")
	return nil
}

// Effective returns the gallery override when set, otherwise the UI theme.
func (s *Store) Effective() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effective()
}

// UITheme returns the visitor's UI theme.
func (s *Store) UITheme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui
}

// GalleryTheme returns the override, if one is set.
func (s *Store) GalleryTheme() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gallery, s.gallery != ""
}

func (s *Store) effective() string {
	if s.gallery != "" {
		return s.gallery
	}
	return s.ui
}

func (s *Store) apply(theme string) {
	if s.applier != nil {
		s.applier.Apply(theme)
	}
}

// readString accepts both JSON strings and bare values.
func (s *Store) readString(ctx context.Context, key string) (string, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		value = string(raw)
	}
	return strings.TrimSpace(value), nil
}
