// Package storage provides the persistent key-value medium behind the gallery stores.
// Every value is a JSON document addressed by a string key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted gallery state.
const (
	KeySession      = "art_gallery_user"
	KeyUsers        = "art_gallery_users_db"
	KeyArtworks     = "art_gallery_artworks"
	KeyExhibitions  = "art_gallery_exhibitions"
	KeyCart         = "art_gallery_cart"
	KeyUITheme      = "art_gallery_theme"
	KeyGalleryTheme = "art_gallery_gallery_theme"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat key-value medium. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value at key into v. It reports false without error when the
// key is absent.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it to key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

type prefixed struct {
	next   Store
	prefix string
}

// Prefixed scopes every key of next under prefix.
func Prefixed(next Store, prefix string) Store {
	return &prefixed{next: next, prefix: prefix}
}

// WorkspacePrefix returns the key namespace owned by a single browser workspace.
func WorkspacePrefix(workspaceID string) string {
	return "profile/" + workspaceID + "/"
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.next.Put(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}
