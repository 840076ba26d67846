package appearance

import (
	"context"
	"errors"
	"testing"

	"artvista/internal/events"
	"artvista/internal/storage"
	"artvista/models"
)

type recorder struct {
	applied []string
}

func (r *recorder) Apply(theme string) {
	r.applied = append(r.applied, theme)
}

// deleteFailing rejects every Delete so the second write of a theme change fails.
type deleteFailing struct {
	storage.Store
}

func (deleteFailing) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func TestToggleThemeFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	setup := NewStore(kv)
	if err := setup.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := setup.ToggleTheme(ctx, models.ThemeDark); err != nil {
		t.Fatalf("ToggleTheme() error = %v", err)
	}
	if err := setup.SetGalleryTheme(ctx, models.GalleryBaroque); err != nil {
		t.Fatalf("SetGalleryTheme() error = %v", err)
	}

	rec := &recorder{}
	store := NewStore(deleteFailing{kv}, WithApplier(rec))
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var notified int
	store.Subscribe(func(events.Event) { notified++ })

	if err := store.ToggleTheme(ctx, models.ThemeMidnight); err == nil {
		t.Fatal("expected ToggleTheme to fail when the override cannot be cleared")
	}
	if store.UITheme() != models.ThemeDark || store.Effective() != models.GalleryBaroque {
		t.Fatalf("cache changed on failure: ui=%q effective=%q", store.UITheme(), store.Effective())
	}
	if notified != 0 || len(rec.applied) != 1 {
		t.Fatalf("failure must not apply or notify: notified=%d applied=%v", notified, rec.applied)
	}

	reloaded := NewStore(kv)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.UITheme() != models.ThemeDark {
		t.Fatalf("expected persisted ui theme restored to dark, got %q", reloaded.UITheme())
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	store := NewStore(storage.NewMemory(), WithApplier(rec))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if store.Effective() != models.ThemeLight {
		t.Fatalf("expected light, got %q", store.Effective())
	}
	if _, ok := store.GalleryTheme(); ok {
		t.Fatal("expected no gallery override")
	}
	if len(rec.applied) != 1 || rec.applied[0] != models.ThemeLight {
		t.Fatalf("expected load to apply the effective theme, got %v", rec.applied)
	}
}

func TestLoadPersistedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ui        string
		gallery   string
		wantUI    string
		effective string
	}{
		{"json values", `"dark"`, `"baroque"`, models.ThemeDark, models.GalleryBaroque},
		{"bare values", "midnight", "", models.ThemeMidnight, models.ThemeMidnight},
		{"gallery id stored as ui", "surrealist", "", models.ThemeLight, models.ThemeLight},
		{"unknown gallery", `"dark"`, `"vaporwave"`, models.ThemeDark, models.ThemeDark},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := storage.NewMemory()
			_ = kv.Put(ctx, storage.KeyUITheme, []byte(tt.ui))
			if tt.gallery != "" {
				_ = kv.Put(ctx, storage.KeyGalleryTheme, []byte(tt.gallery))
			}
			store := NewStore(kv)
			if err := store.Load(ctx); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if store.UITheme() != tt.wantUI {
				t.Fatalf("UITheme() = %q, want %q", store.UITheme(), tt.wantUI)
			}
			if store.Effective() != tt.effective {
				t.Fatalf("Effective() = %q, want %q", store.Effective(), tt.effective)
			}
		})
	}
}

func TestToggleThemeClearsOverride(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	store := NewStore(kv)
	if err := store.SetGalleryTheme(ctx, models.GalleryAbstract); err != nil {
		t.Fatalf("SetGalleryTheme() error = %v", err)
	}
	if err := store.ToggleTheme(ctx, "Dark"); err != nil {
		t.Fatalf("ToggleTheme() error = %v", err)
	}
	if store.Effective() != models.ThemeDark {
		t.Fatalf("expected dark, got %q", store.Effective())
	}
	if _, err := kv.Get(ctx, storage.KeyGalleryTheme); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected persisted override removed, got %v", err)
	}

	reloaded := NewStore(kv)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Effective() != models.ThemeDark {
		t.Fatalf("expected persisted dark, got %q", reloaded.Effective())
	}
}

func TestSetGalleryThemeTwiceReverts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &recorder{}
	store := NewStore(storage.NewMemory(), WithApplier(rec))
	if err := store.ToggleTheme(ctx, models.ThemeMidnight); err != nil {
		t.Fatalf("ToggleTheme() error = %v", err)
	}

	if err := store.SetGalleryTheme(ctx, models.GalleryBaroque); err != nil {
		t.Fatalf("SetGalleryTheme() error = %v", err)
	}
	if store.Effective() != models.GalleryBaroque {
		t.Fatalf("expected baroque, got %q", store.Effective())
	}
	if err := store.SetGalleryTheme(ctx, models.GalleryBaroque); err != nil {
		t.Fatalf("SetGalleryTheme() error = %v", err)
	}
	if store.Effective() != models.ThemeMidnight {
		t.Fatalf("expected revert to midnight, got %q", store.Effective())
	}

	want := []string{models.ThemeMidnight, models.GalleryBaroque, models.ThemeMidnight}
	if len(rec.applied) != len(want) {
		t.Fatalf("applied %v, want %v", rec.applied, want)
	}
	for i := range want {
		if rec.applied[i] != want[i] {
			t.Fatalf("applied %v, want %v", rec.applied, want)
		}
	}
}

func TestInvalidThemes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	calls := 0
	store.Subscribe(func(events.Event) { calls++ })

	if err := store.ToggleTheme(ctx, models.GalleryBaroque); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if err := store.SetGalleryTheme(ctx, models.ThemeDark); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if err := store.SetGalleryTheme(ctx, ""); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("rejected selections must not notify, got %d", calls)
	}
}

func TestApplierFunc(t *testing.T) {
	t.Parallel()

	var got string
	store := NewStore(storage.NewMemory(), WithApplier(ApplierFunc(func(theme string) { got = theme })))
	if err := store.SetGalleryTheme(context.Background(), models.GalleryDigitalEcho); err != nil {
		t.Fatalf("SetGalleryTheme() error = %v", err)
	}
	if got != models.GalleryDigitalEcho {
		t.Fatalf("expected applier to receive digital-echo, got %q", got)
	}
}
