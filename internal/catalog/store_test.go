package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"artvista/internal/apperror"
	"artvista/internal/events"
	"artvista/internal/storage"
	"artvista/models"
)

func loadedStore(t *testing.T, kv storage.Store, opts ...Option) *Store {
	t.Helper()
	store := NewStore(kv, opts...)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return store
}

func validArtwork() models.Artwork {
	return models.Artwork{
		Title:   "Quiet Harbour",
		Artist:  "Ines Maro",
		Price:   12000,
		History: "Painted over one winter on the Lisbon waterfront.",
		Medium:  "Oil on board",
		Year:    "2024",
		Image:   "https://images.unsplash.com/photo-quiet-harbour",
	}
}

func TestLoadSeedsEmptyStorage(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	store := loadedStore(t, kv)

	if got := len(store.Artworks()); got != len(SeedArtworks()) {
		t.Fatalf("expected %d seeded artworks, got %d", len(SeedArtworks()), got)
	}
	if got := store.Exhibitions(); len(got) != 1 || got[0].Title != "Modern Echoes" {
		t.Fatalf("unexpected seeded exhibitions %+v", got)
	}

	var persisted []models.Artwork
	found, err := storage.LoadJSON(context.Background(), kv, storage.KeyArtworks, &persisted)
	if err != nil || !found {
		t.Fatalf("expected seeded artworks to be persisted, found=%t err=%v", found, err)
	}
	if len(persisted) != len(SeedArtworks()) {
		t.Fatalf("expected %d persisted artworks, got %d", len(SeedArtworks()), len(persisted))
	}
}

func TestLoadAppendsMissingSeedArtworks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()

	seed := SeedArtworks()
	custom := validArtwork()
	custom.ID = 99
	custom.Status = models.StatusPending
	persisted := append([]models.Artwork{custom}, seed[:5]...)
	persisted = append(persisted, seed[6:]...)
	if err := storage.SaveJSON(ctx, kv, storage.KeyArtworks, persisted); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	store := loadedStore(t, kv)
	artworks := store.Artworks()
	if len(artworks) != len(persisted)+1 {
		t.Fatalf("expected %d artworks, got %d", len(persisted)+1, len(artworks))
	}
	if last := artworks[len(artworks)-1]; last.ID != seed[5].ID {
		t.Fatalf("expected missing seed %d appended last, got %d", seed[5].ID, last.ID)
	}
	if _, ok := store.Artwork(99); !ok {
		t.Fatal("custom artwork must survive reconciliation")
	}

	var reread []models.Artwork
	if _, err := storage.LoadJSON(ctx, kv, storage.KeyArtworks, &reread); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(reread) != len(artworks) {
		t.Fatalf("expected reconciled list to be persisted, got %d entries", len(reread))
	}
}

func TestLoadRefreshesStaleSeedImages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()

	persisted := SeedArtworks()
	persisted[0].Image = "https://broken.example/1.jpg"
	persisted[0].Title = "Renamed Locally"
	persisted[1].Title = "Kept Title"
	if err := storage.SaveJSON(ctx, kv, storage.KeyArtworks, persisted); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	store := loadedStore(t, kv)
	first, _ := store.Artwork(1)
	if first.Image != SeedArtworks()[0].Image || first.Title != SeedArtworks()[0].Title {
		t.Fatalf("expected seed fields restored, got %+v", first)
	}
	second, _ := store.Artwork(2)
	if second.Title != "Kept Title" {
		t.Fatalf("record with matching image must be left alone, got %q", second.Title)
	}

	// Same length, so the refresh is only held in memory.
	var reread []models.Artwork
	if _, err := storage.LoadJSON(ctx, kv, storage.KeyArtworks, &reread); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if reread[0].Image != "https://broken.example/1.jpg" {
		t.Fatalf("expected persisted record untouched, got %q", reread[0].Image)
	}
}

func TestLoadKeepsPersistedExhibitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	stored := []models.Exhibition{{ID: 7, Title: "Night Garden", Description: "Nocturnes.", Curator: "Ola"}}
	if err := storage.SaveJSON(ctx, kv, storage.KeyExhibitions, stored); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	store := loadedStore(t, kv)
	got := store.Exhibitions()
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("exhibitions must not be merged with the seed, got %+v", got)
	}
}

func TestLoadRejectsMalformedArtworks(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	if err := kv.Put(context.Background(), storage.KeyArtworks, []byte("not json")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := NewStore(kv).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAddArtworkAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	frozen := time.UnixMilli(5)
	store := loadedStore(t, storage.NewMemory(), WithClock(func() time.Time { return frozen }))

	ctx := context.Background()
	first, err := store.AddArtwork(ctx, validArtwork())
	if err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}
	second, err := store.AddArtwork(ctx, validArtwork())
	if err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}
	if first.ID <= 8 || second.ID <= first.ID {
		t.Fatalf("expected increasing ids above the seed, got %d then %d", first.ID, second.ID)
	}
	if first.Status != models.StatusPending {
		t.Fatalf("expected default pending status, got %q", first.Status)
	}
}

func TestSubmitStatusByRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   models.Role
		status models.ArtworkStatus
	}{
		{models.RoleVisitor, models.StatusPending},
		{models.RoleArtist, models.StatusPending},
		{models.RoleCurator, models.StatusApproved},
		{models.RoleAdmin, models.StatusApproved},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			store := loadedStore(t, storage.NewMemory())
			artwork := validArtwork()
			artwork.Status = models.StatusApproved
			got, err := store.Submit(context.Background(), models.Session{Name: "Sam Rivera", Role: tt.role}, artwork)
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if got.Status != tt.status {
				t.Fatalf("expected status %q, got %q", tt.status, got.Status)
			}
		})
	}
}

func TestSubmitForcesArtistName(t *testing.T) {
	t.Parallel()

	store := loadedStore(t, storage.NewMemory())
	artwork := validArtwork()
	artwork.Artist = "Somebody Famous"
	got, err := store.Submit(context.Background(), models.Session{Name: "Sam Rivera", Role: models.RoleArtist}, artwork)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got.Artist != "Sam Rivera" {
		t.Fatalf("expected artist forced to submitter, got %q", got.Artist)
	}
	if mine := store.ByArtist("sam rivera"); len(mine) != 1 {
		t.Fatalf("expected one artwork by the artist, got %d", len(mine))
	}
}

func TestSubmitValidatesFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.Artwork)
		field  string
	}{
		{"missing title", func(a *models.Artwork) { a.Title = " " }, "title"},
		{"missing artist", func(a *models.Artwork) { a.Artist = "" }, "artist"},
		{"zero price", func(a *models.Artwork) { a.Price = 0 }, "price"},
		{"bad year", func(a *models.Artwork) { a.Year = "soon" }, "year"},
		{"relative image", func(a *models.Artwork) { a.Image = "/img.png" }, "image"},
		{"missing medium", func(a *models.Artwork) { a.Medium = "" }, "medium"},
		{"missing history", func(a *models.Artwork) { a.History = "" }, "history"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := loadedStore(t, storage.NewMemory())
			artwork := validArtwork()
			tt.mutate(&artwork)
			_, err := store.Submit(context.Background(), models.Session{Role: models.RoleCurator}, artwork)
			var verr *apperror.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("expected validation error on %q, got %v", tt.field, err)
			}
			if len(store.Artworks()) != len(SeedArtworks()) {
				t.Fatal("invalid artwork must not be stored")
			}
		})
	}
}

func TestApproveArtwork(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	store := loadedStore(t, kv)

	pending, err := store.AddArtwork(ctx, validArtwork())
	if err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}

	approved, err := store.ApproveArtwork(ctx, pending.ID)
	if err != nil {
		t.Fatalf("ApproveArtwork() error = %v", err)
	}
	want := pending
	want.Status = models.StatusApproved
	if approved != want {
		t.Fatalf("expected only status to change, got %+v want %+v", approved, want)
	}

	again, err := store.ApproveArtwork(ctx, pending.ID)
	if err != nil {
		t.Fatalf("second ApproveArtwork() error = %v", err)
	}
	if again != approved {
		t.Fatalf("expected idempotent approval, got %+v", again)
	}

	reloaded := loadedStore(t, kv)
	if got, _ := reloaded.Artwork(pending.ID); got.Status != models.StatusApproved {
		t.Fatalf("approval must be persisted, got %q", got.Status)
	}

	if _, err := store.ApproveArtwork(ctx, 424242); !errors.Is(err, ErrArtworkNotFound) {
		t.Fatalf("expected ErrArtworkNotFound, got %v", err)
	}
}

func TestAddExhibition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	store := loadedStore(t, kv)

	added, err := store.AddExhibition(ctx, models.Exhibition{Title: " Light Studies ", Description: "Glass and shadow.", Curator: "Sarah Jenkins"})
	if err != nil {
		t.Fatalf("AddExhibition() error = %v", err)
	}
	if added.ID <= 1 || added.Title != "Light Studies" {
		t.Fatalf("unexpected exhibition %+v", added)
	}

	reloaded := loadedStore(t, kv)
	if got := reloaded.Exhibitions(); len(got) != 2 {
		t.Fatalf("expected 2 persisted exhibitions, got %d", len(got))
	}

	if _, err := store.AddExhibition(ctx, models.Exhibition{Title: "No Curator", Description: "x"}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := loadedStore(t, storage.NewMemory())
	if _, err := store.AddArtwork(ctx, validArtwork()); err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}

	if got := len(store.Approved()); got != len(SeedArtworks()) {
		t.Fatalf("expected %d approved, got %d", len(SeedArtworks()), got)
	}
	if got := len(store.Pending()); got != 1 {
		t.Fatalf("expected 1 pending, got %d", got)
	}

	tests := []struct {
		term string
		want int
	}{
		{"", len(SeedArtworks())},
		{"GOLD", 1},
		{"zoe", 1},
		{"quiet harbour", 0},
		{"nothing matches", 0},
	}
	for _, tt := range tests {
		if got := len(store.Search(tt.term)); got != tt.want {
			t.Fatalf("Search(%q) = %d results, want %d", tt.term, got, tt.want)
		}
	}
}

func TestMutationsNotifySubscribers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := loadedStore(t, storage.NewMemory())

	var kinds []string
	unsubscribe := store.Subscribe(func(e events.Event) { kinds = append(kinds, e.Kind) })

	added, err := store.AddArtwork(ctx, validArtwork())
	if err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}
	if _, err := store.ApproveArtwork(ctx, added.ID); err != nil {
		t.Fatalf("ApproveArtwork() error = %v", err)
	}
	if _, err := store.ApproveArtwork(ctx, added.ID); err != nil {
		t.Fatalf("ApproveArtwork() error = %v", err)
	}
	unsubscribe()
	if _, err := store.AddArtwork(ctx, validArtwork()); err != nil {
		t.Fatalf("AddArtwork() error = %v", err)
	}

	if len(kinds) != 2 || kinds[0] != "artwork_added" || kinds[1] != "artwork_approved" {
		t.Fatalf("unexpected notifications %v", kinds)
	}
}

func TestNextID(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1000)
	tests := []struct {
		name     string
		existing []int64
		want     int64
	}{
		{"empty", nil, 1000},
		{"clock ahead", []int64{1, 2, 3}, 1000},
		{"collision", []int64{1000}, 1001},
		{"clock behind", []int64{5000, 10}, 5001},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := nextID(now, tt.existing); got != tt.want {
				t.Fatalf("nextID() = %d, want %d", got, tt.want)
			}
		})
	}
}
