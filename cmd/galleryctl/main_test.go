package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"artvista/internal/catalog"
	"artvista/internal/storage"
	"artvista/models"
)

func useMemoryCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store := catalog.NewStore(storage.NewMemory())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load catalogue: %v", err)
	}

	original := openCatalogFunc
	t.Cleanup(func() { openCatalogFunc = original })
	openCatalogFunc = func(context.Context) (*catalog.Store, func() error, error) {
		return store, func() error { return nil }, nil
	}
	return store
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "artworks.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportAddsNewArtworksAndSkipsKnownOnes(t *testing.T) {
	store := useMemoryCatalog(t)
	seeded := catalog.SeedArtworks()[0]

	path := writeCSV(t, strings.Join([]string{
		"Title,Artist,Price,Year,Medium,Image,History",
		`Harbour at Dusk,Mira Dev,"₹1,20,000",2021,Oil on linen,https://images.example.com/harbour.jpg,Painted over three winters.`,
		strings.ToUpper(seeded.Title) + "," + seeded.Artist + ",1,2000,Oil,https://images.example.com/x.jpg,dup",
	}, "\n"))

	out, err := execute(t, "import", path)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}
	if !strings.Contains(out, "Imported 1 artworks from artworks.csv (1 already present)") {
		t.Fatalf("unexpected output: %q", out)
	}

	found := store.Search("harbour")
	if len(found) != 1 {
		t.Fatalf("expected imported artwork to be searchable, got %d", len(found))
	}
	if found[0].Price != 120000 {
		t.Fatalf("expected grouped price to parse to 120000, got %v", found[0].Price)
	}
	if found[0].Status != models.StatusApproved {
		t.Fatalf("expected approved status, got %q", found[0].Status)
	}
}

func TestImportPendingFlag(t *testing.T) {
	store := useMemoryCatalog(t)

	path := writeCSV(t, "Title,Artist,Price,Year,Medium,Image,History\n"+
		"Salt Study,Ona Reyes,4500,2019,Gouache,https://images.example.com/salt.jpg,Field sketch.\n")

	if _, err := execute(t, "import", "--pending", path); err != nil {
		t.Fatalf("import returned error: %v", err)
	}

	pending := store.Pending()
	if len(pending) != 1 || pending[0].Title != "Salt Study" {
		t.Fatalf("expected one pending import, got %+v", pending)
	}
}

func TestImportRejectsInvalidRows(t *testing.T) {
	useMemoryCatalog(t)

	path := writeCSV(t, "Title,Artist,Price,Year,Medium,Image,History\n"+
		"No Price,Ona Reyes,N/A,2019,Gouache,https://images.example.com/salt.jpg,Sketch.\n")

	_, err := execute(t, "import", path)
	if err == nil || !strings.Contains(err.Error(), "record 1 (No Price)") {
		t.Fatalf("expected record error, got %v", err)
	}
}

func TestImportEmptyCSV(t *testing.T) {
	useMemoryCatalog(t)

	_, err := execute(t, "import", writeCSV(t, ""))
	if err == nil || !strings.Contains(err.Error(), "csv is empty") {
		t.Fatalf("expected empty csv error, got %v", err)
	}
}

func TestArtworksListsByStatus(t *testing.T) {
	store := useMemoryCatalog(t)

	draft, err := store.AddArtwork(context.Background(), models.Artwork{
		Title: "Draft Piece", Artist: "Ona Reyes", Price: 10, Year: "2024",
		Medium: "Ink", Image: "https://images.example.com/d.jpg", History: "New.",
	})
	if err != nil {
		t.Fatalf("add artwork: %v", err)
	}

	tests := []struct {
		status   string
		contains string
		excludes string
	}{
		{status: "pending", contains: "Draft Piece", excludes: catalog.SeedArtworks()[0].Title},
		{status: "approved", contains: catalog.SeedArtworks()[0].Title, excludes: "Draft Piece"},
		{status: "all", contains: strconv.FormatInt(draft.ID, 10)},
	}

	for _, tt := range tests {
		out, err := execute(t, "artworks", "--status", tt.status)
		if err != nil {
			t.Fatalf("artworks --status %s returned error: %v", tt.status, err)
		}
		if !strings.Contains(out, tt.contains) {
			t.Fatalf("status %s: expected %q in output %q", tt.status, tt.contains, out)
		}
		if tt.excludes != "" && strings.Contains(out, tt.excludes) {
			t.Fatalf("status %s: did not expect %q in output", tt.status, tt.excludes)
		}
	}

	if _, err := execute(t, "artworks", "--status", "sold"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}

func TestApproveCommand(t *testing.T) {
	store := useMemoryCatalog(t)

	draft, err := store.AddArtwork(context.Background(), models.Artwork{
		Title: "Draft Piece", Artist: "Ona Reyes", Price: 10, Year: "2024",
		Medium: "Ink", Image: "https://images.example.com/d.jpg", History: "New.",
	})
	if err != nil {
		t.Fatalf("add artwork: %v", err)
	}

	out, err := execute(t, "approve", strconv.FormatInt(draft.ID, 10))
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if !strings.Contains(out, `Approved "Draft Piece" by Ona Reyes`) {
		t.Fatalf("unexpected output: %q", out)
	}
	if got, _ := store.Artwork(draft.ID); !got.Approved() {
		t.Fatal("expected artwork to be approved")
	}

	if _, err := execute(t, "approve", "abc"); err == nil {
		t.Fatal("expected non-numeric id to fail")
	}
	if _, err := execute(t, "approve", "42"); err == nil {
		t.Fatal("expected unknown id to fail")
	}
}

func TestExhibitionsAdd(t *testing.T) {
	store := useMemoryCatalog(t)

	out, err := execute(t, "exhibitions", "add", "--title", "Quiet Rooms", "--description", "Interiors.", "--curator", "Sarah Jenkins")
	if err != nil {
		t.Fatalf("exhibitions add returned error: %v", err)
	}
	if !strings.Contains(out, `"Quiet Rooms"`) {
		t.Fatalf("unexpected output: %q", out)
	}
	if got := len(store.Exhibitions()); got != 2 {
		t.Fatalf("expected 2 exhibitions, got %d", got)
	}

	out, err = execute(t, "exhibitions")
	if err != nil {
		t.Fatalf("exhibitions returned error: %v", err)
	}
	if !strings.Contains(out, "Modern Echoes") || !strings.Contains(out, "Quiet Rooms") {
		t.Fatalf("expected both exhibitions listed, got %q", out)
	}

	if _, err := execute(t, "exhibitions", "add", "--title", "No Curator", "--description", "x"); err == nil {
		t.Fatal("expected missing curator to fail validation")
	}
}

func TestOpenCatalogRefusesThrowawayStorage(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "database without url",
			env:  map[string]string{"STORAGE_DRIVER": "database", "DATABASE_URL": "", "DATABASE_USE_MOCK": ""},
			want: "DATABASE_URL is required",
		},
		{
			name: "memory driver",
			env:  map[string]string{"STORAGE_DRIVER": "memory"},
			want: "does not persist",
		},
		{
			name: "badger without path",
			env:  map[string]string{"STORAGE_DRIVER": "badger", "STORAGE_BADGER_PATH": ""},
			want: "STORAGE_BADGER_PATH is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := execute(t, "import", writeCSV(t, "Title,Artist,Price,Year,Medium,Image,History\n"+
				"Salt Study,Ona Reyes,4500,2019,Gouache,https://images.example.com/salt.jpg,Field sketch.\n"))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenCatalogAllowsExplicitMock(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "database")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_USE_MOCK", "true")

	store, closeStorage, err := openCatalog(context.Background())
	if err != nil {
		t.Fatalf("openCatalog() error = %v", err)
	}
	defer closeStorage()
	if len(store.Artworks()) == 0 {
		t.Fatal("expected the seeded catalogue")
	}
}
