package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"artvista/internal/catalog"
	"artvista/internal/config"
	"artvista/internal/db"
	"artvista/internal/db/mock"
	applog "artvista/internal/log"
	"artvista/internal/storage"
)

// openCatalogFunc opens the configured storage and loads the shared catalogue from it.
var openCatalogFunc = openCatalog

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "galleryctl: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "galleryctl",
		Short: "Manage the ArtVista catalogue",
		Long: `galleryctl works directly against the storage configured through the
environment (STORAGE_DRIVER, DATABASE_URL, STORAGE_BADGER_PATH).

Examples:
  galleryctl import artworks.csv
  galleryctl artworks --status pending
  galleryctl approve 1712345678901
  galleryctl exhibitions add --title "Quiet Rooms" --description "..." --curator "Sarah Jenkins"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		importCmd(),
		artworksCmd(),
		approveCmd(),
		exhibitionsCmd(),
	)

	return rootCmd
}

func openCatalog(ctx context.Context) (*catalog.Store, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, nil, fmt.Errorf("set log level: %w", err)
	}

	if err := requireDurableStorage(cfg); err != nil {
		return nil, nil, err
	}

	var database *gorm.DB
	if cfg.Storage.Driver == config.StorageDatabase {
		if cfg.Database.UseMock {
			applog.Warn(ctx, "using throwaway mock database, changes are discarded on exit")
			database, err = mock.New(ctx)
		} else {
			database, err = db.Configure(cfg.Database)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
	}

	kv, closeStorage, err := storage.Open(ctx, cfg.Storage, database)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	store := catalog.NewStore(kv)
	if err := store.Load(ctx); err != nil {
		_ = closeStorage()
		return nil, nil, fmt.Errorf("load catalogue: %w", err)
	}
	return store, closeStorage, nil
}

// requireDurableStorage rejects configurations whose writes would vanish with the process.
// DATABASE_USE_MOCK=true opts in to the mock database explicitly.
func requireDurableStorage(cfg config.Config) error {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return errors.New("storage driver memory does not persist; use database or badger")
	case config.StorageBadger:
		if strings.TrimSpace(cfg.Storage.BadgerPath) == "" {
			return errors.New("STORAGE_BADGER_PATH is required for the badger driver")
		}
	case config.StorageDatabase:
		if strings.TrimSpace(cfg.Database.URL) == "" && !cfg.Database.UseMock {
			return errors.New("DATABASE_URL is required (set DATABASE_USE_MOCK=true to work on a throwaway database)")
		}
	}
	return nil
}

// withCatalog runs fn against a freshly opened catalogue and closes the storage afterwards.
func withCatalog(cmd *cobra.Command, fn func(ctx context.Context, store *catalog.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStorage, err := openCatalogFunc(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			applog.Warn(ctx, "storage close failed", "error", err)
		}
	}()

	return fn(ctx, store)
}
