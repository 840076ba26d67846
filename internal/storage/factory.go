package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"artvista/internal/config"
	applog "artvista/internal/log"
)

// Open selects the Store implementation named by cfg.Driver. The returned close
// func releases driver resources and is never nil.
//
//	database: rows of state_entries through db (required)
//	badger:   embedded badger at cfg.BadgerPath, in memory when empty
//	memory:   process memory
func Open(ctx context.Context, cfg config.StorageConfig, db *gorm.DB) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", config.StorageDatabase:
		if db == nil {
			return nil, noop, fmt.Errorf("storage driver %q requires a database handle", config.StorageDatabase)
		}
		applog.Debug(ctx, "storage opened", "driver", config.StorageDatabase)
		return WithTracing(NewDatabase(db)), noop, nil
	case config.StorageBadger:
		b, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open badger: %w", err)
		}
		applog.Debug(ctx, "storage opened", "driver", config.StorageBadger, "path", cfg.BadgerPath)
		return WithTracing(b), b.Close, nil
	case config.StorageMemory:
		applog.Debug(ctx, "storage opened", "driver", config.StorageMemory)
		return WithTracing(NewMemory()), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}
