package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artvista/models"
)

// Database persists values as rows of the state_entries table.
type Database struct {
	db *gorm.DB
}

// NewDatabase wraps an already migrated gorm handle.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func keyEquals(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (d *Database) Get(ctx context.Context, key string) ([]byte, error) {
	if d.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var entry models.StateEntry
	err := d.db.WithContext(ctx).Where(keyEquals(key)).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state entry: %w", err)
	}
	return []byte(entry.Value), nil
}

func (d *Database) Put(ctx context.Context, key string, value []byte) error {
	if d.db == nil {
		return gorm.ErrInvalidDB
	}
	entry := models.StateEntry{Key: key, Value: string(value)}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert state entry: %w", err)
	}
	return nil
}

func (d *Database) Delete(ctx context.Context, key string) error {
	if d.db == nil {
		return gorm.ErrInvalidDB
	}
	if err := d.db.WithContext(ctx).Where(keyEquals(key)).Delete(&models.StateEntry{}).Error; err != nil {
		return fmt.Errorf("delete state entry: %w", err)
	}
	return nil
}
