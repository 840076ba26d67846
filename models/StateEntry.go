package models

import "time"

// StateEntry is one key of the persisted key-value medium. Values are JSON documents.
type StateEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of the naming strategy in use.
func (StateEntry) TableName() string {
	return "state_entries"
}
