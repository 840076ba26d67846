package mock

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	applog "artvista/internal/log"
	"artvista/models"
)

const (
	// DemoEmail and DemoPassword identify the visitor account seeded into the mock database.
	DemoEmail    = "avery@artvista.art"
	DemoPassword = "atelier"

	usersKey = "art_gallery_users_db"
)

// New returns an in-memory sqlite database holding the key-value state table and a
// registered demo visitor. Artwork and exhibition seeds are installed by the catalog on load.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:artvista-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.StateEntry{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := map[string]models.Account{
		DemoEmail: {
			ID:           "demo-visitor",
			Email:        DemoEmail,
			Name:         "Avery Studio",
			Role:         models.RoleVisitor,
			CreatedAt:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			PasswordHash: string(password),
		},
	}
	payload, err := json.Marshal(users)
	if err != nil {
		return err
	}

	entry := models.StateEntry{Key: usersKey, Value: string(payload)}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
