package db

import (
	"gorm.io/gorm/clause"

	"foresight/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Prediction{},
		&models.Verification{},
		&models.Tag{},
		&models.PredictionTag{},
	)
}

// SeedTags inserts the starter label set. Tags are seed data only; the API
// never writes them.
func SeedTags(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}

	names := []string{
		"ai", "elections", "markets", "crypto", "space",
		"energy", "health", "geopolitics", "long-bet",
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, models.Tag{Name: name})
	}
	return db.Gorm.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
}
