package models

import "time"

type Tag struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

type PredictionTag struct {
	PredictionID uint64 `gorm:"primaryKey"`
	TagID        uint64 `gorm:"primaryKey"`
}

func (PredictionTag) TableName() string {
	return "prediction_tags"
}
