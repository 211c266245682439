package models

import (
	"time"

	"gorm.io/datatypes"
)

// Derived display statuses. Never stored: a prediction is verified when a
// verification row exists, overdue when its target date has passed without
// one, and pending otherwise.
const (
	StatusPending  = "pending"
	StatusOverdue  = "overdue"
	StatusVerified = "verified"
)

func ValidStatus(value string) bool {
	switch value {
	case StatusPending, StatusOverdue, StatusVerified:
		return true
	}
	return false
}

type Prediction struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	PredictorName     string         `gorm:"type:varchar(100);not null;index" json:"predictor_name"`
	PredictionText    string         `gorm:"type:text;not null" json:"prediction_text"`
	PredictedDate     time.Time      `gorm:"type:date;not null;index" json:"predicted_date"`
	TargetDate        *time.Time     `gorm:"type:date;index" json:"target_date,omitempty"`
	TargetDescription *string        `gorm:"type:text" json:"target_description,omitempty"`
	Category          string         `gorm:"type:varchar(30);not null;index" json:"category"`
	Confidence        int            `gorm:"not null" json:"confidence"`
	SourceURL         *string        `gorm:"type:varchar(500)" json:"source_url,omitempty"`
	Notes             *string        `gorm:"type:text" json:"notes,omitempty"`
	RawJSON           datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt         time.Time      `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`

	Verification *Verification `gorm:"constraint:OnDelete:CASCADE" json:"verification,omitempty"`
	Tags         []Tag         `gorm:"many2many:prediction_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

func (Prediction) TableName() string {
	return "predictions"
}

// Status derives the display status relative to now.
func (p *Prediction) Status(now time.Time) string {
	if p.Verification != nil {
		return StatusVerified
	}
	if p.TargetDate != nil && p.TargetDate.Before(truncateToDay(now)) {
		return StatusOverdue
	}
	return StatusPending
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
