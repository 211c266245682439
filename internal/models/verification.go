package models

import "time"

type Verification struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PredictionID  uint64    `gorm:"not null;index" json:"prediction_id"`
	Outcome       string    `gorm:"type:varchar(30);not null;index" json:"outcome"`
	ActualOutcome string    `gorm:"type:text;not null" json:"actual_outcome"`
	EvidenceURL   *string   `gorm:"type:varchar(500)" json:"evidence_url,omitempty"`
	VerifierName  string    `gorm:"type:varchar(100);not null" json:"verifier_name"`
	Score         int       `gorm:"not null" json:"score"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	VerifiedAt    time.Time `gorm:"type:timestamptz;not null" json:"verified_at"`
	CreatedAt     time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Verification) TableName() string {
	return "verifications"
}
