package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProgressEntry represents a dated progress-tracking measurement. Weight is
// stored plaintext; the free-text Measurements field is encrypted at rest.
type ProgressEntry struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Weight       decimal.Decimal `json:"weight" gorm:"type:decimal(6,2);not null"`
	Measurements *string         `json:"measurements,omitempty" gorm:"type:text"`
	Date         time.Time       `json:"date" gorm:"type:date;not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName keeps the table aligned with the public resource name.
func (ProgressEntry) TableName() string {
	return "progress_tracking"
}

// BeforeCreate sets UUID before creating the record.
func (e *ProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// SensitiveFields returns the fields encrypted at rest.
func (e *ProgressEntry) SensitiveFields() []*string {
	return []*string{e.Measurements}
}
