package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionPlan represents a user's diet program. Title and Description are
// encrypted at rest.
type NutritionPlan struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description *string        `json:"description,omitempty" gorm:"type:text"`
	StartDate   time.Time      `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time      `json:"end_date" gorm:"type:date;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (p *NutritionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SensitiveFields returns the fields encrypted at rest.
func (p *NutritionPlan) SensitiveFields() []*string {
	return []*string{&p.Title, p.Description}
}
