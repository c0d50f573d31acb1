package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Nationality, Description and Hobbies
// are encrypted at rest; Age is stored plaintext.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Age          int       `json:"age" gorm:"not null"`
	Nationality  *string   `json:"nationality,omitempty" gorm:"type:text"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	Hobbies      *string   `json:"hobbies,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SensitiveFields returns the fields encrypted at rest.
func (u *User) SensitiveFields() []*string {
	return []*string{u.Nationality, u.Description, u.Hobbies}
}
