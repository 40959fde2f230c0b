package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. Rows are hard-deleted, so there is no deleted_at column.
type Base struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// ProfileOwned is embedded by every child of the profile.
type ProfileOwned struct {
	ProfileID string `json:"profile_id" gorm:"type:char(36);index;not null"`
}
