package models

import (
	"time"

	"github.com/google/uuid"
)

// Reviews are intentionally not unique per (user, event): a user may review
// an event more than once.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Event     Event     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
