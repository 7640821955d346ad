package models

import (
	"time"

	"github.com/google/uuid"
)

// DietaryTag is static reference data: the dietary categories an event can
// offer and a user can prefer. Rows are seeded at startup, never created
// through the API.
type DietaryTag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Events    []Event   `gorm:"many2many:event_dietary_tags;" json:"-"`
	Users     []User    `gorm:"many2many:user_dietary_tags;" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
