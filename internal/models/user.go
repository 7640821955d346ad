package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string       `gorm:"unique;not null" json:"email"`
	Password     string       `gorm:"not null" json:"-"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	Interests    string       `json:"interests"`
	Language     string       `json:"language"`
	RoleID       uuid.UUID    `gorm:"type:uuid" json:"-"`
	Role         Role         `json:"role,omitempty"`
	DietaryNeeds []DietaryTag `gorm:"many2many:user_dietary_tags;constraint:OnDelete:CASCADE" json:"dietary_needs,omitempty"`
	Events       []Event      `gorm:"foreignKey:UserID" json:"events,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
