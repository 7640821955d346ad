package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event date and times are stored as zero-padded "2006-01-02" / "15:04:05"
// strings, so lexicographic comparison in SQL matches chronological order.
type Event struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"not null" json:"description"`
	Date         string       `gorm:"type:varchar(10);not null;index" json:"date"`
	StartTime    string       `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime      string       `gorm:"type:varchar(8);not null" json:"end_time"`
	Location     string       `gorm:"not null" json:"location"`
	Address      string       `gorm:"not null" json:"address"`
	Quantity     int          `gorm:"not null;default:0" json:"quantity"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User         `json:"-"`
	DietaryNeeds []DietaryTag `gorm:"many2many:event_dietary_tags;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// TagNames flattens the loaded dietary tag associations for API responses.
func (event *Event) TagNames() []string {
	names := make([]string, 0, len(event.DietaryNeeds))
	for _, tag := range event.DietaryNeeds {
		names = append(names, tag.Name)
	}
	return names
}
