package models

import (
	"time"

	"github.com/google/uuid"
)

type RSVPStatus string

const (
	RSVPStatusGoing      RSVPStatus = "going"
	RSVPStatusInterested RSVPStatus = "interested"
	RSVPStatusNotGoing   RSVPStatus = "not_going"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusGoing, RSVPStatusInterested, RSVPStatusNotGoing:
		return true
	}
	return false
}

// The composite unique index is what actually closes the duplicate-RSVP
// race; the handler's existence check only exists for a friendlier message.
type RSVP struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rsvps_user_event" json:"user_id"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rsvps_user_event" json:"event_id"`
	Status    RSVPStatus `gorm:"type:varchar(16);not null" json:"status"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Event     Event      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"-"`
}
