package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentReminder struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointment_id"`

	Channel      string     `gorm:"size:20;not null" json:"reminder_type"`
	ScheduledFor time.Time  `gorm:"index;not null" json:"scheduled_for"`
	Sent         bool       `gorm:"index;not null;default:false" json:"sent"`
	SentAt       *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *AppointmentReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsDue reports whether the reminder should be handed to the notification
// dispatcher at the given instant.
func (r AppointmentReminder) IsDue(now time.Time) bool {
	return !r.Sent && !r.ScheduledFor.After(now)
}
