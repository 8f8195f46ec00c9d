package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	DentistID uuid.UUID `gorm:"type:uuid;index:idx_appointments_dentist_start,priority:1;not null" json:"dentist_id"`
	CreatorID uuid.UUID `gorm:"type:uuid" json:"created_by"`

	ScheduledStart  time.Time `gorm:"index:idx_appointments_dentist_start,priority:2;not null" json:"scheduled_time"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`

	Status string `gorm:"size:20;index;not null;default:'scheduled'" json:"status"`

	Reason             string `gorm:"type:text" json:"reason"`
	Notes              string `gorm:"type:text" json:"notes"`
	CancellationReason string `gorm:"type:text" json:"cancellation_reason,omitempty"`

	Reminders []AppointmentReminder `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ScheduledEnd is derived from the start and the duration and is never stored.
func (a Appointment) ScheduledEnd() time.Time {
	return a.ScheduledStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
