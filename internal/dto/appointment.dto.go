package dto

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	DentistID uuid.UUID `json:"dentist_id"`
	CreatedBy uuid.UUID `json:"created_by"`

	ScheduledTime   time.Time `json:"scheduled_time"`
	ScheduledEnd    time.Time `json:"scheduled_end"`
	DurationMinutes int       `json:"duration_minutes"`

	Status             string `json:"status"`
	Reason             string `json:"reason"`
	Notes              string `json:"notes"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	IsPast  bool `json:"is_past"`
	IsToday bool `json:"is_today"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAppointmentDTO renders times in the clinic location and computes the
// derived flags against now.
func NewAppointmentDTO(ap *models.Appointment, now time.Time, loc *time.Location) AppointmentDTO {
	return AppointmentDTO{
		ID:                 ap.ID,
		PatientID:          ap.PatientID,
		DentistID:          ap.DentistID,
		CreatedBy:          ap.CreatorID,
		ScheduledTime:      ap.ScheduledStart.In(loc),
		ScheduledEnd:       ap.ScheduledEnd().In(loc),
		DurationMinutes:    ap.DurationMinutes,
		Status:             ap.Status,
		Reason:             ap.Reason,
		Notes:              ap.Notes,
		CancellationReason: ap.CancellationReason,
		IsPast:             domain.IsPast(ap, now),
		IsToday:            domain.IsToday(ap, now.In(loc)),
		CreatedAt:          ap.CreatedAt.In(loc),
		UpdatedAt:          ap.UpdatedAt.In(loc),
	}
}

func NewAppointmentList(aps []models.Appointment, now time.Time, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentDTO(&aps[i], now, loc))
	}
	return out
}

type ReminderDTO struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	ReminderType  string     `json:"reminder_type"`
	ScheduledFor  time.Time  `json:"scheduled_for"`
	Sent          bool       `json:"sent"`
	SentAt        *time.Time `json:"sent_at"`
	IsDue         bool       `json:"is_due"`
}

func NewReminderDTO(r *models.AppointmentReminder, now time.Time, loc *time.Location) ReminderDTO {
	out := ReminderDTO{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		ReminderType:  r.Channel,
		ScheduledFor:  r.ScheduledFor.In(loc),
		Sent:          r.Sent,
		IsDue:         r.IsDue(now),
	}
	if r.SentAt != nil {
		at := r.SentAt.In(loc)
		out.SentAt = &at
	}
	return out
}

func NewReminderList(rs []models.AppointmentReminder, now time.Time, loc *time.Location) []ReminderDTO {
	out := make([]ReminderDTO, 0, len(rs))
	for i := range rs {
		out = append(out, NewReminderDTO(&rs[i], now, loc))
	}
	return out
}
