package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/reminder"
)

// ReminderSink receives reminder changes after they are committed.
type ReminderSink interface {
	Dispatch(ev reminder.Event)
}

var inactiveStatuses = []domain.Status{
	domain.StatusCancelled,
	domain.StatusNoShow,
}

// conflictSnapshot loads every live appointment of the dentist that could
// overlap w. Appointments never exceed MaxDurationMinutes, so anything that
// starts earlier than that before w cannot reach it.
func conflictSnapshot(
	ctx context.Context,
	repo domain.Repository,
	dentistID uuid.UUID,
	w domain.Window,
) ([]models.Appointment, error) {

	from := w.Start.Add(-time.Duration(domain.MaxDurationMinutes) * time.Minute)
	return repo.FindAppointments(ctx, dentistID, from, w.End, inactiveStatuses)
}

func reminderIDs(rs []models.AppointmentReminder) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}
