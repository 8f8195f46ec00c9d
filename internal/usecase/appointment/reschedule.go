package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/reminder"
)

// RescheduleAppointmentInput carries optional changes. Nil fields keep
// their current value.
type RescheduleAppointmentInput struct {
	Caller domain.Caller
	ID     uuid.UUID

	ScheduledStart  *time.Time
	DurationMinutes *int

	Reason *string
	Notes  *string
}

func (in RescheduleAppointmentInput) movesWindow() bool {
	return in.ScheduledStart != nil || in.DurationMinutes != nil
}

type RescheduleAppointment struct {
	repo      domain.Repository
	clock     domain.Clock
	reminders ReminderSink
}

func NewRescheduleAppointment(
	repo domain.Repository,
	clock domain.Clock,
	reminders ReminderSink,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		clock:     clock,
		reminders: reminders,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	current, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(in.Caller, current); err != nil {
		return nil, err
	}

	reason, notes := current.Reason, current.Notes
	if in.Reason != nil {
		reason = strings.TrimSpace(*in.Reason)
	}
	if in.Notes != nil {
		notes = strings.TrimSpace(*in.Notes)
	}
	if err := domain.ValidateText(reason, notes); err != nil {
		return nil, err
	}

	if !in.movesWindow() {
		current.Reason, current.Notes = reason, notes
		if err := uc.repo.UpdateAppointment(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	}

	now := uc.clock.Now()
	requested := requestedWindow(current, in)

	var (
		updated   *models.Appointment
		scheduled []models.AppointmentReminder
		removed   []models.AppointmentReminder
	)

	err = uc.repo.WithinDentistLock(ctx, current.DentistID, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.ID)
		if err != nil {
			return err
		}

		if err := domain.CheckReschedulable(ap); err != nil {
			return err
		}

		duration := ap.DurationMinutes
		if in.DurationMinutes != nil {
			duration = *in.DurationMinutes
		}
		if err := domain.ValidateDuration(duration); err != nil {
			return err
		}

		window := requestedWindow(ap, in)
		if err := domain.ValidateWindow(window, now); err != nil {
			return err
		}

		startChanged, err := domain.Reschedule(ap, window.Start, duration)
		if err != nil {
			return err
		}

		existing, err := conflictSnapshot(ctx, tx, ap.DentistID, window)
		if err != nil {
			return err
		}
		if hit := domain.FindConflict(ap.DentistID, window, existing, &ap.ID); hit != nil {
			return &domain.ConflictError{Requested: window, Existing: hit}
		}

		ap.Reason, ap.Notes = reason, notes
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if startChanged {
			removed, err = tx.DeletePendingReminders(ctx, ap.ID)
			if err != nil {
				return err
			}
			scheduled = domain.DeriveReminders(ap, now)
			if err := tx.InsertReminders(ctx, scheduled); err != nil {
				return err
			}
		}

		updated = ap
		return nil
	})
	if err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) && ce.Requested.Start.IsZero() {
			ce.Requested = requested
		}
		return nil, err
	}

	uc.reminders.Dispatch(reminder.Event{
		Schedule:   scheduled,
		Unschedule: reminderIDs(removed),
	})

	return updated, nil
}

// requestedWindow applies the optional start and duration changes to ap.
func requestedWindow(ap *models.Appointment, in RescheduleAppointmentInput) domain.Window {
	start, duration := ap.ScheduledStart, ap.DurationMinutes
	if in.ScheduledStart != nil {
		start = *in.ScheduledStart
	}
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}
	return domain.NewWindow(start, duration)
}
