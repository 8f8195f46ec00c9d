package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/reminder"
)

type ChangeStatusInput struct {
	Caller domain.Caller
	ID     uuid.UUID

	Status domain.Status
	Reason string
	Notes  string
}

type ChangeAppointmentStatus struct {
	repo      domain.Repository
	reminders ReminderSink
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	reminders ReminderSink,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:      repo,
		reminders: reminders,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	current, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(in.Caller, current); err != nil {
		return nil, err
	}
	if err := domain.ValidateText(in.Reason, in.Notes); err != nil {
		return nil, err
	}

	var (
		updated *models.Appointment
		removed []models.AppointmentReminder
	)

	err = uc.repo.WithinDentistLock(ctx, current.DentistID, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.ID)
		if err != nil {
			return err
		}

		if err := domain.ApplyStatus(ap, in.Status, in.Reason, in.Notes); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if in.Status.IsTerminal() {
			removed, err = tx.DeletePendingReminders(ctx, ap.ID)
			if err != nil {
				return err
			}
		}

		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.reminders.Dispatch(reminder.Event{Unschedule: reminderIDs(removed)})

	return updated, nil
}
