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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Caller domain.Caller

	PatientID uuid.UUID
	DentistID uuid.UUID

	ScheduledStart  time.Time
	DurationMinutes int

	Reason string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	patients  domain.PatientDirectory
	staff     domain.StaffDirectory
	clock     domain.Clock
	reminders ReminderSink
}

func NewCreateAppointment(
	repo domain.Repository,
	patients domain.PatientDirectory,
	staff domain.StaffDirectory,
	clock domain.Clock,
	reminders ReminderSink,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		patients:  patients,
		staff:     staff,
		clock:     clock,
		reminders: reminders,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Scope
	// --------------------------------------------------
	if err := domain.AuthorizeDentist(in.Caller, in.DentistID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	if err := domain.ValidateText(in.Reason, in.Notes); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	window := domain.NewWindow(in.ScheduledStart, in.DurationMinutes)
	if err := domain.ValidateWindow(window, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Directories
	// --------------------------------------------------
	ok, err := uc.patients.PatientExists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Invalid("patient_not_found", "patient does not exist")
	}

	ok, err = uc.staff.IsDentist(ctx, in.DentistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Invalid("dentist_not_found", "dentist does not exist")
	}

	// --------------------------------------------------
	// Conflict check + insert, serialized per dentist
	// --------------------------------------------------
	var (
		created   *models.Appointment
		reminders []models.AppointmentReminder
	)

	err = uc.repo.WithinDentistLock(ctx, in.DentistID, func(tx domain.Repository) error {
		existing, err := conflictSnapshot(ctx, tx, in.DentistID, window)
		if err != nil {
			return err
		}

		if hit := domain.FindConflict(in.DentistID, window, existing, nil); hit != nil {
			return &domain.ConflictError{Requested: window, Existing: hit}
		}

		ap := &models.Appointment{
			ID:              uuid.New(),
			PatientID:       in.PatientID,
			DentistID:       in.DentistID,
			CreatorID:       in.Caller.ID,
			ScheduledStart:  in.ScheduledStart,
			DurationMinutes: in.DurationMinutes,
			Status:          string(domain.InitialStatus()),
			Reason:          strings.TrimSpace(in.Reason),
			Notes:           strings.TrimSpace(in.Notes),
		}

		if err := tx.InsertAppointment(ctx, ap); err != nil {
			return err
		}

		reminders = domain.DeriveReminders(ap, now)
		if err := tx.InsertReminders(ctx, reminders); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) && ce.Requested.Start.IsZero() {
			ce.Requested = window
		}
		return nil, err
	}

	// --------------------------------------------------
	// Reminder index
	// --------------------------------------------------
	uc.reminders.Dispatch(reminder.Event{Schedule: reminders})

	return created, nil
}
