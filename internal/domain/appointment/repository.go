package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ListFilter narrows a paginated listing. Scope is always applied first.
type ListFilter struct {
	Scope     Scope
	PatientID *uuid.UUID
	DentistID *uuid.UUID
	Statuses  []Status
	From      *time.Time
	To        *time.Time
	Page      int
	PerPage   int
}

func (f ListFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}

type Repository interface {
	// -------- Locking --------

	// WithinDentistLock runs fn in one transaction that holds an exclusive
	// lock on the dentist, so concurrent check-then-write sequences for the
	// same dentist are serialized. fn receives a repository bound to that
	// transaction.
	WithinDentistLock(
		ctx context.Context,
		dentistID uuid.UUID,
		fn func(tx Repository) error,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// FindAppointments returns the dentist's appointments whose start falls
	// in [from, to), ordered by start.
	FindAppointments(
		ctx context.Context,
		dentistID uuid.UUID,
		from time.Time,
		to time.Time,
		excludeStatuses []Status,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, int64, error)

	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Stats --------
	CountByStatus(
		ctx context.Context,
		scope Scope,
	) (map[Status]int64, error)

	CountPatients(
		ctx context.Context,
		scope Scope,
	) (int64, error)

	// -------- Reminders --------
	InsertReminders(
		ctx context.Context,
		reminders []models.AppointmentReminder,
	) error

	// DeletePendingReminders removes the unsent reminders of an appointment
	// and returns what was removed.
	DeletePendingReminders(
		ctx context.Context,
		appointmentID uuid.UUID,
	) ([]models.AppointmentReminder, error)

	ListDueReminders(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.AppointmentReminder, error)

	MarkReminderSent(
		ctx context.Context,
		id uuid.UUID,
		at time.Time,
	) (*models.AppointmentReminder, error)
}

type PatientDirectory interface {
	PatientExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type StaffDirectory interface {
	IsDentist(ctx context.Context, id uuid.UUID) (bool, error)
}

// Clock is the single source of the current instant.
type Clock interface {
	Now() time.Time
}
