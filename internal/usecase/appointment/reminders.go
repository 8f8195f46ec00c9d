package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/reminder"
)

const (
	DefaultDueLimit = 100
	MaxDueLimit     = 500
)

// Only front-desk roles drive the notification relay.
func canRelay(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin || c.Role == domain.RoleReceptionist
}

type ListDueReminders struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewListDueReminders(repo domain.Repository, clock domain.Clock) *ListDueReminders {
	return &ListDueReminders{repo: repo, clock: clock}
}

func (uc *ListDueReminders) Execute(
	ctx context.Context,
	caller domain.Caller,
	limit int,
) ([]models.AppointmentReminder, error) {

	if !canRelay(caller) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	if limit > MaxDueLimit {
		limit = MaxDueLimit
	}

	return uc.repo.ListDueReminders(ctx, uc.clock.Now(), limit)
}

type MarkReminderSent struct {
	repo      domain.Repository
	clock     domain.Clock
	reminders ReminderSink
}

func NewMarkReminderSent(
	repo domain.Repository,
	clock domain.Clock,
	reminders ReminderSink,
) *MarkReminderSent {
	return &MarkReminderSent{repo: repo, clock: clock, reminders: reminders}
}

func (uc *MarkReminderSent) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
) (*models.AppointmentReminder, error) {

	if !canRelay(caller) {
		return nil, domain.ErrForbidden
	}

	rem, err := uc.repo.MarkReminderSent(ctx, id, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	uc.reminders.Dispatch(reminder.Event{Unschedule: []uuid.UUID{rem.ID}})
	return rem, nil
}
