package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	DefaultUpcomingDays  = 7
	MaxUpcomingDays      = 30
	DefaultUpcomingLimit = 10
	MaxUpcomingLimit     = 50
)

var upcomingStatuses = []domain.Status{domain.StatusScheduled, domain.StatusConfirmed}

type ListUpcoming struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewListUpcoming(repo domain.Repository, clock domain.Clock) *ListUpcoming {
	return &ListUpcoming{repo: repo, clock: clock}
}

func (uc *ListUpcoming) Execute(
	ctx context.Context,
	caller domain.Caller,
	days int,
	limit int,
) ([]models.Appointment, error) {

	if days <= 0 {
		days = DefaultUpcomingDays
	}
	if days > MaxUpcomingDays {
		days = MaxUpcomingDays
	}
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	if limit > MaxUpcomingLimit {
		limit = MaxUpcomingLimit
	}

	now := uc.clock.Now()
	until := now.Add(time.Duration(days) * 24 * time.Hour)

	items, _, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		Scope:    domain.VisibleScope(caller),
		Statuses: upcomingStatuses,
		From:     &now,
		To:       &until,
		Page:     1,
		PerPage:  limit,
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
