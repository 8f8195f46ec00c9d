package appointment

import (
	"context"
	"math"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type Stats struct {
	Total          int64                   `json:"total"`
	ByStatus       map[domain.Status]int64 `json:"by_status"`
	UpcomingCount  int64                   `json:"upcoming_count"`
	CompletionRate float64                 `json:"completion_rate"`
	NoShowRate     float64                 `json:"no_show_rate"`
	TotalPatients  int64                   `json:"total_patients"`
}

type GetStats struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewGetStats(repo domain.Repository, clock domain.Clock) *GetStats {
	return &GetStats{repo: repo, clock: clock}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	caller domain.Caller,
) (*Stats, error) {

	scope := domain.VisibleScope(caller)

	counts, err := uc.repo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := &Stats{ByStatus: make(map[domain.Status]int64, len(domain.AllStatuses))}
	for _, st := range domain.AllStatuses {
		out.ByStatus[st] = counts[st]
		out.Total += counts[st]
	}

	now := uc.clock.Now()
	until := now.Add(DefaultUpcomingDays * 24 * time.Hour)
	_, upcoming, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		Scope:    scope,
		Statuses: upcomingStatuses,
		From:     &now,
		To:       &until,
		Page:     1,
		PerPage:  1,
	})
	if err != nil {
		return nil, err
	}
	out.UpcomingCount = upcoming

	completed := counts[domain.StatusCompleted]
	noShow := counts[domain.StatusNoShow]
	out.CompletionRate = percent(completed, completed+noShow)
	out.NoShowRate = percent(noShow, completed+noShow)

	out.TotalPatients, err = uc.repo.CountPatients(ctx, scope)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
