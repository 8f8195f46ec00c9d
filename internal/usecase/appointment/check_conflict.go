package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CheckConflictInput struct {
	Caller domain.Caller

	DentistID       uuid.UUID
	ScheduledStart  time.Time
	DurationMinutes int
	ExcludeID       *uuid.UUID
}

type ConflictResult struct {
	Conflict  bool                `json:"has_conflict"`
	Requested domain.Window       `json:"requested"`
	Existing  *models.Appointment `json:"conflicting_appointment,omitempty"`
}

// CheckConflict is a read-only probe. It takes no lock, so a clear result is
// advisory until create commits.
type CheckConflict struct {
	repo domain.Repository
}

func NewCheckConflict(repo domain.Repository) *CheckConflict {
	return &CheckConflict{repo: repo}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	in CheckConflictInput,
) (*ConflictResult, error) {

	if err := domain.AuthorizeDentist(in.Caller, in.DentistID); err != nil {
		return nil, err
	}
	if err := domain.ValidateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}

	window := domain.NewWindow(in.ScheduledStart, in.DurationMinutes)

	existing, err := conflictSnapshot(ctx, uc.repo, in.DentistID, window)
	if err != nil {
		return nil, err
	}

	hit := domain.FindConflict(in.DentistID, window, existing, in.ExcludeID)

	return &ConflictResult{
		Conflict:  hit != nil,
		Requested: window,
		Existing:  hit,
	}, nil
}
