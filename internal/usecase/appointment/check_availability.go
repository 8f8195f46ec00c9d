package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type CheckAvailabilityInput struct {
	Caller domain.Caller

	DentistID   uuid.UUID
	Date        time.Time
	SlotMinutes int
}

type Availability struct {
	DentistID      uuid.UUID     `json:"dentist_id"`
	Date           string        `json:"date"`
	Slots          []domain.Slot `json:"slots"`
	TotalSlots     int           `json:"total_slots"`
	AvailableSlots int           `json:"available_slots"`
}

type CheckAvailability struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewCheckAvailability(repo domain.Repository, clock domain.Clock) *CheckAvailability {
	return &CheckAvailability{repo: repo, clock: clock}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (*Availability, error) {

	if err := domain.AuthorizeDentist(in.Caller, in.DentistID); err != nil {
		return nil, err
	}

	slotMinutes := in.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}
	if slotMinutes < domain.MinSlotMinutes || slotMinutes > domain.MaxSlotMinutes {
		return nil, domain.Invalid(
			"invalid_slot_duration",
			fmt.Sprintf("slot duration must be between %d and %d minutes", domain.MinSlotMinutes, domain.MaxSlotMinutes),
		)
	}

	now := uc.clock.Now()

	// The calendar date is read in the clinic location.
	y, m, d := in.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	out := &Availability{
		DentistID: in.DentistID,
		Date:      date.Format("2006-01-02"),
		Slots:     []domain.Slot{},
	}

	open, close, ok := domain.HoursOn(date)
	if !ok {
		return out, nil
	}

	existing, err := conflictSnapshot(ctx, uc.repo, in.DentistID, domain.Window{Start: open, End: close})
	if err != nil {
		return nil, err
	}

	slots := domain.FindSlots(in.DentistID, date, slotMinutes, existing)
	for i := range slots {
		if slots[i].Start.Before(now) {
			slots[i].Free = false
		}
	}

	out.Slots = slots
	out.TotalSlots = len(slots)
	out.AvailableSlots = domain.CountFree(slots)
	return out, nil
}
