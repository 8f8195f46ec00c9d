package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	MinSlotMinutes     = 15
	MaxSlotMinutes     = 120
	DefaultSlotMinutes = 30
)

type Slot struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Free  bool      `json:"available"`
}

// FindSlots partitions the opening hours of date into consecutive slots of
// slotMinutes and marks each against the dentist's appointments. A trailing
// remainder shorter than a slot is dropped and a closed day yields no slots.
func FindSlots(
	dentistID uuid.UUID,
	date time.Time,
	slotMinutes int,
	existing []models.Appointment,
) []Slot {

	open, close, ok := HoursOn(date)
	if !ok || slotMinutes <= 0 {
		return []Slot{}
	}

	d := time.Duration(slotMinutes) * time.Minute
	slots := make([]Slot, 0, int(close.Sub(open)/d))

	for cur := open; !cur.Add(d).After(close); cur = cur.Add(d) {
		w := Window{Start: cur, End: cur.Add(d)}
		slots = append(slots, Slot{
			Start: w.Start,
			End:   w.End,
			Free:  !HasConflict(dentistID, w, existing, nil),
		})
	}

	return slots
}

func CountFree(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Free {
			n++
		}
	}
	return n
}
