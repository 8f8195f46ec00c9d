package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewWindow(start time.Time, durationMinutes int) Window {
	return Window{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func WindowOf(ap *models.Appointment) Window {
	return Window{Start: ap.ScheduledStart, End: ap.ScheduledEnd()}
}

func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

func (w Window) String() string {
	return w.Start.Format(time.RFC3339) + "/" + w.End.Format(time.RFC3339)
}

// FindConflict returns the first live appointment of the dentist that
// overlaps the candidate window, or nil. Touching boundaries do not
// conflict.
func FindConflict(
	dentistID uuid.UUID,
	candidate Window,
	existing []models.Appointment,
	exclude *uuid.UUID,
) *models.Appointment {

	for i := range existing {
		ap := &existing[i]

		if ap.DentistID != dentistID {
			continue
		}
		if !Status(ap.Status).Blocks() {
			continue
		}
		if exclude != nil && ap.ID == *exclude {
			continue
		}

		if candidate.Overlaps(WindowOf(ap)) {
			return ap
		}
	}
	return nil
}

func HasConflict(
	dentistID uuid.UUID,
	candidate Window,
	existing []models.Appointment,
	exclude *uuid.UUID,
) bool {
	return FindConflict(dentistID, candidate, existing, exclude) != nil
}
