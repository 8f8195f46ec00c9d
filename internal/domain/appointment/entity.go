package appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480
	DurationStep       = 5

	MaxReasonLength = 500
	MaxNotesLength  = 2000
)

// ===============================
// Validations
// ===============================

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return Invalid(
			"invalid_duration",
			fmt.Sprintf("duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes),
		)
	}
	if minutes%DurationStep != 0 {
		return Invalid(
			"invalid_duration",
			fmt.Sprintf("duration must be a multiple of %d minutes", DurationStep),
		)
	}
	return nil
}

// ValidateWindow checks that a window starts in the future and fits inside
// the clinic hours of its day. now carries the clinic location.
func ValidateWindow(w Window, now time.Time) error {
	if !w.Start.After(now) {
		return Invalid("start_in_past", "appointment must be scheduled in the future")
	}
	if !WithinBusinessHours(w, now.Location()) {
		return Invalid("outside_business_hours", "appointment must fall within business hours")
	}
	return nil
}

func ValidateText(reason, notes string) error {
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return Invalid("reason_too_long", fmt.Sprintf("reason must be at most %d characters", MaxReasonLength))
	}
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return Invalid("notes_too_long", fmt.Sprintf("notes must be at most %d characters", MaxNotesLength))
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves the appointment through the state machine. The
// cancellation reason is only recorded when the target is cancelled. New
// notes are appended and the combined text must stay within MaxNotesLength.
// ap is left untouched on error.
func ApplyStatus(ap *models.Appointment, requested Status, reason, notes string) error {
	next, err := Transition(Status(ap.Status), requested)
	if err != nil {
		return err
	}

	combined := ap.Notes
	if n := strings.TrimSpace(notes); n != "" {
		if combined == "" {
			combined = n
		} else {
			combined = combined + "\n" + n
		}
	}
	if utf8.RuneCountInString(combined) > MaxNotesLength {
		return Invalid("notes_too_long", fmt.Sprintf("notes must be at most %d characters", MaxNotesLength))
	}

	ap.Status = string(next)
	if next == StatusCancelled {
		ap.CancellationReason = strings.TrimSpace(reason)
	}
	ap.Notes = combined
	return nil
}

// CheckReschedulable rejects appointments whose status no longer allows
// moving the window.
func CheckReschedulable(ap *models.Appointment) error {
	if !Status(ap.Status).Reschedulable() {
		return Invalid(
			"appointment_not_reschedulable",
			fmt.Sprintf("appointment in status %s cannot be rescheduled", ap.Status),
		)
	}
	return nil
}

// Reschedule moves the window and reports whether the start changed.
func Reschedule(ap *models.Appointment, start time.Time, durationMinutes int) (startChanged bool, err error) {
	if err := CheckReschedulable(ap); err != nil {
		return false, err
	}

	startChanged = !ap.ScheduledStart.Equal(start)
	ap.ScheduledStart = start
	ap.DurationMinutes = durationMinutes
	return startChanged, nil
}

// ===============================
// Derived
// ===============================

func IsPast(ap *models.Appointment, now time.Time) bool {
	return ap.ScheduledStart.Before(now)
}

// IsToday compares calendar dates in now's location.
func IsToday(ap *models.Appointment, now time.Time) bool {
	y1, m1, d1 := ap.ScheduledStart.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
