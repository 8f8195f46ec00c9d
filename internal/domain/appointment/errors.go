package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var (
	ErrNotFound         = errors.New("appointment_not_found")
	ErrReminderNotFound = errors.New("reminder_not_found")
	ErrForbidden        = errors.New("forbidden")
)

// ValidationError is malformed or unacceptable input. Code is stable and
// machine readable.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Invalid(code, message string) error {
	return &ValidationError{Code: code, Message: message}
}

// ConflictError carries the requested window and the live appointment it
// collides with. Existing is nil when the collision was reported by the
// store constraint rather than found in a snapshot.
type ConflictError struct {
	Requested Window
	Existing  *models.Appointment
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return fmt.Sprintf("time_conflict: %s", e.Requested)
	}
	return fmt.Sprintf(
		"time_conflict: %s overlaps appointment %s (%s)",
		e.Requested,
		e.Existing.ID,
		WindowOf(e.Existing),
	)
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s -> %s", e.From, e.To)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
