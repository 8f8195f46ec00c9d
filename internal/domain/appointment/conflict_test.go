package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2030, 1, 7, h, m, 0, 0, time.UTC)
}

func booking(dentist uuid.UUID, start time.Time, minutes int, status Status) models.Appointment {
	return models.Appointment{
		ID:              uuid.New(),
		DentistID:       dentist,
		ScheduledStart:  start,
		DurationMinutes: minutes,
		Status:          string(status),
	}
}

func TestFindConflict_Overlap(t *testing.T) {
	dentist := uuid.New()
	existing := []models.Appointment{booking(dentist, at(10, 0), 60, StatusScheduled)}

	hit := FindConflict(dentist, NewWindow(at(10, 30), 60), existing, nil)
	if assert.NotNil(t, hit) {
		assert.Equal(t, existing[0].ID, hit.ID)
	}
}

func TestHasConflict_BackToBackIsLegal(t *testing.T) {
	dentist := uuid.New()
	existing := []models.Appointment{booking(dentist, at(10, 0), 30, StatusConfirmed)}

	assert.False(t, HasConflict(dentist, NewWindow(at(10, 30), 30), existing, nil))
	assert.False(t, HasConflict(dentist, NewWindow(at(9, 30), 30), existing, nil))
}

func TestHasConflict_ContainmentIsSymmetric(t *testing.T) {
	dentist := uuid.New()
	outer := booking(dentist, at(9, 0), 120, StatusScheduled)
	inner := booking(dentist, at(9, 30), 30, StatusScheduled)

	assert.True(t, HasConflict(dentist, WindowOf(&inner), []models.Appointment{outer}, nil))
	assert.True(t, HasConflict(dentist, WindowOf(&outer), []models.Appointment{inner}, nil))
}

func TestHasConflict_InactiveStatusesNeverBlock(t *testing.T) {
	dentist := uuid.New()
	existing := []models.Appointment{
		booking(dentist, at(10, 0), 60, StatusCancelled),
		booking(dentist, at(10, 0), 60, StatusNoShow),
	}

	assert.False(t, HasConflict(dentist, NewWindow(at(10, 0), 60), existing, nil))
}

func TestHasConflict_CompletedStillBlocks(t *testing.T) {
	dentist := uuid.New()
	existing := []models.Appointment{booking(dentist, at(10, 0), 60, StatusCompleted)}

	assert.True(t, HasConflict(dentist, NewWindow(at(10, 15), 15), existing, nil))
}

func TestHasConflict_OtherDentistIgnored(t *testing.T) {
	existing := []models.Appointment{booking(uuid.New(), at(10, 0), 60, StatusScheduled)}

	assert.False(t, HasConflict(uuid.New(), NewWindow(at(10, 0), 60), existing, nil))
}

func TestHasConflict_ExcludedAppointment(t *testing.T) {
	dentist := uuid.New()
	self := booking(dentist, at(10, 0), 60, StatusScheduled)

	assert.True(t, HasConflict(dentist, NewWindow(at(10, 30), 60), []models.Appointment{self}, nil))
	assert.False(t, HasConflict(dentist, NewWindow(at(10, 30), 60), []models.Appointment{self}, &self.ID))
}
