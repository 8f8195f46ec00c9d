package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func ptr[T any](v T) *T { return &v }

func TestReschedule_MovingStartRegeneratesReminders(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)
	before := f.repo.RemindersFor(ap.ID)
	require.Len(t, before, 3)

	updated, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:         f.front(),
		ID:             ap.ID,
		ScheduledStart: ptr(thursday(15, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, thursday(15, 0), updated.ScheduledStart)
	assert.Equal(t, thursday(15, 30), updated.ScheduledEnd())

	after := f.repo.RemindersFor(ap.ID)
	require.Len(t, after, 3)
	assert.Equal(t, thursday(15, 0).Add(-24*time.Hour), after[0].ScheduledFor)
	for _, old := range before {
		assert.NotContains(t, reminderIDs(after), old.ID)
	}

	ev := f.sink.last()
	assert.Len(t, ev.Schedule, 3)
	assert.ElementsMatch(t, reminderIDs(before), ev.Unschedule)
}

func TestReschedule_DurationOnlyKeepsReminders(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)
	before := f.repo.RemindersFor(ap.ID)

	updated, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:          f.front(),
		ID:              ap.ID,
		DurationMinutes: ptr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.DurationMinutes)
	assert.Equal(t, reminderIDs(before), reminderIDs(f.repo.RemindersFor(ap.ID)))
}

func TestReschedule_ExcludesItselfFromConflict(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 60)

	_, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:         f.front(),
		ID:             ap.ID,
		ScheduledStart: ptr(thursday(10, 30)),
	})
	assert.NoError(t, err)
}

func TestReschedule_ConflictWithAnother(t *testing.T) {
	f := newFixture(t)
	other := f.book(t, f.dentist, thursday(11, 0), 30)
	ap := f.book(t, f.dentist, thursday(9, 0), 30)

	_, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:          f.front(),
		ID:              ap.ID,
		ScheduledStart:  ptr(thursday(10, 45)),
		DurationMinutes: ptr(30),
	})

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, other.ID, ce.Existing.ID)

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, thursday(9, 0), stored.ScheduledStart)
}

func TestReschedule_TerminalAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)
	_, err := f.cancel.Execute(context.Background(), f.front(), ap.ID, "moved away")
	require.NoError(t, err)

	_, err = f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:         f.front(),
		ID:             ap.ID,
		ScheduledStart: ptr(thursday(12, 0)),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointment_not_reschedulable", ve.Code)
}

func TestReschedule_TerminalStatusReportedBeforeWindow(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)
	_, err := f.cancel.Execute(context.Background(), f.front(), ap.ID, "moved away")
	require.NoError(t, err)

	_, err = f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:         f.front(),
		ID:             ap.ID,
		ScheduledStart: ptr(testNow.Add(-time.Hour)),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointment_not_reschedulable", ve.Code)
}

func TestReschedule_NotesOnly(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)

	updated, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller: f.asDentist(f.dentist),
		ID:     ap.ID,
		Notes:  ptr("prefers local anaesthesia"),
	})
	require.NoError(t, err)
	assert.Equal(t, "prefers local anaesthesia", updated.Notes)
	assert.Equal(t, "routine cleaning", updated.Reason)
}

func TestReschedule_OutsideScope(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)

	_, err := f.reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:         f.asDentist(f.otherDentist),
		ID:             ap.ID,
		ScheduledStart: ptr(thursday(12, 0)),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReschedule_DurationOnlyUsesClinicZone(t *testing.T) {
	f := newFixture(t)
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	clock := timezone.FixedClock{At: testNow.In(bogota)}

	// Stored in UTC, 15:00 in Bogota.
	create := NewCreateAppointment(f.repo, f.repo, f.repo, clock, f.sink)
	ap, err := create.Execute(context.Background(), CreateAppointmentInput{
		Caller:          f.front(),
		PatientID:       f.patient.ID,
		DentistID:       f.dentist.ID,
		ScheduledStart:  thursday(20, 0),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	reschedule := NewRescheduleAppointment(f.repo, clock, f.sink)
	updated, err := reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:          f.front(),
		ID:              ap.ID,
		DurationMinutes: ptr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.DurationMinutes)

	// 15:00 to 19:00 in Bogota runs past closing.
	_, err = reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:          f.front(),
		ID:              ap.ID,
		DurationMinutes: ptr(240),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "outside_business_hours", ve.Code)
}

// contendedRepo gives up on the dentist lock the way the postgres store does
// after its retries are spent.
type contendedRepo struct {
	*repository.MemoryRepository
}

func (contendedRepo) WithinDentistLock(context.Context, uuid.UUID, func(domain.Repository) error) error {
	return &domain.ConflictError{}
}

func TestReschedule_LockContentionReportsRequestedWindow(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.dentist, thursday(10, 0), 30)

	reschedule := NewRescheduleAppointment(contendedRepo{f.repo}, f.clock, f.sink)
	_, err := reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		Caller:          f.front(),
		ID:              ap.ID,
		ScheduledStart:  ptr(thursday(11, 0)),
		DurationMinutes: ptr(45),
	})

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, thursday(11, 0), ce.Requested.Start)
	assert.Equal(t, thursday(11, 45), ce.Requested.End)
	assert.Nil(t, ce.Existing)
}
