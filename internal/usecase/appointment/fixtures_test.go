package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/reminder"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Monday 2030-01-07 07:00 UTC.
var testNow = time.Date(2030, 1, 7, 7, 0, 0, 0, time.UTC)

// thursday returns a time on Thursday 2030-01-10.
func thursday(h, m int) time.Time {
	return time.Date(2030, 1, 10, h, m, 0, 0, time.UTC)
}

type recordingSink struct {
	mu     sync.Mutex
	events []reminder.Event
}

func (s *recordingSink) Dispatch(ev reminder.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last() reminder.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return reminder.Event{}
	}
	return s.events[len(s.events)-1]
}

type fixture struct {
	repo  *repository.MemoryRepository
	clock timezone.FixedClock
	sink  *recordingSink

	dentist      models.User
	otherDentist models.User
	receptionist models.User
	patient      models.Patient

	create       *CreateAppointment
	reschedule   *RescheduleAppointment
	changeStatus *ChangeAppointmentStatus
	cancel       *CancelAppointment
	get          *GetAppointment
	list         *ListAppointments
	upcoming     *ListUpcoming
	stats        *GetStats
	conflict     *CheckConflict
	availability *CheckAvailability
	due          *ListDueReminders
	markSent     *MarkReminderSent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepository()
	clock := timezone.FixedClock{At: testNow}
	sink := &recordingSink{}

	f := &fixture{
		repo:  repo,
		clock: clock,
		sink:  sink,

		dentist:      repo.AddStaff(models.User{FullName: "Dr. Carlos Mendez", Role: string(domain.RoleDentist), Active: true}),
		otherDentist: repo.AddStaff(models.User{FullName: "Dr. Ana Ruiz", Role: string(domain.RoleDentist), Active: true}),
		receptionist: repo.AddStaff(models.User{FullName: "Laura Front", Role: string(domain.RoleReceptionist), Active: true}),
		patient:      repo.AddPatient(models.Patient{FullName: "Maria Garcia", Active: true}),
	}

	f.create = NewCreateAppointment(repo, repo, repo, clock, sink)
	f.reschedule = NewRescheduleAppointment(repo, clock, sink)
	f.changeStatus = NewChangeAppointmentStatus(repo, sink)
	f.cancel = NewCancelAppointment(f.changeStatus)
	f.get = NewGetAppointment(repo)
	f.list = NewListAppointments(repo)
	f.upcoming = NewListUpcoming(repo, clock)
	f.stats = NewGetStats(repo, clock)
	f.conflict = NewCheckConflict(repo)
	f.availability = NewCheckAvailability(repo, clock)
	f.due = NewListDueReminders(repo, clock)
	f.markSent = NewMarkReminderSent(repo, clock, sink)

	return f
}

func (f *fixture) admin() domain.Caller {
	return domain.Caller{ID: uuid.New(), Role: domain.RoleAdmin}
}

func (f *fixture) front() domain.Caller {
	return domain.Caller{ID: f.receptionist.ID, Role: domain.RoleReceptionist}
}

func (f *fixture) asDentist(u models.User) domain.Caller {
	return domain.Caller{ID: u.ID, Role: domain.RoleDentist}
}

func (f *fixture) book(t *testing.T, dentist models.User, start time.Time, minutes int) *models.Appointment {
	t.Helper()

	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		Caller:          f.front(),
		PatientID:       f.patient.ID,
		DentistID:       dentist.ID,
		ScheduledStart:  start,
		DurationMinutes: minutes,
		Reason:          "routine cleaning",
	})
	require.NoError(t, err)
	return ap
}
