package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// MemoryRepository keeps appointments, reminders and the directories in
// process. Writes made inside WithinDentistLock are not rolled back when fn
// fails, so callers validate before they write.
type MemoryRepository struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]models.Appointment
	reminders    map[uuid.UUID]models.AppointmentReminder
	patients     map[uuid.UUID]models.Patient
	staff        map[uuid.UUID]models.User

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		appointments: make(map[uuid.UUID]models.Appointment),
		reminders:    make(map[uuid.UUID]models.AppointmentReminder),
		patients:     make(map[uuid.UUID]models.Patient),
		staff:        make(map[uuid.UUID]models.User),
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// --------------------------------------------------
// Directory seeding
// --------------------------------------------------

func (r *MemoryRepository) AddPatient(p models.Patient) models.Patient {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
	return p
}

func (r *MemoryRepository) AddStaff(u models.User) models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[u.ID] = u
	return u
}

func (r *MemoryRepository) PatientExists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	return ok && p.Active && !p.DeletedAt.Valid, nil
}

func (r *MemoryRepository) IsDentist(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.staff[id]
	return ok && u.Active && !u.DeletedAt.Valid && u.Role == string(domain.RoleDentist), nil
}

// --------------------------------------------------
// Locking
// --------------------------------------------------

func (r *MemoryRepository) WithinDentistLock(
	ctx context.Context,
	dentistID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	r.locksMu.Lock()
	l, ok := r.locks[dentistID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[dentistID] = l
	}
	r.locksMu.Unlock()

	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok || ap.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) FindAppointments(
	_ context.Context,
	dentistID uuid.UUID,
	from time.Time,
	to time.Time,
	excludeStatuses []domain.Status,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DeletedAt.Valid || ap.DentistID != dentistID {
			continue
		}
		if ap.ScheduledStart.Before(from) || !ap.ScheduledStart.Before(to) {
			continue
		}
		if containsStatus(excludeStatuses, domain.Status(ap.Status)) {
			continue
		}
		out = append(out, ap)
	}

	sortByStart(out)
	return out, nil
}

func (r *MemoryRepository) ListAppointments(
	_ context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DeletedAt.Valid || !f.Scope.Allows(&ap) {
			continue
		}
		if f.PatientID != nil && ap.PatientID != *f.PatientID {
			continue
		}
		if f.DentistID != nil && ap.DentistID != *f.DentistID {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, domain.Status(ap.Status)) {
			continue
		}
		if f.From != nil && ap.ScheduledStart.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.ScheduledStart.Before(*f.To) {
			continue
		}
		matched = append(matched, ap)
	}

	sortByStart(matched)
	total := int64(len(matched))

	start := f.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.PerPage > 0 && start+f.PerPage < end {
		end = start + f.PerPage
	}

	return matched[start:end], total, nil
}

func (r *MemoryRepository) InsertAppointment(_ context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appointments[ap.ID]
	if !ok || cur.DeletedAt.Valid {
		return domain.ErrNotFound
	}

	ap.CreatedAt = cur.CreatedAt
	ap.UpdatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *MemoryRepository) CountByStatus(_ context.Context, scope domain.Scope) (map[domain.Status]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.Status]int64)
	for _, ap := range r.appointments {
		if ap.DeletedAt.Valid || !scope.Allows(&ap) {
			continue
		}
		out[domain.Status(ap.Status)]++
	}
	return out, nil
}

func (r *MemoryRepository) CountPatients(_ context.Context, scope domain.Scope) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	for _, ap := range r.appointments {
		if ap.DeletedAt.Valid || !scope.Allows(&ap) {
			continue
		}
		seen[ap.PatientID] = struct{}{}
	}
	return int64(len(seen)), nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *MemoryRepository) InsertReminders(_ context.Context, reminders []models.AppointmentReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range reminders {
		if reminders[i].ID == uuid.Nil {
			reminders[i].ID = uuid.New()
		}
		reminders[i].CreatedAt = now
		r.reminders[reminders[i].ID] = reminders[i]
	}
	return nil
}

func (r *MemoryRepository) DeletePendingReminders(
	_ context.Context,
	appointmentID uuid.UUID,
) ([]models.AppointmentReminder, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := []models.AppointmentReminder{}
	for id, rem := range r.reminders {
		if rem.AppointmentID == appointmentID && !rem.Sent {
			removed = append(removed, rem)
			delete(r.reminders, id)
		}
	}
	return removed, nil
}

func (r *MemoryRepository) ListDueReminders(
	_ context.Context,
	now time.Time,
	limit int,
) ([]models.AppointmentReminder, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	due := []models.AppointmentReminder{}
	for _, rem := range r.reminders {
		if rem.IsDue(now) {
			due = append(due, rem)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(due[j].ScheduledFor)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *MemoryRepository) MarkReminderSent(
	_ context.Context,
	id uuid.UUID,
	at time.Time,
) (*models.AppointmentReminder, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	rem, ok := r.reminders[id]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}
	if !rem.Sent {
		rem.Sent = true
		rem.SentAt = &at
		r.reminders[id] = rem
	}
	return &rem, nil
}

// RemindersFor returns every stored reminder of an appointment ordered by
// fire time.
func (r *MemoryRepository) RemindersFor(appointmentID uuid.UUID) []models.AppointmentReminder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.AppointmentReminder{}
	for _, rem := range r.reminders {
		if rem.AppointmentID == appointmentID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledFor.Before(out[j].ScheduledFor)
	})
	return out
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func containsStatus(ss []domain.Status, s domain.Status) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		return aps[i].ScheduledStart.Before(aps[j].ScheduledStart)
	})
}

var (
	_ domain.Repository       = (*MemoryRepository)(nil)
	_ domain.PatientDirectory = (*MemoryRepository)(nil)
	_ domain.StaffDirectory   = (*MemoryRepository)(nil)
)
