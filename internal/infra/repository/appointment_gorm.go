package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const lockAttempts = 3

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Locking
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinDentistLock(
	ctx context.Context,
	dentistID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	var err error
	for attempt := 1; attempt <= lockAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var dentist models.User
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				Where("id = ?", dentistID).
				Take(&dentist).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.Invalid("dentist_not_found", "dentist does not exist")
				}
				return fmt.Errorf("lock dentist %s: %w", dentistID, err)
			}

			return fn(&AppointmentGormRepository{db: tx})
		})

		if !isRetryable(err) {
			return err
		}
	}

	return &domain.ConflictError{}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get appointment %s: %w", id, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindAppointments(
	ctx context.Context,
	dentistID uuid.UUID,
	from time.Time,
	to time.Time,
	excludeStatuses []domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"dentist_id = ? AND scheduled_start >= ? AND scheduled_start < ?",
			dentistID, from, to,
		)

	if len(excludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", statusStrings(excludeStatuses))
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_start ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := scoped(r.db.WithContext(ctx).Model(&models.Appointment{}), f.Scope)

	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.DentistID != nil {
		q = q.Where("dentist_id = ?", *f.DentistID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(f.Statuses))
	}
	if f.From != nil {
		q = q.Where("scheduled_start >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_start < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	var apps []models.Appointment
	if err := q.
		Order("scheduled_start ASC").
		Offset(f.Offset()).
		Limit(f.PerPage).
		Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error; err != nil {
		if isExclusionConflict(err) {
			return &domain.ConflictError{Requested: domain.WindowOf(ap)}
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit("id", "created_at", "deleted_at", clause.Associations).
		Updates(ap)

	if res.Error != nil {
		if isExclusionConflict(res.Error) {
			return &domain.ConflictError{Requested: domain.WindowOf(ap)}
		}
		return fmt.Errorf("update appointment %s: %w", ap.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) CountByStatus(
	ctx context.Context,
	scope domain.Scope,
) (map[domain.Status]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}

	if err := scoped(r.db.WithContext(ctx).Model(&models.Appointment{}), scope).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	out := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		out[domain.Status(row.Status)] = row.Total
	}
	return out, nil
}

func (r *AppointmentGormRepository) CountPatients(
	ctx context.Context,
	scope domain.Scope,
) (int64, error) {

	var n int64
	if err := scoped(r.db.WithContext(ctx).Model(&models.Appointment{}), scope).
		Distinct("patient_id").
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) InsertReminders(
	ctx context.Context,
	reminders []models.AppointmentReminder,
) error {

	if len(reminders) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&reminders).Error; err != nil {
		return fmt.Errorf("insert reminders: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) DeletePendingReminders(
	ctx context.Context,
	appointmentID uuid.UUID,
) ([]models.AppointmentReminder, error) {

	var pending []models.AppointmentReminder
	if err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("appointment_id = ? AND sent = ?", appointmentID, false).
		Delete(&pending).Error; err != nil {
		return nil, fmt.Errorf("delete pending reminders: %w", err)
	}
	return pending, nil
}

func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.AppointmentReminder, error) {

	var due []models.AppointmentReminder
	if err := r.db.WithContext(ctx).
		Where("sent = ? AND scheduled_for <= ?", false, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&due).Error; err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return due, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (*models.AppointmentReminder, error) {

	var rem models.AppointmentReminder
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, fmt.Errorf("get reminder %s: %w", id, err)
	}

	if rem.Sent {
		return &rem, nil
	}

	rem.Sent = true
	rem.SentAt = &at
	if err := r.db.WithContext(ctx).
		Model(&rem).
		Updates(map[string]any{"sent": true, "sent_at": at}).Error; err != nil {
		return nil, fmt.Errorf("mark reminder %s sent: %w", id, err)
	}
	return &rem, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func scoped(q *gorm.DB, s domain.Scope) *gorm.DB {
	switch {
	case s.All:
		return q
	case s.DentistID != nil:
		return q.Where("dentist_id = ?", *s.DentistID)
	default:
		return q.Where("1 = 0")
	}
}

func statusStrings(ss []domain.Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
