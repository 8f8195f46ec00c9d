package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DirectoryGormRepository answers the existence questions the scheduler asks
// about patients and staff. It never creates or edits them.
type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

func (r *DirectoryGormRepository) PatientExists(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ? AND active = ?", id, true).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup patient %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *DirectoryGormRepository) IsDentist(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ? AND active = ?", id, string(domain.RoleDentist), true).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup staff %s: %w", id, err)
	}
	return n > 0, nil
}

var (
	_ domain.PatientDirectory = (*DirectoryGormRepository)(nil)
	_ domain.StaffDirectory   = (*DirectoryGormRepository)(nil)
)
