package appointment

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleDentist      Role = "dentist"
)

// Caller is the identity resolved at the request boundary.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

// Scope is the set of appointments a caller may see or mutate.
// A zero Scope grants nothing.
type Scope struct {
	All       bool
	DentistID *uuid.UUID
}

func VisibleScope(c Caller) Scope {
	switch c.Role {
	case RoleAdmin, RoleReceptionist:
		return Scope{All: true}
	case RoleDentist:
		id := c.ID
		return Scope{DentistID: &id}
	default:
		return Scope{}
	}
}

func (s Scope) Empty() bool {
	return !s.All && s.DentistID == nil
}

func (s Scope) AllowsDentist(dentistID uuid.UUID) bool {
	if s.All {
		return true
	}
	return s.DentistID != nil && *s.DentistID == dentistID
}

func (s Scope) Allows(ap *models.Appointment) bool {
	return s.AllowsDentist(ap.DentistID)
}

// Authorize fails with ErrForbidden when the appointment is outside the
// caller's scope.
func Authorize(c Caller, ap *models.Appointment) error {
	if !VisibleScope(c).Allows(ap) {
		return ErrForbidden
	}
	return nil
}

func AuthorizeDentist(c Caller, dentistID uuid.UUID) error {
	if !VisibleScope(c).AllowsDentist(dentistID) {
		return ErrForbidden
	}
	return nil
}

// Filter drops every appointment outside the scope.
func (s Scope) Filter(aps []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(aps))
	for _, ap := range aps {
		if s.Allows(&ap) {
			out = append(out, ap)
		}
	}
	return out
}
