package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type ListAppointmentsInput struct {
	Caller domain.Caller

	PatientID *uuid.UUID
	DentistID *uuid.UUID
	Status    *domain.Status
	From      *time.Time
	To        *time.Time

	Page    int
	PerPage int
}

type Page struct {
	Items      []models.Appointment
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) (*Page, error) {

	page := in.Page
	if page <= 0 {
		page = 1
	}
	perPage := in.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	f := domain.ListFilter{
		Scope:     domain.VisibleScope(in.Caller),
		PatientID: in.PatientID,
		DentistID: in.DentistID,
		From:      in.From,
		To:        in.To,
		Page:      page,
		PerPage:   perPage,
	}
	if in.Status != nil {
		f.Statuses = []domain.Status{*in.Status}
	}

	items, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}, nil
}
