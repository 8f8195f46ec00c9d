package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CancelAppointment struct {
	changeStatus *ChangeAppointmentStatus
}

func NewCancelAppointment(changeStatus *ChangeAppointmentStatus) *CancelAppointment {
	return &CancelAppointment{changeStatus: changeStatus}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	if strings.TrimSpace(reason) == "" {
		return nil, domain.Invalid("cancellation_reason_required", "a cancellation reason is required")
	}

	return uc.changeStatus.Execute(ctx, ChangeStatusInput{
		Caller: caller,
		ID:     appointmentID,
		Status: domain.StatusCancelled,
		Reason: reason,
	})
}
