package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ReminderHandler is polled by the notification relay.
type ReminderHandler struct {
	due      *ucAppointment.ListDueReminders
	markSent *ucAppointment.MarkReminderSent
	clock    Clock
}

func NewReminderHandler(
	due *ucAppointment.ListDueReminders,
	markSent *ucAppointment.MarkReminderSent,
	clock Clock,
) *ReminderHandler {
	return &ReminderHandler{due: due, markSent: markSent, clock: clock}
}

func (h *ReminderHandler) Due(c *gin.Context) {
	limit, err := queryInt(c.Query("limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items, err := h.due.Execute(c.Request.Context(), middleware.CallerFrom(c), limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewReminderList(items, h.clock.Now(), h.clock.Location()))
}

func (h *ReminderHandler) MarkSent(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rem, err := h.markSent.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewReminderDTO(rem, h.clock.Now(), h.clock.Location()))
}
