package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const defaultDurationMinutes = 30

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create       *ucAppointment.CreateAppointment
	Reschedule   *ucAppointment.RescheduleAppointment
	ChangeStatus *ucAppointment.ChangeAppointmentStatus
	Cancel       *ucAppointment.CancelAppointment
	Get          *ucAppointment.GetAppointment
	List         *ucAppointment.ListAppointments
	Upcoming     *ucAppointment.ListUpcoming
	Stats        *ucAppointment.GetStats
	Conflict     *ucAppointment.CheckConflict
	Availability *ucAppointment.CheckAvailability
}

type AppointmentHandler struct {
	uc    AppointmentUseCases
	clock Clock
}

func NewAppointmentHandler(uc AppointmentUseCases, clock Clock) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, clock: clock}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" binding:"required"`
	DentistID       string `json:"dentist_id" binding:"required"`
	ScheduledTime   string `json:"scheduled_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ScheduledTime   *string `json:"scheduled_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status             string `json:"status" binding:"required,appointment_status"`
	CancellationReason string `json:"cancellation_reason"`
	Notes              string `json:"notes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type CheckConflictRequest struct {
	DentistID       string `json:"dentist_id" binding:"required"`
	ScheduledTime   string `json:"scheduled_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	ExcludeID       string `json:"exclude_appointment_id"`
}

// ======================================================
// HELPERS
// ======================================================

func bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		httperr.Unprocessable(c, "validation_error", validators.Describe(err))
		return
	}
	httperr.BadRequest(c, "invalid_request", "Malformed request body.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	loc := h.clock.Location()

	patientID, err := parseUUID(req.PatientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	dentistID, err := parseUUID(req.DentistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	start, err := parseDateTime(loc, req.ScheduledTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Caller:          middleware.CallerFrom(c),
		PatientID:       patientID,
		DentistID:       dentistID,
		ScheduledStart:  start,
		DurationMinutes: duration,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap, h.clock.Now(), loc))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.clock.Now(), h.clock.Location()))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	loc := h.clock.Location()
	in := ucAppointment.ListAppointmentsInput{Caller: middleware.CallerFrom(c)}

	var err error
	if in.Page, err = queryInt(c.Query("page")); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.PerPage, err = queryInt(c.Query("per_page")); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.PatientID, err = parseOptionalUUID(c.Query("patient_id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	if in.DentistID, err = parseOptionalUUID(c.Query("dentist_id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	if raw := c.Query("status"); raw != "" {
		st, ok := domain.ParseStatus(raw)
		if !ok {
			httperr.Unprocessable(c, "invalid_status", "Unknown appointment status.")
			return
		}
		in.Status = &st
	}

	// date_to is inclusive of the whole day.
	if raw := c.Query("date_from"); raw != "" {
		from, err := parseDate(loc, raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		in.From = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := parseDate(loc, raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		to = to.AddDate(0, 0, 1)
		in.To = &to
	}

	page, err := h.uc.List.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(
		c,
		dto.NewAppointmentList(page.Items, h.clock.Now(), loc),
		page.Total,
		page.Page,
		page.PerPage,
		page.TotalPages,
	)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	days, err := queryInt(c.Query("days"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	limit, err := queryInt(c.Query("limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items, err := h.uc.Upcoming.Execute(c.Request.Context(), middleware.CallerFrom(c), days, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(items, h.clock.Now(), h.clock.Location()))
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats.Execute(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	loc := h.clock.Location()
	in := ucAppointment.RescheduleAppointmentInput{
		Caller:          middleware.CallerFrom(c),
		ID:              id,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}
	if req.ScheduledTime != nil {
		start, err := parseDateTime(loc, *req.ScheduledTime)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		in.ScheduledStart = &start
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.clock.Now(), loc))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.uc.ChangeStatus.Execute(c.Request.Context(), ucAppointment.ChangeStatusInput{
		Caller: middleware.CallerFrom(c),
		ID:     id,
		Status: domain.Status(req.Status),
		Reason: req.CancellationReason,
		Notes:  req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.clock.Now(), h.clock.Location()))
}

// ======================================================
// CANCEL
// ======================================================

// Cancel serves both PATCH /:id/cancel with a JSON body and DELETE /:id,
// where the reason may come as the "reason" query parameter instead.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	// The body is optional and may arrive chunked.
	var req CancelRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			bindError(c, err)
			return
		}
	}
	if req.Reason == "" {
		req.Reason = c.Query("reason")
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), middleware.CallerFrom(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.clock.Now(), h.clock.Location()))
}

// ======================================================
// PROBES
// ======================================================

func (h *AppointmentHandler) CheckConflict(c *gin.Context) {
	var req CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dentistID, err := parseUUID(req.DentistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	start, err := parseDateTime(h.clock.Location(), req.ScheduledTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	exclude, err := parseOptionalUUID(req.ExcludeID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	res, err := h.uc.Conflict.Execute(c.Request.Context(), ucAppointment.CheckConflictInput{
		Caller:          middleware.CallerFrom(c),
		DentistID:       dentistID,
		ScheduledStart:  start,
		DurationMinutes: duration,
		ExcludeID:       exclude,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := gin.H{
		"has_conflict": res.Conflict,
		"requested":    res.Requested,
	}
	if res.Existing != nil {
		out["conflicting_appointment"] = dto.NewAppointmentDTO(res.Existing, h.clock.Now(), h.clock.Location())
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	loc := h.clock.Location()

	dentistID, err := parseUUID(c.Query("dentist_id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}
	date, err := parseDate(loc, dateStr)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	slot, err := queryInt(c.Query("slot_duration"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.uc.Availability.Execute(c.Request.Context(), ucAppointment.CheckAvailabilityInput{
		Caller:      middleware.CallerFrom(c),
		DentistID:   dentistID,
		Date:        date,
		SlotMinutes: slot,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
