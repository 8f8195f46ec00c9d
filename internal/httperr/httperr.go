package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

type conflictDetails struct {
	Requested   domain.Window       `json:"requested"`
	Conflicting *conflictingSummary `json:"conflicting_appointment,omitempty"`
}

type conflictingSummary struct {
	ID     string        `json:"id"`
	Window domain.Window `json:"window"`
	Status string        `json:"status"`
}

type transitionDetails struct {
	From domain.Status `json:"from"`
	To   domain.Status `json:"to"`
}

// Respond maps an error returned by a use case onto the HTTP surface.
// Anything it does not recognise is logged on the context and answered
// with a 500.
func Respond(c *gin.Context, err error) {
	var (
		be BusinessError
		ve *domain.ValidationError
		ce *domain.ConflictError
		te *domain.InvalidTransitionError
	)

	switch {
	case errors.As(err, &be):
		BadRequest(c, be.Code, "Invalid request.")

	case errors.As(err, &ve):
		msg := ve.Message
		if msg == "" {
			msg = ve.Code
		}
		Unprocessable(c, ve.Code, msg)

	case errors.As(err, &ce):
		details := conflictDetails{Requested: ce.Requested}
		if ce.Existing != nil {
			details.Conflicting = &conflictingSummary{
				ID:     ce.Existing.ID.String(),
				Window: domain.WindowOf(ce.Existing),
				Status: ce.Existing.Status,
			}
		}
		c.JSON(http.StatusConflict, HTTPError{
			Code:    "time_conflict",
			Message: "The requested time overlaps another appointment of this dentist.",
			Details: details,
		})

	case errors.As(err, &te):
		c.JSON(http.StatusConflict, HTTPError{
			Code:    "invalid_transition",
			Message: "Cannot move appointment from " + string(te.From) + " to " + string(te.To) + ".",
			Details: transitionDetails{From: te.From, To: te.To},
		})

	case errors.Is(err, domain.ErrNotFound):
		NotFound(c, "appointment_not_found", "Appointment not found.")

	case errors.Is(err, domain.ErrReminderNotFound):
		NotFound(c, "reminder_not_found", "Reminder not found.")

	case errors.Is(err, domain.ErrForbidden):
		Forbidden(c, "forbidden", "You do not have access to this resource.")

	default:
		_ = c.Error(err)
		Internal(c, "internal_error", "Unexpected error.")
	}
}
