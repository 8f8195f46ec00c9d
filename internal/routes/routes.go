package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type Deps struct {
	Repo      domain.Repository
	Patients  domain.PatientDirectory
	Staff     domain.StaffDirectory
	Clock     handlers.Clock
	Reminders ucAppointment.ReminderSink
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// USE CASES
	// ======================================================
	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(d.Repo, d.Reminders)

	appointmentUC := handlers.AppointmentUseCases{
		Create:       ucAppointment.NewCreateAppointment(d.Repo, d.Patients, d.Staff, d.Clock, d.Reminders),
		Reschedule:   ucAppointment.NewRescheduleAppointment(d.Repo, d.Clock, d.Reminders),
		ChangeStatus: changeStatusUC,
		Cancel:       ucAppointment.NewCancelAppointment(changeStatusUC),
		Get:          ucAppointment.NewGetAppointment(d.Repo),
		List:         ucAppointment.NewListAppointments(d.Repo),
		Upcoming:     ucAppointment.NewListUpcoming(d.Repo, d.Clock),
		Stats:        ucAppointment.NewGetStats(d.Repo, d.Clock),
		Conflict:     ucAppointment.NewCheckConflict(d.Repo),
		Availability: ucAppointment.NewCheckAvailability(d.Repo, d.Clock),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, d.Clock)
	reminderHandler := handlers.NewReminderHandler(
		ucAppointment.NewListDueReminders(d.Repo, d.Clock),
		ucAppointment.NewMarkReminderSent(d.Repo, d.Clock, d.Reminders),
		d.Clock,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.JWTSecret))
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("/upcoming", appointmentHandler.Upcoming)
			appointments.GET("/stats", appointmentHandler.Stats)
			appointments.GET("/availability", appointmentHandler.Availability)
			appointments.POST("/check-conflict", appointmentHandler.CheckConflict)

			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.PATCH("/:id/status", appointmentHandler.ChangeStatus)
			appointments.PATCH("/:id/cancel", appointmentHandler.Cancel)
			appointments.DELETE("/:id", appointmentHandler.Cancel)
		}

		reminders := api.Group("/reminders")
		{
			reminders.GET("/due", reminderHandler.Due)
			reminders.PATCH("/:id/sent", reminderHandler.MarkSent)
		}
	}
}
