package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return c, true
	}
	return "", false
}

// ReminderRule is one fixed lead time before the appointment start.
type ReminderRule struct {
	Channel Channel
	Lead    time.Duration
}

var ReminderPolicy = []ReminderRule{
	{Channel: ChannelEmail, Lead: 24 * time.Hour},
	{Channel: ChannelSMS, Lead: 2 * time.Hour},
	{Channel: ChannelWhatsApp, Lead: 30 * time.Minute},
}

// DeriveReminders materializes the reminder drafts for an appointment.
// Rules whose fire time is not after now are skipped.
func DeriveReminders(ap *models.Appointment, now time.Time) []models.AppointmentReminder {
	if Status(ap.Status).IsTerminal() {
		return nil
	}

	out := make([]models.AppointmentReminder, 0, len(ReminderPolicy))
	for _, rule := range ReminderPolicy {
		at := ap.ScheduledStart.Add(-rule.Lead)
		if !at.After(now) {
			continue
		}
		out = append(out, models.AppointmentReminder{
			AppointmentID: ap.ID,
			Channel:       string(rule.Channel),
			ScheduledFor:  at,
		})
	}
	return out
}
