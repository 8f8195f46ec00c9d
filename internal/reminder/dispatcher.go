package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Event is one change to the set of pending reminders.
type Event struct {
	Schedule   []models.AppointmentReminder
	Unschedule []uuid.UUID
}

func (e Event) empty() bool {
	return len(e.Schedule) == 0 && len(e.Unschedule) == 0
}

// Dispatcher forwards reminder changes to the index on a background worker.
// Requests never wait on the index and never fail because of it.
type Dispatcher struct {
	index   Index
	queue   chan Event
	log     zerolog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(index Index, size int, log zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		index:   index,
		queue:   make(chan Event, size),
		log:     log.With().Str("component", "reminder_dispatcher").Logger(),
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)

		if len(ev.Unschedule) > 0 {
			if err := d.index.Remove(ctx, ev.Unschedule); err != nil {
				d.log.Warn().Err(err).Int("count", len(ev.Unschedule)).Msg("unschedule reminders failed")
			}
		}
		if len(ev.Schedule) > 0 {
			if err := d.index.Add(ctx, ev.Schedule); err != nil {
				d.log.Warn().Err(err).Int("count", len(ev.Schedule)).Msg("schedule reminders failed")
			}
		}

		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.empty() {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Int("schedule", len(ev.Schedule)).
			Int("unschedule", len(ev.Unschedule)).
			Msg("reminder queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are flushed.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
